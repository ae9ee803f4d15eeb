package format

import (
	"strings"
	"testing"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/persona"
)

func taskmaster() *persona.Persona { return persona.Get(persona.Taskmaster) }

func TestFormatCandidateWithinBudgetWinsVerbatim(t *testing.T) {
	resp := Format(`"Nice work. Keep the streak alive!"`, nil, taskmaster(), domain.ChannelWhatsApp)
	if !strings.HasPrefix(resp.Text, "Nice work. Keep the streak alive!") {
		t.Errorf("text = %q, want quote-trimmed candidate", resp.Text)
	}
	if strings.Contains(resp.Text, `"`) {
		t.Errorf("wrapping quotes survived: %q", resp.Text)
	}
}

func TestFormatOversizedCandidateYieldsToToolText(t *testing.T) {
	long := strings.Repeat("word ", 40)
	results := []domain.ToolResult{{
		Tool:    domain.ToolManageGoal,
		Success: true,
		Data:    map[string]any{"message": "Goal locked in: Run 5k daily"},
	}}

	resp := Format(long, results, taskmaster(), domain.ChannelWhatsApp)
	if !strings.Contains(resp.Text, "Run 5k daily") {
		t.Errorf("text = %q, want tool message", resp.Text)
	}
}

func TestFormatToolPriority(t *testing.T) {
	results := []domain.ToolResult{
		{Tool: domain.ToolGetProgress, Success: true, Data: map[string]any{"message": "2 active goals, 40% average progress"}},
		{Tool: domain.ToolManageGoal, Success: true, Data: map[string]any{"message": "Updated: Run 10 km daily"}},
	}

	resp := Format("", results, taskmaster(), domain.ChannelAPI)
	if !strings.Contains(resp.Text, "Updated") {
		t.Errorf("text = %q, manage_goal should outrank get_progress", resp.Text)
	}
}

func TestFormatListIncludesLiteralTitles(t *testing.T) {
	results := []domain.ToolResult{{
		Tool:    domain.ToolManageGoal,
		Success: true,
		Data: map[string]any{
			"message": "You have 2 active goals",
			"goals": []domain.Goal{
				{Title: "Run 5k daily"},
				{Title: "Read 20 pages"},
			},
		},
	}}

	resp := Format("", results, taskmaster(), domain.ChannelEmail)
	for _, title := range []string{"Run 5k daily", "Read 20 pages"} {
		if !strings.Contains(resp.Text, title) {
			t.Errorf("text %q missing title %q", resp.Text, title)
		}
	}
}

func TestFormatFallbackWhenNothingUsable(t *testing.T) {
	failed := []domain.ToolResult{{
		Tool:    domain.ToolManageGoal,
		Success: false,
		Error:   "store offline",
	}}

	resp := Format("", failed, taskmaster(), domain.ChannelWhatsApp)
	if resp.Text == "" {
		t.Fatal("fallback must always produce text")
	}
	if words := len(strings.Fields(resp.Text)); words > domain.ChannelWhatsApp.WordBudget() {
		t.Errorf("fallback is %d words, over budget", words)
	}

	// Same inputs, same fallback line.
	again := Format("", failed, taskmaster(), domain.ChannelWhatsApp)
	if resp.Text != again.Text {
		t.Error("fallback selection must be deterministic")
	}
}

func TestFormatTruncatesToChannelBudget(t *testing.T) {
	results := []domain.ToolResult{{
		Tool:    domain.ToolEnhancedCoaching,
		Success: true,
		Data:    map[string]any{"response": strings.Repeat("go ", 50)},
	}}

	for _, channel := range []domain.Channel{domain.ChannelWhatsApp, domain.ChannelTelegram, domain.ChannelEmail} {
		resp := Format("", results, taskmaster(), channel)
		if words := len(strings.Fields(resp.Text)); words > channel.WordBudget() {
			t.Errorf("%s: %d words over budget %d", channel, words, channel.WordBudget())
		}
	}
}

func TestFormatBudgetHoldsWithFlair(t *testing.T) {
	// Exactly at budget without an emoji: flair must not push it over.
	budget := domain.ChannelWhatsApp.WordBudget()
	exact := strings.TrimSpace(strings.Repeat("push ", budget))

	resp := Format(exact, nil, taskmaster(), domain.ChannelWhatsApp)
	if words := len(strings.Fields(resp.Text)); words > budget {
		t.Errorf("%d words over budget %d: %q", words, budget, resp.Text)
	}
}

func TestFormatMetadata(t *testing.T) {
	results := []domain.ToolResult{
		{Tool: domain.ToolGetProgress, Success: true, Cached: true, Data: map[string]any{"message": "ok"}},
		{Tool: domain.ToolManageGoal, Success: false, Error: "boom"},
	}

	resp := Format("", results, taskmaster(), domain.ChannelAPI)
	if resp.Metadata["tools_used"] != 2 || resp.Metadata["success_count"] != 1 || resp.Metadata["cached_count"] != 1 {
		t.Errorf("metadata = %v", resp.Metadata)
	}
}

func TestQuickReply(t *testing.T) {
	if _, ok := QuickReply("analyze my goals please"); ok {
		t.Error("substantive message must not bypass the pipeline")
	}
	reply, ok := QuickReply("  Hey! ")
	if !ok || reply == "" {
		t.Errorf("greeting should short-circuit, got %q, %v", reply, ok)
	}
}
