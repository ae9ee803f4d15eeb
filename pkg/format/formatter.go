// Package format renders tool results into one persona-voiced reply bounded
// by the channel's word budget.
package format

import (
	"fmt"
	"strings"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/persona"
)

// Response is the final outbound reply plus formatting metadata.
type Response struct {
	Text     string         `json:"text"`
	Persona  string         `json:"persona"`
	Channel  domain.Channel `json:"channel"`
	Metadata map[string]any `json:"metadata"`
}

// toolPriority orders which result's text wins when several tools ran.
var toolPriority = []domain.ToolName{
	domain.ToolManageGoal,
	domain.ToolEnhancedCoaching,
	domain.ToolGetProgress,
	domain.ToolUpdatePreferences,
	domain.ToolScheduleCheckIn,
}

// Format renders the reply. A candidate that already fits the channel budget
// is used verbatim after quote-trimming; otherwise the highest-priority tool
// text wins, and with nothing usable the persona's generic fallback steps in.
func Format(candidate string, results []domain.ToolResult, p *persona.Persona, channel domain.Channel) Response {
	budget := channel.WordBudget()

	text := strings.TrimSpace(trimQuotes(candidate))
	if text == "" || len(strings.Fields(text)) > budget {
		if fromTools := pickToolText(results); fromTools != "" {
			text = fromTools
		}
	}
	if text == "" {
		text = p.Fallback(candidate + string(channel))
	}

	// Flair before truncation so the budget stays a hard bound; at exactly
	// the budget the emoji is the token that gets dropped.
	text = truncate(p.Flair(text), budget)
	return Response{
		Text:     text,
		Persona:  p.Name,
		Channel:  channel,
		Metadata: metadata(results),
	}
}

// pickToolText finds the highest-priority successful result that carries
// user-facing text.
func pickToolText(results []domain.ToolResult) string {
	byTool := map[domain.ToolName]domain.ToolResult{}
	for _, r := range results {
		if r.Success {
			byTool[r.Tool] = r
		}
	}
	for _, tool := range toolPriority {
		r, ok := byTool[tool]
		if !ok {
			continue
		}
		if text := resultText(r); text != "" {
			return text
		}
	}
	return ""
}

// resultText extracts the user-facing line from one result's data payload.
// Goal listings enumerate literal titles so the user sees their own words.
func resultText(r domain.ToolResult) string {
	data, ok := r.Data.(map[string]any)
	if !ok {
		return ""
	}

	if r.Tool == domain.ToolEnhancedCoaching {
		text, _ := data["response"].(string)
		return strings.TrimSpace(trimQuotes(text))
	}

	message, _ := data["message"].(string)
	if goals := goalTitles(data["goals"]); len(goals) > 0 {
		return fmt.Sprintf("%s: %s", message, strings.Join(goals, ", "))
	}
	return message
}

func goalTitles(v any) []string {
	goals, ok := v.([]domain.Goal)
	if !ok {
		return nil
	}
	titles := make([]string, 0, len(goals))
	for _, g := range goals {
		titles = append(titles, g.Title)
	}
	return titles
}

func metadata(results []domain.ToolResult) map[string]any {
	names := make([]string, 0, len(results))
	succeeded, cached := 0, 0
	for _, r := range results {
		names = append(names, string(r.Tool))
		if r.Success {
			succeeded++
		}
		if r.Cached {
			cached++
		}
	}
	return map[string]any{
		"tools_used":    len(results),
		"tool_names":    names,
		"success_count": succeeded,
		"cached_count":  cached,
	}
}

// truncate keeps the first limit words. The cut is word-aligned so a budget
// never splits a word mid-way.
func truncate(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}
