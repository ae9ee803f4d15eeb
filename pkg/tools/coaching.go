package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
	"github.com/hustlemode/coach/pkg/persona"
	"github.com/hustlemode/coach/pkg/store"
)

// CoachingHandler serves enhanced_coaching: a persona-voiced reply tuned to
// the classified depth and coaching type.
type CoachingHandler struct {
	llm   llm.Client
	prefs store.PreferenceStore
}

// NewCoachingHandler creates the enhanced_coaching handler.
func NewCoachingHandler(client llm.Client, prefs store.PreferenceStore) *CoachingHandler {
	return &CoachingHandler{llm: client, prefs: prefs}
}

var _ Handler = (*CoachingHandler)(nil)

const coachingPrompt = `%s

The user said: %q

Coaching context:
- Domain: %s
- Depth needed: %s
- Coaching type: %s
- Follow-up context: %s
- Specificity: %s
- Conversation stage: %s
%s
Reply in character. Match the depth they asked for: surface gets one line,
implementation gets concrete steps. Stay under %d words.`

func (h *CoachingHandler) Execute(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	p := h.personaFor(ctx, inv.UserID)

	needsLine := ""
	if needs := paramStrings(inv.Parameters, "unresolved_needs"); len(needs) > 0 {
		needsLine = fmt.Sprintf("- Unresolved needs: %s\n", strings.Join(needs, ", "))
	}

	prompt := fmt.Sprintf(coachingPrompt,
		p.SystemPrompt,
		paramString(inv.Parameters, "original_message", ""),
		paramString(inv.Parameters, "domain", "general"),
		paramString(inv.Parameters, "depth_level", "surface"),
		paramString(inv.Parameters, "coaching_type", "informational"),
		paramString(inv.Parameters, "follow_up_context", "initial"),
		paramString(inv.Parameters, "specificity_needed", "medium"),
		paramString(inv.Parameters, "conversation_progression", "start"),
		needsLine,
		inv.Channel.WordBudget(),
	)

	reply, err := h.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("coaching reply: %w", err)
	}
	return map[string]any{
		"response": strings.TrimSpace(reply),
		"persona":  p.Name,
	}, nil
}

// personaFor loads the user's preferred voice, defaulting to taskmaster when
// preferences are missing or unreadable.
func (h *CoachingHandler) personaFor(ctx context.Context, userID string) *persona.Persona {
	prefs, err := h.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return persona.Get(persona.Taskmaster)
	}
	return persona.Get(prefs.DefaultPersona)
}
