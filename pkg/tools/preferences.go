package tools

import (
	"context"
	"fmt"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/store"
)

// PreferenceHandler serves update_preferences with merge-then-upsert
// semantics: only the fields present in the invocation change.
type PreferenceHandler struct {
	prefs store.PreferenceStore
}

// NewPreferenceHandler creates the update_preferences handler.
func NewPreferenceHandler(prefs store.PreferenceStore) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

var _ Handler = (*PreferenceHandler)(nil)

func (h *PreferenceHandler) Execute(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	current, err := h.prefs.GetPreferences(ctx, inv.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	message := "Preferences updated"
	if p := paramString(inv.Parameters, "default_persona", ""); p != "" {
		current.DefaultPersona = p
		message = fmt.Sprintf("Switched to %s mode", p)
	}
	if l := paramString(inv.Parameters, "accountability_level", ""); l != "" {
		current.AccountabilityLevel = l
	}
	if v, ok := inv.Parameters["proactive_check_ins"].(bool); ok {
		current.ProactiveCheckIns = v
	}
	if s := paramString(inv.Parameters, "quiet_hours_start", ""); s != "" {
		current.QuietHoursStart = s
	}
	if e := paramString(inv.Parameters, "quiet_hours_end", ""); e != "" {
		current.QuietHoursEnd = e
	}

	if err := h.prefs.PutPreferences(ctx, current); err != nil {
		return nil, fmt.Errorf("saving preferences: %w", err)
	}
	return map[string]any{
		"preferences": current,
		"message":     message,
	}, nil
}
