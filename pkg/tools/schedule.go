package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/store"
)

// ScheduleHandler serves schedule_checkin.
type ScheduleHandler struct {
	checkins store.CheckInStore
}

// NewScheduleHandler creates the schedule_checkin handler.
func NewScheduleHandler(checkins store.CheckInStore) *ScheduleHandler {
	return &ScheduleHandler{checkins: checkins}
}

var _ Handler = (*ScheduleHandler)(nil)

func (h *ScheduleHandler) Execute(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	when, err := parseWhen(paramString(inv.Parameters, "scheduled_at", ""))
	if err != nil {
		return nil, err
	}
	if when.Before(time.Now()) {
		return nil, fmt.Errorf("check-in time %s is in the past", when.Format(time.RFC3339))
	}

	checkIn := &domain.CheckIn{
		ID:           uuid.NewString(),
		UserID:       inv.UserID,
		GoalIDs:      paramStrings(inv.Parameters, "goal_ids"),
		ScheduledAt:  when,
		ReminderType: paramString(inv.Parameters, "reminder_type", "gentle"),
		Message:      paramString(inv.Parameters, "message", ""),
	}
	if err := h.checkins.ScheduleCheckIn(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("scheduling check-in: %w", err)
	}
	return map[string]any{
		"check_in": checkIn,
		"message":  fmt.Sprintf("Check-in locked for %s", when.Format("Mon Jan 2 15:04")),
	}, nil
}

func parseWhen(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized check-in time %q", raw)
}
