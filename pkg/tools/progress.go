package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/store"
)

// ProgressHandler serves get_progress.
type ProgressHandler struct {
	goals store.GoalStore
}

// NewProgressHandler creates the get_progress handler.
func NewProgressHandler(goals store.GoalStore) *ProgressHandler {
	return &ProgressHandler{goals: goals}
}

var _ Handler = (*ProgressHandler)(nil)

func (h *ProgressHandler) Execute(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	period := paramString(inv.Parameters, "time_period", "week")
	goals, err := h.goals.ListActive(ctx, inv.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	if len(goals) == 0 {
		return map[string]any{
			"goals":       []domain.Goal{},
			"count":       0,
			"time_period": period,
			"message":     "No goals tracked yet. Set one and let's go!",
		}, nil
	}

	var total float64
	onTrack := 0
	for _, g := range goals {
		total += g.ProgressPercentage
		if g.ProgressPercentage >= 50 {
			onTrack++
		}
	}
	average := math.Round(total/float64(len(goals))*10) / 10

	return map[string]any{
		"goals":            goals,
		"count":            len(goals),
		"time_period":      period,
		"average_progress": average,
		"on_track":         onTrack,
		"message": fmt.Sprintf("%d active goals, %.0f%% average progress, %d on track",
			len(goals), average, onTrack),
	}, nil
}
