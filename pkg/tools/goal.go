package tools

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hustlemode/coach/pkg/conflict"
	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
	"github.com/hustlemode/coach/pkg/store"
)

// GoalHandler serves every manage_goal action.
type GoalHandler struct {
	goals    store.GoalStore
	llm      llm.Client
	analyzer *conflict.Analyzer
}

// NewGoalHandler creates the manage_goal handler.
func NewGoalHandler(goals store.GoalStore, client llm.Client) *GoalHandler {
	return &GoalHandler{
		goals:    goals,
		llm:      client,
		analyzer: conflict.NewAnalyzer(client),
	}
}

var _ Handler = (*GoalHandler)(nil)

func (h *GoalHandler) Execute(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	action := domain.GoalAction(paramString(inv.Parameters, "action", string(domain.ActionList)))
	switch action {
	case domain.ActionCreate:
		return h.create(ctx, inv)
	case domain.ActionUpdate:
		return h.update(ctx, inv)
	case domain.ActionList:
		return h.list(ctx, inv.UserID)
	case domain.ActionGet:
		return h.get(ctx, inv)
	case domain.ActionDelete:
		return h.delete(ctx, inv)
	case domain.ActionComplete:
		return h.complete(ctx, inv)
	case domain.ActionAnalyzeConflicts:
		return h.analyzeConflicts(ctx, inv.UserID)
	case domain.ActionSuggestAmendments:
		return h.suggestAmendments(ctx, inv.UserID)
	default:
		return nil, fmt.Errorf("unsupported goal action %q", action)
	}
}

func (h *GoalHandler) create(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	title := strings.TrimSpace(paramString(inv.Parameters, "title", ""))
	if title == "" {
		return nil, fmt.Errorf("goal title is required")
	}

	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      inv.UserID,
		Title:       title,
		Description: paramString(inv.Parameters, "description", ""),
		GoalType:    domain.GoalType(paramString(inv.Parameters, "goal_type", string(domain.GoalTypeHabit))),
		Frequency:   paramString(inv.Parameters, "frequency", "daily"),
		TargetValue: paramFloat(inv.Parameters, "target_value"),
		Status:      domain.GoalStatusActive,
	}
	if start := paramString(inv.Parameters, "start_date", ""); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			goal.StartDate = t
		}
	}
	if end := paramString(inv.Parameters, "end_date", ""); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			goal.EndDate = &t
		}
	}

	if err := h.goals.Insert(ctx, goal); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}
	return map[string]any{
		"goal":    goal,
		"message": fmt.Sprintf("Goal locked in: %s", goal.Title),
	}, nil
}

func (h *GoalHandler) update(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	goal, err := h.resolve(ctx, inv.UserID, paramString(inv.Parameters, "goalReference", ""))
	if err != nil {
		return nil, err
	}

	if title := paramString(inv.Parameters, "title", ""); title != "" {
		goal.Title = title
	}
	if freq := paramString(inv.Parameters, "frequency", ""); freq != "" {
		goal.Frequency = freq
	}
	if target := paramFloat(inv.Parameters, "target_value"); target != 0 {
		goal.TargetValue = target
		if paramBool(inv.Parameters, "retitle") {
			goal.Title = retitle(goal.Title, target, paramString(inv.Parameters, "unit", ""))
		}
	}
	if end := paramString(inv.Parameters, "end_date", ""); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			goal.EndDate = &t
		}
	}

	if err := h.goals.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}
	return map[string]any{
		"goal":    goal,
		"message": fmt.Sprintf("Updated: %s", goal.Title),
	}, nil
}

func (h *GoalHandler) list(ctx context.Context, userID string) (any, error) {
	goals, err := h.goals.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	message := fmt.Sprintf("You have %d active goals", len(goals))
	if len(goals) == 0 {
		message = "No active goals yet. Tell me what you want to work on!"
	}
	return map[string]any{
		"goals":   goals,
		"count":   len(goals),
		"message": message,
	}, nil
}

func (h *GoalHandler) get(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	goal, err := h.resolve(ctx, inv.UserID, paramString(inv.Parameters, "goalReference", ""))
	if err != nil {
		return nil, err
	}
	return map[string]any{"goal": goal}, nil
}

func (h *GoalHandler) delete(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	goal, err := h.resolve(ctx, inv.UserID, paramString(inv.Parameters, "goalReference", ""))
	if err != nil {
		return nil, err
	}
	if err := h.goals.Delete(ctx, inv.UserID, goal.ID); err != nil {
		return nil, fmt.Errorf("deleting goal: %w", err)
	}
	return map[string]any{
		"message": fmt.Sprintf("Dropped: %s", goal.Title),
	}, nil
}

func (h *GoalHandler) complete(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	goal, err := h.resolve(ctx, inv.UserID, paramString(inv.Parameters, "goalReference", ""))
	if err != nil {
		return nil, err
	}
	if err := h.goals.Complete(ctx, inv.UserID, goal.ID); err != nil {
		return nil, fmt.Errorf("completing goal: %w", err)
	}
	return map[string]any{
		"goal":    goal,
		"message": fmt.Sprintf("Crushed it: %s is done!", goal.Title),
	}, nil
}

func (h *GoalHandler) analyzeConflicts(ctx context.Context, userID string) (any, error) {
	goals, err := h.goals.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return h.analyzer.Analyze(ctx, goals), nil
}

func (h *GoalHandler) suggestAmendments(ctx context.Context, userID string) (any, error) {
	goals, err := h.goals.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	report := h.analyzer.Analyze(ctx, goals)
	return map[string]any{
		"amendments": conflict.SuggestAmendments(goals, report),
		"summary":    report.Summary,
	}, nil
}

const resolvePrompt = `Which of these goals does the user mean?

Reference: %q

Goals:
%s
Respond in JSON format:
{
  "index": number (0-based, or -1 if unclear)
}`

// resolve finds the goal a free-text reference points at. With one active
// goal there is nothing to disambiguate; otherwise the semantic service picks
// the best match, falling back to the newest goal.
func (h *GoalHandler) resolve(ctx context.Context, userID, reference string) (*domain.Goal, error) {
	goals, err := h.goals.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("no active goals to work with")
	}
	if len(goals) == 1 || strings.TrimSpace(reference) == "" {
		return &goals[0], nil
	}

	var lines strings.Builder
	for i, g := range goals {
		fmt.Fprintf(&lines, "%d. %s\n", i, g.Title)
	}
	reply, err := h.llm.Complete(ctx, fmt.Sprintf(resolvePrompt, reference, lines.String()))
	if err != nil {
		slog.Warn("goal reference resolution failed", "error", err)
		return &goals[0], nil
	}
	var choice struct {
		Index int `json:"index"`
	}
	if err := llm.Decode(reply, &choice); err != nil || choice.Index < 0 || choice.Index >= len(goals) {
		return &goals[0], nil
	}
	return &goals[choice.Index], nil
}

var leadingTarget = regexp.MustCompile(`\d+(\.\d+)?\s*\p{L}*`)

// retitle rewrites the numeric target embedded in a goal title, so "Run 5k
// daily" becomes "Run 10 km daily" when the target changes.
func retitle(title string, target float64, unit string) string {
	replacement := strings.TrimSpace(fmt.Sprintf("%s %s", trimFloat(target), unit))
	if loc := leadingTarget.FindStringIndex(title); loc != nil {
		return title[:loc[0]] + replacement + title[loc[1]:]
	}
	return fmt.Sprintf("%s (%s)", title, replacement)
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func paramString(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

func paramFloat(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func paramBool(params map[string]any, key string) bool {
	v, _ := params[key].(bool)
	return v
}

func paramStrings(params map[string]any, key string) []string {
	raw, ok := params[key].([]any)
	if !ok {
		if direct, ok := params[key].([]string); ok {
			return direct
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
