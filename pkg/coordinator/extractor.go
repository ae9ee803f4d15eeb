package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
)

// ParameterExtractor pulls structured goal fields out of free text for a
// given action. Every field has an explicit default so nothing is left
// ambiguously absent.
type ParameterExtractor struct {
	llm llm.Client
}

// NewParameterExtractor creates an extractor backed by the semantic client.
func NewParameterExtractor(client llm.Client) *ParameterExtractor {
	return &ParameterExtractor{llm: client}
}

const extractBasePrompt = `Extract goal parameters from this message:
Message: %q
Action: %s
Domain: %s
Depth Level: %s

Respond in JSON format with these fields:`

const extractCreateFields = `
{
  "title": "Clear, actionable goal title",
  "description": "Brief description (optional)",
  "goal_type": "habit|project|calendar",
  "frequency": "daily|weekly|monthly|custom",
  "target_value": number_or_null,
  "unit": "unit of the target value, if any (miles, pages, minutes, ...)",
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD_or_null"
}

Extract meaningful numeric targets and realistic timeframes.`

const extractUpdateFields = `
{
  "goalReference": "How user refers to the goal",
  "title": "New title if mentioned",
  "target_value": number_or_null,
  "unit": "unit of the new target value, if any",
  "frequency": "New frequency if mentioned",
  "end_date": "New deadline if mentioned",
  "changes": "Summary of what to change"
}

Focus on what specifically needs to be updated.`

const extractRefFields = `
{
  "goalReference": "How user refers to the goal"
}`

// Extract returns the action-specific field map for the message.
func (e *ParameterExtractor) Extract(ctx context.Context, message string, action domain.GoalAction, desc domain.IntentDescriptor) map[string]any {
	prompt := fmt.Sprintf(extractBasePrompt, message, action, desc.Domain, desc.DepthLevel)
	switch action {
	case domain.ActionCreate:
		prompt += extractCreateFields
	case domain.ActionUpdate:
		prompt += extractUpdateFields
	default:
		prompt += extractRefFields
	}

	reply, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("parameter extraction failed", "action", action, "error", err)
		return defaultParams(action)
	}

	var raw map[string]any
	if err := llm.Decode(reply, &raw); err != nil {
		slog.Warn("parameter reply unparseable", "action", action, "error", err)
		return defaultParams(action)
	}

	switch action {
	case domain.ActionCreate:
		return createParams(raw)
	case domain.ActionUpdate:
		return updateParams(raw)
	default:
		return map[string]any{"goalReference": str(raw, "goalReference", "")}
	}
}

func createParams(raw map[string]any) map[string]any {
	params := map[string]any{
		"title":       str(raw, "title", "New Goal"),
		"description": str(raw, "description", ""),
		"goal_type":   coerceGoalType(str(raw, "goal_type", "")),
		"frequency":   str(raw, "frequency", "daily"),
		"start_date":  str(raw, "start_date", today()),
	}
	if v, ok := num(raw, "target_value"); ok {
		params["target_value"] = v
	}
	if end := str(raw, "end_date", ""); end != "" && end != "null" {
		params["end_date"] = end
	}
	return params
}

func updateParams(raw map[string]any) map[string]any {
	params := map[string]any{
		"goalReference": str(raw, "goalReference", ""),
		"changes":       str(raw, "changes", "General update"),
	}
	for _, field := range []string{"title", "frequency", "end_date"} {
		if v := str(raw, field, ""); v != "" && v != "null" {
			params[field] = v
		}
	}
	target, hasTarget := num(raw, "target_value")
	if hasTarget {
		params["target_value"] = target
	}
	// A numeric target together with a unit lets the executor rewrite the
	// goal's display title to reflect the new target.
	if unit := str(raw, "unit", ""); hasTarget && unit != "" && unit != "null" {
		params["retitle"] = true
		params["unit"] = unit
	}
	return params
}

func defaultParams(action domain.GoalAction) map[string]any {
	switch action {
	case domain.ActionCreate:
		return map[string]any{
			"title":      "New Goal",
			"goal_type":  string(domain.GoalTypeHabit),
			"frequency":  "daily",
			"start_date": today(),
		}
	case domain.ActionUpdate:
		return map[string]any{
			"goalReference": "goal",
			"changes":       "Update goal",
		}
	default:
		return map[string]any{"goalReference": ""}
	}
}

func coerceGoalType(v string) string {
	switch domain.GoalType(v) {
	case domain.GoalTypeHabit, domain.GoalTypeProject, domain.GoalTypeCalendar:
		return v
	}
	return string(domain.GoalTypeHabit)
}

func str(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func num(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, v != 0
	case int:
		return float64(v), v != 0
	}
	return 0, false
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
