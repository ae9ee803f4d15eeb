// Package tools implements the closed tool set and the executor that runs
// invocations against it: schema validation, result caching, dispatch, and
// error containment.
package tools

import (
	"time"

	"github.com/hustlemode/coach/pkg/domain"
)

// Definitions returns the schemas for the closed tool set. The map is built
// fresh per call so callers can't mutate shared state.
func Definitions() map[domain.ToolName]domain.ToolDefinition {
	return map[domain.ToolName]domain.ToolDefinition{
		domain.ToolManageGoal: {
			Name:        domain.ToolManageGoal,
			Description: "Create, update, list, and analyze the user's goals",
			Parameters: map[string]domain.ToolParameter{
				"action": {
					Type:     domain.ParamEnum,
					Required: true,
					Enum: []string{
						"create", "update", "list", "get", "delete", "complete",
						"analyze_conflicts", "suggest_amendments",
					},
					Description: "Goal operation to perform",
				},
				"title":         {Type: domain.ParamString, Description: "Goal title"},
				"description":   {Type: domain.ParamString, Description: "Goal description"},
				"goal_type":     {Type: domain.ParamEnum, Enum: []string{"habit", "project", "calendar"}, Default: "habit"},
				"frequency":     {Type: domain.ParamString, Default: "daily"},
				"target_value":  {Type: domain.ParamNumber, Description: "Numeric target"},
				"start_date":    {Type: domain.ParamString, Description: "YYYY-MM-DD"},
				"end_date":      {Type: domain.ParamString, Description: "YYYY-MM-DD"},
				"goalReference": {Type: domain.ParamString, Description: "How the user refers to an existing goal"},
				"changes":       {Type: domain.ParamString, Description: "Summary of requested changes"},
				"retitle":       {Type: domain.ParamBool, Description: "Rewrite the title from target_value and unit"},
				"unit":          {Type: domain.ParamString, Description: "Unit of target_value"},
			},
		},
		domain.ToolGetProgress: {
			Name:        domain.ToolGetProgress,
			Description: "Summarize progress across the user's active goals",
			Parameters: map[string]domain.ToolParameter{
				"time_period": {Type: domain.ParamEnum, Enum: []string{"day", "week", "month", "all"}, Default: "week"},
			},
			CacheTTL: 5 * time.Minute,
		},
		domain.ToolUpdatePreferences: {
			Name:        domain.ToolUpdatePreferences,
			Description: "Update coaching preferences",
			Parameters: map[string]domain.ToolParameter{
				"default_persona":      {Type: domain.ParamEnum, Enum: []string{"taskmaster", "cheerleader"}},
				"accountability_level": {Type: domain.ParamEnum, Enum: []string{"minimal", "moderate", "intensive"}},
				"proactive_check_ins":  {Type: domain.ParamBool},
				"quiet_hours_start":    {Type: domain.ParamString, Description: "HH:MM"},
				"quiet_hours_end":      {Type: domain.ParamString, Description: "HH:MM"},
			},
		},
		domain.ToolEnhancedCoaching: {
			Name:        domain.ToolEnhancedCoaching,
			Description: "Produce a depth-matched coaching reply",
			Parameters: map[string]domain.ToolParameter{
				"original_message":         {Type: domain.ParamString, Required: true},
				"domain":                   {Type: domain.ParamEnum, Required: true, Enum: domain.IntentDomains},
				"depth_level":              {Type: domain.ParamEnum, Required: true, Enum: domain.DepthLevels},
				"coaching_type":            {Type: domain.ParamEnum, Required: true, Enum: domain.CoachingTypes},
				"follow_up_context":        {Type: domain.ParamEnum, Enum: domain.FollowUpContexts},
				"specificity_needed":       {Type: domain.ParamEnum, Enum: domain.SpecificityLevels},
				"conversation_progression": {Type: domain.ParamEnum, Enum: domain.ConversationStages},
				"unresolved_needs":         {Type: domain.ParamArray},
			},
		},
		domain.ToolScheduleCheckIn: {
			Name:        domain.ToolScheduleCheckIn,
			Description: "Schedule a future accountability check-in",
			Parameters: map[string]domain.ToolParameter{
				"scheduled_at":  {Type: domain.ParamString, Required: true, Description: "RFC 3339 or YYYY-MM-DD"},
				"reminder_type": {Type: domain.ParamEnum, Enum: []string{"gentle", "firm", "celebration"}, Default: "gentle"},
				"message":       {Type: domain.ParamString, Description: "Custom reminder text"},
				"goal_ids":      {Type: domain.ParamArray, Description: "Goals covered; empty means all active"},
			},
			CacheTTL: time.Hour,
		},
	}
}
