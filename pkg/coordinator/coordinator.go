// Package coordinator maps an intent descriptor into an ordered list of tool
// invocations, extracting structured parameters from free text as needed.
package coordinator

import (
	"context"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
)

// Coordinator plans tool invocations for one message.
type Coordinator struct {
	llm       llm.Client
	extractor *ParameterExtractor
}

// New creates a Coordinator backed by the given semantic client.
func New(client llm.Client) *Coordinator {
	return &Coordinator{
		llm:       client,
		extractor: NewParameterExtractor(client),
	}
}

// Plan returns the invocations for a message, in priority order. A purely
// conversational descriptor yields an empty list.
func (c *Coordinator) Plan(ctx context.Context, message, userID string, channel domain.Channel, desc domain.IntentDescriptor) []domain.ToolInvocation {
	var invocations []domain.ToolInvocation

	add := func(tool domain.ToolName, params map[string]any) {
		invocations = append(invocations, domain.ToolInvocation{
			Tool:       tool,
			Parameters: params,
			UserID:     userID,
			Channel:    channel,
		})
	}

	if desc.RequiresGoalManagement {
		add(domain.ToolManageGoal, c.planGoalParams(ctx, message, desc))
	}

	if desc.RequiresConflictAnalysis {
		add(domain.ToolManageGoal, map[string]any{"action": string(domain.ActionAnalyzeConflicts)})
	}

	if desc.RequiresAmendmentSuggestion {
		add(domain.ToolManageGoal, map[string]any{"action": string(domain.ActionSuggestAmendments)})
	}

	if desc.RequiresProgressInquiry {
		add(domain.ToolGetProgress, map[string]any{"time_period": "week"})
	}

	if desc.RequiresPreferenceChange {
		if params := c.classifyPreferenceSwitch(ctx, message); params != nil {
			add(domain.ToolUpdatePreferences, params)
		}
	}

	if needsEnhancedCoaching(desc) {
		add(domain.ToolEnhancedCoaching, map[string]any{
			"original_message":         message,
			"domain":                   desc.Domain,
			"depth_level":              desc.DepthLevel,
			"coaching_type":            desc.CoachingType,
			"follow_up_context":        desc.FollowUpContext,
			"specificity_needed":       desc.SpecificityNeeded,
			"conversation_progression": desc.ConversationProgression,
			"unresolved_needs":         desc.UnresolvedNeeds,
		})
	}

	return invocations
}

// planGoalParams extracts action parameters, downgrading create/update to
// list when the message names neither a title nor an existing goal. An
// empty-title mutation must never reach the executor.
func (c *Coordinator) planGoalParams(ctx context.Context, message string, desc domain.IntentDescriptor) map[string]any {
	action := desc.GoalAction
	if action == "" {
		action = domain.ActionList
	}

	switch action {
	case domain.ActionCreate, domain.ActionUpdate:
		params := c.extractor.Extract(ctx, message, action, desc)
		title, _ := params["title"].(string)
		ref, _ := params["goalReference"].(string)
		if title == "" && ref == "" {
			return map[string]any{"action": string(domain.ActionList)}
		}
		params["action"] = string(action)
		return params
	case domain.ActionList, domain.ActionGet, domain.ActionDelete, domain.ActionComplete:
		params := map[string]any{"action": string(action)}
		if action != domain.ActionList {
			extracted := c.extractor.Extract(ctx, message, action, desc)
			if ref, ok := extracted["goalReference"].(string); ok && ref != "" {
				params["goalReference"] = ref
			}
		}
		return params
	default:
		return map[string]any{"action": string(action)}
	}
}

// needsEnhancedCoaching reports whether the message asks for more than a
// surface/informational reply.
func needsEnhancedCoaching(desc domain.IntentDescriptor) bool {
	return desc.DepthLevel != "surface" ||
		desc.CoachingType != "informational" ||
		len(desc.UnresolvedNeeds) > 0
}
