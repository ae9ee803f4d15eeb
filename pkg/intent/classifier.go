// Package intent classifies a user message into a multi-dimensional intent
// descriptor. Classification is delegated to the semantic service; every
// failure path degrades to safe defaults and never propagates.
package intent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
)

// Classifier turns a message (plus optional recent context) into an
// IntentDescriptor.
type Classifier struct {
	llm llm.Client
}

// NewClassifier creates a Classifier backed by the given semantic client.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{llm: client}
}

const intentPrompt = `Analyze this user message for coaching intent and requirements:

Message: %q
%s
Determine the following dimensions and respond in JSON format:

{
  "requiresGoalManagement": boolean,
  "requiresConflictAnalysis": boolean,
  "requiresAmendmentSuggestion": boolean,
  "requiresProgressInquiry": boolean,
  "requiresPreferenceChange": boolean,
  "domain": "fitness|learning|productivity|financial|creative|health|general",
  "depth_level": "surface|detailed|implementation|strategic|expert",
  "coaching_type": "informational|motivational|tactical|strategic|troubleshooting",
  "follow_up_context": "initial|clarification|deeper_detail|implementation|problem_solving",
  "specificity_needed": "high|medium|low",
  "conversation_progression": "start|continue|deep_dive|switching_topics|wrapping_up",
  "unresolved_needs": ["string array of identified needs"],
  "goalAction": "create|update|list|get|delete|complete|none",
  "reasoning": "Brief explanation of analysis"
}

Focus on semantic understanding of intent, not keyword matching.`

// Classify analyzes the message. It always returns a usable descriptor; on
// classifier-call failure or an unparseable reply it returns the all-false
// surface/informational default.
func (c *Classifier) Classify(ctx context.Context, message, conversationContext string) domain.IntentDescriptor {
	contextLine := ""
	if conversationContext != "" {
		contextLine = fmt.Sprintf("Context: %s\n", tail(conversationContext, 500))
	}
	prompt := fmt.Sprintf(intentPrompt, message, contextLine)

	reply, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("intent classification failed", "error", err)
		return domain.DefaultIntent("classifier call failed")
	}

	desc, err := parseIntent(reply)
	if err != nil {
		slog.Warn("intent reply unparseable", "error", err)
		return domain.DefaultIntent("classifier reply unparseable")
	}

	// A continuing conversation that needs a deep dive escalates depth and
	// coaching style in the primary descriptor.
	if conversationContext != "" {
		fu := c.analyzeFollowUp(ctx, message, conversationContext)
		if fu.NeedsDeepDive {
			desc.DepthLevel = "implementation"
			desc.CoachingType = "tactical"
		}
		if fu.IsFollowUp && fu.Type != "none" {
			desc.FollowUpContext = coerce(fu.Type, domain.FollowUpContexts, desc.FollowUpContext)
		}
	}

	return desc
}

type rawIntent struct {
	RequiresGoalManagement      bool     `json:"requiresGoalManagement"`
	RequiresConflictAnalysis    bool     `json:"requiresConflictAnalysis"`
	RequiresAmendmentSuggestion bool     `json:"requiresAmendmentSuggestion"`
	RequiresProgressInquiry     bool     `json:"requiresProgressInquiry"`
	RequiresPreferenceChange    bool     `json:"requiresPreferenceChange"`
	Domain                      string   `json:"domain"`
	DepthLevel                  string   `json:"depth_level"`
	CoachingType                string   `json:"coaching_type"`
	FollowUpContext             string   `json:"follow_up_context"`
	SpecificityNeeded           string   `json:"specificity_needed"`
	ConversationProgression     string   `json:"conversation_progression"`
	UnresolvedNeeds             []string `json:"unresolved_needs"`
	GoalAction                  string   `json:"goalAction"`
	Reasoning                   string   `json:"reasoning"`
}

func parseIntent(reply string) (domain.IntentDescriptor, error) {
	var raw rawIntent
	if err := llm.Decode(reply, &raw); err != nil {
		return domain.IntentDescriptor{}, err
	}

	desc := domain.IntentDescriptor{
		RequiresGoalManagement:      raw.RequiresGoalManagement,
		RequiresConflictAnalysis:    raw.RequiresConflictAnalysis,
		RequiresAmendmentSuggestion: raw.RequiresAmendmentSuggestion,
		RequiresProgressInquiry:     raw.RequiresProgressInquiry,
		RequiresPreferenceChange:    raw.RequiresPreferenceChange,
		Domain:                      coerce(raw.Domain, domain.IntentDomains, "general"),
		DepthLevel:                  coerce(raw.DepthLevel, domain.DepthLevels, "surface"),
		CoachingType:                coerce(raw.CoachingType, domain.CoachingTypes, "informational"),
		FollowUpContext:             coerce(raw.FollowUpContext, domain.FollowUpContexts, "initial"),
		SpecificityNeeded:           coerce(raw.SpecificityNeeded, domain.SpecificityLevels, "medium"),
		ConversationProgression:     coerce(raw.ConversationProgression, domain.ConversationStages, "start"),
		UnresolvedNeeds:             raw.UnresolvedNeeds,
		GoalAction:                  coerceAction(raw.GoalAction),
		Reasoning:                   raw.Reasoning,
	}
	if desc.Reasoning == "" {
		desc.Reasoning = "intent analysis completed"
	}
	return desc, nil
}

// coerce maps unrecognized enum values to a safe default.
func coerce(v string, allowed []string, def string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

func coerceAction(v string) domain.GoalAction {
	switch domain.GoalAction(v) {
	case domain.ActionCreate, domain.ActionUpdate, domain.ActionList, domain.ActionGet,
		domain.ActionDelete, domain.ActionComplete,
		domain.ActionAnalyzeConflicts, domain.ActionSuggestAmendments:
		return domain.GoalAction(v)
	}
	return ""
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
