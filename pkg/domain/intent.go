package domain

// IntentDescriptor is the multi-dimensional classification of one message. It
// is ephemeral; the coordinator turns it into tool invocations.
type IntentDescriptor struct {
	RequiresGoalManagement      bool `json:"requiresGoalManagement"`
	RequiresConflictAnalysis    bool `json:"requiresConflictAnalysis"`
	RequiresAmendmentSuggestion bool `json:"requiresAmendmentSuggestion"`
	RequiresProgressInquiry     bool `json:"requiresProgressInquiry"`
	RequiresPreferenceChange    bool `json:"requiresPreferenceChange"`

	Domain          string `json:"domain"`
	DepthLevel      string `json:"depth_level"`
	CoachingType    string `json:"coaching_type"`
	FollowUpContext string `json:"follow_up_context"`

	SpecificityNeeded       string   `json:"specificity_needed"`
	ConversationProgression string   `json:"conversation_progression"`
	UnresolvedNeeds         []string `json:"unresolved_needs"`

	GoalAction GoalAction `json:"goalAction,omitempty"`
	Reasoning  string     `json:"reasoning"`
}

// Intent dimension values. Unrecognized classifier output is coerced to the
// first (safest) value of each set.
var (
	IntentDomains = []string{"fitness", "learning", "productivity", "financial", "creative", "health", "general"}

	DepthLevels = []string{"surface", "detailed", "implementation", "strategic", "expert"}

	CoachingTypes = []string{"informational", "motivational", "tactical", "strategic", "troubleshooting"}

	FollowUpContexts = []string{"initial", "clarification", "deeper_detail", "implementation", "problem_solving"}

	SpecificityLevels = []string{"high", "medium", "low"}

	ConversationStages = []string{"start", "continue", "deep_dive", "switching_topics", "wrapping_up"}
)

// Conversational reports whether the descriptor asks for nothing: every
// requirement flag false, surface depth, informational coaching, no
// unresolved needs. Such a message produces zero tool invocations.
func (d IntentDescriptor) Conversational() bool {
	return !d.RequiresGoalManagement &&
		!d.RequiresConflictAnalysis &&
		!d.RequiresAmendmentSuggestion &&
		!d.RequiresProgressInquiry &&
		!d.RequiresPreferenceChange &&
		d.DepthLevel == "surface" &&
		d.CoachingType == "informational" &&
		len(d.UnresolvedNeeds) == 0
}

// DefaultIntent is the safe descriptor used when classification fails or the
// reply cannot be parsed: all-false, surface, informational.
func DefaultIntent(reason string) IntentDescriptor {
	if reason == "" {
		reason = "default analysis"
	}
	return IntentDescriptor{
		Domain:                  "general",
		DepthLevel:              "surface",
		CoachingType:            "informational",
		FollowUpContext:         "initial",
		SpecificityNeeded:       "medium",
		ConversationProgression: "start",
		Reasoning:               reason,
	}
}

// FollowUp is the secondary classification comparing the current message to
// prior context.
type FollowUp struct {
	IsFollowUp    bool   `json:"isFollowUp"`
	Type          string `json:"followUpType"` // clarification, deeper_detail, implementation, problem_solving, none
	NeedsDeepDive bool   `json:"needsDeepDive"`
	PreviousTopic string `json:"previousTopic,omitempty"`
	Reasoning     string `json:"reasoning"`
}
