package domain

import "time"

// Goal is a user-owned tracked objective. Status transitions happen only
// through explicit tool calls; nothing here infers them.
type Goal struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	GoalType           GoalType   `json:"goal_type"`
	Frequency          string     `json:"frequency,omitempty"`
	TargetValue        float64    `json:"target_value,omitempty"`
	CurrentValue       float64    `json:"current_value"`
	Status             GoalStatus `json:"status"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	ProgressPercentage float64    `json:"progress_percentage"`
	DaysActive         int        `json:"days_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// GoalType categorizes how a goal is tracked.
type GoalType string

const (
	GoalTypeHabit    GoalType = "habit"
	GoalTypeProject  GoalType = "project"
	GoalTypeCalendar GoalType = "calendar"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Preferences holds a user's coaching preferences.
type Preferences struct {
	UserID              string    `json:"user_id"`
	DefaultPersona      string    `json:"default_persona,omitempty"`
	AccountabilityLevel string    `json:"accountability_level,omitempty"` // minimal, moderate, intensive
	ProactiveCheckIns   bool      `json:"proactive_check_ins"`
	QuietHoursStart     string    `json:"quiet_hours_start,omitempty"` // HH:MM
	QuietHoursEnd       string    `json:"quiet_hours_end,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CheckIn is a scheduled accountability check-in.
type CheckIn struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	GoalIDs      []string  `json:"goal_ids,omitempty"` // empty = all active goals
	ScheduledAt  time.Time `json:"scheduled_at"`
	ReminderType string    `json:"reminder_type"` // gentle, firm, celebration
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToolInvocation is one structured request against the goal domain. It lives
// only for the duration of a single message's processing.
type ToolInvocation struct {
	Tool       ToolName       `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
	UserID     string         `json:"user_id"`
	Channel    Channel        `json:"channel"`
}

// ToolResult is the always-present outcome of one invocation.
type ToolResult struct {
	Tool     ToolName      `json:"tool_name"`
	Success  bool          `json:"success"`
	Data     any           `json:"data,omitempty"`
	Error    string        `json:"error,omitempty"`
	Cached   bool          `json:"cached,omitempty"`
	Duration time.Duration `json:"duration_ms"`
	Channel  Channel       `json:"channel"`
}

// ConflictFinding is one detected incompatibility between two goals.
type ConflictFinding struct {
	Type           ConflictType `json:"type"`
	Severity       Severity     `json:"severity"`
	Description    string       `json:"description"`
	Conversational string       `json:"conversational"`
}

// ConflictType tags the axis on which two goals clash.
type ConflictType string

const (
	ConflictDuplicateActivity     ConflictType = "duplicate_activity"
	ConflictTimeOverload          ConflictType = "time_overload"
	ConflictResourceContradiction ConflictType = "resource_contradiction"
	ConflictLifestyle             ConflictType = "lifestyle_contradiction"
)

// Severity grades a conflict finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ConflictRecord pairs two goals with the findings between them.
type ConflictRecord struct {
	Goal1    Goal              `json:"goal1"`
	Goal2    Goal              `json:"goal2"`
	Findings []ConflictFinding `json:"findings"`
}

// AmendmentSuggestion is one remediation for a conflicted goal.
type AmendmentSuggestion struct {
	Type        AmendmentType `json:"type"`
	Description string        `json:"description"`
	Reasoning   string        `json:"reasoning"`
}

// AmendmentType names the remediation strategy.
type AmendmentType string

const (
	AmendConsolidation        AmendmentType = "goal_consolidation"
	AmendScopeReduction       AmendmentType = "scope_reduction"
	AmendFrequencyAdjustment  AmendmentType = "frequency_adjustment"
	AmendResourceOptimization AmendmentType = "resource_optimization"
)

// GoalAmendments reports the suggestions for one goal. Goals with zero
// conflicts still get an entry (Optimized=true, empty Suggestions) so callers
// can tell "analyzed, clean" from "not analyzed".
type GoalAmendments struct {
	Goal        Goal                  `json:"goal"`
	Conflicts   []ConflictFinding     `json:"conflicts,omitempty"`
	Suggestions []AmendmentSuggestion `json:"suggestions"`
	Optimized   bool                  `json:"optimized"`
}
