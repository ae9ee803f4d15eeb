package domain

// Channel is the messaging surface a conversation arrives on. It determines
// the outbound word budget and rendering richness.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelIMessage Channel = "imessage"
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
	ChannelAPI      Channel = "api"
)

// WordBudget returns the maximum words an outbound reply on this channel may
// carry. Unknown channels get the most conservative budget.
func (c Channel) WordBudget() int {
	switch c {
	case ChannelEmail:
		return 60
	case ChannelAPI:
		return 100
	case ChannelTelegram:
		return 20
	default:
		return 12
	}
}

// ToolName identifies one of the closed set of tools.
type ToolName string

const (
	ToolManageGoal        ToolName = "manage_goal"
	ToolGetProgress       ToolName = "get_progress"
	ToolUpdatePreferences ToolName = "update_preferences"
	ToolEnhancedCoaching  ToolName = "enhanced_coaching"
	ToolScheduleCheckIn   ToolName = "schedule_checkin"
)

// GoalAction is the sub-operation carried by a manage_goal invocation.
type GoalAction string

const (
	ActionCreate            GoalAction = "create"
	ActionUpdate            GoalAction = "update"
	ActionList              GoalAction = "list"
	ActionGet               GoalAction = "get"
	ActionDelete            GoalAction = "delete"
	ActionComplete          GoalAction = "complete"
	ActionAnalyzeConflicts  GoalAction = "analyze_conflicts"
	ActionSuggestAmendments GoalAction = "suggest_amendments"
)
