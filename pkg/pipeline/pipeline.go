// Package pipeline wires classification, coordination, execution, and
// formatting into the end-to-end message flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hustlemode/coach/pkg/coordinator"
	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/format"
	"github.com/hustlemode/coach/pkg/intent"
	"github.com/hustlemode/coach/pkg/llm"
	"github.com/hustlemode/coach/pkg/persona"
	"github.com/hustlemode/coach/pkg/store"
	"github.com/hustlemode/coach/pkg/tools"
)

// Pipeline is the conversational tool-orchestration flow for one deployment.
type Pipeline struct {
	llm         llm.Client
	classifier  *intent.Classifier
	coordinator *coordinator.Coordinator
	executor    *tools.Executor
	prefs       store.PreferenceStore
}

// New assembles the pipeline and registers the closed tool set.
func New(client llm.Client, goals store.GoalStore, prefs store.PreferenceStore, checkins store.CheckInStore, cache *tools.Cache) *Pipeline {
	executor := tools.NewExecutor(cache)
	executor.Register(domain.ToolManageGoal, tools.NewGoalHandler(goals, client))
	executor.Register(domain.ToolGetProgress, tools.NewProgressHandler(goals))
	executor.Register(domain.ToolUpdatePreferences, tools.NewPreferenceHandler(prefs))
	executor.Register(domain.ToolEnhancedCoaching, tools.NewCoachingHandler(client, prefs))
	executor.Register(domain.ToolScheduleCheckIn, tools.NewScheduleHandler(checkins))

	return &Pipeline{
		llm:         client,
		classifier:  intent.NewClassifier(client),
		coordinator: coordinator.New(client),
		executor:    executor,
		prefs:       prefs,
	}
}

// Analysis is the outcome of classifying one message.
type Analysis struct {
	RequiresTools bool                    `json:"requires_tools"`
	Intent        domain.IntentDescriptor `json:"intent"`
	Tools         []domain.ToolInvocation `json:"tools"`
}

// AnalyzeMessageForTools classifies the message and plans its invocations.
// It never fails: classification errors degrade to a conversational analysis
// with zero invocations.
func (p *Pipeline) AnalyzeMessageForTools(ctx context.Context, message, userID string, channel domain.Channel, conversationContext string) Analysis {
	desc := p.classifier.Classify(ctx, message, conversationContext)
	invocations := p.coordinator.Plan(ctx, message, userID, channel, desc)
	return Analysis{
		RequiresTools: len(invocations) > 0,
		Intent:        desc,
		Tools:         invocations,
	}
}

// ExecuteTool runs one invocation.
func (p *Pipeline) ExecuteTool(ctx context.Context, inv domain.ToolInvocation) domain.ToolResult {
	return p.executor.Execute(ctx, inv)
}

// ExecuteAll runs the invocations concurrently; one failure never blocks the
// rest.
func (p *Pipeline) ExecuteAll(ctx context.Context, invs []domain.ToolInvocation) []domain.ToolResult {
	return p.executor.ExecuteAll(ctx, invs)
}

// FormatResponse renders results into the user's persona voice for the
// channel.
func (p *Pipeline) FormatResponse(ctx context.Context, candidate string, results []domain.ToolResult, userID string, channel domain.Channel) format.Response {
	return format.Format(candidate, results, p.personaFor(ctx, userID), channel)
}

// Respond runs the whole flow for one inbound message.
func (p *Pipeline) Respond(ctx context.Context, message, userID string, channel domain.Channel, conversationContext string) format.Response {
	voice := p.personaFor(ctx, userID)

	if reply, ok := format.QuickReply(message); ok {
		return format.Format(reply, nil, voice, channel)
	}

	analysis := p.AnalyzeMessageForTools(ctx, message, userID, channel, conversationContext)
	slog.Debug("message analyzed",
		"user", userID,
		"requires_tools", analysis.RequiresTools,
		"invocations", len(analysis.Tools),
	)

	var results []domain.ToolResult
	candidate := ""
	if analysis.RequiresTools {
		results = p.ExecuteAll(ctx, analysis.Tools)
	} else {
		candidate = p.chat(ctx, message, voice)
	}
	return format.Format(candidate, results, voice, channel)
}

const chatPrompt = `%s

The user said: %q

Reply in character in at most %d words.`

// chat produces the plain conversational reply for messages that need no
// tools. An empty return hands formatting over to the persona fallback.
func (p *Pipeline) chat(ctx context.Context, message string, voice *persona.Persona) string {
	reply, err := p.llm.Complete(ctx, fmt.Sprintf(chatPrompt, voice.SystemPrompt, message, voice.MaxWords))
	if err != nil {
		slog.Warn("chat reply failed", "error", err)
		return ""
	}
	return reply
}

func (p *Pipeline) personaFor(ctx context.Context, userID string) *persona.Persona {
	prefs, err := p.prefs.GetPreferences(ctx, userID)
	if err != nil {
		slog.Warn("loading preferences failed", "user", userID, "error", err)
		return persona.Get(persona.Taskmaster)
	}
	return persona.Get(prefs.DefaultPersona)
}
