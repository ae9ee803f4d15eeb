package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
)

func scriptedClient(t *testing.T, replies map[string]string) llm.Client {
	t.Helper()
	return llm.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		for needle, reply := range replies {
			if strings.Contains(prompt, needle) {
				return reply, nil
			}
		}
		return "", errors.New("unscripted prompt")
	})
}

func TestClassifyParsesFullDescriptor(t *testing.T) {
	c := NewClassifier(scriptedClient(t, map[string]string{
		"coaching intent": "```json\n" + `{
			"requiresGoalManagement": true,
			"requiresProgressInquiry": true,
			"domain": "fitness",
			"depth_level": "detailed",
			"coaching_type": "tactical",
			"follow_up_context": "initial",
			"specificity_needed": "high",
			"conversation_progression": "start",
			"unresolved_needs": ["pace guidance"],
			"goalAction": "create",
			"reasoning": "wants a new running goal"
		}` + "\n```",
	}))

	desc := c.Classify(context.Background(), "I want to start running 5k", "")
	if !desc.RequiresGoalManagement || !desc.RequiresProgressInquiry {
		t.Errorf("flags lost: %+v", desc)
	}
	if desc.Domain != "fitness" || desc.DepthLevel != "detailed" {
		t.Errorf("dimensions lost: %+v", desc)
	}
	if desc.GoalAction != domain.ActionCreate {
		t.Errorf("goalAction = %q", desc.GoalAction)
	}
}

func TestClassifyFailureReturnsDefault(t *testing.T) {
	failing := llm.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model unavailable")
	})
	c := NewClassifier(failing)

	desc := c.Classify(context.Background(), "help me plan my goals", "")
	if !desc.Conversational() {
		t.Errorf("failed classification must degrade to conversational: %+v", desc)
	}
}

func TestClassifyUnparseableReplyReturnsDefault(t *testing.T) {
	c := NewClassifier(scriptedClient(t, map[string]string{
		"coaching intent": "Sure! Here's my take on your message...",
	}))

	desc := c.Classify(context.Background(), "help me plan my goals", "")
	if !desc.Conversational() {
		t.Errorf("unparseable reply must degrade to conversational: %+v", desc)
	}
}

func TestClassifyCoercesUnknownEnums(t *testing.T) {
	c := NewClassifier(scriptedClient(t, map[string]string{
		"coaching intent": `{
			"domain": "astrology",
			"depth_level": "cosmic",
			"coaching_type": "mystical",
			"goalAction": "transmute",
			"reasoning": "made-up values"
		}`,
	}))

	desc := c.Classify(context.Background(), "what do the stars say", "")
	if desc.Domain != "general" || desc.DepthLevel != "surface" || desc.CoachingType != "informational" {
		t.Errorf("enums not coerced: %+v", desc)
	}
	if desc.GoalAction != "" {
		t.Errorf("goalAction = %q, want empty", desc.GoalAction)
	}
}

func TestClassifyFollowUpEscalatesDepth(t *testing.T) {
	c := NewClassifier(scriptedClient(t, map[string]string{
		"coaching intent": `{
			"domain": "fitness",
			"depth_level": "surface",
			"coaching_type": "motivational",
			"reasoning": "short question"
		}`,
		"follow-up": `{
			"isFollowUp": true,
			"followUpType": "implementation",
			"needsDeepDive": true,
			"previousTopic": "interval training",
			"reasoning": "asks how exactly"
		}`,
	}))

	history := strings.Repeat("User: how do I get faster?\nCoach: intervals.\n", 3)
	desc := c.Classify(context.Background(), "ok but how exactly?", history)
	if desc.DepthLevel != "implementation" || desc.CoachingType != "tactical" {
		t.Errorf("deep dive not escalated: %+v", desc)
	}
	if desc.FollowUpContext != "implementation" {
		t.Errorf("follow_up_context = %q", desc.FollowUpContext)
	}
}

func TestAnalyzeFollowUpShortContext(t *testing.T) {
	c := NewClassifier(scriptedClient(t, nil))

	fu := c.analyzeFollowUp(context.Background(), "and then?", "hi")
	if fu.Type != "none" || fu.IsFollowUp {
		t.Errorf("short context must not count as follow-up: %+v", fu)
	}
}
