package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
)

const followUpPrompt = `Analyze if this message is a follow-up to previous conversation:

Current Message: %q
Recent Context: %s

Determine:
1. Is this clearly a follow-up to something discussed before?
2. What type of follow-up is it?
3. Does it need deeper discussion?
4. What was the previous topic?

Respond in JSON format:
{
  "isFollowUp": boolean,
  "followUpType": "clarification|deeper_detail|implementation|problem_solving|none",
  "needsDeepDive": boolean,
  "previousTopic": "string or null",
  "reasoning": "Brief explanation"
}

Look for continuity patterns, pronouns referring to previous discussion, and progressive depth.`

// analyzeFollowUp decides whether the message continues a prior topic.
// Failure degrades to "not a follow-up" rather than surfacing an error.
func (c *Classifier) analyzeFollowUp(ctx context.Context, message, conversationContext string) domain.FollowUp {
	if len(strings.TrimSpace(conversationContext)) < 20 {
		return domain.FollowUp{Type: "none", Reasoning: "no conversation context available"}
	}

	prompt := fmt.Sprintf(followUpPrompt, message, tail(conversationContext, 800))

	reply, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("follow-up analysis failed", "error", err)
		return domain.FollowUp{Type: "none", Reasoning: "analysis failed, treating as new conversation"}
	}

	var fu domain.FollowUp
	if err := llm.Decode(reply, &fu); err != nil {
		slog.Warn("follow-up reply unparseable", "error", err)
		return domain.FollowUp{Type: "none", Reasoning: "parse error, treating as new conversation"}
	}
	if fu.Type == "" {
		fu.Type = "none"
	}
	return fu
}
