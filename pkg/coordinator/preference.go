package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hustlemode/coach/pkg/llm"
	"github.com/hustlemode/coach/pkg/persona"
)

const personaSwitchPrompt = `Analyze if this message is requesting a personality/coaching style change:

Message: %q

Available personalities:
- "taskmaster": tough, no-nonsense, demanding accountability
- "cheerleader": encouraging, positive, supportive

Respond in JSON format:
{
  "wantsPersonalitySwitch": boolean,
  "targetPersonality": "taskmaster|cheerleader|null",
  "confidence": number_0_to_100,
  "reasoning": "Brief explanation"
}

Only report a switch when the user clearly asks for a different coaching style.`

type rawSwitch struct {
	WantsPersonalitySwitch bool    `json:"wantsPersonalitySwitch"`
	TargetPersonality      string  `json:"targetPersonality"`
	Confidence             float64 `json:"confidence"`
	Reasoning              string  `json:"reasoning"`
}

// classifyPreferenceSwitch returns update_preferences parameters when the
// message clearly asks for a different coaching voice. Anything below the
// confidence floor, or any failure, yields nil and plans no invocation.
func (c *Coordinator) classifyPreferenceSwitch(ctx context.Context, message string) map[string]any {
	reply, err := c.llm.Complete(ctx, fmt.Sprintf(personaSwitchPrompt, message))
	if err != nil {
		slog.Warn("persona switch classification failed", "error", err)
		return nil
	}

	var raw rawSwitch
	if err := llm.Decode(reply, &raw); err != nil {
		slog.Warn("persona switch reply unparseable", "error", err)
		return nil
	}

	if !raw.WantsPersonalitySwitch || raw.Confidence < 70 {
		return nil
	}
	switch raw.TargetPersonality {
	case persona.Taskmaster, persona.Cheerleader:
		return map[string]any{"default_persona": raw.TargetPersonality}
	}
	return nil
}
