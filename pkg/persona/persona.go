// Package persona defines the fixed voice profiles applied to all outbound
// text. Every persona must be lexically and tonally distinguishable on every
// turn.
package persona

import (
	"hash/fnv"
	"strings"
)

// Persona is one voice/tone profile.
type Persona struct {
	Name         string
	SystemPrompt string
	MaxWords     int
	Temperature  float64
	Emoji        string
	fallbacks    []string
}

const (
	// Taskmaster is the strict accountability voice.
	Taskmaster = "taskmaster"
	// Cheerleader is the encouraging support voice.
	Cheerleader = "cheerleader"
)

var personas = map[string]*Persona{
	Taskmaster: {
		Name: "HustleMode Accountability Coach",
		SystemPrompt: `You are HustleMode, a direct accountability coach. Be direct and
action-oriented. Use motivational but professional language. Keep responses
short, include at most two emojis, and never force motivation onto casual
conversation. Only mention goals when the user brings them up.`,
		MaxWords:    12,
		Temperature: 0.7,
		Emoji:       "💪",
		fallbacks: []string{
			"Stop talking. Start doing. Now! 💪",
			"Excuses are the enemy. Take action! 🔥",
			"Push harder. You got this! ⚡",
			"Less thinking. More grinding! 💯",
			"Discipline beats motivation. Go! 🚀",
		},
	},
	Cheerleader: {
		Name: "HustleMode Cheerleader",
		SystemPrompt: `You are HustleMode, a supportive cheerleader coach. Celebrate progress,
be encouraging and positive, and keep accountability gentle. Keep responses
short, include at most two emojis, and have normal human conversations for
casual chat. Only mention goals when the user brings them up.`,
		MaxWords:    12,
		Temperature: 0.7,
		Emoji:       "✨",
		fallbacks: []string{
			"You're amazing! Keep pushing forward! ✨",
			"Believe in yourself! You got this! 🌟",
			"Every step counts! Stay positive! 💖",
			"Progress over perfection! Keep going! 🎯",
			"You are stronger than you know! 💪",
		},
	},
}

// Get returns the named persona, defaulting to taskmaster for unknown names.
func Get(name string) *Persona {
	if p, ok := personas[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return personas[Taskmaster]
}

// Names lists the available persona identifiers.
func Names() []string {
	return []string{Taskmaster, Cheerleader}
}

// Fallback returns a generic in-voice line. The seed makes selection
// deterministic per message while still rotating across messages.
func (p *Persona) Fallback(seed string) string {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return p.fallbacks[int(h.Sum32())%len(p.fallbacks)]
}

// Flair appends the persona's emoji when the text doesn't already carry it.
func (p *Persona) Flair(text string) string {
	if strings.Contains(text, p.Emoji) {
		return text
	}
	return text + " " + p.Emoji
}
