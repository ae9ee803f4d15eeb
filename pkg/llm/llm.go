// Package llm is the boundary to the semantic text-understanding service.
// Components build prompts, call Complete, and parse the free-text reply
// through Decode. Nothing outside this package touches raw model output.
package llm

import "context"

// Client sends one prompt to the semantic service and returns its free-text
// reply. Implementations must honor context cancellation and apply a bounded
// timeout; a timeout surfaces as an error, never a hang.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts a function to the Client interface. Used by tests to
// script deterministic replies.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
