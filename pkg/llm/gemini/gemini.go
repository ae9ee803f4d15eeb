// Package gemini implements llm.Client using the Google Gen AI SDK.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hustlemode/coach/pkg/llm"
)

// Client calls Gemini for prompt completions.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Verify interface compliance.
var _ llm.Client = (*Client)(nil)

// New creates a Gemini-backed client. modelName selects which model serves
// completions (e.g. "gemini-2.0-flash"). timeout bounds each call.
func New(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{client: c, model: modelName, timeout: timeout}, nil
}

// Complete sends one prompt and returns the concatenated text reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Debug("gemini.Complete", "model", c.model, "promptBytes", len(prompt))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return sb.String(), nil
}
