package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseable reports a reply that did not contain a decodable payload.
var ErrUnparseable = errors.New("unparseable model reply")

// Decode extracts the structured payload from a model reply. Models often
// wrap JSON in markdown code fences; those are stripped before decoding.
func Decode(raw string, v any) error {
	cleaned := StripFences(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty reply", ErrUnparseable)
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return nil
}

// StripFences removes wrapping markdown code fences from a reply.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
