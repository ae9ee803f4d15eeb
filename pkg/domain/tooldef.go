package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownTool reports an invocation naming a tool outside the closed set.
var ErrUnknownTool = errors.New("unknown tool")

// ParamType describes the expected shape of one tool parameter.
type ParamType string

const (
	ParamString ParamType = "string"
	ParamNumber ParamType = "number"
	ParamBool   ParamType = "boolean"
	ParamEnum   ParamType = "enum"
	ParamArray  ParamType = "array"
	ParamObject ParamType = "object"
)

// ToolParameter declares one parameter of a tool's schema.
type ToolParameter struct {
	Type        ParamType
	Description string
	Required    bool
	Enum        []string
	Default     any
}

// ToolDefinition declares a tool's schema and caching policy. CacheTTL of
// zero means results are never cached.
type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]ToolParameter
	CacheTTL    time.Duration
}

// ValidationError names the first parameter that failed schema validation.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Param, e.Reason)
}

// Validate checks an invocation's parameters against the schema: required
// presence and enum membership. Parameters are checked in name order so the
// first violation reported is stable.
func (d ToolDefinition) Validate(params map[string]any) error {
	names := make([]string, 0, len(d.Parameters))
	for name := range d.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := d.Parameters[name]
		v, ok := params[name]
		if p.Required && (!ok || v == nil) {
			return &ValidationError{Param: name, Reason: "missing required parameter"}
		}
		if !ok || v == nil {
			continue
		}
		if p.Type == ParamEnum {
			s, isStr := v.(string)
			if !isStr || !contains(p.Enum, s) {
				return &ValidationError{Param: name, Reason: fmt.Sprintf("must be one of %v", p.Enum)}
			}
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
