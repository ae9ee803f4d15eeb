package domain

import (
	"strings"
	"testing"
)

func testDefinition() ToolDefinition {
	return ToolDefinition{
		Name: ToolManageGoal,
		Parameters: map[string]ToolParameter{
			"zone":   {Type: ParamString, Required: true},
			"action": {Type: ParamEnum, Required: true, Enum: []string{"create", "list"}},
			"title":  {Type: ParamString},
		},
	}
}

func TestValidateAcceptsCompleteParams(t *testing.T) {
	def := testDefinition()
	if err := def.Validate(map[string]any{"action": "create", "zone": "a"}); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejectsEnumViolation(t *testing.T) {
	def := testDefinition()
	err := def.Validate(map[string]any{"action": "explode", "zone": "a"})
	if err == nil || !strings.Contains(err.Error(), "action") {
		t.Fatalf("err = %v, want enum violation on action", err)
	}
}

func TestValidateFirstViolationIsStable(t *testing.T) {
	def := testDefinition()

	// Both required parameters missing: the violation reported must be the
	// same every run, not whichever the map yields first.
	want := def.Validate(map[string]any{}).Error()
	for range 20 {
		if got := def.Validate(map[string]any{}).Error(); got != want {
			t.Fatalf("violation order unstable: %q vs %q", got, want)
		}
	}
	if !strings.Contains(want, "action") {
		t.Errorf("first violation = %q, want the alphabetically first parameter", want)
	}
}
