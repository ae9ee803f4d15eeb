package conflict

import (
	"context"
	"errors"
	"reflect"
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

func goal(id, title, frequency string) domain.Goal {
	return domain.Goal{ID: id, UserID: "user-1", Title: title, Frequency: frequency, Status: domain.GoalStatusActive}
}

// "no conflict" baseline answers for every category.
func cleanReplies() map[string]string {
	return map[string]string{
		"duplicate/overlapping activities": `{"isDuplicate":false,"overlapPercentage":10}`,
		"daily time commitment in minutes": `{"goal1Minutes":20,"goal2Minutes":20}`,
		"limited resource":                 `{"conflict":false}`,
		"opposite directions":              `{"conflict":false}`,
	}
}

func TestAnalyzeDetectsDuplicateActivity(t *testing.T) {
	replies := cleanReplies()
	replies["duplicate/overlapping activities"] = `{"isDuplicate":true,"overlapPercentage":85,"reasoning":"both are daily running"}`

	a := NewAnalyzer(scriptedClient(t, replies))
	goals := []domain.Goal{
		goal("g1", "Run 5k daily", "daily"),
		goal("g2", "Run 3 miles every morning", "daily"),
	}

	report := a.Analyze(context.Background(), goals)
	if report.PairsAnalyzed != 1 {
		t.Fatalf("pairs = %d, want 1", report.PairsAnalyzed)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(report.Conflicts))
	}
	f := report.Conflicts[0].Findings[0]
	if f.Type != domain.ConflictDuplicateActivity || f.Severity != domain.SeverityHigh {
		t.Errorf("finding = %+v", f)
	}
	if report.Summary[domain.ConflictDuplicateActivity] != 1 {
		t.Errorf("summary = %v", report.Summary)
	}
}

func TestAnalyzeBelowOverlapThresholdIsClean(t *testing.T) {
	replies := cleanReplies()
	replies["duplicate/overlapping activities"] = `{"isDuplicate":true,"overlapPercentage":60}`

	a := NewAnalyzer(scriptedClient(t, replies))
	report := a.Analyze(context.Background(), []domain.Goal{
		goal("g1", "Run 5k daily", "daily"),
		goal("g2", "Walk the dog", "daily"),
	})
	if len(report.Conflicts) != 0 {
		t.Fatalf("expected no conflicts at 60%% overlap, got %+v", report.Conflicts)
	}
}

func TestAnalyzeDetectsTimeOverload(t *testing.T) {
	replies := cleanReplies()
	replies["daily time commitment in minutes"] = `{"goal1Minutes":180,"goal2Minutes":120}`

	a := NewAnalyzer(scriptedClient(t, replies))
	report := a.Analyze(context.Background(), []domain.Goal{
		goal("g1", "Study 3 hours nightly", "daily"),
		goal("g2", "Workout 2 hours nightly", "daily"),
	})
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(report.Conflicts))
	}
	f := report.Conflicts[0].Findings[0]
	if f.Type != domain.ConflictTimeOverload || f.Severity != domain.SeverityMedium {
		t.Errorf("finding = %+v", f)
	}
	if !strings.Contains(f.Description, "5.0 hours") {
		t.Errorf("description should quantify total hours: %q", f.Description)
	}
}

func TestAnalyzeFrequencyMultiplier(t *testing.T) {
	// 40 + 40 minutes is under the limit at daily frequency, but three
	// sessions a day on each goal pushes the pair to 240 minutes.
	replies := cleanReplies()
	replies["daily time commitment in minutes"] = `{"goal1Minutes":40,"goal2Minutes":40}`

	a := NewAnalyzer(scriptedClient(t, replies))
	report := a.Analyze(context.Background(), []domain.Goal{
		goal("g1", "Meditate", "3 times daily"),
		goal("g2", "Stretch", "three times daily"),
	})
	if report.Summary[domain.ConflictTimeOverload] != 1 {
		t.Fatalf("expected a time overload, got %v", report.Summary)
	}
}

func TestAnalyzeIdempotentOnUnchangedGoals(t *testing.T) {
	replies := cleanReplies()
	replies["duplicate/overlapping activities"] = `{"isDuplicate":true,"overlapPercentage":85,"reasoning":"both are daily running"}`
	replies["daily time commitment in minutes"] = `{"goal1Minutes":150,"goal2Minutes":90}`

	a := NewAnalyzer(scriptedClient(t, replies))
	goals := []domain.Goal{
		goal("g1", "Run 5k daily", "daily"),
		goal("g2", "Run 3 miles every morning", "daily"),
		goal("g3", "Read 20 pages", "daily"),
	}

	first := a.Analyze(context.Background(), goals)
	second := a.Analyze(context.Background(), goals)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same goal set produced different reports:\n%+v\n%+v", first, second)
	}
	if len(first.Conflicts) == 0 {
		t.Fatal("expected conflicts in the fixture")
	}
}

func TestAnalyzeCategoryFailureDegradesToClean(t *testing.T) {
	failing := llm.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model unavailable")
	})

	a := NewAnalyzer(failing)
	report := a.Analyze(context.Background(), []domain.Goal{
		goal("g1", "Run 5k daily", "daily"),
		goal("g2", "Run 3 miles every morning", "daily"),
	})
	if len(report.Conflicts) != 0 {
		t.Fatalf("failures must degrade to no conflict, got %+v", report.Conflicts)
	}
	if len(report.Recommendations) == 0 || !strings.Contains(report.Recommendations[0], "aligned") {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
}

func TestAnalyzeResourceContradictionSeverityGate(t *testing.T) {
	pair := []domain.Goal{
		goal("g1", "Join a climbing gym", "weekly"),
		goal("g2", "Save for a bike", "monthly"),
	}

	// Low and unrecognized severities never surface.
	for _, severity := range []string{"low", "negligible"} {
		replies := cleanReplies()
		replies["limited resource"] = `{"conflict":true,"severity":"` + severity + `","description":"both need the gym budget"}`

		a := NewAnalyzer(scriptedClient(t, replies))
		report := a.Analyze(context.Background(), pair)
		if len(report.Conflicts) != 0 {
			t.Errorf("severity %q surfaced: %+v", severity, report.Conflicts)
		}
	}

	replies := cleanReplies()
	replies["limited resource"] = `{"conflict":true,"severity":"medium","description":"both need the gym budget","conversational":"These two share one budget."}`

	a := NewAnalyzer(scriptedClient(t, replies))
	report := a.Analyze(context.Background(), pair)
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(report.Conflicts))
	}
	if got := report.Conflicts[0].Findings[0].Severity; got != domain.SeverityMedium {
		t.Errorf("severity = %s", got)
	}
}

func TestSuggestAmendmentsMarksCleanGoalsOptimized(t *testing.T) {
	goals := []domain.Goal{
		goal("g1", "Run 5k daily", "daily"),
		goal("g2", "Run 3 miles every morning", "daily"),
		goal("g3", "Read 20 pages", "daily"),
	}
	report := &Report{
		Conflicts: []domain.ConflictRecord{{
			Goal1: goals[0],
			Goal2: goals[1],
			Findings: []domain.ConflictFinding{{
				Type:        domain.ConflictDuplicateActivity,
				Severity:    domain.SeverityHigh,
				Description: "same activity",
			}},
		}},
		Summary: map[domain.ConflictType]int{domain.ConflictDuplicateActivity: 1},
	}

	amendments := SuggestAmendments(goals, report)
	if len(amendments) != 3 {
		t.Fatalf("amendments = %d, want one entry per goal", len(amendments))
	}

	byID := map[string]domain.GoalAmendments{}
	for _, a := range amendments {
		byID[a.Goal.ID] = a
	}
	for _, id := range []string{"g1", "g2"} {
		entry := byID[id]
		if entry.Optimized {
			t.Errorf("%s should not be optimized", id)
		}
		if len(entry.Suggestions) != 1 || entry.Suggestions[0].Type != domain.AmendConsolidation {
			t.Errorf("%s suggestions = %+v", id, entry.Suggestions)
		}
	}
	if clean := byID["g3"]; !clean.Optimized || len(clean.Suggestions) != 0 {
		t.Errorf("g3 = %+v, want optimized with no suggestions", clean)
	}

	// Same report in, same suggestions out.
	again := SuggestAmendments(goals, report)
	if !reflect.DeepEqual(amendments, again) {
		t.Error("suggestions are not deterministic")
	}
}
