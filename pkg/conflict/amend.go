package conflict

import (
	"fmt"

	"github.com/hustlemode/coach/pkg/domain"
)

// amendmentFor maps each conflict axis to its remediation strategy.
var amendmentFor = map[domain.ConflictType]domain.AmendmentType{
	domain.ConflictDuplicateActivity:     domain.AmendConsolidation,
	domain.ConflictTimeOverload:          domain.AmendScopeReduction,
	domain.ConflictResourceContradiction: domain.AmendResourceOptimization,
	domain.ConflictLifestyle:             domain.AmendFrequencyAdjustment,
}

// SuggestAmendments turns a conflict report into per-goal suggestions. Every
// input goal gets an entry; clean goals come back Optimized with no
// suggestions. Running it twice over the same report yields the same output.
func SuggestAmendments(goals []domain.Goal, report *Report) []domain.GoalAmendments {
	findingsByGoal := make(map[string][]domain.ConflictFinding, len(goals))
	for _, rec := range report.Conflicts {
		findingsByGoal[rec.Goal1.ID] = append(findingsByGoal[rec.Goal1.ID], rec.Findings...)
		findingsByGoal[rec.Goal2.ID] = append(findingsByGoal[rec.Goal2.ID], rec.Findings...)
	}

	out := make([]domain.GoalAmendments, 0, len(goals))
	for _, goal := range goals {
		findings := findingsByGoal[goal.ID]
		entry := domain.GoalAmendments{
			Goal:        goal,
			Conflicts:   findings,
			Suggestions: []domain.AmendmentSuggestion{},
			Optimized:   len(findings) == 0,
		}

		seen := map[domain.AmendmentType]bool{}
		for _, f := range findings {
			kind := amendmentFor[f.Type]
			if kind == "" || seen[kind] {
				continue
			}
			seen[kind] = true
			entry.Suggestions = append(entry.Suggestions, domain.AmendmentSuggestion{
				Type:        kind,
				Description: describeAmendment(kind, goal),
				Reasoning:   f.Description,
			})
		}
		out = append(out, entry)
	}
	return out
}

func describeAmendment(kind domain.AmendmentType, goal domain.Goal) string {
	switch kind {
	case domain.AmendConsolidation:
		return fmt.Sprintf("Merge %q with its overlapping goal and keep one tracker", goal.Title)
	case domain.AmendScopeReduction:
		return fmt.Sprintf("Shrink %q to a daily load you can actually sustain", goal.Title)
	case domain.AmendResourceOptimization:
		return fmt.Sprintf("Rebalance the shared resource so %q stops competing", goal.Title)
	case domain.AmendFrequencyAdjustment:
		return fmt.Sprintf("Alternate days on %q instead of running it in parallel", goal.Title)
	default:
		return fmt.Sprintf("Revisit %q", goal.Title)
	}
}
