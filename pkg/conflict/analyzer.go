// Package conflict performs pairwise analysis of a user's active goals across
// four axes: duplicate activity, time overload, resource contradiction, and
// lifestyle contradiction. Per-category semantic failures degrade to "no
// conflict" for that category only.
package conflict

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/llm"
)

const (
	// duplicateThreshold is the reported overlap percentage above which two
	// goals count as the same activity.
	duplicateThreshold = 70

	// overloadMinutes is the combined daily commitment beyond which a pair
	// of goals is flagged as time-overloaded.
	overloadMinutes = 180

	// maxParallelPairs bounds concurrent pair analyses.
	maxParallelPairs = 4
)

// Report is the outcome of analyzing one user's goal set.
type Report struct {
	TotalGoals      int                         `json:"total_goals"`
	PairsAnalyzed   int                         `json:"pairs_analyzed"`
	Conflicts       []domain.ConflictRecord     `json:"conflicts"`
	Summary         map[domain.ConflictType]int `json:"summary"`
	Recommendations []string                    `json:"recommendations"`
}

// Analyzer runs the pairwise conflict checks.
type Analyzer struct {
	llm llm.Client
}

// NewAnalyzer creates an Analyzer backed by the given semantic client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{llm: client}
}

// Analyze checks every unordered pair of goals. Pair analyses run
// concurrently, bounded by maxParallelPairs; results are assembled in
// deterministic pair order regardless of completion order.
func (a *Analyzer) Analyze(ctx context.Context, goals []domain.Goal) *Report {
	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < len(goals); i++ {
		for j := i + 1; j < len(goals); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	records := make([]domain.ConflictRecord, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPairs)
	for idx, p := range pairs {
		g.Go(func() error {
			records[idx] = a.analyzePair(gctx, goals[p.i], goals[p.j])
			return nil
		})
	}
	g.Wait() // workers never return errors; failures degrade per category

	report := &Report{
		TotalGoals:    len(goals),
		PairsAnalyzed: len(pairs),
		Summary:       map[domain.ConflictType]int{},
	}
	for _, rec := range records {
		if len(rec.Findings) == 0 {
			continue
		}
		report.Conflicts = append(report.Conflicts, rec)
		for _, f := range rec.Findings {
			report.Summary[f.Type]++
		}
	}
	report.Recommendations = recommendations(report)
	return report
}

// analyzePair runs all four category checks for one goal pair.
func (a *Analyzer) analyzePair(ctx context.Context, g1, g2 domain.Goal) domain.ConflictRecord {
	rec := domain.ConflictRecord{Goal1: g1, Goal2: g2}

	if f, ok := a.checkDuplicate(ctx, g1, g2); ok {
		rec.Findings = append(rec.Findings, f)
	}
	if f, ok := a.checkTimeOverload(ctx, g1, g2); ok {
		rec.Findings = append(rec.Findings, f)
	}
	if f, ok := a.checkContradiction(ctx, g1, g2, domain.ConflictResourceContradiction); ok {
		rec.Findings = append(rec.Findings, f)
	}
	if f, ok := a.checkContradiction(ctx, g1, g2, domain.ConflictLifestyle); ok {
		rec.Findings = append(rec.Findings, f)
	}
	return rec
}

const duplicatePrompt = `Analyze if these two goals have duplicate/overlapping activities:

Goal 1: %q (%s)
Goal 2: %q (%s)

Are these goals essentially the same activity or highly overlapping? Respond in JSON:
{
  "isDuplicate": boolean,
  "overlapPercentage": number (0-100),
  "reasoning": "semantic analysis explanation"
}

Use semantic understanding, not keyword matching.`

type rawDuplicate struct {
	IsDuplicate       bool    `json:"isDuplicate"`
	OverlapPercentage float64 `json:"overlapPercentage"`
	Reasoning         string  `json:"reasoning"`
}

// checkDuplicate asks the semantic service whether the two goals describe the
// same activity. "Run 5k daily" and "Run 3 miles every morning" must match
// even though they share almost no words.
func (a *Analyzer) checkDuplicate(ctx context.Context, g1, g2 domain.Goal) (domain.ConflictFinding, bool) {
	prompt := fmt.Sprintf(duplicatePrompt, g1.Title, orNone(g1.Description), g2.Title, orNone(g2.Description))
	reply, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("duplicate activity check failed", "error", err)
		return domain.ConflictFinding{}, false
	}
	var raw rawDuplicate
	if err := llm.Decode(reply, &raw); err != nil {
		slog.Warn("duplicate activity reply unparseable", "error", err)
		return domain.ConflictFinding{}, false
	}
	if !raw.IsDuplicate || raw.OverlapPercentage <= duplicateThreshold {
		return domain.ConflictFinding{}, false
	}
	return domain.ConflictFinding{
		Type:        domain.ConflictDuplicateActivity,
		Severity:    domain.SeverityHigh,
		Description: fmt.Sprintf("%q and %q describe the same activity (%.0f%% overlap)", g1.Title, g2.Title, raw.OverlapPercentage),
		Conversational: fmt.Sprintf("%q and %q look like the same goal twice. Merge them?",
			g1.Title, g2.Title),
	}, true
}

func orNone(s string) string {
	if s == "" {
		return "no description"
	}
	return s
}

const timeEstimatePrompt = `Estimate the daily time commitment in minutes for each goal:

Goal 1: %q (frequency: %s)
Goal 2: %q (frequency: %s)

Respond in JSON format:
{
  "goal1Minutes": number,
  "goal2Minutes": number
}

Estimate a single typical session length per goal, not the weekly total.`

type rawEstimate struct {
	Goal1Minutes float64 `json:"goal1Minutes"`
	Goal2Minutes float64 `json:"goal2Minutes"`
}

// checkTimeOverload asks the semantic service for per-goal session length,
// scales it by stated frequency, and flags pairs whose combined daily load
// exceeds overloadMinutes.
func (a *Analyzer) checkTimeOverload(ctx context.Context, g1, g2 domain.Goal) (domain.ConflictFinding, bool) {
	prompt := fmt.Sprintf(timeEstimatePrompt, g1.Title, g1.Frequency, g2.Title, g2.Frequency)
	reply, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("time overload estimate failed", "error", err)
		return domain.ConflictFinding{}, false
	}
	var est rawEstimate
	if err := llm.Decode(reply, &est); err != nil {
		slog.Warn("time overload reply unparseable", "error", err)
		return domain.ConflictFinding{}, false
	}

	total := est.Goal1Minutes*frequencyMultiplier(g1.Frequency) +
		est.Goal2Minutes*frequencyMultiplier(g2.Frequency)
	if total <= overloadMinutes {
		return domain.ConflictFinding{}, false
	}
	hours := total / 60
	return domain.ConflictFinding{
		Type:        domain.ConflictTimeOverload,
		Severity:    domain.SeverityMedium,
		Description: fmt.Sprintf("%q and %q need about %.1f hours per day combined", g1.Title, g2.Title, hours),
		Conversational: fmt.Sprintf("Together %q and %q eat roughly %.1f hours a day. That pace rarely holds.",
			g1.Title, g2.Title, hours),
	}, true
}

var contradictionPrompts = map[domain.ConflictType]string{
	domain.ConflictResourceContradiction: `Do these two goals compete for the same limited resource (money, energy, equipment, attention)?

Goal 1: %q — %s
Goal 2: %q — %s`,
	domain.ConflictLifestyle: `Do these two goals pull the user's lifestyle in opposite directions (e.g. bulking vs cutting, early mornings vs late nights)?

Goal 1: %q — %s
Goal 2: %q — %s`,
}

const contradictionFormat = `

Respond in JSON format:
{
  "conflict": boolean,
  "severity": "medium|high",
  "description": "One-sentence factual description",
  "conversational": "One short friendly sentence for the user"
}

Only report genuine contradictions, not mere busyness.`

type rawContradiction struct {
	Conflict       bool   `json:"conflict"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Conversational string `json:"conversational"`
}

// checkContradiction handles the two purely semantic categories. Low or
// unrecognized severity judgments are dropped entirely; only medium and high
// surface.
func (a *Analyzer) checkContradiction(ctx context.Context, g1, g2 domain.Goal, kind domain.ConflictType) (domain.ConflictFinding, bool) {
	prompt := fmt.Sprintf(contradictionPrompts[kind], g1.Title, g1.Description, g2.Title, g2.Description) + contradictionFormat
	reply, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("contradiction check failed", "type", kind, "error", err)
		return domain.ConflictFinding{}, false
	}
	var raw rawContradiction
	if err := llm.Decode(reply, &raw); err != nil {
		slog.Warn("contradiction reply unparseable", "type", kind, "error", err)
		return domain.ConflictFinding{}, false
	}
	if !raw.Conflict {
		return domain.ConflictFinding{}, false
	}

	severity := domain.Severity(raw.Severity)
	if severity != domain.SeverityMedium && severity != domain.SeverityHigh {
		return domain.ConflictFinding{}, false
	}
	conversational := raw.Conversational
	if conversational == "" {
		conversational = fmt.Sprintf("%q and %q may be working against each other.", g1.Title, g2.Title)
	}
	return domain.ConflictFinding{
		Type:           kind,
		Severity:       severity,
		Description:    raw.Description,
		Conversational: conversational,
	}, true
}

// recommendations summarizes the report for the user.
func recommendations(r *Report) []string {
	if len(r.Conflicts) == 0 {
		return []string{"Your goals are well aligned. Keep the momentum going."}
	}

	var recs []string
	if r.Summary[domain.ConflictDuplicateActivity] > 0 {
		recs = append(recs, "Merge overlapping goals into one so progress counts once.")
	}
	if r.Summary[domain.ConflictTimeOverload] > 0 {
		recs = append(recs, "Reduce daily time commitments to a schedule you can sustain.")
	}
	if r.Summary[domain.ConflictResourceContradiction] > 0 {
		recs = append(recs, "Decide which goal gets the contested resource first.")
	}
	if r.Summary[domain.ConflictLifestyle] > 0 {
		recs = append(recs, "Sequence contradictory goals instead of running them in parallel.")
	}
	if len(r.Conflicts) > 3 {
		recs = append(recs, "Consider focusing on 2-3 core goals and pausing the rest.")
	}
	return recs
}

// frequencyMultiplier converts a stated frequency into sessions per day.
func frequencyMultiplier(frequency string) float64 {
	f := strings.ToLower(frequency)
	switch {
	case strings.Contains(f, "5") || strings.Contains(f, "five"):
		return 5
	case strings.Contains(f, "4") || strings.Contains(f, "four"):
		return 4
	case strings.Contains(f, "3") || strings.Contains(f, "three"):
		return 3
	case strings.Contains(f, "twice") || strings.Contains(f, "2"):
		return 2
	default:
		return 1
	}
}
