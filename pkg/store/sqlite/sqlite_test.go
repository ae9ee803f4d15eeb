package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tmpFile := t.TempDir() + "/test.db"
	s, err := New(tmpFile)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		os.Remove(tmpFile)
	})
	return s
}

func TestGoalCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &domain.Goal{
		ID:          "g-1",
		UserID:      "u-1",
		Title:       "Run 5k daily",
		GoalType:    domain.GoalTypeHabit,
		Frequency:   "daily",
		TargetValue: 30,
	}

	if err := s.Insert(ctx, g); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Get(ctx, "u-1", "g-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Run 5k daily" {
		t.Errorf("Title = %q, want %q", got.Title, "Run 5k daily")
	}
	if got.Status != domain.GoalStatusActive {
		t.Errorf("Status = %q, want active", got.Status)
	}

	got.Title = "Run 10k daily"
	got.CurrentValue = 15
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got2, _ := s.Get(ctx, "u-1", "g-1")
	if got2.Title != "Run 10k daily" {
		t.Errorf("after update: Title = %q, want %q", got2.Title, "Run 10k daily")
	}
	if got2.ProgressPercentage != 50 {
		t.Errorf("ProgressPercentage = %v, want 50", got2.ProgressPercentage)
	}

	goals, err := s.ListActive(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(goals) != 1 {
		t.Errorf("ListActive len = %d, want 1", len(goals))
	}

	if err := s.Delete(ctx, "u-1", "g-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = s.Get(ctx, "u-1", "g-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGoalUserScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Insert(ctx, &domain.Goal{ID: "g-1", UserID: "u-1", Title: "Read 30min"})
	s.Insert(ctx, &domain.Goal{ID: "g-2", UserID: "u-2", Title: "Meditate"})

	if _, err := s.Get(ctx, "u-1", "g-2"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user Get: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "u-1", "g-2"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user Delete: expected ErrNotFound, got %v", err)
	}

	goals, _ := s.ListActive(ctx, "u-1")
	if len(goals) != 1 || goals[0].ID != "g-1" {
		t.Errorf("ListActive(u-1) = %+v, want only g-1", goals)
	}
}

func TestCompleteGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Insert(ctx, &domain.Goal{ID: "g-1", UserID: "u-1", Title: "Ship project"})

	if err := s.Complete(ctx, "u-1", "g-1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, _ := s.Get(ctx, "u-1", "g-1")
	if got.Status != domain.GoalStatusCompleted {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.ProgressPercentage != 100 {
		t.Errorf("ProgressPercentage = %v, want 100", got.ProgressPercentage)
	}

	// Completed goals drop out of the active list.
	goals, _ := s.ListActive(ctx, "u-1")
	if len(goals) != 0 {
		t.Errorf("ListActive after complete = %d goals, want 0", len(goals))
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Missing preferences come back zero-valued, not as an error.
	p, err := s.GetPreferences(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetPreferences (empty): %v", err)
	}
	if p.DefaultPersona != "" {
		t.Errorf("DefaultPersona = %q, want empty", p.DefaultPersona)
	}

	p.DefaultPersona = "cheerleader"
	p.AccountabilityLevel = "intensive"
	p.ProactiveCheckIns = true
	if err := s.PutPreferences(ctx, p); err != nil {
		t.Fatalf("PutPreferences: %v", err)
	}

	got, err := s.GetPreferences(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if got.DefaultPersona != "cheerleader" || got.AccountabilityLevel != "intensive" || !got.ProactiveCheckIns {
		t.Errorf("preferences = %+v", got)
	}

	// Upsert overwrites.
	got.DefaultPersona = "taskmaster"
	s.PutPreferences(ctx, got)
	got2, _ := s.GetPreferences(ctx, "u-1")
	if got2.DefaultPersona != "taskmaster" {
		t.Errorf("after upsert: DefaultPersona = %q, want taskmaster", got2.DefaultPersona)
	}
}

func TestScheduleCheckIn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &domain.CheckIn{
		ID:           uuid.New().String(),
		UserID:       "u-1",
		GoalIDs:      []string{"g-1", "g-2"},
		ScheduledAt:  time.Now().UTC().Add(24 * time.Hour),
		ReminderType: "firm",
		Message:      "How did the run go?",
	}
	if err := s.ScheduleCheckIn(ctx, c); err != nil {
		t.Fatalf("ScheduleCheckIn: %v", err)
	}

	checkIns, err := s.ListCheckIns(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListCheckIns: %v", err)
	}
	if len(checkIns) != 1 {
		t.Fatalf("ListCheckIns len = %d, want 1", len(checkIns))
	}
	if len(checkIns[0].GoalIDs) != 2 {
		t.Errorf("GoalIDs = %v, want 2 entries", checkIns[0].GoalIDs)
	}
}
