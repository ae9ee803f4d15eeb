package store

import (
	"context"
	"errors"

	"github.com/hustlemode/coach/pkg/domain"
)

// ErrNotFound reports a missing row for the given user/id scope.
var ErrNotFound = errors.New("not found")

// GoalStore manages the persistence of user goals. All queries are scoped by
// user id; a goal is owned exclusively by its user. The store is an external
// transactional collaborator: callers issue single-operation calls and rely
// on it for read-after-write ordering.
type GoalStore interface {
	// ListActive returns the user's active goals, newest first, with
	// progress_percentage and days_active computed.
	ListActive(ctx context.Context, userID string) ([]domain.Goal, error)

	// Get retrieves one goal by id within the user's scope.
	Get(ctx context.Context, userID, id string) (*domain.Goal, error)

	// Insert persists a new goal. The ID field must be set by the caller.
	Insert(ctx context.Context, g *domain.Goal) error

	// Update persists changes to an existing goal by id.
	Update(ctx context.Context, g *domain.Goal) error

	// Delete removes a goal by id within the user's scope.
	Delete(ctx context.Context, userID, id string) error

	// Complete marks a goal completed. Status transitions happen only
	// through explicit calls like this one.
	Complete(ctx context.Context, userID, id string) error
}

// PreferenceStore manages coaching-preference fields per user.
type PreferenceStore interface {
	// GetPreferences returns the user's preferences, or zero-value
	// preferences if none have been stored yet.
	GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error)

	// PutPreferences upserts the user's preferences.
	PutPreferences(ctx context.Context, p *domain.Preferences) error
}

// CheckInStore persists scheduled accountability check-ins.
type CheckInStore interface {
	// ScheduleCheckIn persists a future check-in. The ID must be set by
	// the caller.
	ScheduleCheckIn(ctx context.Context, c *domain.CheckIn) error

	// ListCheckIns returns the user's scheduled check-ins, soonest first.
	ListCheckIns(ctx context.Context, userID string) ([]domain.CheckIn, error)
}
