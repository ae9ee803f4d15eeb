package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hustlemode/coach/pkg/domain"
	"github.com/hustlemode/coach/pkg/store"
)

// Store implements GoalStore, PreferenceStore, and CheckInStore using SQLite.
type Store struct {
	db *sql.DB
}

// Verify interface compliance at compile time.
var _ store.GoalStore = (*Store)(nil)
var _ store.PreferenceStore = (*Store)(nil)
var _ store.CheckInStore = (*Store)(nil)

// New opens (or creates) a SQLite database at the given path and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		goal_type TEXT NOT NULL DEFAULT 'habit',
		frequency TEXT NOT NULL DEFAULT '',
		target_value REAL NOT NULL DEFAULT 0,
		current_value REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_goals_user_status ON goals(user_id, status);

	CREATE TABLE IF NOT EXISTS preferences (
		user_id TEXT PRIMARY KEY,
		default_persona TEXT NOT NULL DEFAULT '',
		accountability_level TEXT NOT NULL DEFAULT '',
		proactive_check_ins INTEGER NOT NULL DEFAULT 0,
		quiet_hours_start TEXT NOT NULL DEFAULT '',
		quiet_hours_end TEXT NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS check_ins (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		goal_ids TEXT NOT NULL DEFAULT '[]',
		scheduled_at DATETIME NOT NULL,
		reminder_type TEXT NOT NULL DEFAULT 'firm',
		message TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_check_ins_user ON check_ins(user_id, scheduled_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

const goalColumns = `id, user_id, title, description, goal_type, frequency,
	target_value, current_value, status, start_date, end_date, created_at, updated_at`

// --- GoalStore ---

func (s *Store) ListActive(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id=? AND status=? ORDER BY created_at DESC`,
		userID, domain.GoalStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID, id string) (*domain.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id=? AND user_id=?`, id, userID)
	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("goal %s: %w", id, store.ErrNotFound)
	}
	return g, err
}

func (s *Store) Insert(ctx context.Context, g *domain.Goal) error {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.StartDate.IsZero() {
		g.StartDate = now
	}
	if g.Status == "" {
		g.Status = domain.GoalStatusActive
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, title, description, goal_type, frequency, target_value, current_value, status, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.Description, g.GoalType, g.Frequency,
		g.TargetValue, g.CurrentValue, g.Status, g.StartDate, nullTime(g.EndDate),
		g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (s *Store) Update(ctx context.Context, g *domain.Goal) error {
	g.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE goals SET title=?, description=?, goal_type=?, frequency=?, target_value=?, current_value=?, status=?, end_date=?, updated_at=?
		 WHERE id=? AND user_id=?`,
		g.Title, g.Description, g.GoalType, g.Frequency, g.TargetValue,
		g.CurrentValue, g.Status, nullTime(g.EndDate), g.UpdatedAt, g.ID, g.UserID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("goal %s: %w", g.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("goal %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) Complete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE goals SET status=?, updated_at=? WHERE id=? AND user_id=?`,
		domain.GoalStatusCompleted, time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("goal %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// --- PreferenceStore ---

func (s *Store) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	p := &domain.Preferences{UserID: userID}
	var proactive int
	err := s.db.QueryRowContext(ctx,
		`SELECT default_persona, accountability_level, proactive_check_ins, quiet_hours_start, quiet_hours_end, updated_at
		 FROM preferences WHERE user_id=?`, userID,
	).Scan(&p.DefaultPersona, &p.AccountabilityLevel, &proactive,
		&p.QuietHoursStart, &p.QuietHoursEnd, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return &domain.Preferences{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	p.ProactiveCheckIns = proactive != 0
	return p, nil
}

func (s *Store) PutPreferences(ctx context.Context, p *domain.Preferences) error {
	p.UpdatedAt = time.Now().UTC()
	proactive := 0
	if p.ProactiveCheckIns {
		proactive = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, default_persona, accountability_level, proactive_check_ins, quiet_hours_start, quiet_hours_end, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			default_persona=excluded.default_persona,
			accountability_level=excluded.accountability_level,
			proactive_check_ins=excluded.proactive_check_ins,
			quiet_hours_start=excluded.quiet_hours_start,
			quiet_hours_end=excluded.quiet_hours_end,
			updated_at=excluded.updated_at`,
		p.UserID, p.DefaultPersona, p.AccountabilityLevel, proactive,
		p.QuietHoursStart, p.QuietHoursEnd, p.UpdatedAt,
	)
	return err
}

// --- CheckInStore ---

func (s *Store) ScheduleCheckIn(ctx context.Context, c *domain.CheckIn) error {
	c.CreatedAt = time.Now().UTC()
	goalIDs, err := json.Marshal(c.GoalIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO check_ins (id, user_id, goal_ids, scheduled_at, reminder_type, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, string(goalIDs), c.ScheduledAt, c.ReminderType, c.Message, c.CreatedAt,
	)
	return err
}

func (s *Store) ListCheckIns(ctx context.Context, userID string) ([]domain.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, goal_ids, scheduled_at, reminder_type, message, created_at
		 FROM check_ins WHERE user_id=? ORDER BY scheduled_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		var goalIDs string
		if err := rows.Scan(&c.ID, &c.UserID, &goalIDs, &c.ScheduledAt, &c.ReminderType, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(goalIDs), &c.GoalIDs); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}

// --- helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (*domain.Goal, error) {
	g := &domain.Goal{}
	var endDate sql.NullTime
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.GoalType,
		&g.Frequency, &g.TargetValue, &g.CurrentValue, &g.Status,
		&g.StartDate, &endDate, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		t := endDate.Time
		g.EndDate = &t
	}
	g.ProgressPercentage = progressPercentage(g)
	g.DaysActive = daysActive(g.StartDate)
	return g, nil
}

// progressPercentage derives completion from current vs target, capped at 100.
func progressPercentage(g *domain.Goal) float64 {
	if g.Status == domain.GoalStatusCompleted {
		return 100
	}
	if g.TargetValue <= 0 {
		return 0
	}
	pct := g.CurrentValue / g.TargetValue * 100
	return math.Min(math.Round(pct*10)/10, 100)
}

func daysActive(start time.Time) int {
	if start.IsZero() {
		return 0
	}
	days := int(time.Since(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
