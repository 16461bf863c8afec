package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/resume-goat/resume-goat/internal/stats"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrExperimentClosed = errors.New("experiment is completed")
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock replaces time.Now as the source of created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		s.now = now
	}
}

// Timestamps are unix milliseconds.
const schema = `
CREATE TABLE IF NOT EXISTS experiments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    variant_a TEXT NOT NULL,
    variant_b TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT 'running',
    winner TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_experiments_state ON experiments(state);

CREATE TABLE IF NOT EXISTS trials (
    id TEXT PRIMARY KEY,
    experiment_name TEXT NOT NULL,
    grp TEXT NOT NULL CHECK (grp IN ('A', 'B')),
    label TEXT NOT NULL DEFAULT '',
    raw_status TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (experiment_name) REFERENCES experiments(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_trials_experiment ON trials(experiment_name);
CREATE INDEX IF NOT EXISTS idx_trials_experiment_group ON trials(experiment_name, grp);
`

func Open(dbPath string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Pragmas are per connection; one connection keeps foreign keys on.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateExperiment(ctx context.Context, name, variantA, variantB, description string) (*Experiment, error) {
	if _, err := s.GetExperiment(ctx, name); err == nil {
		return nil, fmt.Errorf("experiment %q: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := s.now()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO experiments (name, variant_a, variant_b, description, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 'running', ?, ?)`,
		name, variantA, variantB, description, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert experiment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &Experiment{
		ID:          id,
		Name:        name,
		VariantA:    variantA,
		VariantB:    variantB,
		Description: description,
		State:       StateRunning,
		CreatedAt:   time.UnixMilli(now.UnixMilli()),
		UpdatedAt:   time.UnixMilli(now.UnixMilli()),
	}, nil
}

const experimentColumns = `id, name, variant_a, variant_b, description, state, winner, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExperiment(row rowScanner) (*Experiment, error) {
	var e Experiment
	var winner sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&e.ID, &e.Name, &e.VariantA, &e.VariantB, &e.Description, &e.State, &winner, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if winner.Valid {
		g := stats.Group(winner.String)
		e.Winner = &g
	}
	e.CreatedAt = time.UnixMilli(createdAt)
	e.UpdatedAt = time.UnixMilli(updatedAt)

	return &e, nil
}

func (s *SQLiteStore) GetExperiment(ctx context.Context, name string) (*Experiment, error) {
	e, err := scanExperiment(s.db.QueryRowContext(ctx,
		`SELECT `+experimentColumns+` FROM experiments WHERE name = ?`, name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) ListExperiments(ctx context.Context) ([]*Experiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+experimentColumns+` FROM experiments ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var experiments []*Experiment
	for rows.Next() {
		e, err := scanExperiment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experiment: %w", err)
		}
		experiments = append(experiments, e)
	}

	return experiments, rows.Err()
}

// CompleteExperiment records the winning group and stops accepting trials.
func (s *SQLiteStore) CompleteExperiment(ctx context.Context, name string, winner stats.Group) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE experiments SET state = ?, winner = ?, updated_at = ? WHERE name = ?`,
		string(StateCompleted), string(winner), s.now().UnixMilli(), name,
	)
	if err != nil {
		return fmt.Errorf("failed to complete experiment: %w", err)
	}

	return expectAffected(result)
}

func (s *SQLiteStore) DeleteExperiment(ctx context.Context, name string) error {
	// Trials cascade via the foreign key.
	result, err := s.db.ExecContext(ctx, `DELETE FROM experiments WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete experiment: %w", err)
	}

	return expectAffected(result)
}

// AddTrial records a new application under group. An empty rawStatus is
// stored as NULL.
func (s *SQLiteStore) AddTrial(ctx context.Context, experiment string, group stats.Group, label, rawStatus string) (*Trial, error) {
	group, err := stats.ParseGroup(string(group))
	if err != nil {
		return nil, err
	}

	e, err := s.GetExperiment(ctx, experiment)
	if err != nil {
		return nil, err
	}
	if e.State != StateRunning {
		return nil, fmt.Errorf("experiment %q: %w", experiment, ErrExperimentClosed)
	}

	now := time.UnixMilli(s.now().UnixMilli())
	t := &Trial{
		ID:         uuid.NewString(),
		Experiment: experiment,
		Group:      group,
		Label:      label,
		RawStatus:  rawStatus,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trials (id, experiment_name, grp, label, raw_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Experiment, string(t.Group), t.Label, nullableString(rawStatus), now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trial: %w", err)
	}

	return t, nil
}

const trialColumns = `id, experiment_name, grp, label, raw_status, created_at, updated_at`

func scanTrial(row rowScanner) (*Trial, error) {
	var t Trial
	var group string
	var rawStatus sql.NullString
	var createdAt, updatedAt int64

	if err := row.Scan(&t.ID, &t.Experiment, &group, &t.Label, &rawStatus, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	t.Group = stats.Group(group)
	t.RawStatus = rawStatus.String
	t.CreatedAt = time.UnixMilli(createdAt)
	t.UpdatedAt = time.UnixMilli(updatedAt)

	return &t, nil
}

func (s *SQLiteStore) GetTrial(ctx context.Context, id string) (*Trial, error) {
	t, err := scanTrial(s.db.QueryRowContext(ctx,
		`SELECT `+trialColumns+` FROM trials WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trial: %w", err)
	}
	return t, nil
}

// UpdateTrialStatus changes only the raw status and the updated timestamp;
// a trial's group never changes.
func (s *SQLiteStore) UpdateTrialStatus(ctx context.Context, id, rawStatus string) (*Trial, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE trials SET raw_status = ?, updated_at = ? WHERE id = ?`,
		nullableString(rawStatus), s.now().UnixMilli(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update trial status: %w", err)
	}

	if err := expectAffected(result); err != nil {
		return nil, err
	}

	return s.GetTrial(ctx, id)
}

func (s *SQLiteStore) ListTrials(ctx context.Context, experiment string) ([]*Trial, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trialColumns+` FROM trials WHERE experiment_name = ? ORDER BY created_at, id`,
		experiment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trials: %w", err)
	}
	defer rows.Close()

	var trials []*Trial
	for rows.Next() {
		t, err := scanTrial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}
		trials = append(trials, t)
	}

	return trials, rows.Err()
}

func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
