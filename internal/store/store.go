// Package store persists the unit preference and finished quiz results in
// SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Preferences are the user's saved display settings.
type Preferences struct {
	UseMetric bool `json:"use_metric"`
}

// Result is one finished quiz.
type Result struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id,omitempty"`
	Pokemon    string    `json:"pokemon"`
	Score      float64   `json:"score"`
	Total      int       `json:"total"`
	Percent    int       `json:"percent"`
	Passed     bool      `json:"passed"`
	FinishedAt time.Time `json:"finished_at"`
}

const timeLayout = "2006-01-02T15:04:05.999Z"

type SQLiteStore struct {
	db       *sql.DB
	defaults Preferences
}

// NewSQLiteStore wraps a migrated database. defaults is returned by
// Preferences until something is saved.
func NewSQLiteStore(db *sql.DB, defaults Preferences) *SQLiteStore {
	return &SQLiteStore{db: db, defaults: defaults}
}

func (s *SQLiteStore) Preferences(ctx context.Context) (Preferences, error) {
	var useMetric int
	err := s.db.QueryRowContext(ctx, `
		SELECT use_metric FROM preferences WHERE id = 1
	`).Scan(&useMetric)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaults, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}
	return Preferences{UseMetric: useMetric == 1}, nil
}

func (s *SQLiteStore) SavePreferences(ctx context.Context, p Preferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (id, use_metric, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (id) DO UPDATE SET
			use_metric = excluded.use_metric,
			updated_at = excluded.updated_at
	`, boolInt(p.UseMetric))
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// RecordResult stores r and returns it with its id and timestamp set.
func (s *SQLiteStore) RecordResult(ctx context.Context, r Result) (Result, error) {
	var finishedAt string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO quiz_results (session_id, pokemon, score, total, percent, passed)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, finished_at
	`, r.SessionID, r.Pokemon, r.Score, r.Total, r.Percent, boolInt(r.Passed)).Scan(&r.ID, &finishedAt)
	if err != nil {
		return Result{}, fmt.Errorf("recording result: %w", err)
	}
	r.FinishedAt, err = time.Parse(timeLayout, finishedAt)
	if err != nil {
		return Result{}, fmt.Errorf("parsing finished_at: %w", err)
	}
	return r, nil
}

// ListResults returns up to limit results, newest first.
func (s *SQLiteStore) ListResults(ctx context.Context, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, pokemon, score, total, percent, passed, finished_at
		FROM quiz_results
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var (
			r          Result
			passed     int
			finishedAt string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Pokemon, &r.Score, &r.Total, &r.Percent, &passed, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Passed = passed == 1
		if r.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Check pings the database for the health endpoint.
func (s *SQLiteStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
