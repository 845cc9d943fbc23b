// internal/calclog/store.go
//
// SQLite-backed log of calculations. One row per engine run: how many
// guesses were used or skipped, dictionary size before and after, and how
// long it took. Guess contents are not stored.

package calclog

import (
	"context"
	"database/sql"
	"time"
)

// Sources of a calculation.
const (
	SourceSession = "session"
	SourceSolve   = "solve"
)

type Entry struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"sessionId,omitempty"`
	Source         string    `json:"source"`
	GuessesUsed    int       `json:"guessesUsed"`
	GuessesDropped int       `json:"guessesDropped"`
	Considered     int       `json:"considered"`
	Remaining      int       `json:"remaining"`
	ElapsedMicros  int64     `json:"elapsedUs"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Summary struct {
	Calculations int     `json:"calculations"`
	AvgRemaining float64 `json:"avgRemaining"`
	LastAt       string  `json:"lastAt,omitempty"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records e. A zero CreatedAt is set to now; a blank Source to "session".
func (s *Store) Insert(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Source == "" {
		e.Source = SourceSession
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calculations
		    (session_id, source, guesses_used, guesses_dropped, considered, remaining, elapsed_us, created_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		e.SessionID, e.Source, e.GuessesUsed, e.GuessesDropped, e.Considered, e.Remaining,
		e.ElapsedMicros, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, source, guesses_used, guesses_dropped, considered, remaining, elapsed_us, created_at
		 FROM calculations
		 ORDER BY id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Source, &e.GuessesUsed, &e.GuessesDropped,
			&e.Considered, &e.Remaining, &e.ElapsedMicros, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Summary aggregates the whole log.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(AVG(remaining), 0), COALESCE(MAX(created_at), '') FROM calculations`,
	).Scan(&sum.Calculations, &sum.AvgRemaining, &sum.LastAt)
	return sum, err
}
