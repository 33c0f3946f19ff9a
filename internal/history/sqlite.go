// internal/history/sqlite.go
//
// SQLite implementation of the history Store, backed by the rounds table
// (see sql/0001_init.sql). Uses the database/sql handle opened at startup;
// the driver is registered by the main package import.

package history

import (
	"context"
	"database/sql"
	"time"
)

// sqliteStore persists rounds via database/sql.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database handle.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

// Save inserts one finished round.
func (s *sqliteStore) Save(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rounds
            (id, remote_addr, outcome, jumble, word_count, words_found,
             wrong_guesses, hints_used, elapsed_ms, finished_at)
        VALUES (?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.RemoteAddr, r.Outcome, r.Jumble, r.WordCount, r.WordsFound,
		r.WrongGuesses, r.HintsUsed, r.ElapsedMs,
		r.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Recent fetches up to limit rounds, newest first. Default limit is 20.
func (s *sqliteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, remote_addr, outcome, jumble, word_count, words_found,
               wrong_guesses, hints_used, elapsed_ms, finished_at
        FROM rounds
        ORDER BY finished_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var finished string
		if err := rows.Scan(&r.ID, &r.RemoteAddr, &r.Outcome, &r.Jumble,
			&r.WordCount, &r.WordsFound, &r.WrongGuesses, &r.HintsUsed,
			&r.ElapsedMs, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
