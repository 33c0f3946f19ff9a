// internal/history/store.go
//
// Round-history persistence for finished rounds. Sessions record results
// best-effort: a failed save is logged by the caller and never interrupts
// play.

package history

import (
	"context"
	"time"
)

// Record is one finished round as stored.
type Record struct {
	ID           string    `json:"id"`
	RemoteAddr   string    `json:"remoteAddr"`
	Outcome      string    `json:"outcome"` // "won" | "lost" | "timeout"
	Jumble       string    `json:"jumble"`
	WordCount    int       `json:"wordCount"`
	WordsFound   int       `json:"wordsFound"`
	WrongGuesses int       `json:"wrongGuesses"`
	HintsUsed    int       `json:"hintsUsed"`
	ElapsedMs    int       `json:"elapsedMs"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// Store defines the persistence interface for round history.
// Implementations may be backed by memory (dev/tests) or SQLite.
type Store interface {
	// Save persists one finished round.
	Save(ctx context.Context, r Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}
