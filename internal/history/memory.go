// internal/history/memory.go
//
// In-memory implementation of the history Store.
// Used when no database is configured, and in tests.
//
// Characteristics:
//   - Keeps Records in insertion order in a slice.
//   - Concurrency-safe via RWMutex (sessions save concurrently).
//   - State is lost when the process restarts.
//   - Bounded: oldest records are dropped past memoryCap.

package history

import (
	"context"
	"sync"
)

// memoryCap bounds the in-memory record count so a long-lived no-DB server
// doesn't grow without limit.
const memoryCap = 1000

// memory is a slice-backed Store implementation.
type memory struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// Save appends the record, evicting the oldest past the cap.
func (m *memory) Save(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	if len(m.records) > memoryCap {
		m.records = m.records[len(m.records)-memoryCap:]
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (m *memory) Recent(ctx context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]Record, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}
