// internal/store/memory.go
//
// In-memory implementation of the Store interface for solving boards.
//
// Characteristics:
//   - Stores *board.Board values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Save and Get copy the board, so callers never share rows with the map.
//   - State is lost when the process restarts; boards are not meant to
//     outlive a session.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/solver-server/internal/board"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for boards.
type Store interface {
	// Save persists or updates a board.
	Save(ctx context.Context, b *board.Board) error

	// Get retrieves a board by ID.
	// Returns ErrNotFound if the board does not exist.
	Get(ctx context.Context, id string) (*board.Board, error)

	// Delete removes a board. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops boards not updated since cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)

	// Len reports the number of stored boards.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex            // guards boards map
	boards map[string]*board.Board // keyed by Board.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{boards: make(map[string]*board.Board)}
}

func (m *memory) Save(ctx context.Context, b *board.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[b.ID] = b.Clone()
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*board.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.boards[id]; ok {
		return b.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.boards, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, b := range m.boards {
		if b.UpdatedAt.Before(cutoff) {
			delete(m.boards, id)
			n++
		}
	}
	return n, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.boards)
}
