package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

// MemoryLevelLedger is an in-memory LevelLedger for local development and
// tests. A single mutex serializes all credits, which matches the row-lock
// semantics of the PostgreSQL implementation for correctness (not scale).
type MemoryLevelLedger struct {
	mu     sync.Mutex
	states map[string]*domain.LevelState
	opts   options
}

// NewMemoryLevelLedger creates a new in-memory level ledger.
func NewMemoryLevelLedger(opts ...Option) *MemoryLevelLedger {
	return &MemoryLevelLedger{
		states: make(map[string]*domain.LevelState),
		opts:   applyOptions(opts),
	}
}

// GetState retrieves a user's ledger record.
func (l *MemoryLevelLedger) GetState(ctx context.Context, userID string) (*domain.LevelState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[userID]
	if !ok {
		return domain.NewLevelState(userID), nil
	}

	copied := *state
	return &copied, nil
}

// ApplyExperience credits an XP delta to the user's record.
func (l *MemoryLevelLedger) ApplyExperience(ctx context.Context, userID string, delta int) (*ApplyResult, error) {
	if delta < 0 {
		return nil, errors.ErrValidationFailed("delta", "must be non-negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[userID]
	if !ok {
		if l.opts.requireExisting {
			return nil, errors.ErrLevelStateNotFound(userID)
		}
		state = domain.NewLevelState(userID)
		state.CreatedAt = time.Now()
		l.states[userID] = state
	}

	reached := state.Apply(delta)
	state.UpdatedAt = time.Now()

	copied := *state
	return &ApplyResult{
		State:         &copied,
		ReachedLevels: reached,
	}, nil
}
