package ledger

import (
	"context"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// ApplyResult is the outcome of crediting XP to a user's ledger.
type ApplyResult struct {
	// State is the ledger record after the credit.
	State *domain.LevelState

	// ReachedLevels lists every level crossed by this credit, ascending.
	// Empty when the credit did not cross a threshold.
	ReachedLevels []int
}

// Option configures a ledger implementation.
type Option func(*options)

type options struct {
	requireExisting bool
}

// RequireExisting disables implicit level-state creation: crediting a user
// with no ledger record fails with a LEVEL_STATE_NOT_FOUND error instead of
// creating the level-1 record. Used where provisioning owns record creation.
func RequireExisting() Option {
	return func(o *options) {
		o.requireExisting = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LevelLedger persists per-user XP and level state. Implementations must
// serialize concurrent credits for the same user so that applying deltas
// d1..dn in any interleaving leaves the same state as applying their sum.
type LevelLedger interface {
	// GetState returns the user's current ledger record, or a fresh
	// level-1 record when the user has not earned XP yet. The fresh
	// record is not persisted until the first credit.
	GetState(ctx context.Context, userID string) (*domain.LevelState, error)

	// ApplyExperience credits a non-negative XP delta to the user,
	// creating the level-1 record on first use (unless RequireExisting
	// was set). Rejects negative deltas with a VALIDATION_FAILED error.
	ApplyExperience(ctx context.Context, userID string, delta int) (*ApplyResult, error)
}
