package award

import (
	"context"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// Repository persists achievement grants. The (user, achievement) pair is
// unique: implementations must guarantee that of any number of concurrent
// TryInsert calls for the same pair, exactly one wins.
type Repository interface {
	// TryInsert attempts to record a grant. Returns true when this call
	// created the grant, false when the pair was already granted (by an
	// earlier call or a concurrent winner). The returned grant is the one
	// actually on record, which is the existing grant when the call lost.
	TryInsert(ctx context.Context, grant *domain.Grant) (*domain.Grant, bool, error)

	// GetGrant returns the grant for a (user, achievement) pair, or nil
	// when the achievement has not been earned.
	GetGrant(ctx context.Context, userID, achievementID string) (*domain.Grant, error)

	// ListGrants returns all grants for a user, oldest first.
	ListGrants(ctx context.Context, userID string) ([]*domain.Grant, error)
}
