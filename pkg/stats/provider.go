// Package stats exposes the per-user aggregate counters the progression
// engine consumes. The engine does not own these aggregates; it reads them
// on demand and reports practice completions into them.
package stats

import (
	"context"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// Provider is the engine's view of the user statistics store.
type Provider interface {
	// GetStats retrieves the current aggregate snapshot for a user.
	// Users with no recorded activity get a zero-valued snapshot, not an
	// error (lazy initialization).
	GetStats(ctx context.Context, userID string) (*domain.UserStatsSnapshot, error)

	// RecordCompletion folds one completed practice session into the
	// user's aggregates: increments lessons_completed when the session
	// was correct, appends the accuracy sample, and advances the daily
	// streak (same UTC day keeps it, the day after extends it, any gap
	// resets it to 1).
	//
	// Returns the post-update snapshot and whether the session continued
	// an existing streak (used for the XP streak bonus). A session
	// continues a streak when it was correct and the user already had a
	// streak going before today's first practice.
	RecordCompletion(ctx context.Context, userID string, sessionType domain.SessionType, accuracy float64, correct bool) (*domain.UserStatsSnapshot, bool, error)

	// SetFriendCount records the user's accepted-friendship count.
	// Friendship writes happen outside the engine; the social system
	// pushes the resulting count here so social achievements can be
	// evaluated.
	SetFriendCount(ctx context.Context, userID string, count int) error
}
