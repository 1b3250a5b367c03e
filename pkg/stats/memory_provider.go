package stats

import (
	"context"
	"sync"
	"time"

	"github.com/utsavratan/gestureflow/pkg/common"
	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

type userRecord struct {
	lessonsCompleted int
	currentStreak    int
	accuracySum      float64
	accuracyCount    int
	friendCount      int
	lastPracticedAt  time.Time
}

// MemoryProvider is an in-memory Provider for local development and tests.
// It applies the same streak transitions as the PostgreSQL provider, using
// an injectable clock so day boundaries can be exercised deterministically.
type MemoryProvider struct {
	mu    sync.Mutex
	users map[string]*userRecord
	now   func() time.Time
}

// NewMemoryProvider creates a new in-memory stats provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		users: make(map[string]*userRecord),
		now:   time.Now,
	}
}

// SetClock overrides the provider's clock. Test use only.
func (p *MemoryProvider) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

// GetStats retrieves the current aggregate snapshot for a user.
func (p *MemoryProvider) GetStats(ctx context.Context, userID string) (*domain.UserStatsSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.users[userID]
	if !ok {
		// No activity recorded yet (lazy initialization).
		return &domain.UserStatsSnapshot{UserID: userID}, nil
	}

	return snapshotOf(userID, rec), nil
}

// RecordCompletion folds one completed session into the user's aggregates.
func (p *MemoryProvider) RecordCompletion(ctx context.Context, userID string, sessionType domain.SessionType, accuracy float64, correct bool) (*domain.UserStatsSnapshot, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()

	rec, ok := p.users[userID]
	if !ok {
		rec = &userRecord{}
		p.users[userID] = rec
	}

	if correct {
		rec.lessonsCompleted++
	}

	switch {
	case rec.lastPracticedAt.IsZero():
		rec.currentStreak = 1
	case common.SameUTCDay(rec.lastPracticedAt, now):
		// Same day, streak unchanged.
	case common.IsPreviousUTCDay(rec.lastPracticedAt, now):
		rec.currentStreak++
	default:
		rec.currentStreak = 1
	}

	rec.accuracySum += accuracy
	rec.accuracyCount++
	rec.lastPracticedAt = now

	continued := correct && rec.currentStreak > 1

	return snapshotOf(userID, rec), continued, nil
}

// SetFriendCount records the user's accepted-friendship count.
func (p *MemoryProvider) SetFriendCount(ctx context.Context, userID string, count int) error {
	if count < 0 {
		return errors.ErrValidationFailed("count", "must be non-negative")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.users[userID]
	if !ok {
		rec = &userRecord{}
		p.users[userID] = rec
	}
	rec.friendCount = count

	return nil
}

func snapshotOf(userID string, rec *userRecord) *domain.UserStatsSnapshot {
	snapshot := &domain.UserStatsSnapshot{
		UserID:           userID,
		LessonsCompleted: rec.lessonsCompleted,
		CurrentStreak:    rec.currentStreak,
		AccuracySamples:  rec.accuracyCount,
		FriendCount:      rec.friendCount,
		LastPracticedAt:  rec.lastPracticedAt,
	}
	if rec.accuracyCount > 0 {
		snapshot.AverageAccuracy = rec.accuracySum / float64(rec.accuracyCount)
	}
	return snapshot
}
