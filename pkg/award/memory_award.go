package award

import (
	"context"
	"sort"
	"sync"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

type grantKey struct {
	userID        string
	achievementID string
}

// MemoryRepository is an in-memory Repository for local development and
// tests. The mutex gives the same exactly-one-winner behavior as the
// database unique constraint.
type MemoryRepository struct {
	mu     sync.Mutex
	grants map[grantKey]*domain.Grant
}

// NewMemoryRepository creates a new in-memory award repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		grants: make(map[grantKey]*domain.Grant),
	}
}

// TryInsert attempts to record a grant, losing gracefully to any earlier one.
func (r *MemoryRepository) TryInsert(ctx context.Context, grant *domain.Grant) (*domain.Grant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := grantKey{userID: grant.UserID, achievementID: grant.AchievementID}
	if existing, ok := r.grants[key]; ok {
		copied := *existing
		return &copied, false, nil
	}

	copied := *grant
	r.grants[key] = &copied

	returned := copied
	return &returned, true, nil
}

// GetGrant returns the grant for a (user, achievement) pair.
func (r *MemoryRepository) GetGrant(ctx context.Context, userID, achievementID string) (*domain.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	grant, ok := r.grants[grantKey{userID: userID, achievementID: achievementID}]
	if !ok {
		return nil, nil
	}

	copied := *grant
	return &copied, nil
}

// ListGrants returns all grants for a user, oldest first.
func (r *MemoryRepository) ListGrants(ctx context.Context, userID string) ([]*domain.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var grants []*domain.Grant
	for key, grant := range r.grants {
		if key.userID == userID {
			copied := *grant
			grants = append(grants, &copied)
		}
	}

	sort.Slice(grants, func(i, j int) bool {
		if grants[i].EarnedAt.Equal(grants[j].EarnedAt) {
			return grants[i].AchievementID < grants[j].AchievementID
		}
		return grants[i].EarnedAt.Before(grants[j].EarnedAt)
	})

	return grants, nil
}
