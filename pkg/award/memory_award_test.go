package award

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

func newTestGrant(userID, achievementID string) *domain.Grant {
	return &domain.Grant{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now().UTC(),
	}
}

func TestMemoryRepository_TryInsert_FirstWins(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := newTestGrant("user-1", "alphabet-master")
	got, created, err := repo.TryInsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, first.ID, got.ID)

	// Second attempt loses and sees the original grant.
	second := newTestGrant("user-1", "alphabet-master")
	got, created, err = repo.TryInsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.EarnedAt, got.EarnedAt)
}

func TestMemoryRepository_TryInsert_DistinctPairs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, created, err := repo.TryInsert(ctx, newTestGrant("user-1", "alphabet-master"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same achievement, different user.
	_, created, err = repo.TryInsert(ctx, newTestGrant("user-2", "alphabet-master"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same user, different achievement.
	_, created, err = repo.TryInsert(ctx, newTestGrant("user-1", "week-warrior"))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMemoryRepository_GetGrant(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	grant, err := repo.GetGrant(ctx, "user-1", "alphabet-master")
	require.NoError(t, err)
	assert.Nil(t, grant, "unearned achievement has no grant")

	inserted := newTestGrant("user-1", "alphabet-master")
	_, _, err = repo.TryInsert(ctx, inserted)
	require.NoError(t, err)

	grant, err = repo.GetGrant(ctx, "user-1", "alphabet-master")
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, inserted.ID, grant.ID)
}

func TestMemoryRepository_ListGrants_OldestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	for i, achievementID := range []string{"third", "first", "second"} {
		offsets := map[string]time.Duration{"first": 0, "second": time.Hour, "third": 2 * time.Hour}
		grant := newTestGrant("user-1", achievementID)
		grant.EarnedAt = base.Add(offsets[achievementID])
		_, _, err := repo.TryInsert(ctx, grant)
		require.NoError(t, err, "insert %d", i)
	}

	grants, err := repo.ListGrants(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, grants, 3)
	assert.Equal(t, "first", grants[0].AchievementID)
	assert.Equal(t, "second", grants[1].AchievementID)
	assert.Equal(t, "third", grants[2].AchievementID)
}

func TestMemoryRepository_ListGrants_EmptyUser(t *testing.T) {
	repo := NewMemoryRepository()

	grants, err := repo.ListGrants(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestMemoryRepository_TryInsert_ConcurrentExactlyOneWinner(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const attempts = 50

	var (
		wg   sync.WaitGroup
		wins int64
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := repo.TryInsert(ctx, newTestGrant("user-1", "alphabet-master"))
			assert.NoError(t, err)
			if created {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins, "exactly one concurrent attempt must win")

	grants, err := repo.ListGrants(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, grants, 1)
}
