package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavratan/gestureflow/pkg/config"
	"github.com/utsavratan/gestureflow/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	return &config.Config{
		Achievements: []*domain.AchievementDefinition{
			{
				ID:       "alphabet-master",
				Name:     "Alphabet Master",
				Type:     domain.TypeAlphabetMaster,
				Criteria: domain.Criteria{RequiredCount: 26},
				Points:   100,
				Rarity:   domain.RarityEpic,
				Active:   true,
			},
			{
				ID:       "week-streak",
				Name:     "Consistent Learner",
				Type:     domain.TypePracticeStreak,
				Criteria: domain.Criteria{RequiredStreak: 7},
				Points:   50,
				Rarity:   domain.RarityRare,
				Active:   true,
			},
			{
				ID:       "first-signs",
				Name:     "First Signs",
				Type:     domain.TypeAlphabetMaster,
				Criteria: domain.Criteria{RequiredCount: 5},
				Points:   25,
				Rarity:   domain.RarityCommon,
				Active:   true,
			},
			{
				ID:       "legacy-badge",
				Name:     "Legacy Badge",
				Type:     domain.TypeSocialButterfly,
				Criteria: domain.Criteria{RequiredFriends: 3},
				Points:   25,
				Rarity:   domain.RarityCommon,
				Active:   false, // retired
			},
		},
	}
}

func TestInMemoryCatalog_GetByID(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	def := c.GetByID("alphabet-master")
	require.NotNil(t, def)
	assert.Equal(t, "Alphabet Master", def.Name)

	assert.Nil(t, c.GetByID("does-not-exist"))
}

func TestInMemoryCatalog_GetByType(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	defs := c.GetByType(domain.TypeAlphabetMaster)
	assert.Len(t, defs, 2)

	assert.Empty(t, c.GetByType(domain.TypeAccuracyExpert))
}

func TestInMemoryCatalog_GetActive(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	active := c.GetActive()
	require.Len(t, active, 3)

	// Retired definitions are excluded.
	for _, def := range active {
		assert.NotEqual(t, "legacy-badge", def.ID)
	}

	// Rarest first.
	assert.Equal(t, "alphabet-master", active[0].ID)
	assert.Equal(t, "week-streak", active[1].ID)
	assert.Equal(t, "first-signs", active[2].ID)
}

func TestInMemoryCatalog_All(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	all := c.All()
	assert.Len(t, all, 4)
}

func TestInMemoryCatalog_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"achievements": [
			{
				"id": "alphabet-master",
				"name": "Alphabet Master",
				"description": "Complete all 26 alphabet lessons",
				"type": "alphabet_master",
				"criteria": {"required_count": 26},
				"points": 100,
				"rarity": "epic",
				"active": true
			}
		]
	}`), 0o600))

	c := NewInMemoryCatalog(testConfig(), path, testLogger())
	require.Len(t, c.All(), 4)

	require.NoError(t, c.Reload())
	assert.Len(t, c.All(), 1)
	assert.NotNil(t, c.GetByID("alphabet-master"))
}

func TestInMemoryCatalog_Reload_PreservesHeldSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"achievements": [
			{
				"id": "replacement-badge",
				"name": "Replacement Badge",
				"description": "Only definition after reload",
				"type": "alphabet_master",
				"criteria": {"required_count": 1},
				"points": 10,
				"rarity": "common",
				"active": true
			}
		]
	}`), 0o600))

	c := NewInMemoryCatalog(testConfig(), path, testLogger())

	// A caller may iterate these while a reload happens; the reload must
	// not rewrite their elements in place.
	heldActive := c.GetActive()
	heldAll := c.All()
	require.Len(t, heldActive, 3)

	require.NoError(t, c.Reload())

	assert.Equal(t, "alphabet-master", heldActive[0].ID)
	assert.Equal(t, "week-streak", heldActive[1].ID)
	assert.Equal(t, "first-signs", heldActive[2].ID)
	assert.Len(t, heldAll, 4)

	fresh := c.GetActive()
	require.Len(t, fresh, 1)
	assert.Equal(t, "replacement-badge", fresh[0].ID)
}

func TestInMemoryCatalog_Reload_InvalidFile(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "/nonexistent/achievements.json", testLogger())

	require.Error(t, c.Reload())

	// Failed reload leaves the existing catalog intact.
	assert.Len(t, c.All(), 4)
}

func TestInMemoryCatalog_ConcurrentReads(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = c.GetByID("alphabet-master")
				_ = c.GetActive()
				_ = c.GetByType(domain.TypePracticeStreak)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
