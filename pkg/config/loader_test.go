package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// writeTempConfig writes JSON content to a temp file and returns its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "achievements.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_ValidConfig(t *testing.T) {
	path := writeTempConfig(t, `{
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
			},
			{
				"id": "week-streak",
				"name": "Consistent Learner",
				"description": "Practice 7 days in a row",
				"type": "practice_streak",
				"criteria": {"required_streak": 7},
				"points": 50,
				"rarity": "rare",
				"active": true
			}
		]
	}`)

	loader := NewLoader(path, testLogger())
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.Len(t, cfg.Achievements, 2)
	assert.Equal(t, "alphabet-master", cfg.Achievements[0].ID)
	assert.Equal(t, domain.TypeAlphabetMaster, cfg.Achievements[0].Type)
	assert.Equal(t, 26, cfg.Achievements[0].Criteria.RequiredCount)
	assert.Equal(t, domain.RarityEpic, cfg.Achievements[0].Rarity)
}

func TestLoader_Load_AppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `{
		"achievements": [
			{
				"id": "social-butterfly",
				"name": "Social Butterfly",
				"description": "Make 5 friends",
				"type": "social_butterfly",
				"criteria": {"required_friends": 5},
				"active": true
			}
		]
	}`)

	loader := NewLoader(path, testLogger())
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.Len(t, cfg.Achievements, 1)

	// Omitted rarity defaults to common; omitted points default by rarity.
	assert.Equal(t, domain.RarityCommon, cfg.Achievements[0].Rarity)
	assert.Equal(t, 25, cfg.Achievements[0].Points)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/achievements.json", testLogger())
	_, err := loader.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoader_Load_MalformedJSON(t *testing.T) {
	path := writeTempConfig(t, `{"achievements": [`)

	loader := NewLoader(path, testLogger())
	_, err := loader.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoader_Load_ValidationFailure(t *testing.T) {
	path := writeTempConfig(t, `{
		"achievements": [
			{
				"id": "broken",
				"name": "Broken",
				"description": "Missing criteria",
				"type": "alphabet_master",
				"criteria": {},
				"rarity": "common",
				"active": true
			}
		]
	}`)

	loader := NewLoader(path, testLogger())
	_, err := loader.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoader_Load_UnknownTypeAccepted(t *testing.T) {
	// Catalog entries for types without a registered evaluator load fine;
	// they just evaluate to zero progress until code catches up.
	path := writeTempConfig(t, `{
		"achievements": [
			{
				"id": "night-owl",
				"name": "Night Owl",
				"description": "Practice after midnight",
				"type": "night_owl",
				"criteria": {},
				"rarity": "rare",
				"active": true
			}
		]
	}`)

	loader := NewLoader(path, testLogger())
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.Len(t, cfg.Achievements, 1)
	assert.Equal(t, domain.AchievementType("night_owl"), cfg.Achievements[0].Type)
	assert.Equal(t, 50, cfg.Achievements[0].Points) // rare default
}
