package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

func validDefinition() *domain.AchievementDefinition {
	return &domain.AchievementDefinition{
		ID:          "alphabet-master",
		Name:        "Alphabet Master",
		Description: "Complete all 26 alphabet lessons",
		Type:        domain.TypeAlphabetMaster,
		Criteria:    domain.Criteria{RequiredCount: 26},
		Points:      100,
		Rarity:      domain.RarityEpic,
		Active:      true,
	}
}

func TestValidator_Validate_ValidConfig(t *testing.T) {
	v := NewValidator()
	cfg := &Config{Achievements: []*domain.AchievementDefinition{validDefinition()}}

	require.NoError(t, v.Validate(cfg))
}

func TestValidator_Validate_EmptyConfig(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one achievement")
}

func TestValidator_Validate_DuplicateID(t *testing.T) {
	v := NewValidator()
	cfg := &Config{Achievements: []*domain.AchievementDefinition{
		validDefinition(),
		validDefinition(),
	}}

	err := v.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate achievement ID")
}

func TestValidator_Validate_DefinitionRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *domain.AchievementDefinition)
		wantErr string
	}{
		{
			name:    "missing ID",
			mutate:  func(d *domain.AchievementDefinition) { d.ID = "" },
			wantErr: "achievement ID is required",
		},
		{
			name:    "missing name",
			mutate:  func(d *domain.AchievementDefinition) { d.Name = "" },
			wantErr: "achievement name is required",
		},
		{
			name:    "missing type",
			mutate:  func(d *domain.AchievementDefinition) { d.Type = "" },
			wantErr: "achievement type is required",
		},
		{
			name:    "invalid rarity",
			mutate:  func(d *domain.AchievementDefinition) { d.Rarity = "mythic" },
			wantErr: "invalid rarity",
		},
		{
			name:    "negative points",
			mutate:  func(d *domain.AchievementDefinition) { d.Points = -10 },
			wantErr: "points must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			def := validDefinition()
			tt.mutate(def)
			cfg := &Config{Achievements: []*domain.AchievementDefinition{def}}

			err := v.Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_Validate_CriteriaRules(t *testing.T) {
	tests := []struct {
		name     string
		typ      domain.AchievementType
		criteria domain.Criteria
		wantErr  bool
	}{
		{
			name:     "alphabet_master with count",
			typ:      domain.TypeAlphabetMaster,
			criteria: domain.Criteria{RequiredCount: 26},
			wantErr:  false,
		},
		{
			name:     "alphabet_master missing count",
			typ:      domain.TypeAlphabetMaster,
			criteria: domain.Criteria{},
			wantErr:  true,
		},
		{
			name:     "practice_streak with streak",
			typ:      domain.TypePracticeStreak,
			criteria: domain.Criteria{RequiredStreak: 7},
			wantErr:  false,
		},
		{
			name:     "practice_streak missing streak",
			typ:      domain.TypePracticeStreak,
			criteria: domain.Criteria{},
			wantErr:  true,
		},
		{
			name:     "accuracy_expert with accuracy",
			typ:      domain.TypeAccuracyExpert,
			criteria: domain.Criteria{RequiredAccuracy: 90},
			wantErr:  false,
		},
		{
			name:     "accuracy_expert accuracy above 100",
			typ:      domain.TypeAccuracyExpert,
			criteria: domain.Criteria{RequiredAccuracy: 120},
			wantErr:  true,
		},
		{
			name:     "accuracy_expert zero accuracy",
			typ:      domain.TypeAccuracyExpert,
			criteria: domain.Criteria{},
			wantErr:  true,
		},
		{
			name:     "social_butterfly with friends",
			typ:      domain.TypeSocialButterfly,
			criteria: domain.Criteria{RequiredFriends: 5},
			wantErr:  false,
		},
		{
			name:     "social_butterfly missing friends",
			typ:      domain.TypeSocialButterfly,
			criteria: domain.Criteria{},
			wantErr:  true,
		},
		{
			name:     "unknown type needs no criteria",
			typ:      domain.AchievementType("night_owl"),
			criteria: domain.Criteria{},
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			def := validDefinition()
			def.Type = tt.typ
			def.Criteria = tt.criteria
			cfg := &Config{Achievements: []*domain.AchievementDefinition{def}}

			err := v.Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
