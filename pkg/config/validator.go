package config

import (
	"errors"
	"fmt"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// Validator validates achievement catalog files.
// It ensures all business rules are met before the application starts.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
// - At least one achievement exists
// - All achievement IDs are unique
// - Names are present
// - Rarity is a known tier
// - Points are non-negative
// - Built-in types carry the criteria field their evaluator reads
//
// Unknown (non-builtin) types are allowed: they evaluate to zero progress
// until an evaluator is registered, so the catalog can ship ahead of code.
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(config *Config) error {
	if len(config.Achievements) == 0 {
		return errors.New("config must have at least one achievement")
	}

	ids := make(map[string]bool)

	for _, def := range config.Achievements {
		if err := v.validateDefinition(def); err != nil {
			return fmt.Errorf("invalid achievement '%s': %w", def.ID, err)
		}

		if ids[def.ID] {
			return fmt.Errorf("duplicate achievement ID: %s", def.ID)
		}
		ids[def.ID] = true
	}

	return nil
}

// validateDefinition validates a single achievement definition.
func (v *Validator) validateDefinition(def *domain.AchievementDefinition) error {
	if def.ID == "" {
		return errors.New("achievement ID is required")
	}

	if def.Name == "" {
		return errors.New("achievement name is required")
	}

	if def.Type == "" {
		return errors.New("achievement type is required")
	}

	if !def.Rarity.IsValid() {
		return fmt.Errorf("invalid rarity: %s", def.Rarity)
	}

	if def.Points < 0 {
		return fmt.Errorf("points must be non-negative, got %d", def.Points)
	}

	return v.validateCriteria(def)
}

// validateCriteria checks that built-in types carry usable criteria.
func (v *Validator) validateCriteria(def *domain.AchievementDefinition) error {
	if !def.Type.IsBuiltin() {
		// Unknown type: no criteria rules until an evaluator exists.
		return nil
	}

	switch def.Type {
	case domain.TypeAlphabetMaster:
		if def.Criteria.RequiredCount <= 0 {
			return fmt.Errorf("alphabet_master requires required_count > 0, got %d", def.Criteria.RequiredCount)
		}
	case domain.TypePracticeStreak:
		if def.Criteria.RequiredStreak <= 0 {
			return fmt.Errorf("practice_streak requires required_streak > 0, got %d", def.Criteria.RequiredStreak)
		}
	case domain.TypeAccuracyExpert:
		if def.Criteria.RequiredAccuracy <= 0 || def.Criteria.RequiredAccuracy > 100 {
			return fmt.Errorf("accuracy_expert requires required_accuracy in (0,100], got %v", def.Criteria.RequiredAccuracy)
		}
	case domain.TypeSocialButterfly:
		if def.Criteria.RequiredFriends <= 0 {
			return fmt.Errorf("social_butterfly requires required_friends > 0, got %d", def.Criteria.RequiredFriends)
		}
	}

	return nil
}
