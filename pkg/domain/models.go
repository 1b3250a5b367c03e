package domain

import (
	"fmt"
	"time"
)

// AchievementType defines how progress toward an achievement is measured.
// The set is open for extension: unknown types evaluate to zero progress
// instead of failing, so new types can ship in config before code.
type AchievementType string

const (
	// TypeAlphabetMaster tracks completed alphabet lessons against
	// Criteria.RequiredCount (e.g., "complete all 26 letters").
	TypeAlphabetMaster AchievementType = "alphabet_master"

	// TypePracticeStreak tracks consecutive days practiced against
	// Criteria.RequiredStreak (e.g., "practice 7 days in a row").
	TypePracticeStreak AchievementType = "practice_streak"

	// TypeAccuracyExpert tracks average session accuracy against
	// Criteria.RequiredAccuracy (e.g., "average 90% accuracy").
	TypeAccuracyExpert AchievementType = "accuracy_expert"

	// TypeSocialButterfly tracks accepted friendships against
	// Criteria.RequiredFriends (e.g., "make 5 friends").
	TypeSocialButterfly AchievementType = "social_butterfly"
)

// IsBuiltin returns true if the type has a built-in evaluator.
func (t AchievementType) IsBuiltin() bool {
	switch t {
	case TypeAlphabetMaster, TypePracticeStreak, TypeAccuracyExpert, TypeSocialButterfly:
		return true
	default:
		return false
	}
}

// Rarity is the cosmetic tier of an achievement. It carries no engine
// semantics beyond default point values and display ordering.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// IsValid returns true if the rarity is a known tier.
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// SortWeight orders rarities from legendary (highest) to common (lowest).
// Matches the catalog listing order of the UI (rarest first).
func (r Rarity) SortWeight() int {
	switch r {
	case RarityLegendary:
		return 4
	case RarityEpic:
		return 3
	case RarityRare:
		return 2
	case RarityCommon:
		return 1
	default:
		return 0
	}
}

// Criteria holds the type-specific parameters of an achievement definition.
// Only the field relevant to the definition's type is consulted; the rest
// stay zero.
type Criteria struct {
	RequiredCount    int     `json:"required_count,omitempty"`    // alphabet_master
	RequiredStreak   int     `json:"required_streak,omitempty"`   // practice_streak
	RequiredAccuracy float64 `json:"required_accuracy,omitempty"` // accuracy_expert
	RequiredFriends  int     `json:"required_friends,omitempty"`  // social_butterfly
}

// AchievementDefinition describes a single earnable achievement.
// Definitions are immutable once published and identified by ID.
type AchievementDefinition struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        AchievementType `json:"type"`
	Criteria    Criteria        `json:"criteria"`
	Points      int             `json:"points"` // XP reward carried in the award notification
	Rarity      Rarity          `json:"rarity"`
	IconURL     string          `json:"icon_url,omitempty"`
	Active      bool            `json:"active"`
}

// UserStatsSnapshot is a read-only view of the per-user aggregates the
// evaluators consume. It is fetched on demand from the stats provider and
// never mutated by the engine.
type UserStatsSnapshot struct {
	UserID           string    `json:"user_id"`
	LessonsCompleted int       `json:"lessons_completed"`
	CurrentStreak    int       `json:"current_streak"`
	AverageAccuracy  float64   `json:"average_accuracy"`
	AccuracySamples  int       `json:"accuracy_samples"`
	FriendCount      int       `json:"friend_count"`
	LastPracticedAt  time.Time `json:"last_practiced_at,omitempty"`
}

// Grant records that a user earned a specific achievement.
// At most one grant ever exists per (user, achievement); grants are never
// revoked or overwritten.
type Grant struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// LevelState is a user's XP/level ledger record.
// Invariants after every update:
//   - CurrentLevel >= 1
//   - 0 <= ExperiencePoints < Threshold(CurrentLevel)
//   - TotalExperience is monotonically non-decreasing
type LevelState struct {
	UserID           string    `json:"user_id"`
	CurrentLevel     int       `json:"current_level"`
	ExperiencePoints int       `json:"experience_points"`
	TotalExperience  int       `json:"total_experience"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Threshold returns the XP required to advance from the given level to the
// next one. This formula is the contract for all level arithmetic.
func Threshold(level int) int {
	return level * 100
}

// NewLevelState returns the initial ledger record for a user (level 1, no XP).
func NewLevelState(userID string) *LevelState {
	return &LevelState{
		UserID:       userID,
		CurrentLevel: 1,
	}
}

// Apply adds a non-negative XP delta to the state and returns the levels
// reached, in ascending order. A single large delta can cross several
// thresholds; each crossing is reported once.
func (s *LevelState) Apply(delta int) []int {
	s.ExperiencePoints += delta
	s.TotalExperience += delta

	var reached []int
	for s.ExperiencePoints >= Threshold(s.CurrentLevel) {
		s.ExperiencePoints -= Threshold(s.CurrentLevel)
		s.CurrentLevel++
		reached = append(reached, s.CurrentLevel)
	}
	return reached
}

// SessionType identifies the kind of practice that produced an activity event.
type SessionType string

const (
	// SessionAlphabet is fingerspelling practice against a target letter.
	SessionAlphabet SessionType = "alphabet"

	// SessionText is free-form practice against a target word or phrase.
	SessionText SessionType = "text"
)

// IsValid returns true if the session type is known.
func (s SessionType) IsValid() bool {
	switch s {
	case SessionAlphabet, SessionText:
		return true
	default:
		return false
	}
}

// ActivityEvent is one completed practice activity. Events are ephemeral
// inputs: the engine derives stats, XP, and grants from them but does not
// persist the events themselves.
type ActivityEvent struct {
	UserID          string      `json:"user_id"`
	SessionType     SessionType `json:"session_type"`
	DurationSeconds int         `json:"duration_seconds"`
	AccuracyScore   float64     `json:"accuracy_score"` // opaque 0-100 signal
	Correct         bool        `json:"correct"`
}

// Validate checks the event is well-formed before any state is touched.
func (e *ActivityEvent) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !e.SessionType.IsValid() {
		return fmt.Errorf("invalid session_type: %q", e.SessionType)
	}
	if e.AccuracyScore < 0 || e.AccuracyScore > 100 {
		return fmt.Errorf("accuracy_score must be in [0,100], got %v", e.AccuracyScore)
	}
	if e.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must be non-negative, got %d", e.DurationSeconds)
	}
	return nil
}

// AchievementStatus is the query-API view of one achievement for one user:
// the definition plus whether it is earned and how close the user is.
type AchievementStatus struct {
	Definition *AchievementDefinition `json:"definition"`
	Earned     bool                   `json:"earned"`
	Progress   float64                `json:"progress"` // 0-100, 100 when earned
	EarnedAt   *time.Time             `json:"earned_at,omitempty"`
}
