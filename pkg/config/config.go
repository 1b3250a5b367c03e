package config

import "github.com/utsavratan/gestureflow/pkg/domain"

// Config represents the top-level configuration loaded from achievements.json.
// This structure is parsed from JSON and validated during application startup.
type Config struct {
	Achievements []*domain.AchievementDefinition `json:"achievements"`
}
