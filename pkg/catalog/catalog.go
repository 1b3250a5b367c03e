package catalog

import "github.com/utsavratan/gestureflow/pkg/domain"

// Catalog provides O(1) in-memory lookups for achievement definitions.
// The catalog is built at application startup from the achievements.json
// config file. Definitions are immutable at runtime; all lookups are
// read-only and thread-safe.
type Catalog interface {
	// GetByID retrieves a definition by its unique ID.
	// Returns nil if the achievement does not exist.
	GetByID(achievementID string) *domain.AchievementDefinition

	// GetByType retrieves all definitions of a given achievement type.
	// Returns empty slice if no definitions have this type.
	GetByType(t domain.AchievementType) []*domain.AchievementDefinition

	// GetActive retrieves all definitions with the active flag set,
	// ordered rarest first then by ID. These are the definitions the
	// engine evaluates after every activity event.
	GetActive() []*domain.AchievementDefinition

	// All retrieves every configured definition, active or not,
	// in catalog order.
	All() []*domain.AchievementDefinition

	// Reload rebuilds the catalog from the config file.
	// Returns error if the file cannot be read or is invalid.
	Reload() error
}
