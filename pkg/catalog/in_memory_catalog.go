package catalog

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/utsavratan/gestureflow/pkg/config"
	"github.com/utsavratan/gestureflow/pkg/domain"
)

// InMemoryCatalog provides O(1) in-memory lookups for achievement
// definitions. All indexes are built at startup and provide thread-safe
// read access. Published definitions are immutable; Reload swaps the whole
// index set under the write lock.
type InMemoryCatalog struct {
	byID       map[string]*domain.AchievementDefinition
	byType     map[domain.AchievementType][]*domain.AchievementDefinition
	active     []*domain.AchievementDefinition // rarest first, then by ID
	all        []*domain.AchievementDefinition // catalog order
	configPath string
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewInMemoryCatalog creates a new catalog from the provided configuration.
// The catalog is immediately built and ready for lookups.
func NewInMemoryCatalog(cfg *config.Config, configPath string, logger *slog.Logger) *InMemoryCatalog {
	c := &InMemoryCatalog{
		configPath: configPath,
		logger:     logger,
	}

	c.build(cfg)

	return c
}

// build constructs all catalog indexes from the configuration.
// It replaces all existing catalog data.
func (c *InMemoryCatalog) build(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Fresh slices every build: callers may still be iterating a slice a
	// previous GetActive/All handed out, so the old backing arrays must
	// stay untouched.
	c.byID = make(map[string]*domain.AchievementDefinition, len(cfg.Achievements))
	c.byType = make(map[domain.AchievementType][]*domain.AchievementDefinition)
	c.active = make([]*domain.AchievementDefinition, 0, len(cfg.Achievements))
	c.all = make([]*domain.AchievementDefinition, 0, len(cfg.Achievements))

	for _, def := range cfg.Achievements {
		c.byID[def.ID] = def
		c.byType[def.Type] = append(c.byType[def.Type], def)
		c.all = append(c.all, def)
		if def.Active {
			c.active = append(c.active, def)
		}
	}

	// Rarest first matches the UI listing order; ID breaks ties so the
	// evaluation order is deterministic.
	sort.SliceStable(c.active, func(i, j int) bool {
		wi, wj := c.active[i].Rarity.SortWeight(), c.active[j].Rarity.SortWeight()
		if wi != wj {
			return wi > wj
		}
		return c.active[i].ID < c.active[j].ID
	})

	c.logger.Info("Achievement catalog built",
		"total", len(c.all),
		"active", len(c.active),
		"types", len(c.byType),
	)
}

// GetByID retrieves a definition by its unique ID.
// Returns nil if the achievement does not exist.
func (c *InMemoryCatalog) GetByID(achievementID string) *domain.AchievementDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.byID[achievementID]
}

// GetByType retrieves all definitions of a given achievement type.
// Returns an empty slice if no definitions have this type.
func (c *InMemoryCatalog) GetByType(t domain.AchievementType) []*domain.AchievementDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := c.byType[t]
	if defs == nil {
		return []*domain.AchievementDefinition{}
	}

	// The slice is safe to hand out - definitions are immutable.
	return defs
}

// GetActive retrieves all active definitions, rarest first.
func (c *InMemoryCatalog) GetActive() []*domain.AchievementDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.active
}

// All retrieves every configured definition in catalog order.
func (c *InMemoryCatalog) All() []*domain.AchievementDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.all
}

// Reload rebuilds the catalog from the config file.
func (c *InMemoryCatalog) Reload() error {
	loader := config.NewLoader(c.configPath, c.logger)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	c.build(cfg)

	c.logger.Info("Achievement catalog reloaded")

	return nil
}
