package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// Default point values applied when a definition omits points.
// Tiers mirror the rarity ladder so config authors can lean on defaults.
var defaultPointsByRarity = map[domain.Rarity]int{
	domain.RarityCommon:    25,
	domain.RarityRare:      50,
	domain.RarityEpic:      100,
	domain.RarityLegendary: 250,
}

// Loader loads and validates the achievement catalog from a JSON file.
// It performs file reading, JSON parsing, and comprehensive validation.
type Loader struct {
	configPath string
	validator  *Validator
	logger     *slog.Logger
}

// NewLoader creates a new Loader instance.
func NewLoader(configPath string, logger *slog.Logger) *Loader {
	return &Loader{
		configPath: configPath,
		validator:  NewValidator(),
		logger:     logger,
	}
}

// Load reads the catalog file and returns a validated Config.
// This is a fail-fast operation: an invalid catalog prevents startup.
//
// Steps:
//  1. Read the file from disk
//  2. Parse JSON into Config
//  3. Apply defaults (rarity, points, active flag semantics)
//  4. Validate all business rules
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	for _, def := range cfg.Achievements {
		// Backward compatibility: legacy catalog entries omit rarity.
		if def.Rarity == "" {
			def.Rarity = domain.RarityCommon
		}
		if def.Points == 0 {
			def.Points = defaultPointsByRarity[def.Rarity]
		}
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	l.logger.Info("Achievement catalog loaded",
		"achievements", len(cfg.Achievements),
		"active", countActive(&cfg),
		"config_path", l.configPath,
	)

	return &cfg, nil
}

func countActive(cfg *Config) int {
	count := 0
	for _, def := range cfg.Achievements {
		if def.Active {
			count++
		}
	}
	return count
}
