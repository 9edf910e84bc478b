package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the data sources and view preferences for a workspace.
type Config struct {
	Version int           `yaml:"version"`
	Data    DataConfig    `yaml:"data"`
	View    ViewConfig    `yaml:"view"`
	State   StateConfig   `yaml:"state"`
	Logging LoggingConfig `yaml:"logging"`
	Alias   AliasConfig   `yaml:"alias"`
}

// DataConfig locates the static reference files. Relative paths resolve
// against the workspace root.
type DataConfig struct {
	DifficultyTable string `yaml:"difficulty_table"`
	MatchingTable   string `yaml:"matching_table"`
	VersionOrder    string `yaml:"version_order"`
}

// ViewConfig holds the initial list view.
type ViewConfig struct {
	SortKey          string   `yaml:"sort_key"`
	SortDirection    string   `yaml:"sort_direction"`
	ItemsPerPage     int      `yaml:"items_per_page"`
	DisabledVersions []string `yaml:"disabled_versions,omitempty"`
}

// StateConfig selects where the last export and page size are kept.
type StateConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LoggingConfig controls the workspace log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AliasConfig tunes alias suggestion.
type AliasConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Data: DataConfig{
			DifficultyTable: "data/difficulty_table.json",
			MatchingTable:   "data/matching_table.json",
			VersionOrder:    "data/version_order.json",
		},
		View: ViewConfig{
			SortKey:       "clearType",
			SortDirection: "asc",
			ItemsPerPage:  10,
		},
		State: StateConfig{
			Backend: "bolt",
			Path:    ".scoreview/state.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Alias: AliasConfig{
			Threshold: 0.85,
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Data.DifficultyTable == "" {
		c.Data.DifficultyTable = defaults.Data.DifficultyTable
	}
	if c.Data.MatchingTable == "" {
		c.Data.MatchingTable = defaults.Data.MatchingTable
	}
	if c.Data.VersionOrder == "" {
		c.Data.VersionOrder = defaults.Data.VersionOrder
	}
	if c.View.SortKey == "" {
		c.View.SortKey = defaults.View.SortKey
	}
	if c.View.SortDirection == "" {
		c.View.SortDirection = defaults.View.SortDirection
	}
	if c.View.ItemsPerPage == 0 {
		c.View.ItemsPerPage = defaults.View.ItemsPerPage
	}
	if c.State.Backend == "" {
		c.State.Backend = defaults.State.Backend
	}
	if c.State.Path == "" {
		c.State.Path = defaults.State.Path
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Alias.Threshold == 0 {
		c.Alias.Threshold = defaults.Alias.Threshold
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
