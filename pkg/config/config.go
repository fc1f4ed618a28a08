// Package config loads and validates the engine's runtime configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kasuganosora/livetable/pkg/logging"
	"github.com/kasuganosora/livetable/pkg/table"
	"github.com/kasuganosora/livetable/pkg/view"
)

// Config is the top-level configuration for an embedded livetable engine.
type Config struct {
	Engine    EngineConfig    `json:"engine"`
	Interning InterningConfig `json:"interning"`
	Collation CollationConfig `json:"collation"`
	View      ViewConfig      `json:"view"`
	Log       LogConfig       `json:"log"`
}

// EngineConfig controls the backing sequence storage for new tables.
type EngineConfig struct {
	// UseTieredVector backs every column of a new table with a
	// TieredVectorSequence instead of the default ArraySequence; see
	// table.Options.UseTieredVector. It is a static, construction-time
	// choice — tables never convert storage after creation.
	UseTieredVector bool `json:"use_tiered_vector"`
	// TieredBlockSize overrides the tiered vector's minimum block size
	// (table.Options.TieredBlockSize / sequence.NewTieredVectorSequenceWithBlockSize).
	// Load rejects values below 1, whether or not UseTieredVector is
	// set; TableOptions passes it through, and it has no effect unless
	// UseTieredVector is set.
	TieredBlockSize int `json:"tiered_block_size"`
}

// InterningConfig controls reference-counted string interning for new tables.
type InterningConfig struct {
	Enabled bool `json:"enabled"`
}

// CollationConfig names a default collation. Load checks that Default
// is a registered collation name; nothing else reads it: a SortKey
// with an empty Collation compares strings byte-wise, and the
// expression language always compares strings byte-wise.
type CollationConfig struct {
	Default string `json:"default"`
}

// ViewConfig bounds incremental view maintenance.
type ViewConfig struct {
	// MaxIncrementalBatch caps how many changeset entries a view's
	// ApplyChanges will walk one-by-one before falling back to a full
	// Rebuild; see view.MaxIncrementalBatch, which ApplyIncrementalConfig
	// sets from this field.
	MaxIncrementalBatch int `json:"max_incremental_batch"`
}

// LogConfig configures the engine's structured logger.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "json" or "text"
}

// Default returns the engine's default configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			UseTieredVector: true,
			TieredBlockSize: 256,
		},
		Interning: InterningConfig{
			Enabled: true,
		},
		Collation: CollationConfig{
			Default: "unicode_ci",
		},
		View: ViewConfig{
			MaxIncrementalBatch: 10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configPath and merges it over Default. An empty path
// returns Default unchanged.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries $LIVETABLE_CONFIG, then a handful of conventional
// paths, and falls back to Default if none load cleanly.
func LoadOrDefault() *Config {
	if envPath := os.Getenv("LIVETABLE_CONFIG"); envPath != "" {
		if cfg, err := Load(envPath); err == nil {
			return cfg
		}
	}

	for _, path := range []string{"config.json", "./config/config.json", "/etc/livetable/config.json"} {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if cfg, err := Load(absPath); err == nil {
			return cfg
		}
	}

	return Default()
}

func validate(cfg *Config) error {
	if cfg.Engine.TieredBlockSize < 1 {
		return fmt.Errorf("engine.tiered_block_size must be greater than 0")
	}
	if cfg.View.MaxIncrementalBatch < 1 {
		return fmt.Errorf("view.max_incremental_batch must be greater than 0")
	}
	if !view.GetGlobalCollationEngine().IsKnownName(cfg.Collation.Default) {
		return fmt.Errorf("collation.default names an unknown collation: %s", cfg.Collation.Default)
	}
	return nil
}

// TableOptions projects the Engine and Interning sections onto
// table.Options, for table.NewWithOptions.
func (cfg *Config) TableOptions() table.Options {
	return table.Options{
		UseTieredVector:    cfg.Engine.UseTieredVector,
		TieredBlockSize:    cfg.Engine.TieredBlockSize,
		UseStringInterning: cfg.Interning.Enabled,
	}
}

// ApplyIncrementalConfig sets the package-level view.MaxIncrementalBatch
// from cfg.View.MaxIncrementalBatch. Call once after loading cfg, before
// constructing any FilterView/SortedView/JoinView.
func (cfg *Config) ApplyIncrementalConfig() {
	view.MaxIncrementalBatch = cfg.View.MaxIncrementalBatch
}

// Logger builds a logging.Logger from cfg.Log.
func (cfg *Config) Logger() *logging.Logger {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}
