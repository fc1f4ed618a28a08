package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kasuganosora/livetable/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Engine.UseTieredVector)
	assert.Equal(t, 256, cfg.Engine.TieredBlockSize)

	assert.True(t, cfg.Interning.Enabled)

	assert.Equal(t, "unicode_ci", cfg.Collation.Default)

	assert.Equal(t, 10000, cfg.View.MaxIncrementalBatch)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileNotFound(t *testing.T) {
	cfg, err := Load("does_not_exist.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(map[string]interface{}{
		"engine": map[string]interface{}{
			"tiered_block_size": 128,
		},
		"collation": map[string]interface{}{
			"default": "binary",
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Engine.TieredBlockSize)
	assert.Equal(t, "binary", cfg.Collation.Default)
	// Untouched fields keep their defaults.
	assert.True(t, cfg.Engine.UseTieredVector)
}

func TestLoadRejectsInvalidTieredBlockSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data, _ := json.Marshal(map[string]interface{}{
		"engine": map[string]interface{}{"tiered_block_size": 0},
	})
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadRejectsUnknownCollation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data, _ := json.Marshal(map[string]interface{}{
		"collation": map[string]interface{}{"default": "klingon_ci"},
	})
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadOrDefaultFallsBackCleanly(t *testing.T) {
	os.Unsetenv("LIVETABLE_CONFIG")
	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.Equal(t, "unicode_ci", cfg.Collation.Default)
}

func TestTableOptionsProjectsEngineAndInterning(t *testing.T) {
	cfg := Default()
	cfg.Engine.TieredBlockSize = 64
	cfg.Interning.Enabled = false

	opts := cfg.TableOptions()
	assert.True(t, opts.UseTieredVector)
	assert.Equal(t, 64, opts.TieredBlockSize)
	assert.False(t, opts.UseStringInterning)
}

func TestApplyIncrementalConfigSetsViewPackageVar(t *testing.T) {
	defer func() { view.MaxIncrementalBatch = 10000 }()

	cfg := Default()
	cfg.View.MaxIncrementalBatch = 42
	cfg.ApplyIncrementalConfig()

	assert.Equal(t, 42, view.MaxIncrementalBatch)
}
