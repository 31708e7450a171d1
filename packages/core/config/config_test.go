package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAndLoadConfig_Defaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFindAndLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := `{"store": "redis://localhost:6379/2", "logLevel": "debug", "noColor": true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".respvarsrc"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.GetNoColor())
	assert.False(t, cfg.GetVerbose())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"Accept": "application/json"}

	merged := base.Merge(&Config{
		Store:   "memory:",
		Verbose: BoolPtr(true),
		Headers: map[string]string{"Authorization": "Bearer x"},
	})

	assert.Equal(t, "memory:", merged.Store)
	assert.Equal(t, "warn", merged.LogLevel)
	assert.True(t, merged.GetVerbose())
	assert.Equal(t, map[string]string{
		"Accept":        "application/json",
		"Authorization": "Bearer x",
	}, merged.Headers)
	assert.Len(t, base.Headers, 1)

	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respvars.config.json")
	cfg := DefaultConfig()
	cfg.Store = "sqlite:./vars.db"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
