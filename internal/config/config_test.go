package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Filters.Kind)
	assert.Nil(t, cfg.Display.PlotHeight)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[filters]
kind = "splits"
club = "CN Lugo"
from = "01/01/2023"

[display]
plot-height = 14
color = false

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Filters.Kind)
	assert.Equal(t, "splits", *cfg.Filters.Kind)
	require.NotNil(t, cfg.Filters.Club)
	assert.Equal(t, "CN Lugo", *cfg.Filters.Club)
	require.NotNil(t, cfg.Filters.From)
	assert.Equal(t, "01/01/2023", *cfg.Filters.From)
	assert.Nil(t, cfg.Filters.To)

	require.NotNil(t, cfg.Display.PlotHeight)
	assert.Equal(t, 14, *cfg.Display.PlotHeight)
	require.NotNil(t, cfg.Display.Color)
	assert.False(t, *cfg.Display.Color)

	assert.Nil(t, cfg.Log.File)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[filters]\nswimmer = \"x\"\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filters.swimmer")
}

func TestLoadConfigBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[filters\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "swimstat", "config.toml"), DefaultConfigPath())

	t.Setenv("XDG_STATE_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "swimstat", "debug.log"), DefaultLogPath())
}
