package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.12, cfg.Engine.MinDistance)
	assert.Equal(t, 3.0, cfg.Engine.HueNudge)
	assert.Equal(t, 16, cfg.Engine.MaxRetries)
	assert.Equal(t, DefaultCount, cfg.Engine.Count)
	assert.Equal(t, DefaultDPI, cfg.Engine.DPI)
	assert.Equal(t, "#FAFAF7", cfg.Colors.LightBG)
	assert.Equal(t, "#2E7FE8", cfg.Colors.Accent)
	assert.Equal(t, ":8000", cfg.Server.Listen)
	assert.Equal(t, 4, cfg.Server.RenderWorkers)
	assert.Empty(t, cfg.Fonts.Dir)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Engine.MinDistance, cfg.Engine.MinDistance)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[engine]
min_distance = 0.10
hue_nudge = 5.0
max_retries = 8
count = 6
dpi = 150.0

[colors]
accent = "#AA3322"

[server]
listen = ":9090"
render_workers = 2

[fonts]
dir = "/usr/share/fonts/inter"
watch = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.10, cfg.Engine.MinDistance)
	assert.Equal(t, 5.0, cfg.Engine.HueNudge)
	assert.Equal(t, 8, cfg.Engine.MaxRetries)
	assert.Equal(t, 6, cfg.Engine.Count)
	assert.Equal(t, 150.0, cfg.Engine.DPI)
	assert.Equal(t, "#AA3322", cfg.Colors.Accent)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 2, cfg.Server.RenderWorkers)
	assert.Equal(t, "/usr/share/fonts/inter", cfg.Fonts.Dir)
	assert.True(t, cfg.Fonts.Watch)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[engine]
count = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Changed field
	assert.Equal(t, 5, cfg.Engine.Count)

	// Unchanged fields keep defaults
	assert.Equal(t, 0.12, cfg.Engine.MinDistance)
	assert.Equal(t, ":8000", cfg.Server.Listen)
	assert.Equal(t, "#2E7FE8", cfg.Colors.Accent)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Engine.Count = 4
	cfg.Fonts.Dir = "/tmp/fonts"

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Engine.Count)
	assert.Equal(t, "/tmp/fonts", loaded.Fonts.Dir)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/themelab/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "themelab/config.toml")
}
