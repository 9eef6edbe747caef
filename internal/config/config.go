// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultListen        = ":8000"
	DefaultRenderWorkers = 4
	DefaultCount         = 8
	DefaultDPI           = 200.0
	DefaultLightFG       = "#111111"
	DefaultLightBG       = "#FAFAF7"
	DefaultDarkFG        = "#EEEEEE"
	DefaultDarkBG        = "#14171C"
	DefaultAccent        = "#2E7FE8"
)

// Config represents the themelab configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Colors ColorsConfig `toml:"colors"`
	Server ServerConfig `toml:"server"`
	Fonts  FontsConfig  `toml:"fonts"`
}

// EngineConfig holds the palette synthesis heuristics and generation
// defaults.
type EngineConfig struct {
	MinDistance float64 `toml:"min_distance"` // minimum adjacent Oklab distance
	HueNudge    float64 `toml:"hue_nudge"`    // degrees per repair step
	MaxRetries  int     `toml:"max_retries"`  // repair steps per pair
	Count       int     `toml:"count"`        // default palette size
	DPI         float64 `toml:"dpi"`          // default render DPI
}

// ColorsConfig holds the default color inputs per mode.
type ColorsConfig struct {
	LightFG string `toml:"light_fg"`
	LightBG string `toml:"light_bg"`
	DarkFG  string `toml:"dark_fg"`
	DarkBG  string `toml:"dark_bg"`
	Accent  string `toml:"accent"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen        string `toml:"listen"`
	RenderWorkers int    `toml:"render_workers"`
}

// FontsConfig holds the optional font registry settings.
type FontsConfig struct {
	Dir   string `toml:"dir"`   // empty disables the registry
	Watch bool   `toml:"watch"` // rescan on directory changes
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MinDistance: 0.12,
			HueNudge:    3.0,
			MaxRetries:  16,
			Count:       DefaultCount,
			DPI:         DefaultDPI,
		},
		Colors: ColorsConfig{
			LightFG: DefaultLightFG,
			LightBG: DefaultLightBG,
			DarkFG:  DefaultDarkFG,
			DarkBG:  DefaultDarkBG,
			Accent:  DefaultAccent,
		},
		Server: ServerConfig{
			Listen:        DefaultListen,
			RenderWorkers: DefaultRenderWorkers,
		},
		Fonts: FontsConfig{
			Dir:   "",
			Watch: false,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "themelab", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
