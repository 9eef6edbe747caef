// Package main provides the CLI entrypoint for themelab.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themelab/internal/config"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themelab",
	Short: "Deterministic matplotlib theme generator",
	Long: `themelab synthesizes perceptually balanced color palettes and
composes them into complete matplotlib themes: global rc mappings,
per-figure style overrides, and downloadable style bundles.

Generation is deterministic: the same refresh token always reproduces
the same set of themes.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themelab/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newGenerator builds a theme generator from the loaded config.
func newGenerator() *theme.Generator {
	return theme.NewGenerator(palette.NewSynthesizer(palette.Config{
		MinDistance: cfg.Engine.MinDistance,
		HueNudge:    cfg.Engine.HueNudge,
		MaxRetries:  cfg.Engine.MaxRetries,
	}))
}
