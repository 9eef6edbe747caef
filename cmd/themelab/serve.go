package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/fonts"
	"github.com/jmylchreest/themelab/internal/server"
)

var serveOpts struct {
	listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the theme engine HTTP API",
	Long: `Run the HTTP API: carousel generation, per-figure style assembly,
bundle download, and catalog/font inspection endpoints.

The server shuts down cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOpts.listen, "listen", "",
		"Listen address (default from config, :8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveOpts.listen != "" {
		cfg.Server.Listen = serveOpts.listen
	}

	catalog, err := figures.Load()
	if err != nil {
		return fmt.Errorf("failed to load figure catalog: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{server.WithLogger(logger)}

	if cfg.Fonts.Dir != "" {
		registry := fonts.NewRegistry(cfg.Fonts.Dir, logger)
		if err := registry.Scan(); err != nil {
			logger.Warn("font scan failed", "dir", cfg.Fonts.Dir, "error", err)
		}
		if cfg.Fonts.Watch {
			if err := registry.Watch(ctx, nil); err != nil {
				logger.Warn("font watch failed", "dir", cfg.Fonts.Dir, "error", err)
			}
		}
		opts = append(opts, server.WithFonts(registry))
	}

	srv := server.New(cfg, newGenerator(), catalog, opts...)
	return srv.ListenAndServe(ctx)
}
