package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themelab/internal/bundle"
	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/theme"
)

var bundleOpts struct {
	name   string
	mode   string
	accent string
	fg     string
	bg     string
	count  int
	dpi    float64
	seed   int64
	out    string
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Compose a theme and write its style bundle",
	Long: `Compose a single theme and write its downloadable bundle: the
serialized theme record, a .mplstyle file, an HTML gallery shell, and
per-figure reproduction scripts.

Figure images are produced by an external renderer, so a bundle written
here contains the style artifacts only.

Examples:
  # Bundle a light theme around the configured accent
  themelab bundle --name Porcelain

  # Dark theme with a pinned seed, written to a custom path
  themelab bundle --name Obsidian --mode dark --seed 42 --out /tmp/obsidian.zip`,
	RunE: runBundle,
}

func init() {
	rootCmd.AddCommand(bundleCmd)

	bundleCmd.Flags().StringVar(&bundleOpts.name, "name", "Porcelain",
		"Theme name")
	bundleCmd.Flags().StringVar(&bundleOpts.mode, "mode", "light",
		"Theme mode (light, dark)")
	bundleCmd.Flags().StringVar(&bundleOpts.accent, "accent", "",
		"Accent color as #RRGGBB (default from config)")
	bundleCmd.Flags().StringVar(&bundleOpts.fg, "fg", "",
		"Foreground color (default from config for the mode)")
	bundleCmd.Flags().StringVar(&bundleOpts.bg, "bg", "",
		"Background color (default from config for the mode)")
	bundleCmd.Flags().IntVarP(&bundleOpts.count, "count", "n", 0,
		"Palette size (3-10, default from config)")
	bundleCmd.Flags().Float64Var(&bundleOpts.dpi, "dpi", 0,
		"Render DPI (default from config)")
	bundleCmd.Flags().Int64Var(&bundleOpts.seed, "seed", 0,
		"Synthesis seed")
	bundleCmd.Flags().StringVarP(&bundleOpts.out, "out", "o", "",
		"Output path (default: <slug>_bundle.zip)")
}

func runBundle(cmd *cobra.Command, args []string) error {
	mode, err := palette.ParseMode(bundleOpts.mode)
	if err != nil {
		return err
	}

	fgHex, bgHex := cfg.Colors.LightFG, cfg.Colors.LightBG
	if mode == palette.ModeDark {
		fgHex, bgHex = cfg.Colors.DarkFG, cfg.Colors.DarkBG
	}
	if bundleOpts.fg != "" {
		fgHex = bundleOpts.fg
	}
	if bundleOpts.bg != "" {
		bgHex = bundleOpts.bg
	}
	accentHex := bundleOpts.accent
	if accentHex == "" {
		accentHex = cfg.Colors.Accent
	}

	fg, err := colorspace.ParseHex(fgHex)
	if err != nil {
		return err
	}
	bg, err := colorspace.ParseHex(bgHex)
	if err != nil {
		return err
	}
	accent, err := colorspace.ParseHex(accentHex)
	if err != nil {
		return err
	}

	count := bundleOpts.count
	if count == 0 {
		count = cfg.Engine.Count
	}
	dpi := bundleOpts.dpi
	if dpi == 0 {
		dpi = cfg.Engine.DPI
	}

	th, err := newGenerator().Generate(theme.GenerateRequest{
		Name:   bundleOpts.name,
		Mode:   mode,
		FG:     fg,
		BG:     bg,
		Accent: accent,
		Count:  count,
		DPI:    dpi,
		Seed:   bundleOpts.seed,
	})
	if err != nil {
		return err
	}

	cat, err := figures.Load()
	if err != nil {
		return err
	}

	data, err := bundle.Build(bundle.Input{
		Theme:      th,
		Assemblies: cat.AssembleAll(th),
	})
	if err != nil {
		return err
	}

	out := bundleOpts.out
	if out == "" {
		out = bundle.Filename(th)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%s)\n", out, humanize.Bytes(uint64(len(data))))
	return nil
}
