package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/palette"
)

var previewOpts struct {
	accent string
	mode   string
	count  int
	seed   int64
	format string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Synthesize and inspect a single palette",
	Long: `Synthesize one palette from an accent color and print each entry
with its OKLCH coordinates and the perceptual distance to its neighbor.

Useful for tuning the accent before generating a full carousel.

Examples:
  # Preview the default accent in light mode
  themelab preview

  # Dark-mode palette with a fixed seed
  themelab preview --accent "#D9534F" --mode dark --seed 42`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewOpts.accent, "accent", "",
		"Accent color as #RRGGBB (default from config)")
	previewCmd.Flags().StringVar(&previewOpts.mode, "mode", "light",
		"Palette mode (light, dark)")
	previewCmd.Flags().IntVarP(&previewOpts.count, "count", "n", 0,
		"Palette size (3-10, default from config)")
	previewCmd.Flags().Int64Var(&previewOpts.seed, "seed", 0,
		"Synthesis seed")
	previewCmd.Flags().StringVarP(&previewOpts.format, "format", "f", "table",
		"Output format (table, json)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	accentHex := previewOpts.accent
	if accentHex == "" {
		accentHex = cfg.Colors.Accent
	}
	accent, err := colorspace.ParseHex(accentHex)
	if err != nil {
		return err
	}

	mode, err := palette.ParseMode(previewOpts.mode)
	if err != nil {
		return err
	}

	count := previewOpts.count
	if count == 0 {
		count = cfg.Engine.Count
	}

	synth := palette.NewSynthesizer(palette.Config{
		MinDistance: cfg.Engine.MinDistance,
		HueNudge:    cfg.Engine.HueNudge,
		MaxRetries:  cfg.Engine.MaxRetries,
	})

	pal, warnings, err := synth.Synthesize(palette.Request{
		Accent: accent,
		Count:  count,
		Mode:   mode,
		Seed:   previewOpts.seed,
	})
	if err != nil {
		return err
	}

	if strings.EqualFold(previewOpts.format, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Accent   colorspace.Color  `json:"accent"`
			Mode     palette.Mode      `json:"mode"`
			Seed     int64             `json:"seed"`
			Palette  palette.Palette   `json:"palette"`
			Warnings []palette.Warning `json:"warnings,omitempty"`
		}{accent, mode, previewOpts.seed, pal, warnings})
	}

	fmt.Printf("accent %s  mode %s  seed %d\n\n", swatch(accent), mode, previewOpts.seed)
	for i, c := range pal {
		lch := c.OKLCH()
		line := fmt.Sprintf("%2d  %s  L=%.3f C=%.3f H=%5.1f", i, swatch(c), lch.L, lch.C, lch.H)
		if i > 0 {
			line += fmt.Sprintf("  d=%.3f", c.DistanceTo(pal[i-1]))
		}
		fmt.Println(line)
	}
	for _, w := range warnings {
		fmt.Printf("\nwarning: %s\n", w.String())
	}
	return nil
}
