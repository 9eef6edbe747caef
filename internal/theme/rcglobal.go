package theme

import (
	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/rc"
)

// GlobalParams builds the rc_global mapping for a theme: modern thin
// strokes, minimal spines, STIX mathtext, and a color cycle bound to the
// palette. The output contains only deterministic values derived from the
// arguments.
func GlobalParams(fg, bg colorspace.Color, pal palette.Palette, dpi float64, mode palette.Mode, fontFamily []string) rc.Params {
	isDark := mode == palette.ModeDark

	gridColor := "#000000"
	gridAlpha := 0.12
	cmap := "viridis"
	if isDark {
		gridColor = "#FFFFFF"
		gridAlpha = 0.16
		cmap = "magma"
	}

	family := make([]any, len(fontFamily))
	for i, f := range fontFamily {
		family[i] = f
	}

	return rc.Params{
		// Rendering & size
		"figure.dpi":       dpi,
		"savefig.dpi":      dpi,
		"figure.figsize":   []any{14.0, 10.0},
		"figure.facecolor": bg.String(),
		"axes.facecolor":   bg.String(),

		// Typography
		"font.family":      family,
		"font.size":        11.0,
		"axes.titlesize":   12.0,
		"axes.labelsize":   10.0,
		"legend.fontsize":  9.0,
		"xtick.labelsize":  9.0,
		"ytick.labelsize":  9.0,
		"mathtext.fontset": "stix",
		"text.antialiased": true,

		// Strokes
		"lines.linewidth":   1.2,
		"axes.linewidth":    0.8,
		"patch.linewidth":   0.8,
		"grid.linewidth":    0.6,
		"xtick.major.width": 0.8,
		"ytick.major.width": 0.8,
		"xtick.minor.width": 0.6,
		"ytick.minor.width": 0.6,
		"xtick.major.size":  3.5,
		"ytick.major.size":  3.5,
		"xtick.minor.size":  2.0,
		"ytick.minor.size":  2.0,

		// Colors
		"text.color":      fg.String(),
		"axes.labelcolor": fg.String(),
		"axes.edgecolor":  fg.String(),
		"xtick.color":     fg.String(),
		"ytick.color":     fg.String(),
		"grid.color":      gridColor,
		"grid.alpha":      gridAlpha,
		"axes.prop_cycle": rc.Cycle{Key: "color", Values: pal.Strings()},

		// Grid & ticks
		"axes.grid":          true,
		"axes.grid.axis":     "y",
		"axes.grid.which":    "major",
		"axes.spines.top":    false,
		"axes.spines.right":  false,
		"axes.spines.bottom": true,
		"axes.spines.left":   true,
		"xtick.direction":    "in",
		"ytick.direction":    "in",

		// Legends
		"legend.frameon":    true,
		"legend.framealpha": 0.85,
		"legend.fancybox":   true,
		"legend.edgecolor":  fg.String(),

		// Image defaults
		"image.cmap":          cmap,
		"image.interpolation": "nearest",

		// Savefig
		"savefig.bbox":       "tight",
		"savefig.facecolor":  bg.String(),
		"savefig.edgecolor":  bg.String(),
		"savefig.pad_inches": 0.02,
	}
}
