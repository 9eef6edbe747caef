package rc

// Defaults returns the documented matplotlib defaults for every rcParam
// this engine touches. Diffs are computed against this mapping, matching
// what the external renderer ships out of the box.
//
// The returned map is fresh on every call; callers may mutate it freely.
func Defaults() Params {
	return Params{
		// Rendering & size
		"figure.dpi":      100.0,
		"savefig.dpi":     "figure",
		"figure.figsize":  []any{6.4, 4.8},
		"figure.facecolor": "white",
		"axes.facecolor":   "white",

		// Typography
		"font.family":      []any{"sans-serif"},
		"font.size":        10.0,
		"axes.titlesize":   "large",
		"axes.labelsize":   "medium",
		"legend.fontsize":  "medium",
		"xtick.labelsize":  "medium",
		"ytick.labelsize":  "medium",
		"mathtext.fontset": "dejavusans",
		"text.antialiased": true,
		"text.color":       "black",

		// Strokes
		"lines.linewidth":   1.5,
		"axes.linewidth":    0.8,
		"patch.linewidth":   1.0,
		"grid.linewidth":    0.8,
		"xtick.major.width": 0.8,
		"ytick.major.width": 0.8,
		"xtick.minor.width": 0.6,
		"ytick.minor.width": 0.6,
		"xtick.major.size":  3.5,
		"ytick.major.size":  3.5,
		"xtick.minor.size":  2.0,
		"ytick.minor.size":  2.0,

		// Colors
		"axes.labelcolor": "black",
		"axes.edgecolor":  "black",
		"xtick.color":     "black",
		"ytick.color":     "black",
		"grid.color":      "#b0b0b0",
		"grid.alpha":      1.0,
		"axes.prop_cycle": Cycle{Key: "color", Values: []string{
			"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
			"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
		}},

		// Grid & ticks
		"axes.grid":          false,
		"axes.grid.axis":     "both",
		"axes.grid.which":    "major",
		"grid.linestyle":     "-",
		"axes.spines.top":    true,
		"axes.spines.right":  true,
		"axes.spines.bottom": true,
		"axes.spines.left":   true,
		"xtick.direction":    "out",
		"ytick.direction":    "out",

		// Legends
		"legend.frameon":        true,
		"legend.framealpha":     0.8,
		"legend.fancybox":       true,
		"legend.edgecolor":      "0.8",
		"legend.loc":            "best",
		"legend.borderaxespad":  0.5,
		"legend.borderpad":      0.4,

		// Titles & limits
		"axes.titleweight":    "normal",
		"axes.titlepad":       6.0,
		"axes.autolimit_mode": "data",
		"axes.axisbelow":      "line",
		"axes.xmargin":        0.05,
		"axes.ymargin":        0.05,

		// Lines & markers
		"lines.solid_capstyle": "projecting",
		"lines.markersize":     6.0,
		"patch.force_edgecolor": false,

		// Histogram & boxplot
		"hist.bins":                     10.0,
		"boxplot.flierprops.marker":     "o",
		"boxplot.flierprops.markersize": 6.0,
		"boxplot.whiskerprops.linestyle": "-",
		"boxplot.boxprops.linewidth":    1.0,
		"boxplot.whiskerprops.linewidth": 1.0,
		"boxplot.capprops.linewidth":    1.0,

		// Image defaults
		"image.cmap":          "viridis",
		"image.interpolation": "antialiased",

		// Layout
		"figure.constrained_layout.use": false,
		"figure.autolayout":             false,

		// Savefig
		"savefig.bbox":       nil,
		"savefig.facecolor":  "auto",
		"savefig.edgecolor":  "auto",
		"savefig.pad_inches": 0.1,
	}
}
