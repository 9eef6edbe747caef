// Package theme composes validated, reproducible visual themes: a
// foreground/background/accent triple, a perceptually distinct palette,
// and the global style overrides that bind them together.
//
// A Theme is immutable once composed. Callers that want to tweak styles
// layer an overlay over the global mapping; the original Theme is never
// touched.
package theme

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/fault"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/rc"
)

// Contrast floors per mode. Both modes share the WCAG AA floor for
// normal text; the map keeps the minimum explicitly mode-keyed.
var minContrast = map[palette.Mode]float64{
	palette.ModeLight: 4.5,
	palette.ModeDark:  4.5,
}

// Background lightness bands (Oklab L). A light theme needs an off-white
// background, a dark theme a genuinely dark one.
const (
	minLightBG = 0.85
	maxDarkBG  = 0.45
)

// Theme is a complete, internally consistent bundle of colors and style
// overrides, serializable as a flat record.
type Theme struct {
	Name     string            `json:"name"`
	Slug     string            `json:"slug"`
	Mode     palette.Mode      `json:"mode"`
	FG       colorspace.Color  `json:"fg"`
	BG       colorspace.Color  `json:"bg"`
	Accent   colorspace.Color  `json:"accent"`
	Palette  palette.Palette   `json:"palette"`
	RCGlobal rc.Params         `json:"rc_global"`
	Seed     int64             `json:"seed"`
	Warnings []palette.Warning `json:"warnings,omitempty"`
}

// ComposeInput carries everything Compose needs. All fields are explicit;
// composition consults no other source.
type ComposeInput struct {
	Name       string
	Mode       palette.Mode
	FG         colorspace.Color
	BG         colorspace.Color
	Accent     colorspace.Color
	Palette    palette.Palette
	Warnings   []palette.Warning
	DPI        float64
	FontFamily []string
	Seed       int64
}

// DefaultDPI matches the original service default.
const DefaultDPI = 200.0

// DefaultFontFamily is the font stack used when the caller supplies none.
func DefaultFontFamily() []string { return []string{"cmr10", "Inter"} }

// Compose validates the inputs and builds an immutable Theme. Identical
// inputs always produce an identical Theme, byte for byte once
// serialized.
func Compose(in ComposeInput) (*Theme, error) {
	if err := in.Palette.Validate(); err != nil {
		return nil, err
	}

	if ratio := colorspace.ContrastRatio(in.FG, in.BG); ratio < minContrast[in.Mode] {
		return nil, fault.Validationf(fault.KindContrastTooLow,
			"fg/bg contrast %.2f below the %s-mode minimum %.1f",
			ratio, in.Mode, minContrast[in.Mode])
	}

	bgL := in.BG.Oklab().L
	switch in.Mode {
	case palette.ModeLight:
		if bgL < minLightBG {
			return nil, fault.Validationf(fault.KindContrastTooLow,
				"light mode needs a background lightness of at least %.2f, got %.2f", minLightBG, bgL)
		}
	case palette.ModeDark:
		if bgL > maxDarkBG {
			return nil, fault.Validationf(fault.KindContrastTooLow,
				"dark mode needs a background lightness of at most %.2f, got %.2f", maxDarkBG, bgL)
		}
	}

	dpi := in.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	family := in.FontFamily
	if len(family) == 0 {
		family = DefaultFontFamily()
	}

	return &Theme{
		Name:     in.Name,
		Slug:     Slugify(in.Name),
		Mode:     in.Mode,
		FG:       in.FG,
		BG:       in.BG,
		Accent:   in.Accent,
		Palette:  in.Palette,
		RCGlobal: GlobalParams(in.FG, in.BG, in.Palette, dpi, in.Mode, family),
		Seed:     in.Seed,
		Warnings: in.Warnings,
	}, nil
}

// Overlay layers caller style edits over the global mapping, returning a
// fresh merged mapping. The Theme itself is not modified.
func (t *Theme) Overlay(edits rc.Params) rc.Params {
	return t.RCGlobal.Merge(edits)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a deterministic slug from a theme name.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
