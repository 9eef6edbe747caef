// Package palette builds perceptually distinct color cycles.
//
// A cycle is either synthesized from a single accent color or supplied
// explicitly; both paths run through the same invariant checks (count
// bounds, per-color validity, distinctness). Synthesis spreads hues around
// the OKLCH hue circle from the accent, keeps lightness inside a band
// appropriate to the display mode, and repairs adjacent pairs that land
// closer than the configured Oklab distance threshold.
package palette

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/fault"
)

// Display modes.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want light or dark)", s)
	}
}

// Count bounds for any palette.
const (
	MinCount = 3
	MaxCount = 10
)

// Palette is an ordered sequence of unique canonical colors.
type Palette []colorspace.Color

// Validate checks the palette invariants: count within [MinCount,
// MaxCount] and all entries distinct. Entries are assumed canonical
// (construct them via colorspace.ParseHex or ParseList).
func (p Palette) Validate() error {
	if len(p) < MinCount || len(p) > MaxCount {
		return fault.Validationf(fault.KindPaletteLength,
			"palette must have %d-%d colors, got %d", MinCount, MaxCount, len(p))
	}
	seen := make(map[colorspace.Color]struct{}, len(p))
	for _, c := range p {
		if _, dup := seen[c]; dup {
			return fault.Validationf(fault.KindPaletteLength,
				"palette entries must be distinct, %s appears twice", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Rotate returns a copy of the palette rotated left by k positions.
func (p Palette) Rotate(k int) Palette {
	if len(p) == 0 {
		return nil
	}
	k = ((k % len(p)) + len(p)) % len(p)
	out := make(Palette, 0, len(p))
	out = append(out, p[k:]...)
	out = append(out, p[:k]...)
	return out
}

// Strings returns the palette as plain hex strings.
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.String()
	}
	return out
}

// ParseList validates an explicit candidate list. Each entry must be a
// valid hex color; the resulting palette must satisfy Validate.
func ParseList(hexes []string) (Palette, error) {
	if len(hexes) < MinCount || len(hexes) > MaxCount {
		return nil, fault.Validationf(fault.KindPaletteLength,
			"palette must have %d-%d colors, got %d", MinCount, MaxCount, len(hexes))
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorspace.ParseHex(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Warning records an adjacent pair that stayed below the distance
// threshold after the bounded repair. It is metadata, not a failure.
type Warning struct {
	Index     int     `json:"index"`     // position of the later color in the pair
	Distance  float64 `json:"distance"`  // best distance reached
	Threshold float64 `json:"threshold"` // the configured minimum
}

func (w Warning) String() string {
	return fmt.Sprintf("palette pair (%d,%d) distance %.4f below threshold %.4f",
		w.Index-1, w.Index, w.Distance, w.Threshold)
}

// Config holds the synthesis heuristics. The increments are deliberately
// explicit configuration rather than hidden constants.
type Config struct {
	MinDistance float64 // minimum adjacent Oklab distance
	HueNudge    float64 // degrees added per repair step
	MaxRetries  int     // repair steps per pair before giving up
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinDistance: 0.12,
		HueNudge:    3.0,
		MaxRetries:  16,
	}
}

// Variant shifts a synthesis run without changing its structure. The zero
// value is the neutral variant.
type Variant struct {
	HueOffset      float64 // degrees added to every hue
	LightnessShift float64 // added to the base lightness
	ChromaScale    float64 // multiplies the base chroma; 0 means 1
	Rotate         int     // final display-order rotation
}

// Request describes one synthesis run. Identical requests always produce
// identical palettes: the only entropy is the explicit Seed.
type Request struct {
	Accent  colorspace.Color
	Count   int
	Mode    Mode
	Seed    int64
	Variant Variant
}

// Synthesizer generates palettes under a fixed Config. It holds no
// mutable state and is safe for concurrent use.
type Synthesizer struct {
	cfg Config
}

// NewSynthesizer builds a Synthesizer, falling back to defaults for
// unset config fields.
func NewSynthesizer(cfg Config) *Synthesizer {
	def := DefaultConfig()
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	if cfg.HueNudge <= 0 {
		cfg.HueNudge = def.HueNudge
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	return &Synthesizer{cfg: cfg}
}

// Config returns the active synthesis configuration.
func (s *Synthesizer) Config() Config { return s.cfg }

// Synthesize derives a Count-color cycle from the accent. The returned
// warnings are non-fatal; an error means the request itself was invalid.
func (s *Synthesizer) Synthesize(req Request) (Palette, []Warning, error) {
	if req.Count < MinCount || req.Count > MaxCount {
		return nil, nil, fault.Validationf(fault.KindPaletteLength,
			"palette must have %d-%d colors, got %d", MinCount, MaxCount, req.Count)
	}

	seed := req.Accent.OKLCH()
	rng := rand.New(rand.NewSource(req.Seed))

	lBase, cBase := bands(seed, req.Mode, req.Variant)

	// Evenly spaced hues with a bounded per-index perturbation from the
	// seeded generator.
	cands := make([]colorspace.LCh, req.Count)
	for i := range cands {
		jitter := rng.Float64()*8.0 - 4.0
		hue := math.Mod(seed.H+req.Variant.HueOffset+360.0*float64(i)/float64(req.Count)+jitter+720.0, 360.0)
		dl := float64(i%2)*0.06 - 0.03
		cands[i] = colorspace.LCh{
			L: clamp(lBase+dl, 0.2, 0.95),
			C: cBase * (1.0 - 0.05*float64(i%3)),
			H: hue,
		}
	}

	colors := make(Palette, req.Count)
	colors[0] = colorspace.FormatHex(colorspace.ClampToGamut(cands[0]))

	var warnings []Warning
	for i := 1; i < req.Count; i++ {
		hex, dist := s.repairPair(colors[i-1], cands[i])
		colors[i] = hex
		if dist < s.cfg.MinDistance {
			warnings = append(warnings, Warning{Index: i, Distance: dist, Threshold: s.cfg.MinDistance})
		}
	}

	colors = ensureUnique(colors, cands, s.cfg)
	return colors.Rotate(req.Variant.Rotate), warnings, nil
}

// repairPair nudges the hue of cand until it sits at least MinDistance
// from prev, bounded by MaxRetries. It returns the best candidate found
// and the distance it achieved.
func (s *Synthesizer) repairPair(prev colorspace.Color, cand colorspace.LCh) (colorspace.Color, float64) {
	prevLab := prev.Oklab()

	best := colorspace.FormatHex(colorspace.ClampToGamut(cand))
	bestDist := colorspace.Distance(prevLab, best.Oklab())

	cur := cand
	for try := 0; try < s.cfg.MaxRetries && bestDist < s.cfg.MinDistance; try++ {
		cur.H = math.Mod(cur.H+s.cfg.HueNudge, 360.0)
		hex := colorspace.FormatHex(colorspace.ClampToGamut(cur))
		if d := colorspace.Distance(prevLab, hex.Oklab()); d > bestDist {
			best, bestDist = hex, d
		}
	}
	return best, bestDist
}

// ensureUnique resolves hex collisions anywhere in the cycle by walking
// the later color's lightness away in small steps. Collisions are rare
// (they need an extreme gamut clamp) but the palette contract requires
// distinct entries.
func ensureUnique(colors Palette, cands []colorspace.LCh, cfg Config) Palette {
	seen := make(map[colorspace.Color]int, len(colors))
	for i, c := range colors {
		if _, dup := seen[c]; !dup {
			seen[c] = i
			continue
		}
		cur := cands[i]
		for try := 1; try <= cfg.MaxRetries; try++ {
			cur.L = clamp(cur.L+0.02*float64(try), 0.05, 0.98)
			cur.H = math.Mod(cur.H+cfg.HueNudge, 360.0)
			hex := colorspace.FormatHex(colorspace.ClampToGamut(cur))
			if _, dup := seen[hex]; !dup {
				colors[i] = hex
				break
			}
		}
		seen[colors[i]] = i
	}
	return colors
}

// bands derives the base lightness and chroma for a synthesis run: a
// legibility band per mode, moderated chroma, variant shifts applied.
func bands(seed colorspace.LCh, mode Mode, v Variant) (lBase, cBase float64) {
	// Lower-to-mid lightness reads well on light backgrounds, mid-to-high
	// on dark ones.
	if mode == ModeLight {
		lBase = clamp(seed.L, 0.45, 0.70)
	} else {
		lBase = clamp(seed.L, 0.60, 0.82)
	}
	lBase = clamp(lBase+v.LightnessShift, 0.2, 0.95)

	scale := v.ChromaScale
	if scale == 0 {
		scale = 1.0
	}
	cBase = clamp(seed.C, 0.06, 0.15) * scale
	return lBase, clamp(cBase, 0.04, 0.20)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
