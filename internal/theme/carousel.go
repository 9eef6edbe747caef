package theme

import (
	"crypto/rand"
	"hash/fnv"
	"strconv"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/palette"
)

// CarouselSize is the number of themes per refresh: three light, three
// dark.
const CarouselSize = 6

// Carousel theme names, light slots first.
var (
	lightNames = []string{"Porcelain", "Parchment", "Lumen"}
	darkNames  = []string{"Slate", "Obsidian", "Nebula"}
)

// goldenAngle spreads the per-slot hue offsets so no two slots start near
// the same point on the hue circle.
const goldenAngle = 137.50776405003785

// variants are the per-slot synthesis knobs. Deterministic and fixed:
// only the seed varies between refreshes.
var variants = [CarouselSize]palette.Variant{
	{HueOffset: 0, LightnessShift: 0.00, ChromaScale: 1.00, Rotate: 0},
	{HueOffset: goldenAngle / 2, LightnessShift: 0.02, ChromaScale: 1.10, Rotate: 1},
	{HueOffset: goldenAngle, LightnessShift: -0.02, ChromaScale: 0.92, Rotate: 2},
	{HueOffset: goldenAngle * 1.5, LightnessShift: -0.01, ChromaScale: 1.06, Rotate: 1},
	{HueOffset: goldenAngle * 2.0, LightnessShift: 0.03, ChromaScale: 1.15, Rotate: 3},
	{HueOffset: goldenAngle * 2.5, LightnessShift: -0.03, ChromaScale: 0.88, Rotate: 2},
}

// Generator produces themes through a configured palette synthesizer. It
// is stateless and safe for concurrent use.
type Generator struct {
	synth *palette.Synthesizer
}

// NewGenerator builds a Generator around the given synthesizer.
func NewGenerator(s *palette.Synthesizer) *Generator {
	return &Generator{synth: s}
}

// GenerateRequest describes a single-theme generation call.
type GenerateRequest struct {
	Name       string
	Mode       palette.Mode
	FG         colorspace.Color
	BG         colorspace.Color
	Accent     colorspace.Color
	Palette    palette.Palette // explicit palette; nil means synthesize
	Count      int             // synthesized palette size; 0 means 8
	DPI        float64
	FontFamily []string
	Seed       int64
}

// Generate composes one theme, synthesizing the palette from the accent
// unless an explicit one was supplied.
func (g *Generator) Generate(req GenerateRequest) (*Theme, error) {
	pal := req.Palette
	var warnings []palette.Warning

	if pal == nil {
		count := req.Count
		if count == 0 {
			count = 8
		}
		var err error
		pal, warnings, err = g.synth.Synthesize(palette.Request{
			Accent: req.Accent,
			Count:  count,
			Mode:   req.Mode,
			Seed:   req.Seed,
		})
		if err != nil {
			return nil, err
		}
	}

	return Compose(ComposeInput{
		Name:       req.Name,
		Mode:       req.Mode,
		FG:         req.FG,
		BG:         req.BG,
		Accent:     req.Accent,
		Palette:    pal,
		Warnings:   warnings,
		DPI:        req.DPI,
		FontFamily: req.FontFamily,
		Seed:       req.Seed,
	})
}

// CarouselRequest describes a six-theme refresh. The token is the only
// source of variety: the same token always reproduces the same six
// themes.
type CarouselRequest struct {
	LightFG, LightBG colorspace.Color
	DarkFG, DarkBG   colorspace.Color
	Accent           colorspace.Color
	Palette          palette.Palette // explicit palette for every slot; nil means synthesize
	Count            int             // synthesized palette size; 0 means 8
	DPI              float64
	FontFamily       []string
	Token            string
}

// Carousel generates the six-slot refresh set: three light themes, then
// three dark ones.
func (g *Generator) Carousel(req CarouselRequest) ([]*Theme, error) {
	count := req.Count
	if req.Palette != nil {
		count = len(req.Palette)
	} else if count == 0 {
		count = 8
	}

	names := append(append([]string{}, lightNames...), darkNames...)
	themes := make([]*Theme, 0, CarouselSize)

	for slot, name := range names {
		mode := palette.ModeLight
		fg, bg := req.LightFG, req.LightBG
		if slot >= len(lightNames) {
			mode = palette.ModeDark
			fg, bg = req.DarkFG, req.DarkBG
		}

		seed := slotSeed(req.Token, slot, req.Accent)

		pal := req.Palette
		var warnings []palette.Warning
		if pal == nil {
			v := variants[slot]
			v.Rotate += slot % max(1, count-1)
			var err error
			pal, warnings, err = g.synth.Synthesize(palette.Request{
				Accent:  req.Accent,
				Count:   count,
				Mode:    mode,
				Seed:    seed,
				Variant: v,
			})
			if err != nil {
				return nil, err
			}
		}

		t, err := Compose(ComposeInput{
			Name:       name,
			Mode:       mode,
			FG:         fg,
			BG:         bg,
			Accent:     req.Accent,
			Palette:    pal,
			Warnings:   warnings,
			DPI:        req.DPI,
			FontFamily: req.FontFamily,
			Seed:       seed,
		})
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}

	return themes, nil
}

// slotSeed derives the per-slot seed from the refresh token, the slot
// index, and the accent. FNV-1a over explicit inputs only: no clock, no
// unseeded entropy.
func slotSeed(token string, slot int, accent colorspace.Color) int64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.Itoa(slot)))
	h.Write([]byte{'|'})
	h.Write([]byte(accent))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// NewToken mints a fresh refresh token. This is boundary-layer input
// manufacture; engine determinism is keyed on whatever token the caller
// passes in.
func NewToken() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
