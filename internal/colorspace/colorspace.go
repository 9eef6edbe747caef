// Package colorspace provides the color math underneath theme generation:
// canonical hex colors, sRGB/linear/Oklab/OKLCH conversions, perceptual
// distance, and gamut clamping.
//
// Every function is pure and returns fresh values; nothing in this package
// holds state, so all of it is safe for concurrent use.
//
// Oklab conversions use Björn Ottosson's reference matrices. sRGB transfer
// functions come from go-colorful, which every conversion round-trips
// through within 1e-4 per channel.
package colorspace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/themelab/internal/fault"
)

// hexPattern matches a 6-digit hex color with optional leading '#'.
var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// Color is a canonical color value: uppercase, '#'-prefixed, 6 hex digits.
// Construct one with ParseHex or FormatHex; the zero value is not valid.
type Color string

// ParseHex validates and normalizes a hex color string.
// Accepts exactly six hex digits with an optional leading '#'; anything
// else fails with an invalid_hex ValidationError before any conversion.
func ParseHex(s string) (Color, error) {
	t := strings.TrimSpace(s)
	if !hexPattern.MatchString(t) {
		return "", fault.Validationf(fault.KindInvalidHex, "invalid HEX color: %q", s)
	}
	t = strings.TrimPrefix(t, "#")
	return Color("#" + strings.ToUpper(t)), nil
}

// MustHex is ParseHex for compile-time constants; it panics on bad input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the canonical hex form.
func (c Color) String() string { return string(c) }

// RGB returns the sRGB representation with channels in [0,1].
// The receiver must be canonical (produced by ParseHex or FormatHex).
func (c Color) RGB() colorful.Color {
	r := channel(string(c), 1)
	g := channel(string(c), 3)
	b := channel(string(c), 5)
	return colorful.Color{R: r, G: g, B: b}
}

func channel(s string, i int) float64 {
	if len(s) < i+2 {
		return 0
	}
	v, err := strconv.ParseUint(s[i:i+2], 16, 8)
	if err != nil {
		return 0
	}
	return float64(v) / 255.0
}

// FormatHex converts an sRGB color to canonical hex, clamping each channel
// into [0,1] first.
func FormatHex(c colorful.Color) Color {
	cc := c.Clamped()
	r, g, b := cc.RGB255()
	return Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}

// Lab is a color in Oklab space.
type Lab struct {
	L float64
	A float64
	B float64
}

// LCh is a color in OKLCH space. H is the hue angle in degrees [0,360).
type LCh struct {
	L float64
	C float64
	H float64
}

// RGBToOklab converts an sRGB color to Oklab via linear RGB.
func RGBToOklab(c colorful.Color) Lab {
	lr, lg, lb := c.LinearRgb()
	l := 0.4122214708*lr + 0.5363325363*lg + 0.0514459929*lb
	m := 0.2119034982*lr + 0.6806995451*lg + 0.1073969566*lb
	s := 0.0883024619*lr + 0.2817188376*lg + 0.6299787005*lb
	lc, mc, sc := math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)
	return Lab{
		L: 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc,
		A: 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc,
		B: 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc,
	}
}

// OklabToRGB converts an Oklab color back to sRGB. The result may lie
// outside the sRGB cube; callers that need a displayable color should go
// through ClampToGamut.
func OklabToRGB(lab Lab) colorful.Color {
	lc := lab.L + 0.3963377774*lab.A + 0.2158037573*lab.B
	mc := lab.L - 0.1055613458*lab.A - 0.0638541728*lab.B
	sc := lab.L - 0.0894841775*lab.A - 1.2914855480*lab.B
	l, m, s := lc*lc*lc, mc*mc*mc, sc*sc*sc
	lr := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	lg := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	lb := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s
	return colorful.LinearRgb(lr, lg, lb)
}

// LCh converts Oklab to OKLCH.
func (lab Lab) LCh() LCh {
	c := math.Sqrt(lab.A*lab.A + lab.B*lab.B)
	h := math.Mod(math.Atan2(lab.B, lab.A)*180.0/math.Pi+360.0, 360.0)
	return LCh{L: lab.L, C: c, H: h}
}

// Lab converts OKLCH to Oklab.
func (lc LCh) Lab() Lab {
	rad := lc.H * math.Pi / 180.0
	return Lab{L: lc.L, A: lc.C * math.Cos(rad), B: lc.C * math.Sin(rad)}
}

// Oklab returns the Oklab representation of the color.
func (c Color) Oklab() Lab { return RGBToOklab(c.RGB()) }

// OKLCH returns the OKLCH representation of the color.
func (c Color) OKLCH() LCh { return c.Oklab().LCh() }

// Distance is the Euclidean distance between two Oklab colors, used as a
// perceptual distinguishability proxy.
func Distance(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// DistanceTo is the Oklab distance between two canonical colors.
func (c Color) DistanceTo(o Color) float64 {
	return Distance(c.Oklab(), o.Oklab())
}

// gamutSteps bounds the chroma-reduction loop in ClampToGamut.
const gamutSteps = 20

// ClampToGamut maps an OKLCH color into the sRGB cube. Chroma is reduced
// stepwise while lightness and hue are preserved; if the color is still
// out of gamut after the bounded search, the channels are clamped.
func ClampToGamut(lc LCh) colorful.Color {
	chroma := lc.C
	for i := 0; i < gamutSteps; i++ {
		rgb := OklabToRGB(LCh{L: lc.L, C: chroma, H: lc.H}.Lab())
		if rgb.IsValid() {
			return rgb
		}
		chroma *= 0.9
	}
	return OklabToRGB(LCh{L: lc.L, C: chroma, H: lc.H}.Lab()).Clamped()
}
