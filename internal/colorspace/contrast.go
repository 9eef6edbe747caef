package colorspace

// Luminance is the WCAG relative luminance of a color, computed from the
// linear RGB channels.
func Luminance(c Color) float64 {
	lr, lg, lb := c.RGB().LinearRgb()
	return 0.2126*lr + 0.7152*lg + 0.0722*lb
}

// ContrastRatio is the WCAG contrast ratio between two colors, in
// [1, 21]. Order of the arguments does not matter.
func ContrastRatio(a, b Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
