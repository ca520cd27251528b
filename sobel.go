package carve

import "math"

// GradientEnergy is the Sobel gradient magnitude of the pixel brightness.
// See https://en.wikipedia.org/wiki/Sobel_operator
//
// The 3x3 neighborhood is labelled
//
//	A | B | C
//	D | E | F
//	G | H | I
//
// with E being the pixel itself. Diagonals are reached through the vertical
// neighbor first (A is the left neighbor of the pixel above). A position
// outside the image takes the brightness of E.
type GradientEnergy struct{}

// Energy returns sqrt(Gx² + Gy²) where
// Gx = (A + 2D + G) - (C + 2F + I) and Gy = (A + 2B + C) - (G + 2H + I).
func (GradientEnergy) Energy(p Pixel) float64 {
	if !p.Valid() {
		return 0
	}
	up, down := p.Up(), p.Down()
	e := p.Brightness()

	var (
		a = brightnessOr(up.Left(), e)
		b = brightnessOr(up, e)
		c = brightnessOr(up.Right(), e)
		d = brightnessOr(p.Left(), e)
		f = brightnessOr(p.Right(), e)
		g = brightnessOr(down.Left(), e)
		h = brightnessOr(down, e)
		i = brightnessOr(down.Right(), e)
	)
	gx := a + 2*d + g - (c + 2*f + i)
	gy := a + 2*b + c - (g + 2*h + i)

	// The conversions force each square to be rounded on its own,
	// which keeps the result independent of fused multiply-add.
	return math.Sqrt(float64(gx*gx) + float64(gy*gy))
}

// brightnessOr returns the brightness of p, or fallback when p is absent.
func brightnessOr(p Pixel, fallback float64) float64 {
	if !p.Valid() {
		return fallback
	}
	return p.Brightness()
}
