package carve

import (
	"image"
	"image/color"

	"github.com/pixelseam/carve/utils"
)

// EnergyMap renders the energy of every pixel of g as a grayscale image.
// Values are scaled so that the highest energy in the image maps to white.
// An image with no energy at all is black.
func EnergyMap(g *Grid, e Energy) (*image.Gray, error) {
	if g.Width() == 0 || g.Height() == 0 {
		return nil, ErrEmptyImage
	}
	dst := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	energies := make([]float64, 0, g.Width()*g.Height())

	var peak float64
	g.walk(func(_, _ int, id PixelID) {
		v := e.Energy(g.Pixel(id))
		energies = append(energies, v)
		peak = utils.Max(peak, v)
	})

	for i, v := range energies {
		var lum uint8
		if peak > 0 {
			lum = uint8(v / peak * 255)
		}
		dst.SetGray(i%g.Width(), i/g.Width(), color.Gray{Y: lum})
	}
	return dst, nil
}
