package carve

import "image/color"

// PixelID addresses a pixel record inside a Grid's arena.
// IDs are stable for the lifetime of the grid, even after the pixel
// has been carved out or replaced by a highlight.
type PixelID int32

// NoPixel marks an absent neighbor, i.e. the image border.
const NoPixel PixelID = -1

// pixel is a single arena record. Links are arena indexes.
type pixel struct {
	color      color.NRGBA
	brightness float64

	left, right PixelID
	up, down    PixelID
}

func newPixel(c color.NRGBA) pixel {
	p := pixel{
		left:  NoPixel,
		right: NoPixel,
		up:    NoPixel,
		down:  NoPixel,
	}
	p.setColor(c)
	return p
}

// setColor stores the color and recomputes the brightness.
func (p *pixel) setColor(c color.NRGBA) {
	c.A = 0xff
	p.color = c
	p.brightness = brightness(c)
}

// brightness returns the arithmetic mean of the three color channels.
func brightness(c color.NRGBA) float64 {
	return float64(int(c.R)+int(c.G)+int(c.B)) / 3
}

// Pixel is a read-only view of one pixel and its current links in a Grid.
// The zero value is an invalid pixel, used for absent neighbors.
type Pixel struct {
	grid *Grid
	id   PixelID
}

// Valid reports whether p refers to an existing pixel.
func (p Pixel) Valid() bool {
	return p.grid != nil && p.id != NoPixel
}

// ID returns the arena index of the pixel, or NoPixel.
func (p Pixel) ID() PixelID {
	if p.grid == nil {
		return NoPixel
	}
	return p.id
}

// Color returns the pixel color. Invalid pixels are transparent black.
func (p Pixel) Color() color.NRGBA {
	if !p.Valid() {
		return color.NRGBA{}
	}
	return p.grid.pixels[p.id].color
}

// Brightness returns the mean of the pixel's R, G and B channels.
func (p Pixel) Brightness() float64 {
	if !p.Valid() {
		return 0
	}
	return p.grid.pixels[p.id].brightness
}

// Left returns the neighbor on the left, if any.
func (p Pixel) Left() Pixel { return p.link(func(px *pixel) PixelID { return px.left }) }

// Right returns the neighbor on the right, if any.
func (p Pixel) Right() Pixel { return p.link(func(px *pixel) PixelID { return px.right }) }

// Up returns the neighbor in the row above, if any.
func (p Pixel) Up() Pixel { return p.link(func(px *pixel) PixelID { return px.up }) }

// Down returns the neighbor in the row below, if any.
func (p Pixel) Down() Pixel { return p.link(func(px *pixel) PixelID { return px.down }) }

func (p Pixel) link(fn func(*pixel) PixelID) Pixel {
	if !p.Valid() {
		return Pixel{}
	}
	id := fn(&p.grid.pixels[p.id])
	if id == NoPixel {
		return Pixel{}
	}
	return Pixel{grid: p.grid, id: id}
}
