package carve

import (
	"fmt"
	"image"
	"image/color"
)

// Grid is a mutable image stored as a four-connected graph of pixels.
//
// The pixels live in an arena and link to each other by PixelID. Removing or
// reinserting a seam only rewrites the links along the seam, one pixel per
// row; no row or column is ever copied. Pixels taken out of the graph stay in
// the arena with their last links intact, which is what lets InsertSeam put
// them back verbatim.
type Grid struct {
	pixels []pixel
	head   PixelID
	width  int
	height int
}

// NewGrid builds a width×height grid, reading the color of every pixel
// through the at accessor in row-major order.
func NewGrid(width, height int, at func(x, y int) color.Color) (*Grid, error) {
	return buildGrid(width, height, func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(at(x, y)).(color.NRGBA)
	})
}

// buildGrid wires every neighbor relation in a single pass.
// The arena index of the pixel at (x, y) is y*width + x.
func buildGrid(width, height int, at func(x, y int) color.NRGBA) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	g := &Grid{
		pixels: make([]pixel, width*height),
		width:  width,
		height: height,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := y*width + x
			px := newPixel(at(x, y))
			if x > 0 {
				px.left = PixelID(id - 1)
			}
			if x < width-1 {
				px.right = PixelID(id + 1)
			}
			if y > 0 {
				px.up = PixelID(id - width)
			}
			if y < height-1 {
				px.down = PixelID(id + width)
			}
			g.pixels[id] = px
		}
	}
	return g, nil
}

// Width returns the current number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows. It never changes.
func (g *Grid) Height() int { return g.height }

// Head returns the top-left pixel.
func (g *Grid) Head() Pixel { return g.Pixel(g.head) }

// Pixel returns a view of the arena record id. The record does not have to be
// reachable from the head.
func (g *Grid) Pixel(id PixelID) Pixel {
	if id < 0 || int(id) >= len(g.pixels) {
		return Pixel{}
	}
	return Pixel{grid: g, id: id}
}

// At walks the graph to the pixel currently in column x of row y.
func (g *Grid) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return Pixel{}
	}
	id := g.head
	for ; y > 0; y-- {
		id = g.pixels[id].down
	}
	for ; x > 0; x-- {
		id = g.pixels[id].right
	}
	return g.Pixel(id)
}

// RowMajorColors returns the colors of the reachable pixels, row by row.
func (g *Grid) RowMajorColors() []color.NRGBA {
	colors := make([]color.NRGBA, 0, g.width*g.height)
	g.walk(func(_, _ int, id PixelID) {
		colors = append(colors, g.pixels[id].color)
	})
	return colors
}

// Image exports the grid into a new NRGBA image.
func (g *Grid) Image() (*image.NRGBA, error) {
	if g.width == 0 || g.height == 0 {
		return nil, ErrEmptyImage
	}
	dst := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	g.walk(func(x, y int, id PixelID) {
		c := g.pixels[id].color
		i := dst.PixOffset(x, y)
		dst.Pix[i+0] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
		dst.Pix[i+3] = 0xff
	})
	return dst, nil
}

// walk visits every reachable pixel in row-major order.
func (g *Grid) walk(fn func(x, y int, id PixelID)) {
	if g.width == 0 || g.height == 0 {
		return
	}
	row := g.head
	for y := 0; y < g.height; y++ {
		id := row
		for x := 0; x < g.width; x++ {
			fn(x, y, id)
			id = g.pixels[id].right
		}
		row = g.pixels[row].down
	}
}

// Validate checks that the reachable graph is a proper width×height lattice:
// each row has exactly Width pixels, the borders have no outward links, and
// every left/right and up/down relation is mirrored by its counterpart.
func (g *Grid) Validate() error {
	if g.width <= 0 || g.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, g.width, g.height)
	}
	limit := len(g.pixels)
	rows := make([][]PixelID, 0, g.height)
	seen := make(map[PixelID]struct{}, g.width*g.height)

	start := g.head
	if start == NoPixel || g.pixels[start].up != NoPixel {
		return fmt.Errorf("head %d is not a top row pixel", start)
	}
	for y := 0; start != NoPixel; y++ {
		if y >= g.height {
			return fmt.Errorf("more than %d rows reachable", g.height)
		}
		if g.pixels[start].left != NoPixel {
			return fmt.Errorf("row %d: first pixel %d has a left neighbor", y, start)
		}
		row := make([]PixelID, 0, g.width)
		for id := start; id != NoPixel; id = g.pixels[id].right {
			if len(row) > limit {
				return fmt.Errorf("row %d: cycle detected", y)
			}
			if _, ok := seen[id]; ok {
				return fmt.Errorf("row %d: pixel %d reached twice", y, id)
			}
			seen[id] = struct{}{}
			if r := g.pixels[id].right; r != NoPixel && g.pixels[r].left != id {
				return fmt.Errorf("row %d: pixel %d right link is not mirrored", y, id)
			}
			row = append(row, id)
		}
		if len(row) != g.width {
			return fmt.Errorf("row %d: got %d pixels, want %d", y, len(row), g.width)
		}
		rows = append(rows, row)
		start = g.pixels[start].down
	}
	if len(rows) != g.height {
		return fmt.Errorf("got %d rows, want %d", len(rows), g.height)
	}

	for y, row := range rows {
		for x, id := range row {
			px := g.pixels[id]
			wantUp, wantDown := NoPixel, NoPixel
			if y > 0 {
				wantUp = rows[y-1][x]
			}
			if y < g.height-1 {
				wantDown = rows[y+1][x]
			}
			if px.up != wantUp || px.down != wantDown {
				return fmt.Errorf("pixel %d at (%d,%d): vertical links (%d,%d), want (%d,%d)",
					id, x, y, px.up, px.down, wantUp, wantDown)
			}
		}
	}
	return nil
}

// addPixel appends a new, unlinked record to the arena.
func (g *Grid) addPixel(c color.NRGBA) PixelID {
	g.pixels = append(g.pixels, newPixel(c))
	return PixelID(len(g.pixels) - 1)
}
