package carve

import (
	"fmt"
	"image/color"
)

// HighlightSeam replaces every pixel of seam with a new pixel of color c,
// taking over all four links of the pixel it replaces. The width does not
// change. It returns a parallel seam, with the same costs and relations,
// holding the new pixels.
//
// The replaced pixels leave the graph but stay in the arena, so passing the
// original seam to InsertSeam with affectedWidth false restores them.
func (g *Grid) HighlightSeam(seam *SeamNode, c color.NRGBA) (*SeamNode, error) {
	if err := g.checkLiveSeam(seam); err != nil {
		return nil, err
	}

	var bottom, last *SeamNode
	for n := seam; n != nil; n = n.prev {
		id := g.addPixel(c)
		g.replace(n.pixel, id)

		node := &SeamNode{pixel: id, cost: n.cost, relation: n.relation}
		if last == nil {
			bottom = node
		} else {
			last.prev = node
		}
		last = node
	}
	return bottom, nil
}

// replace splices the record id into the position held by old.
func (g *Grid) replace(old, id PixelID) {
	o := g.pixels[old]
	if o.right != NoPixel {
		g.pixels[o.right].left = id
	}
	if o.left != NoPixel {
		g.pixels[o.left].right = id
	}
	if o.up != NoPixel {
		g.pixels[o.up].down = id
	}
	if o.down != NoPixel {
		g.pixels[o.down].up = id
	}

	np := &g.pixels[id]
	np.left, np.right = o.left, o.right
	np.up, np.down = o.up, o.down

	if g.head == old {
		g.head = id
	}
}

// RemoveSeam unlinks the pixels of seam from the graph and shrinks the width
// by one. Each row closes the gap by linking the removed pixel's left and
// right neighbors together; a diagonal node also hands its vertical link
// over to the neighbor on the side of its predecessor.
//
// The seam itself is returned unchanged, ready to be reinserted.
func (g *Grid) RemoveSeam(seam *SeamNode) (*SeamNode, error) {
	if err := g.checkLiveSeam(seam); err != nil {
		return nil, err
	}
	if g.width <= 1 {
		return nil, ErrLastColumn
	}

	for n := seam; n != nil; n = n.prev {
		id := n.pixel
		px := g.pixels[id]

		if g.head == id {
			g.head = px.right
		}
		if px.left != NoPixel {
			g.pixels[px.left].right = px.right
		}
		if px.right != NoPixel {
			g.pixels[px.right].left = px.left
		}

		switch n.relation {
		case DiagonalLeft:
			g.pixels[px.up].down = px.left
			g.pixels[px.left].up = px.up
		case DiagonalRight:
			g.pixels[px.up].down = px.right
			g.pixels[px.right].up = px.up
		case StraightUp:
			// The pixel above is removed in the same pass.
		}
	}
	g.width--
	return seam, nil
}

// InsertSeam is the inverse of RemoveSeam and of HighlightSeam: the pixels
// of seam, whose own links were left untouched when they were taken out,
// are linked back into their former neighbors. The width grows by one only
// when affectedWidth is set, which is the case when undoing a removal but not
// when undoing a highlight.
//
// The seam itself is returned unchanged.
func (g *Grid) InsertSeam(seam *SeamNode, affectedWidth bool) (*SeamNode, error) {
	if err := g.checkSeam(seam); err != nil {
		return nil, err
	}
	for n := seam; n != nil; n = n.prev {
		px := g.pixels[n.pixel]
		if n.relation == DiagonalLeft && (px.up == NoPixel || px.left == NoPixel || n.prev == nil) ||
			n.relation == DiagonalRight && (px.up == NoPixel || px.right == NoPixel || n.prev == nil) {
			return nil, fmt.Errorf("%w: %s node %d has no pixel to link to", ErrInvalidGeometry, n.relation, n.pixel)
		}
	}

	for n := seam; n != nil; n = n.prev {
		id := n.pixel
		px := g.pixels[id]

		if px.left != NoPixel {
			g.pixels[px.left].right = id
		}
		if px.right != NoPixel {
			g.pixels[px.right].left = id
		}

		switch n.relation {
		case DiagonalLeft:
			g.pixels[px.up].down = id
			g.pixels[px.left].up = n.prev.pixel
		case DiagonalRight:
			g.pixels[px.up].down = id
			g.pixels[px.right].up = n.prev.pixel
		case StraightUp:
			if px.up != NoPixel {
				g.pixels[px.up].down = id
			} else if px.left == NoPixel {
				// Top row, first column: the pixel becomes the head again.
				g.head = id
			}
		}
	}
	if affectedWidth {
		g.width++
	}
	return seam, nil
}

// checkSeam verifies that seam has one node per row and that its pixels
// exist in the arena.
func (g *Grid) checkSeam(seam *SeamNode) error {
	if g.width <= 0 || g.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, g.width, g.height)
	}
	if seam == nil {
		return fmt.Errorf("%w: nil seam", ErrInvalidGeometry)
	}
	if l := seam.Len(); l != g.height {
		return fmt.Errorf("%w: got %d nodes for %d rows", ErrSeamLength, l, g.height)
	}
	for n := seam; n != nil; n = n.prev {
		if n.pixel < 0 || int(n.pixel) >= len(g.pixels) {
			return fmt.Errorf("%w: pixel %d out of range", ErrInvalidGeometry, n.pixel)
		}
	}
	return nil
}

// checkLiveSeam additionally verifies that seam is a connected path through
// the pixels currently linked in the grid.
func (g *Grid) checkLiveSeam(seam *SeamNode) error {
	if err := g.checkSeam(seam); err != nil {
		return err
	}
	for n := seam; n != nil; n = n.prev {
		if !g.isLinked(n.pixel) {
			return fmt.Errorf("%w: pixel %d is not part of the image", ErrInvalidGeometry, n.pixel)
		}
		up := g.pixels[n.pixel].up
		if n.prev == nil {
			if up != NoPixel || n.relation != StraightUp {
				return fmt.Errorf("%w: seam does not end in the top row", ErrInvalidGeometry)
			}
			continue
		}
		if up == NoPixel {
			return fmt.Errorf("%w: pixel %d has no row above", ErrInvalidGeometry, n.pixel)
		}
		want := up
		switch n.relation {
		case DiagonalLeft:
			want = g.pixels[up].left
		case DiagonalRight:
			want = g.pixels[up].right
		}
		if want == NoPixel || want != n.prev.pixel {
			return fmt.Errorf("%w: %s link from pixel %d is broken", ErrInvalidGeometry, n.relation, n.pixel)
		}
	}
	return nil
}

// isLinked reports whether the record id is currently reachable. A pixel
// that was taken out keeps its links, but none of its neighbors links back.
// In a single column the pixels of one seam link to each other, so the
// column is followed up to the head.
func (g *Grid) isLinked(id PixelID) bool {
	px := g.pixels[id]
	switch {
	case px.left != NoPixel:
		return g.pixels[px.left].right == id
	case px.right != NoPixel:
		return g.pixels[px.right].left == id
	}
	for px.up != NoPixel {
		if g.pixels[px.up].down != id {
			return false
		}
		id = px.up
		px = g.pixels[id]
	}
	return g.head == id
}
