package carve

import "fmt"

// Relation tells where a seam node's predecessor, one row up, sits.
type Relation uint8

const (
	// StraightUp means the predecessor is directly above.
	// Nodes in the top row always use it.
	StraightUp Relation = iota
	// DiagonalLeft means the predecessor is one column to the left.
	DiagonalLeft
	// DiagonalRight means the predecessor is one column to the right.
	DiagonalRight
)

func (r Relation) String() string {
	switch r {
	case StraightUp:
		return "straight-up"
	case DiagonalLeft:
		return "diagonal-left"
	case DiagonalRight:
		return "diagonal-right"
	}
	return fmt.Sprintf("Relation(%d)", r)
}

// SeamNode is one element of a seam. A seam is handled through its bottom
// node and linked upwards, one node per row, like a singly linked list.
// Nodes are immutable once created.
type SeamNode struct {
	pixel    PixelID
	cost     float64
	prev     *SeamNode
	relation Relation
}

// NewSeamNode creates a node for pixel with the given predecessor (the node
// one row up, nil for the top row) and cumulative cost.
func NewSeamNode(pixel PixelID, prev *SeamNode, relation Relation, cost float64) *SeamNode {
	return &SeamNode{
		pixel:    pixel,
		cost:     cost,
		prev:     prev,
		relation: relation,
	}
}

// Pixel returns the arena index of the pixel held by the node.
func (n *SeamNode) Pixel() PixelID { return n.pixel }

// Cost returns the summed energy of this node and all nodes above it.
func (n *SeamNode) Cost() float64 { return n.cost }

// Prev returns the node one row up, or nil for the top row.
func (n *SeamNode) Prev() *SeamNode { return n.prev }

// Relation returns where Prev sits relative to this node.
func (n *SeamNode) Relation() Relation { return n.relation }

// Len returns the number of nodes from n up to the top of the seam.
func (n *SeamNode) Len() int {
	var count int
	for ; n != nil; n = n.prev {
		count++
	}
	return count
}

// FindSeam computes the vertical seam with the lowest cumulative energy and
// returns its bottom node.
//
// The cumulative cost M of every pixel (x, y) is computed from the top row
// down as
//
//	M(x, y) = e(x, y) + min(M(x-1, y-1), M(x, y-1), M(x+1, y-1))
//
// On equal costs the pixel directly above wins; a diagonal only replaces the
// running best when it is strictly cheaper, the left one being checked first.
// In the bottom row the leftmost of the cheapest nodes is returned.
func (g *Grid) FindSeam(e Energy) (*SeamNode, error) {
	if g.width <= 0 || g.height <= 0 {
		return nil, fmt.Errorf("%w: cannot search a seam in a %dx%d image", ErrInvalidGeometry, g.width, g.height)
	}
	prev := make([]*SeamNode, 0, g.width)
	curr := make([]*SeamNode, 0, g.width)

	row := g.head
	for id := row; id != NoPixel; id = g.pixels[id].right {
		prev = append(prev, &SeamNode{
			pixel:    id,
			cost:     e.Energy(g.Pixel(id)),
			relation: StraightUp,
		})
	}

	for y := 1; y < g.height; y++ {
		row = g.pixels[row].down
		id := row
		for x := 0; x < g.width; x++ {
			best, relation := prev[x], StraightUp
			if x > 0 && prev[x-1].cost < best.cost {
				best, relation = prev[x-1], DiagonalLeft
			}
			if x < g.width-1 && prev[x+1].cost < best.cost {
				best, relation = prev[x+1], DiagonalRight
			}
			curr = append(curr, &SeamNode{
				pixel:    id,
				cost:     best.cost + e.Energy(g.Pixel(id)),
				prev:     best,
				relation: relation,
			})
			id = g.pixels[id].right
		}
		prev, curr = curr, prev[:0]
	}

	lowest := prev[0]
	for _, n := range prev[1:] {
		if n.cost < lowest.cost {
			lowest = n
		}
	}
	return lowest, nil
}
