package carve

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seamNodes returns the seam nodes from the top row down.
func seamNodes(seam *SeamNode) []*SeamNode {
	var nodes []*SeamNode
	for n := seam; n != nil; n = n.Prev() {
		nodes = append([]*SeamNode{n}, nodes...)
	}
	return nodes
}

// seamColumns returns the column of every seam pixel, from the top row down.
func seamColumns(t *testing.T, g *Grid, seam *SeamNode) []int {
	t.Helper()
	var cols []int
	for y, n := range seamNodes(seam) {
		col := -1
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y).ID() == n.Pixel() {
				col = x
				break
			}
		}
		require.NotEqual(t, -1, col, "seam pixel of row %d not found", y)
		cols = append(cols, col)
	}
	return cols
}

func TestCarver_BluestSeam(t *testing.T) {
	g := sampleGrid(t)

	seam, err := g.FindSeam(BlueEnergy{})
	require.NoError(t, err)
	require.Equal(t, 3, seam.Len())

	assert.Equal(t, []int{2, 2, 2}, seamColumns(t, g, seam))
	for _, n := range seamNodes(seam) {
		assert.Equal(t, StraightUp, n.Relation())
		assert.Equal(t, 255.0, n.Cost())
	}
	assert.Equal(t, cyan, g.Pixel(seam.Pixel()).Color())
}

func TestCarver_LowestEnergySeam(t *testing.T) {
	g := sampleGrid(t)

	seam, err := g.FindSeam(GradientEnergy{})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 0}, seamColumns(t, g, seam))

	nodes := seamNodes(seam)
	assert.Equal(t, StraightUp, nodes[0].Relation())
	assert.Equal(t, DiagonalLeft, nodes[1].Relation())
	assert.Equal(t, DiagonalRight, nodes[2].Relation())

	assert.InDelta(t, 97.78093429248419, nodes[0].Cost(), 1e-9)
	assert.InDelta(t, 301.3736650075075, nodes[1].Cost(), 1e-9)
	assert.InDelta(t, 657.7130787379813, nodes[2].Cost(), 1e-9)
	assert.Nil(t, nodes[0].Prev())
}

func TestCarver_TieBreakShouldPreferStraightUpAndLeftmost(t *testing.T) {
	g := uniformGrid(t, 5, 4, pink)

	seam, err := g.FindSeam(GradientEnergy{})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 0}, seamColumns(t, g, seam))
	for _, n := range seamNodes(seam) {
		assert.Equal(t, StraightUp, n.Relation())
		assert.Zero(t, n.Cost())
	}
}

func TestCarver_DiagonalLeftShouldWinOverRightOnEqualCost(t *testing.T) {
	// The middle pixel of the top row is expensive, its neighbors are equally cheap.
	energy := EnergyFunc(func(p Pixel) float64 {
		if p.Color() == red {
			return 10
		}
		return 1
	})
	g := gridFromRows(t, [][]color.NRGBA{
		{black, red, black},
		{red, black, red},
	})

	seam, err := g.FindSeam(energy)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, seamColumns(t, g, seam))
	assert.Equal(t, DiagonalLeft, seam.Relation())
	assert.Equal(t, 2.0, seam.Cost())
}

func TestCarver_CostShouldNotDecreaseDownTheSeam(t *testing.T) {
	g := gridFromRows(t, [][]color.NRGBA{
		{red, orange, yellow, green},
		{black, blue, magenta, pink},
		{cyan, red, orange, yellow},
		{green, black, blue, magenta},
	})

	for _, e := range []Energy{BlueEnergy{}, GradientEnergy{}} {
		seam, err := g.FindSeam(e)
		require.NoError(t, err)
		require.Equal(t, 4, seam.Len())

		for n := seam; n.Prev() != nil; n = n.Prev() {
			assert.GreaterOrEqual(t, n.Cost(), n.Prev().Cost())
		}
	}
}

func TestCarver_SingleColumn(t *testing.T) {
	g := gridFromRows(t, [][]color.NRGBA{{red}, {green}, {blue}})

	seam, err := g.FindSeam(BlueEnergy{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, seamColumns(t, g, seam))
	assert.Equal(t, 510.0, seam.Cost())
}

func TestCarver_EmptyGrid(t *testing.T) {
	_, err := (&Grid{}).FindSeam(BlueEnergy{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCarver_Relation(t *testing.T) {
	assert.Equal(t, "straight-up", StraightUp.String())
	assert.Equal(t, "diagonal-left", DiagonalLeft.String())
	assert.Equal(t, "diagonal-right", DiagonalRight.String())
	assert.Equal(t, "Relation(7)", Relation(7).String())
}

func TestCarver_NewSeamNode(t *testing.T) {
	top := NewSeamNode(2, nil, StraightUp, 1.5)
	bottom := NewSeamNode(4, top, DiagonalRight, 3)

	assert.Equal(t, PixelID(4), bottom.Pixel())
	assert.Equal(t, top, bottom.Prev())
	assert.Equal(t, DiagonalRight, bottom.Relation())
	assert.Equal(t, 3.0, bottom.Cost())
	assert.Equal(t, 2, bottom.Len())
}
