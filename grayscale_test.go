package carve

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyMap_Uniform(t *testing.T) {
	g := uniformGrid(t, 10, 10, color.NRGBA{R: 177, G: 177, B: 177, A: 255})

	img, err := EnergyMap(g, GradientEnergy{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatalf("expected a black energy map, got luminance %d", v)
		}
	}
}

func TestEnergyMap_Blue(t *testing.T) {
	img, err := EnergyMap(sampleGrid(t), BlueEnergy{})
	require.NoError(t, err)

	want := []uint8{
		255, 255, 255,
		255, 255, 0,
		0, 80, 0,
	}
	assert.Equal(t, want, img.Pix)
}

func TestEnergyMap_ShouldFollowCarvedGrid(t *testing.T) {
	g := sampleGrid(t)
	seam, err := g.FindSeam(BlueEnergy{})
	require.NoError(t, err)
	_, err = g.RemoveSeam(seam)
	require.NoError(t, err)

	img, err := EnergyMap(g, BlueEnergy{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), img.Bounds())
	assert.Equal(t, []uint8{255, 255, 255, 255, 0, 80}, img.Pix)
}

func TestEnergyMap_Empty(t *testing.T) {
	_, err := EnergyMap(&Grid{}, BlueEnergy{})
	assert.ErrorIs(t, err, ErrEmptyImage)
}
