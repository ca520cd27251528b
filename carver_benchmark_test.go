package carve

import (
	"image/color"
	"math/rand/v2"
	"testing"
)

func benchmarkGrid(b *testing.B, width, height int) *Grid {
	rng := rand.New(rand.NewPCG(5, 6))
	g, err := NewGrid(width, height, func(x, y int) color.Color {
		return color.NRGBA{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256)), A: 255}
	})
	if err != nil {
		b.Fatalf("could not build the grid: %v", err)
	}
	return g
}

func Benchmark_FindSeam(b *testing.B) {
	g := benchmarkGrid(b, 256, 256)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := g.FindSeam(GradientEnergy{}); err != nil {
			b.FailNow()
		}
	}
}

func Benchmark_RemoveInsertSeam(b *testing.B) {
	g := benchmarkGrid(b, 256, 256)
	seam, err := g.FindSeam(GradientEnergy{})
	if err != nil {
		b.FailNow()
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := g.RemoveSeam(seam); err != nil {
			b.FailNow()
		}
		if _, err := g.InsertSeam(seam, true); err != nil {
			b.FailNow()
		}
	}
}

func Benchmark_Carve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		h := NewHistory(benchmarkGrid(b, 128, 128))
		b.StartTimer()

		for h.Grid().Width() > 64 {
			if _, err := h.HighlightLowestEnergy(); err != nil {
				b.FailNow()
			}
			if err := h.DeleteHighlighted(); err != nil {
				b.FailNow()
			}
		}
	}
}
