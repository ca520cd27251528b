package carve

// Energy scores how objectionable it is to remove a pixel. Scores are never
// negative; the seam search minimises their sum. Implementations get
// read-only access to the pixel's neighbors as they are currently linked.
type Energy interface {
	Energy(p Pixel) float64
}

// EnergyFunc adapts an ordinary function to the Energy interface.
type EnergyFunc func(p Pixel) float64

// Energy calls f(p).
func (f EnergyFunc) Energy(p Pixel) float64 { return f(p) }

var (
	_ Energy = BlueEnergy{}
	_ Energy = GradientEnergy{}
	_ Energy = EnergyFunc(nil)
)

// BlueEnergy rates a pixel by how little blue it has: 255 minus its blue
// channel. Fully blue pixels are the cheapest to remove.
type BlueEnergy struct{}

// Energy returns 255 - B.
func (BlueEnergy) Energy(p Pixel) float64 {
	return 255 - float64(p.Color().B)
}
