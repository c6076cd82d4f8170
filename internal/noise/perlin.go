package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	perlinAlpha   = 2.0 // smoothing
	perlinBeta    = 2.0 // frequency
	perlinOctaves = int32(3)
)

// Perlin adapts github.com/aquilax/go-perlin to Source.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin seeds the perlin generator from the next value of r.
func NewPerlin(r Random) *Perlin {
	seed := int64(math.Floor(r.Float64() * math.MaxInt32))
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Noise2D returns perlin noise at (x, y), clamped to [-1,1].
func (n *Perlin) Noise2D(x, y float64) float64 {
	return clamp(n.p.Noise2D(x, y))
}

// Noise3D returns perlin noise at (x, y, z), clamped to [-1,1].
func (n *Perlin) Noise3D(x, y, z float64) float64 {
	return clamp(n.p.Noise3D(x, y, z))
}
