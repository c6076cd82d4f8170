package world

import (
	"fmt"
	"math"

	"voxelsim/internal/block"
	"voxelsim/internal/config"
	"voxelsim/internal/noise"
	"voxelsim/internal/profiling"
)

// Generator populates a freshly reset chunk.
type Generator interface {
	Populate(c *Chunk)
}

// HeightGenerator is a generator that can report a column's surface height.
type HeightGenerator interface {
	Generator
	HeightAt(worldX, worldZ int) int
}

// TerrainGenerator places resources from 3D noise, then carves a 2D height
// field over them.
type TerrainGenerator struct {
	height    int
	terrain   config.Terrain
	resources []block.Resource

	resourceNoise noise.Source
	terrainNoise  noise.Source
}

// NewTerrainGenerator seeds both noise fields from one stream: resources
// draw first, terrain second.
func NewTerrainGenerator(cfg config.World) (*TerrainGenerator, error) {
	rng := noise.NewStream(cfg.Seed)
	resourceNoise, err := noise.New(cfg.Noise, rng)
	if err != nil {
		return nil, fmt.Errorf("resource noise: %w", err)
	}
	terrainNoise, err := noise.New(cfg.Noise, rng)
	if err != nil {
		return nil, fmt.Errorf("terrain noise: %w", err)
	}
	return &TerrainGenerator{
		height:        cfg.Chunk.Height,
		terrain:       cfg.Terrain,
		resources:     cfg.BlockResources(),
		resourceNoise: resourceNoise,
		terrainNoise:  terrainNoise,
	}, nil
}

// HeightAt computes the surface y of the column at world X,Z.
func (g *TerrainGenerator) HeightAt(worldX, worldZ int) int {
	n := g.terrainNoise.Noise2D(
		float64(worldX)/g.terrain.Scale,
		float64(worldZ)/g.terrain.Scale,
	)
	scaled := g.terrain.Offset + g.terrain.Magnitude*n
	h := int(math.Floor(float64(g.height) * scaled))
	return max(0, min(h, g.height-1))
}

// Populate runs the resource pass then the terrain pass.
func (g *TerrainGenerator) Populate(c *Chunk) {
	defer profiling.Track("world.TerrainGenerator.Populate")()
	g.placeResources(c)
	g.shapeTerrain(c)
}

// placeResources overwrites cells whose noise exceeds a kind's scarcity.
// Later kinds win over earlier ones.
func (g *TerrainGenerator) placeResources(c *Chunk) {
	ox, oy, oz := c.Origin()
	size := c.Size()
	for _, r := range g.resources {
		for x := range size.Width {
			for y := range size.Height {
				for z := range size.Width {
					v := g.resourceNoise.Noise3D(
						float64(ox+x)/r.Scale.X,
						float64(oy+y)/r.Scale.Y,
						float64(oz+z)/r.Scale.Z,
					)
					if v > r.Scarcity {
						c.setKind(x, y, z, r.Kind)
					}
				}
			}
		}
	}
}

// shapeTerrain fills dirt under the surface where nothing was placed, puts
// grass on the surface and clears everything above it.
func (g *TerrainGenerator) shapeTerrain(c *Chunk) {
	ox, _, oz := c.Origin()
	size := c.Size()
	for x := range size.Width {
		for z := range size.Width {
			height := g.HeightAt(ox+x, oz+z)
			// y == Height is outside the chunk and dropped by setKind.
			for y := 0; y <= size.Height; y++ {
				switch {
				case y < height && c.Kind(x, y, z) == block.Empty:
					c.setKind(x, y, z, block.Dirt)
				case y == height:
					c.setKind(x, y, z, block.Grass)
				case y > height:
					c.setKind(x, y, z, block.Empty)
				}
			}
		}
	}
}

// FlatGenerator creates a flat dirt world with a grass surface at Height.
type FlatGenerator struct {
	Height int
}

func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: height}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.Height
}

func (g *FlatGenerator) Populate(c *Chunk) {
	size := c.Size()
	for x := range size.Width {
		for z := range size.Width {
			for y := 0; y < g.Height; y++ {
				c.setKind(x, y, z, block.Dirt)
			}
			c.setKind(x, g.Height, z, block.Grass)
		}
	}
}

// NewGenerator builds the generator named by cfg.Generator.
func NewGenerator(cfg config.World) (HeightGenerator, error) {
	switch cfg.Generator {
	case "", config.GeneratorTerrain:
		return NewTerrainGenerator(cfg)
	case config.GeneratorFlat:
		return NewFlatGenerator(cfg.FlatHeight), nil
	default:
		return nil, fmt.Errorf("%w: unknown generator %q", config.ErrInvalid, cfg.Generator)
	}
}
