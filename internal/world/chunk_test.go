package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelsim/internal/block"
)

type fillGenerator struct {
	kind      block.Kind
	seenState State
}

func (g *fillGenerator) Populate(c *Chunk) {
	g.seenState = c.State()
	size := c.Size()
	for x := range size.Width {
		for y := range size.Height {
			for z := range size.Width {
				c.setKind(x, y, z, g.kind)
			}
		}
	}
}

func TestChunkLifecycle(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 1, Z: 2}, Size{Width: 3, Height: 3})
	assert.Equal(t, Unloaded, c.State())
	_, ok := c.Cell(0, 0, 0)
	assert.False(t, ok, "no cells before generation")

	g := &fillGenerator{kind: block.Stone}
	c.Generate(g)
	assert.Equal(t, Generating, g.seenState)
	assert.Equal(t, Resident, c.State())
	assert.True(t, c.IsDirty())

	c.SetClean()
	assert.False(t, c.IsDirty())

	c.release()
	assert.Equal(t, Unloaded, c.State())
	_, ok = c.Cell(0, 0, 0)
	assert.False(t, ok)
}

func TestChunkGenerateResets(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 2, Height: 4})
	c.Generate(&fillGenerator{kind: block.Stone})
	c.Generate(NewFlatGenerator(1))

	assert.Equal(t, block.Dirt, c.Kind(1, 0, 1))
	assert.Equal(t, block.Grass, c.Kind(1, 1, 1))
	assert.Equal(t, block.Empty, c.Kind(1, 2, 1))
	assert.Equal(t, block.Empty, c.Kind(1, 3, 1))
}

func TestChunkBounds(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 4, Height: 8})
	c.Generate(NewFlatGenerator(2))

	cases := [][3]int{{-1, 0, 0}, {4, 0, 0}, {0, -1, 0}, {0, 8, 0}, {0, 0, -1}, {0, 0, 4}}
	for _, p := range cases {
		_, ok := c.Cell(p[0], p[1], p[2])
		assert.False(t, ok, "%v", p)
		assert.Equal(t, block.Empty, c.Kind(p[0], p[1], p[2]))
		assert.False(t, c.setKind(p[0], p[1], p[2], block.Stone))
	}
	cell, ok := c.Cell(3, 7, 3)
	require.True(t, ok)
	assert.True(t, cell.IsEmpty())
}

func TestChunkOrigin(t *testing.T) {
	c := NewChunk(ChunkCoord{X: -2, Z: 3}, Size{Width: 16, Height: 16})
	x, y, z := c.Origin()
	assert.Equal(t, [3]int{-32, 0, 48}, [3]int{x, y, z})
}

func TestIsObscured(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 3, Height: 3})
	c.Generate(&fillGenerator{kind: block.Dirt})

	assert.True(t, c.IsObscured(1, 1, 1))
	// neighbours outside the chunk count as empty
	assert.False(t, c.IsObscured(0, 1, 1))
	assert.False(t, c.IsObscured(1, 2, 1))

	c.setKind(1, 2, 1, block.Empty)
	assert.False(t, c.IsObscured(1, 1, 1))
}

func TestRenderInstances(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 3, Height: 3})
	assert.Nil(t, c.RenderInstances())

	c.Generate(&fillGenerator{kind: block.Stone})
	instances := c.RenderInstances()
	assert.Len(t, instances, 26)
	for _, in := range instances {
		assert.NotEqual(t, [3]int{1, 1, 1}, [3]int{in.X, in.Y, in.Z})
		assert.Equal(t, block.Stone, in.Kind)
	}

	c.setKind(0, 0, 0, block.Empty)
	assert.Len(t, c.RenderInstances(), 25)
}

func TestRenderSlots(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 2, Height: 2})
	assert.False(t, c.AssignRenderSlot(0, 0, 0, 5), "no grid yet")

	c.Generate(NewFlatGenerator(0))
	require.True(t, c.AssignRenderSlot(1, 0, 1, 42))
	cell, _ := c.Cell(1, 0, 1)
	slot, ok := cell.RenderSlot()
	assert.True(t, ok)
	assert.Equal(t, 42, slot)

	c.ClearRenderSlot(1, 0, 1)
	cell, _ = c.Cell(1, 0, 1)
	_, ok = cell.RenderSlot()
	assert.False(t, ok)

	c.AssignRenderSlot(0, 0, 0, 1)
	c.clearRenderSlots()
	cell, _ = c.Cell(0, 0, 0)
	_, ok = cell.RenderSlot()
	assert.False(t, ok)
}

func TestSetKindMarksDirtyOnlyOnChange(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 2, Height: 2})
	c.Generate(NewFlatGenerator(0))
	c.SetClean()

	c.setKind(0, 0, 0, block.Grass)
	assert.False(t, c.IsDirty())
	c.setKind(0, 0, 0, block.Stone)
	assert.True(t, c.IsDirty())
}

func TestSurfaceHeight(t *testing.T) {
	c := NewChunk(ChunkCoord{}, Size{Width: 2, Height: 6})
	c.Generate(NewFlatGenerator(3))
	assert.Equal(t, 3, c.SurfaceHeight(0, 0))

	for y := range 6 {
		c.setKind(1, y, 1, block.Empty)
	}
	assert.Equal(t, -1, c.SurfaceHeight(1, 1))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "generating", Generating.String())
	assert.Equal(t, "resident", Resident.String())
	assert.Equal(t, "unknown", State(9).String())
}
