package world

import "voxelsim/internal/block"

// State is the lifecycle stage of a chunk.
type State uint8

const (
	Unloaded State = iota
	Generating
	Resident
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Generating:
		return "generating"
	case Resident:
		return "resident"
	default:
		return "unknown"
	}
}

// Chunk is a dense Width×Height×Width grid of cells at a chunk-grid coordinate.
type Chunk struct {
	coord ChunkCoord
	size  Size
	cells []Cell
	state State
	dirty bool
}

// NewChunk creates an unloaded chunk. Cells are allocated by Generate.
func NewChunk(coord ChunkCoord, size Size) *Chunk {
	return &Chunk{coord: coord, size: size}
}

func (c *Chunk) Coord() ChunkCoord { return c.coord }

func (c *Chunk) Size() Size { return c.size }

func (c *Chunk) State() State { return c.state }

// Origin returns the world position of local cell (0,0,0).
func (c *Chunk) Origin() (x, y, z int) {
	return c.coord.X * c.size.Width, 0, c.coord.Z * c.size.Width
}

// Generate fills the chunk with g. The chunk reports Generating while the
// passes run and becomes Resident only after all of them complete.
func (c *Chunk) Generate(g Generator) {
	c.state = Generating
	c.reset()
	g.Populate(c)
	c.dirty = true
	c.state = Resident
}

// reset allocates the grid if needed and sets every cell to Empty.
func (c *Chunk) reset() {
	if len(c.cells) != c.size.Volume() {
		c.cells = make([]Cell, c.size.Volume())
		return
	}
	clear(c.cells)
}

// release drops the cell grid. Render slots go with it.
func (c *Chunk) release() {
	c.cells = nil
	c.state = Unloaded
}

// index converts local coordinates to a flat index
func (c *Chunk) index(x, y, z int) int {
	return x*c.size.Height*c.size.Width + y*c.size.Width + z
}

// InBounds reports whether local (x,y,z) lies inside the chunk.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.size.Width &&
		y >= 0 && y < c.size.Height &&
		z >= 0 && z < c.size.Width
}

// Cell returns the cell at local coordinates. ok is false out of range or
// before the grid exists.
func (c *Chunk) Cell(x, y, z int) (Cell, bool) {
	if !c.InBounds(x, y, z) || c.cells == nil {
		return Cell{}, false
	}
	return c.cells[c.index(x, y, z)], true
}

// Kind returns the block kind at local coordinates, Empty when out of range.
func (c *Chunk) Kind(x, y, z int) block.Kind {
	cell, _ := c.Cell(x, y, z)
	return cell.Kind
}

// setKind writes a block kind; out-of-range writes are ignored.
func (c *Chunk) setKind(x, y, z int, k block.Kind) bool {
	if !c.InBounds(x, y, z) || c.cells == nil {
		return false
	}
	cell := &c.cells[c.index(x, y, z)]
	if cell.Kind != k {
		cell.Kind = k
		c.dirty = true
	}
	return true
}

// AssignRenderSlot records the renderer's handle for a cell.
func (c *Chunk) AssignRenderSlot(x, y, z, slot int) bool {
	if !c.InBounds(x, y, z) || c.cells == nil {
		return false
	}
	cell := &c.cells[c.index(x, y, z)]
	cell.slot, cell.hasSlot = int32(slot), true
	return true
}

// ClearRenderSlot forgets the renderer's handle for a cell.
func (c *Chunk) ClearRenderSlot(x, y, z int) {
	if !c.InBounds(x, y, z) || c.cells == nil {
		return
	}
	cell := &c.cells[c.index(x, y, z)]
	cell.slot, cell.hasSlot = 0, false
}

// clearRenderSlots forgets every handle.
func (c *Chunk) clearRenderSlots() {
	for i := range c.cells {
		c.cells[i].slot, c.cells[i].hasSlot = 0, false
	}
}

// IsObscured reports whether all six face neighbours are non-empty.
// Neighbours outside this chunk count as empty.
func (c *Chunk) IsObscured(x, y, z int) bool {
	return c.Kind(x, y+1, z) != block.Empty &&
		c.Kind(x, y-1, z) != block.Empty &&
		c.Kind(x+1, y, z) != block.Empty &&
		c.Kind(x-1, y, z) != block.Empty &&
		c.Kind(x, y, z+1) != block.Empty &&
		c.Kind(x, y, z-1) != block.Empty
}

// IsDirty returns whether the chunk changed since the renderer last pulled it.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as consumed by the renderer
func (c *Chunk) SetClean() {
	c.dirty = false
}

// Instance is a visible block in local chunk coordinates.
type Instance struct {
	X, Y, Z int
	Kind    block.Kind
}

// RenderInstances returns every non-empty cell with at least one exposed face.
func (c *Chunk) RenderInstances() []Instance {
	if c.cells == nil {
		return nil
	}
	var out []Instance
	for x := range c.size.Width {
		for y := range c.size.Height {
			for z := range c.size.Width {
				k := c.cells[c.index(x, y, z)].Kind
				if k == block.Empty || c.IsObscured(x, y, z) {
					continue
				}
				out = append(out, Instance{X: x, Y: y, Z: z, Kind: k})
			}
		}
	}
	return out
}

// SurfaceHeight returns the highest non-empty local y of a column, or -1.
func (c *Chunk) SurfaceHeight(x, z int) int {
	for y := c.size.Height - 1; y >= 0; y-- {
		if c.Kind(x, y, z) != block.Empty {
			return y
		}
	}
	return -1
}
