package world

import "voxelsim/internal/block"

// Cell is one voxel of a chunk. The render slot is an opaque handle owned by
// the renderer; the core only tracks whether one is set.
type Cell struct {
	Kind    block.Kind
	slot    int32
	hasSlot bool
}

// RenderSlot returns the renderer handle, if any.
func (c Cell) RenderSlot() (int, bool) {
	return int(c.slot), c.hasSlot
}

// IsEmpty reports whether the cell holds no block.
func (c Cell) IsEmpty() bool {
	return c.Kind == block.Empty
}
