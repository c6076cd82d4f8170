package player

import (
	"voxelsim/internal/block"
	"voxelsim/internal/physics"
	"voxelsim/internal/profiling"
)

// Editor is the part of the world a player can change.
type Editor interface {
	physics.Blocks
	SetBlockKind(x, y, z int, k block.Kind) bool
	RemoveBlock(x, y, z int) bool
}

func (p *Player) raycast(blocks physics.Blocks) physics.RaycastResult {
	return physics.Raycast(p.EyePosition(), p.LookDirection(), physics.MinReachDistance, physics.MaxReachDistance, blocks)
}

// UpdateHoveredBlock records the block under the crosshair.
func (p *Player) UpdateHoveredBlock(blocks physics.Blocks) {
	defer profiling.Track("player.UpdateHoveredBlock")()
	result := p.raycast(blocks)

	p.HasHoveredBlock = result.Hit
	if result.Hit {
		p.HoveredBlock = result.HitPosition
	}
}

// BreakBlock removes the block being looked at. It returns the position and
// whether a block was removed.
func (p *Player) BreakBlock(w Editor) ([3]int, bool) {
	result := p.raycast(w)
	if !result.Hit {
		return [3]int{}, false
	}
	pos := result.HitPosition
	return pos, w.RemoveBlock(pos[0], pos[1], pos[2])
}

// PlaceBlock puts the selected kind into the empty cell in front of the
// block being looked at. Placement is refused when the cell is not empty or
// would overlap the player.
func (p *Player) PlaceBlock(w Editor) ([3]int, bool) {
	if p.Selected == block.Empty {
		return [3]int{}, false
	}
	result := p.raycast(w)
	if !result.Hit {
		return [3]int{}, false
	}
	pos := result.AdjacentPosition
	cell, ok := w.Block(pos[0], pos[1], pos[2])
	if !ok || !cell.IsEmpty() || physics.Intersects(p, pos) {
		return pos, false
	}
	return pos, w.SetBlockKind(pos[0], pos[1], pos[2], p.Selected)
}
