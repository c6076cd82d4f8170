package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelsim/internal/profiling"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0

	raycastStep = 0.02
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int // last empty cell before the hit
	Distance         float64
	Hit              bool
}

// Raycast marches from start along direction and stops at the first solid
// cell between minDist and maxDist. direction should be normalised.
func Raycast(start, direction mgl64.Vec3, minDist, maxDist float64, blocks Blocks) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	steps := int(maxDist / raycastStep)

	lastEmptyPos := blockAt(start)
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float64(i) * raycastStep
		if dist < minDist {
			continue
		}

		pos := start.Add(direction.Mul(dist))
		blockPos := blockAt(pos)

		if cell, ok := blocks.Block(blockPos[0], blockPos[1], blockPos[2]); ok && !cell.IsEmpty() {
			result.HitPosition = blockPos
			result.AdjacentPosition = lastEmptyPos
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmptyPos = blockPos
	}

	return result
}

// blockAt returns the cube containing p. Cubes are centred on integers.
func blockAt(p mgl64.Vec3) [3]int {
	return [3]int{
		int(math.Floor(p.X() + 0.5)),
		int(math.Floor(p.Y() + 0.5)),
		int(math.Floor(p.Z() + 0.5)),
	}
}
