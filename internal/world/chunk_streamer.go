package world

// StreamPlan is the outcome of comparing the stored chunks against the
// visible window. Both lists come from one snapshot, so no coordinate can
// appear in both.
type StreamPlan struct {
	Center ChunkCoord
	Add    []ChunkCoord
	Remove []ChunkCoord
}

// VisibleChunks returns the square window of chunks within Chebyshev
// distance radius of center, in scan order (X outer, Z inner).
func VisibleChunks(center ChunkCoord, radius int) []ChunkCoord {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	out := make([]ChunkCoord, 0, side*side)
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			out = append(out, ChunkCoord{X: x, Z: z})
		}
	}
	return out
}

// PlanStream computes the additions and removals needed to make stored
// match the window around center.
func PlanStream(center ChunkCoord, radius int, stored map[ChunkCoord]struct{}) StreamPlan {
	plan := StreamPlan{Center: center}
	visible := VisibleChunks(center, radius)
	inWindow := make(map[ChunkCoord]struct{}, len(visible))
	for _, coord := range visible {
		inWindow[coord] = struct{}{}
		if _, ok := stored[coord]; !ok {
			plan.Add = append(plan.Add, coord)
		}
	}
	for coord := range stored {
		if _, ok := inWindow[coord]; !ok {
			plan.Remove = append(plan.Remove, coord)
		}
	}
	return plan
}
