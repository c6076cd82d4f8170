package world

import "math"

// Size is the world-wide chunk shape: Width×Height×Width cells.
type Size struct {
	Width  int
	Height int
}

// Volume returns the cell count of a chunk.
func (s Size) Volume() int {
	return s.Width * s.Height * s.Width
}

// ChunkCoord identifies a chunk column on the chunk grid.
type ChunkCoord struct {
	X, Z int
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ToChunk splits a world block coordinate into its chunk and the local
// coordinate inside that chunk. Negative coordinates map to the chunk below,
// so chunk*Width + local always equals the input.
func (s Size) ToChunk(x, y, z int) (ChunkCoord, [3]int) {
	c := ChunkCoord{X: floorDiv(x, s.Width), Z: floorDiv(z, s.Width)}
	return c, [3]int{x - s.Width*c.X, y, z - s.Width*c.Z}
}

// ChunkAt returns the chunk containing a continuous world position.
func (s Size) ChunkAt(x, z float64) ChunkCoord {
	c, _ := s.ToChunk(int(math.Floor(x)), 0, int(math.Floor(z)))
	return c
}

// Chebyshev returns max(|dx|, |dz|) between two chunk coordinates.
func (c ChunkCoord) Chebyshev(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Z-o.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
