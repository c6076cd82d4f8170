package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToChunkRoundTrip(t *testing.T) {
	for _, width := range []int{1, 7, 16} {
		s := Size{Width: width, Height: 16}
		for x := -100; x <= 100; x++ {
			z := -x/2 + 3
			c, local := s.ToChunk(x, 5, z)
			assert.Equal(t, x, c.X*width+local[0])
			assert.Equal(t, z, c.Z*width+local[2])
			assert.Equal(t, 5, local[1])
			assert.GreaterOrEqual(t, local[0], 0)
			assert.Less(t, local[0], width)
			assert.GreaterOrEqual(t, local[2], 0)
			assert.Less(t, local[2], width)
		}
	}
}

func TestToChunkNegative(t *testing.T) {
	s := Size{Width: 16, Height: 16}
	tests := []struct {
		x, z  int
		chunk ChunkCoord
		local [3]int
	}{
		{0, 0, ChunkCoord{0, 0}, [3]int{0, 0, 0}},
		{-1, -1, ChunkCoord{-1, -1}, [3]int{15, 0, 15}},
		{-16, 15, ChunkCoord{-1, 0}, [3]int{0, 0, 15}},
		{-17, 16, ChunkCoord{-2, 1}, [3]int{15, 0, 0}},
	}
	for _, tt := range tests {
		c, local := s.ToChunk(tt.x, 0, tt.z)
		assert.Equal(t, tt.chunk, c, "x=%d z=%d", tt.x, tt.z)
		assert.Equal(t, tt.local, local, "x=%d z=%d", tt.x, tt.z)
	}
}

func TestChunkAt(t *testing.T) {
	s := Size{Width: 16, Height: 16}
	assert.Equal(t, ChunkCoord{X: -1, Z: 0}, s.ChunkAt(-0.5, 15.9))
	assert.Equal(t, ChunkCoord{X: 2, Z: -3}, s.ChunkAt(32, -33))
}

func TestChebyshev(t *testing.T) {
	a := ChunkCoord{X: 0, Z: 0}
	assert.Equal(t, 0, a.Chebyshev(a))
	assert.Equal(t, 3, a.Chebyshev(ChunkCoord{X: -3, Z: 2}))
	assert.Equal(t, 5, ChunkCoord{X: 1, Z: 1}.Chebyshev(ChunkCoord{X: 2, Z: -4}))
}
