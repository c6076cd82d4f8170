package world

import (
	"sort"
	"sync"
)

// ChunkStore maps chunk coordinates to chunks. At most one chunk is stored
// per coordinate. Reads may come from a renderer goroutine, so access is
// guarded even though the simulation itself is single-threaded.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates an empty chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Get returns the chunk stored at coord regardless of its state.
func (cs *ChunkStore) Get(coord ChunkCoord) (*Chunk, bool) {
	cs.mu.RLock()
	c, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return c, ok
}

// Has checks if a chunk is stored without returning it.
func (cs *ChunkStore) Has(coord ChunkCoord) bool {
	_, ok := cs.Get(coord)
	return ok
}

// Add stores a chunk. It reports false and leaves the store unchanged if the
// coordinate is already taken.
func (cs *ChunkStore) Add(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.chunks[chunk.Coord()]; ok {
		return false
	}
	cs.chunks[chunk.Coord()] = chunk
	cs.modCount++
	return true
}

// Remove deletes and returns the chunk at coord.
func (cs *ChunkStore) Remove(coord ChunkCoord) (*Chunk, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c, ok := cs.chunks[coord]
	if ok {
		delete(cs.chunks, coord)
		cs.modCount++
	}
	return c, ok
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// All returns every stored chunk ordered by (X, Z).
func (cs *ChunkStore) All() []*Chunk {
	cs.mu.RLock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, c := range cs.chunks {
		out = append(out, c)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord(), out[j].Coord()
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})
	return out
}

// Coords returns the set of stored coordinates.
func (cs *ChunkStore) Coords() map[ChunkCoord]struct{} {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[ChunkCoord]struct{}, len(cs.chunks))
	for coord := range cs.chunks {
		out[coord] = struct{}{}
	}
	return out
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}
