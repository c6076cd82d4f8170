package world

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"voxelsim/internal/block"
	"voxelsim/internal/config"
	"voxelsim/internal/metrics"
	"voxelsim/internal/profiling"
	"voxelsim/internal/schedule"
)

// ChunkListener is notified when chunks become resident or are released.
// A renderer uses it to build and dispose per-chunk resources.
type ChunkListener interface {
	ChunkLoaded(c *Chunk)
	ChunkReleased(c *Chunk)
}

type nopListener struct{}

func (nopListener) ChunkLoaded(*Chunk)   {}
func (nopListener) ChunkReleased(*Chunk) {}

// World owns the loaded chunks and streams them around an observer.
type World struct {
	cfg   config.World
	size  Size
	gen   HeightGenerator
	store *ChunkStore
	queue *schedule.Queue

	listener ChunkListener
	metrics  *metrics.Metrics
	log      *slog.Logger
	clock    schedule.Clock

	fixedGen bool
}

// Option customises a World.
type Option func(*World)

func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *World) { w.metrics = m }
}

func WithListener(l ChunkListener) Option {
	return func(w *World) { w.listener = l }
}

// WithClock replaces the clock used for generation deadlines.
func WithClock(c schedule.Clock) Option {
	return func(w *World) { w.clock = c }
}

// WithGenerator bypasses cfg.Generator. Reset keeps using g.
func WithGenerator(g HeightGenerator) Option {
	return func(w *World) {
		w.gen = g
		w.fixedGen = g != nil
	}
}

// New validates cfg and creates an empty world. Chunks appear on Update.
func New(cfg config.World, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:      cfg,
		size:     Size{Width: cfg.Chunk.Width, Height: cfg.Chunk.Height},
		store:    NewChunkStore(),
		listener: nopListener{},
		log:      slog.Default(),
		clock:    schedule.SystemClock,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.gen == nil {
		gen, err := NewGenerator(cfg)
		if err != nil {
			return nil, err
		}
		w.gen = gen
	}
	w.queue = schedule.NewQueue(w.clock, cfg.AsyncTimeout)
	return w, nil
}

func (w *World) Size() Size { return w.size }

func (w *World) DrawDistance() int { return w.cfg.DrawDistance }

// HeightAt returns the generated surface height of a world column.
func (w *World) HeightAt(x, z int) int { return w.gen.HeightAt(x, z) }

// Update streams chunks around the observer. Queued generation past its
// deadline runs first. Chunks outside the draw distance are released at
// once; missing chunks inside it are generated now or queued, depending on
// asyncLoading.
func (w *World) Update(observer mgl64.Vec3) {
	defer profiling.Track("world.Update")()

	w.queue.RunOverdue()

	center := w.size.ChunkAt(observer.X(), observer.Z())
	plan := PlanStream(center, w.cfg.DrawDistance, w.store.Coords())

	for _, coord := range plan.Remove {
		w.release(coord)
	}
	for _, coord := range plan.Add {
		w.load(coord)
	}

	if len(plan.Add) > 0 || len(plan.Remove) > 0 {
		w.log.Debug("streamed chunks",
			"center_x", center.X, "center_z", center.Z,
			"added", len(plan.Add), "removed", len(plan.Remove),
			"pending", w.queue.Len())
	}
	w.metrics.SetPending(w.queue.Len())
}

// RunIdle gives queued generation an idle slot of the given budget.
func (w *World) RunIdle(budget time.Duration) int {
	n := w.queue.RunIdle(budget)
	w.metrics.SetPending(w.queue.Len())
	return n
}

// Flush runs all queued generation.
func (w *World) Flush() int {
	n := w.queue.Drain()
	w.metrics.SetPending(w.queue.Len())
	return n
}

// Pending returns the number of chunks waiting for generation.
func (w *World) Pending() int {
	return w.queue.Len()
}

func (w *World) load(coord ChunkCoord) {
	c := NewChunk(coord, w.size)
	if !w.store.Add(c) {
		return
	}
	if w.cfg.AsyncLoading {
		w.queue.Schedule(func() { w.generate(c) })
		return
	}
	w.generate(c)
}

// generate runs to completion even for a chunk that has been released since
// it was queued; the result is then discarded.
func (w *World) generate(c *Chunk) {
	start := time.Now()
	c.Generate(w.gen)

	if cur, ok := w.store.Get(c.Coord()); !ok || cur != c {
		c.release()
		w.log.Debug("discarded stale chunk", "x", c.Coord().X, "z", c.Coord().Z)
		return
	}
	w.metrics.ChunkGenerated(time.Since(start))
	w.listener.ChunkLoaded(c)
}

func (w *World) release(coord ChunkCoord) {
	c, ok := w.store.Remove(coord)
	if !ok {
		return
	}
	wasResident := c.State() == Resident
	if wasResident {
		w.listener.ChunkReleased(c)
	}
	c.clearRenderSlots()
	c.release()
	w.metrics.ChunkReleased(wasResident)
}

// Reset releases every chunk and rebuilds the generator from cfg. Already
// queued generation still runs but its chunks are discarded.
func (w *World) Reset(cfg config.World) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gen := w.gen
	if !w.fixedGen {
		var err error
		if gen, err = NewGenerator(cfg); err != nil {
			return err
		}
	}
	for _, c := range w.store.All() {
		w.release(c.Coord())
	}
	// Every queued chunk was just released, so these runs are discarded.
	w.queue.Drain()

	w.cfg = cfg
	w.size = Size{Width: cfg.Chunk.Width, Height: cfg.Chunk.Height}
	w.gen = gen
	w.queue = schedule.NewQueue(w.clock, cfg.AsyncTimeout)
	w.metrics.SetPending(0)
	w.log.Info("world reset", "seed", cfg.Seed, "draw_distance", cfg.DrawDistance)
	return nil
}

// Chunk returns the resident chunk at chunk coordinates.
func (w *World) Chunk(cx, cz int) (*Chunk, bool) {
	c, ok := w.store.Get(ChunkCoord{X: cx, Z: cz})
	if !ok || c.State() != Resident {
		return nil, false
	}
	return c, true
}

// ResidentChunks returns every resident chunk ordered by coordinate.
func (w *World) ResidentChunks() []*Chunk {
	all := w.store.All()
	out := all[:0]
	for _, c := range all {
		if c.State() == Resident {
			out = append(out, c)
		}
	}
	return out
}

// Block returns the cell at world coordinates. ok is false when the
// containing chunk is missing, still generating, or y is out of range.
func (w *World) Block(x, y, z int) (Cell, bool) {
	coord, local := w.size.ToChunk(x, y, z)
	c, ok := w.store.Get(coord)
	if !ok || c.State() != Resident {
		return Cell{}, false
	}
	return c.Cell(local[0], local[1], local[2])
}

// SetBlockKind edits a resident chunk. It reports false and does nothing
// when the chunk is not resident.
func (w *World) SetBlockKind(x, y, z int, k block.Kind) bool {
	coord, local := w.size.ToChunk(x, y, z)
	c, ok := w.store.Get(coord)
	if !ok || c.State() != Resident {
		return false
	}
	if !c.setKind(local[0], local[1], local[2], k) {
		return false
	}
	w.markNeighbours(coord, local)
	return true
}

// RemoveBlock empties a cell of a resident chunk and forgets its render slot.
func (w *World) RemoveBlock(x, y, z int) bool {
	if !w.SetBlockKind(x, y, z, block.Empty) {
		return false
	}
	coord, local := w.size.ToChunk(x, y, z)
	if c, ok := w.store.Get(coord); ok {
		c.ClearRenderSlot(local[0], local[1], local[2])
	}
	return true
}

// markNeighbours dirties adjacent chunks when a border cell changes, since
// their exposed faces may change too.
func (w *World) markNeighbours(coord ChunkCoord, local [3]int) {
	mark := func(dx, dz int) {
		if nb, ok := w.store.Get(ChunkCoord{X: coord.X + dx, Z: coord.Z + dz}); ok && nb.State() == Resident {
			nb.dirty = true
		}
	}
	switch local[0] {
	case 0:
		mark(-1, 0)
	case w.size.Width - 1:
		mark(1, 0)
	}
	switch local[2] {
	case 0:
		mark(0, -1)
	case w.size.Width - 1:
		mark(0, 1)
	}
}
