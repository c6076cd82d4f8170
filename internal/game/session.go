package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelsim/internal/config"
	"voxelsim/internal/metrics"
	"voxelsim/internal/physics"
	"voxelsim/internal/player"
	"voxelsim/internal/profiling"
	"voxelsim/internal/world"
)

// Session ties one world, one player and the physics integrator together.
type Session struct {
	World   *world.World
	Player  *player.Player
	Physics *physics.Integrator

	Paused bool
	Frames int

	cfg *config.Config
	log *slog.Logger
}

// SessionOption customises a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	log      *slog.Logger
	metrics  *metrics.Metrics
	worldOpt []world.Option
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) { o.log = l }
}

func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(o *sessionOptions) { o.metrics = m }
}

// WithWorldOptions passes extra options to world.New, e.g. a chunk listener.
func WithWorldOptions(opts ...world.Option) SessionOption {
	return func(o *sessionOptions) { o.worldOpt = append(o.worldOpt, opts...) }
}

// NewSession builds the world and player from cfg. The chunks around the
// spawn are generated before it returns so the player does not start in
// ungenerated terrain.
func NewSession(cfg *config.Config, opts ...SessionOption) (*Session, error) {
	o := sessionOptions{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	worldOpts := append([]world.Option{
		world.WithLogger(o.log),
		world.WithMetrics(o.metrics),
	}, o.worldOpt...)
	gameWorld, err := world.New(cfg.World, worldOpts...)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	integrator, err := physics.NewIntegrator(cfg.Physics, physics.WithMetrics(o.metrics))
	if err != nil {
		return nil, fmt.Errorf("create integrator: %w", err)
	}

	own := *cfg
	s := &Session{
		World:   gameWorld,
		Player:  player.New(cfg.Player),
		Physics: integrator,
		cfg:     &own,
		log:     o.log,
	}
	s.spawn()
	return s, nil
}

// spawn places the player at the configured spawn, lifted above the
// terrain if needed, and generates the surrounding chunks.
func (s *Session) spawn() {
	sp := s.cfg.Player.Spawn
	pos := mgl64.Vec3{sp[0], sp[1], sp[2]}

	ground := s.World.HeightAt(int(math.Floor(pos.X()+0.5)), int(math.Floor(pos.Z()+0.5)))
	// top face of the surface block plus a small drop
	minY := float64(ground) + 0.5 + s.Player.Height + 0.5
	if pos.Y() < minY {
		pos[1] = minY
	}
	s.Player.Teleport(pos)

	s.World.Update(pos)
	generated := s.World.Flush()
	s.log.Info("player spawned",
		"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
		"ground", ground, "chunks", generated)
}

// Update advances one frame: physics first, then streaming around the new
// position, then an idle slot for deferred generation.
func (s *Session) Update(dt float64) {
	defer profiling.Track("game.Session.Update")()

	if !s.Paused {
		s.Physics.Update(dt, s.Player, s.World)
		s.Player.UpdateHoveredBlock(s.World)
	}
	s.World.Update(s.Player.Position)
	s.World.RunIdle(s.cfg.Frame.IdleBudget)
	s.Frames++
}

// SetPaused stops the simulation and releases player input.
func (s *Session) SetPaused(paused bool) {
	s.Paused = paused
	s.Player.SetInputEnabled(!paused)
}

// BreakBlock removes the block the player is looking at.
func (s *Session) BreakBlock() bool {
	pos, ok := s.Player.BreakBlock(s.World)
	if ok {
		s.log.Debug("block removed", "x", pos[0], "y", pos[1], "z", pos[2])
	}
	return ok
}

// PlaceBlock places the player's selected kind in front of the hovered block.
func (s *Session) PlaceBlock() bool {
	pos, ok := s.Player.PlaceBlock(s.World)
	if ok {
		s.log.Debug("block placed", "x", pos[0], "y", pos[1], "z", pos[2], "kind", s.Player.Selected)
	}
	return ok
}

// Reset regenerates the world from cfg and respawns the player.
func (s *Session) Reset(cfg config.World) error {
	if err := s.World.Reset(cfg); err != nil {
		return fmt.Errorf("reset world: %w", err)
	}
	s.cfg.World = cfg
	s.spawn()
	return nil
}
