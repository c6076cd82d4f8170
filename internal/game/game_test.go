package game

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelsim/internal/block"
	"voxelsim/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func flatConfig() *config.Config {
	cfg := config.Default()
	cfg.World.DrawDistance = 1
	cfg.World.Generator = config.GeneratorFlat
	cfg.World.FlatHeight = 4
	cfg.Player.Spawn = [3]float64{8, 2, 8}
	cfg.Frame.FPSLimit = 0
	return cfg
}

func newSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	s, err := NewSession(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	return s
}

func TestNewSessionSpawnsAboveGround(t *testing.T) {
	s := newSession(t, flatConfig())

	// grass at y=4 has its top face at 4.5
	assert.InDelta(t, 5.0, s.Player.Feet(), 1e-9)
	assert.Equal(t, 0, s.World.Pending(), "spawn area is generated up front")
	assert.Len(t, s.World.ResidentChunks(), 9)

	cell, ok := s.World.Block(8, 4, 8)
	require.True(t, ok)
	assert.Equal(t, block.Grass, cell.Kind)
}

func TestNewSessionKeepsHighSpawn(t *testing.T) {
	cfg := flatConfig()
	cfg.Player.Spawn = [3]float64{8, 15, 8}
	s := newSession(t, cfg)
	assert.Equal(t, 15.0, s.Player.Position.Y())
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := flatConfig()
	cfg.Physics.SimulationRate = 0
	_, err := NewSession(cfg, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSessionSettles(t *testing.T) {
	s := newSession(t, flatConfig())
	for range 120 {
		s.Update(1.0 / 60)
	}
	assert.True(t, s.Player.OnGround)
	assert.Equal(t, 0.0, s.Player.Velocity.Y())
	assert.InDelta(t, 4.5, s.Player.Feet(), 0.001)
	assert.Equal(t, 120, s.Frames)
}

func TestSessionAsyncStreaming(t *testing.T) {
	cfg := flatConfig()
	cfg.World.AsyncLoading = true
	s := newSession(t, cfg)

	// walk two chunks east; new chunks are generated in the idle slot
	s.Player.Look(mgl64.DegToRad(90), 0)
	s.Player.SetMoveInput(1, 0)
	for range 240 {
		s.Update(1.0 / 60)
	}
	assert.Greater(t, s.Player.Position.X(), 32.0)
	center := s.World.Size().ChunkAt(s.Player.Position.X(), s.Player.Position.Z())
	_, ok := s.World.Chunk(center.X, center.Z)
	assert.True(t, ok)
	assert.True(t, s.Player.OnGround)
}

func TestPausedSessionHoldsStill(t *testing.T) {
	s := newSession(t, flatConfig())
	s.SetPaused(true)
	start := s.Player.Position
	for range 10 {
		s.Update(1.0 / 60)
	}
	assert.Equal(t, start, s.Player.Position)
	assert.False(t, s.Player.InputEnabled())

	s.SetPaused(false)
	s.Update(1.0 / 60)
	assert.NotEqual(t, start, s.Player.Position)
}

func TestSessionBreakAndPlace(t *testing.T) {
	s := newSession(t, flatConfig())
	for range 60 {
		s.Update(1.0 / 60)
	}
	// stand on (8,4,8) and look at the grass one block ahead
	s.Player.Look(0, -mgl64.DegToRad(60))

	require.True(t, s.BreakBlock())
	cell, _ := s.World.Block(8, 4, 9)
	assert.True(t, cell.IsEmpty())

	s.Player.Selected = block.DiamondOre
	require.True(t, s.PlaceBlock())
	cell, _ = s.World.Block(8, 4, 9)
	assert.Equal(t, block.DiamondOre, cell.Kind)
}

func TestSessionReset(t *testing.T) {
	s := newSession(t, flatConfig())
	cfg := flatConfig().World
	cfg.FlatHeight = 8
	require.NoError(t, s.Reset(cfg))
	assert.InDelta(t, 9.0, s.Player.Feet(), 1e-9)

	cfg.Generator = "islands"
	assert.ErrorIs(t, s.Reset(cfg), config.ErrInvalid)
}

func TestAppRunsFrames(t *testing.T) {
	s := newSession(t, flatConfig())
	app := NewApp(s, config.Frame{}, WithAppLogger(quietLogger()), WithFixedStep(time.Second/60))

	require.NoError(t, app.Run(context.Background(), 30))
	assert.Equal(t, 30, s.Frames)
	assert.Same(t, s, app.Session())
}

func TestAppStopsOnCancel(t *testing.T) {
	s := newSession(t, flatConfig())
	app := NewApp(s, config.Frame{}, WithAppLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, app.Run(ctx, 0), context.Canceled)
	assert.Equal(t, 0, s.Frames)
}

func TestAutopilotWalks(t *testing.T) {
	s := newSession(t, flatConfig())
	app := NewApp(s, config.Frame{},
		WithAppLogger(quietLogger()),
		WithFixedStep(time.Second/60),
		WithDriver(Autopilot{TurnRate: 0.5}))

	start := s.Player.Position
	require.NoError(t, app.Run(context.Background(), 60))
	moved := s.Player.Position.Sub(start)
	assert.Greater(t, mgl64.Vec2{moved.X(), moved.Z()}.Len(), 3.0)
	assert.InDelta(t, 0.5, s.Player.Yaw, 1e-9)
}

func TestFPSLimiter(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	f.Wait(false)
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	f.SetLimit(200)
	start = time.Now()
	for range 3 {
		f.Wait(false)
	}
	assert.GreaterOrEqual(t, time.Since(start), 14*time.Millisecond)
}
