package game

import (
	"context"
	"log/slog"
	"time"

	"voxelsim/internal/config"
	"voxelsim/internal/profiling"
)

// Driver steers the session before each frame, standing in for input
// devices.
type Driver interface {
	Drive(s *Session, frame int, dt float64)
}

// App runs a session in a headless frame loop.
type App struct {
	session    *Session
	driver     Driver
	fpsLimiter *FPSLimiter
	log        *slog.Logger

	slowFrame time.Duration
	fixedStep time.Duration
	lastTime  time.Time

	statsFrames int
	statsSince  time.Time
}

// AppOption customises an App.
type AppOption func(*App)

// WithDriver installs a driver that runs before every frame.
func WithDriver(d Driver) AppOption {
	return func(a *App) { a.driver = d }
}

// WithFixedStep feeds every frame the same delta instead of wall time,
// which makes a run reproducible.
func WithFixedStep(step time.Duration) AppOption {
	return func(a *App) { a.fixedStep = step }
}

func WithAppLogger(l *slog.Logger) AppOption {
	return func(a *App) { a.log = l }
}

func NewApp(s *Session, cfg config.Frame, opts ...AppOption) *App {
	a := &App{
		session:    s,
		fpsLimiter: NewFPSLimiter(cfg.FPSLimit),
		log:        slog.Default(),
		slowFrame:  cfg.SlowFrame,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session returns the running session.
func (a *App) Session() *Session { return a.session }

// Run ticks until ctx is done or maxFrames frames have run. maxFrames <= 0
// runs until cancellation, whose error is returned.
func (a *App) Run(ctx context.Context, maxFrames int) error {
	a.lastTime = time.Now()
	a.statsSince = a.lastTime
	for frame := 0; maxFrames <= 0 || frame < maxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.tick(frame)
	}
	return nil
}

func (a *App) tick(frame int) {
	profiling.ResetFrame()
	startTick := time.Now() // Measure pure processing time

	dt := startTick.Sub(a.lastTime).Seconds()
	if a.fixedStep > 0 {
		dt = a.fixedStep.Seconds()
	}
	a.lastTime = startTick

	if a.driver != nil {
		a.driver.Drive(a.session, frame, dt)
	}
	a.session.Update(dt)

	// Check if frame took too long
	processingDuration := time.Since(startTick)
	if a.slowFrame > 0 && processingDuration > a.slowFrame {
		a.log.Warn("slow frame", "duration", processingDuration, "top", profiling.TopN(5))
	}

	a.logStats()
	a.fpsLimiter.Wait(a.session.Paused)
}

// logStats reports frame rate and streaming state once per second.
func (a *App) logStats() {
	a.statsFrames++
	elapsed := time.Since(a.statsSince)
	if elapsed < time.Second {
		return
	}
	p := a.session.Player
	a.log.Debug("frame stats",
		"fps", float64(a.statsFrames)/elapsed.Seconds(),
		"resident", len(a.session.World.ResidentChunks()),
		"pending", a.session.World.Pending(),
		"x", p.Position.X(), "y", p.Position.Y(), "z", p.Position.Z(),
		"on_ground", p.OnGround)
	a.statsFrames = 0
	a.statsSince = time.Now()
}
