package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelsim/internal/config"
	"voxelsim/internal/metrics"
	"voxelsim/internal/profiling"
)

// Integrator advances bodies in fixed substeps regardless of frame rate.
type Integrator struct {
	timestep    float64
	gravity     float64
	accumulator float64
	metrics     *metrics.Metrics
}

type IntegratorOption func(*Integrator)

func WithMetrics(m *metrics.Metrics) IntegratorOption {
	return func(i *Integrator) { i.metrics = m }
}

// NewIntegrator validates cfg and returns an integrator with an empty
// accumulator.
func NewIntegrator(cfg config.Physics, opts ...IntegratorOption) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	i := &Integrator{
		timestep: 1 / cfg.SimulationRate,
		gravity:  cfg.Gravity,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Timestep returns the substep length in seconds.
func (i *Integrator) Timestep() float64 { return i.timestep }

// Accumulated returns the time carried over to the next Update.
func (i *Integrator) Accumulated() float64 { return i.accumulator }

// Update consumes frameDt in whole substeps. Each substep applies gravity,
// lets the body move from its inputs and resolves collisions. The remainder
// carries over. It returns the number of substeps taken.
func (i *Integrator) Update(frameDt float64, body Body, blocks Blocks) int {
	defer profiling.Track("physics.Integrator.Update")()

	i.accumulator += frameDt
	steps, contacts := 0, 0
	for i.accumulator >= i.timestep {
		body.ApplyWorldDeltaVelocity(mgl64.Vec3{0, -i.gravity * i.timestep, 0})
		body.ApplyInputs(i.timestep)
		contacts += Detect(body, blocks)
		i.accumulator -= i.timestep
		steps++
	}
	i.metrics.PhysicsSteps(steps)
	i.metrics.ContactsResolved(contacts)
	return steps
}
