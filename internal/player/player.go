package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelsim/internal/block"
	"voxelsim/internal/config"
	"voxelsim/internal/physics"
)

// Player is the simulated actor: an upright cylinder whose Position is the
// top (eye) point. Velocity is kept in the input frame, x strafing right,
// y up and z forward, and is turned into world space by the yaw.
type Player struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64 // radians about +Y
	Pitch    float64 // radians, positive looks up
	OnGround bool

	Radius    float64
	Height    float64
	MaxSpeed  float64
	JumpSpeed float64

	// Input state
	forward      float64
	strafe       float64
	jump         bool
	inputEnabled bool

	// Interaction
	HoveredBlock    [3]int
	HasHoveredBlock bool
	Selected        block.Kind
}

var _ physics.Body = (*Player)(nil)

// New places a player at the configured spawn with input enabled.
func New(cfg config.Player) *Player {
	return &Player{
		Position:     mgl64.Vec3{cfg.Spawn[0], cfg.Spawn[1], cfg.Spawn[2]},
		Radius:       cfg.Radius,
		Height:       cfg.Height,
		MaxSpeed:     cfg.MaxSpeed,
		JumpSpeed:    cfg.JumpSpeed,
		inputEnabled: true,
		Selected:     block.Stone,
	}
}

func (p *Player) Location() mgl64.Vec3 { return p.Position }

func (p *Player) Translate(d mgl64.Vec3) { p.Position = p.Position.Add(d) }

func (p *Player) Bounds() (radius, height float64) { return p.Radius, p.Height }

func (p *Player) SetOnGround(onGround bool) { p.OnGround = onGround }

// WorldVelocity rotates the input-frame velocity by the yaw.
func (p *Player) WorldVelocity() mgl64.Vec3 {
	return mgl64.Rotate3DY(p.Yaw).Mul3x1(p.Velocity)
}

// ApplyWorldDeltaVelocity adds a world-space change to the input-frame
// velocity.
func (p *Player) ApplyWorldDeltaVelocity(dv mgl64.Vec3) {
	p.Velocity = p.Velocity.Add(mgl64.Rotate3DY(-p.Yaw).Mul3x1(dv))
}

// Feet returns the y of the bottom of the cylinder.
func (p *Player) Feet() float64 {
	return p.Position.Y() - p.Height
}

// Teleport moves the player and clears its motion.
func (p *Player) Teleport(pos mgl64.Vec3) {
	p.Position = pos
	p.Velocity = mgl64.Vec3{}
	p.OnGround = false
}
