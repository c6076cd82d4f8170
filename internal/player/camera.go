package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var maxPitch = mgl64.DegToRad(89)

// Look sets the view angles in radians. Pitch is constrained to ±89°.
func (p *Player) Look(yaw, pitch float64) {
	p.Yaw = yaw
	p.Pitch = mgl64.Clamp(pitch, -maxPitch, maxPitch)
}

// Turn adds to the view angles.
func (p *Player) Turn(dYaw, dPitch float64) {
	p.Look(p.Yaw+dYaw, p.Pitch+dPitch)
}

// LookDirection is the unit view vector. At zero yaw and pitch it is +Z,
// the same axis as forward movement.
func (p *Player) LookDirection() mgl64.Vec3 {
	cp := math.Cos(p.Pitch)
	return mgl64.Vec3{
		math.Sin(p.Yaw) * cp,
		math.Sin(p.Pitch),
		math.Cos(p.Yaw) * cp,
	}
}

// EyePosition is where rays for block picking start.
func (p *Player) EyePosition() mgl64.Vec3 {
	return p.Position
}
