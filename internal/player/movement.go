package player

import "github.com/go-gl/mathgl/mgl64"

// SetMoveInput sets the walk direction. Each axis is clamped to [-1, 1].
func (p *Player) SetMoveInput(forward, strafe float64) {
	p.forward = mgl64.Clamp(forward, -1, 1)
	p.strafe = mgl64.Clamp(strafe, -1, 1)
}

// SetJump requests a jump on the next grounded substep.
func (p *Player) SetJump(jump bool) {
	p.jump = jump
}

// SetInputEnabled toggles whether movement input steers the player, like a
// pointer lock. A player without input keeps its horizontal velocity.
func (p *Player) SetInputEnabled(enabled bool) {
	p.inputEnabled = enabled
}

func (p *Player) InputEnabled() bool { return p.inputEnabled }

// ApplyInputs turns input into velocity and moves the player by one step.
// Collisions are resolved afterwards by the caller.
func (p *Player) ApplyInputs(dt float64) {
	if p.inputEnabled {
		p.Velocity[0] = p.strafe * p.MaxSpeed
		p.Velocity[2] = p.forward * p.MaxSpeed
		if p.jump && p.OnGround {
			p.Velocity[1] = p.JumpSpeed
			p.OnGround = false
		}
	}
	p.Position = p.Position.Add(p.WorldVelocity().Mul(dt))
}
