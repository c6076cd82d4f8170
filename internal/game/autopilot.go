package game

import "math"

// Autopilot walks the player forward while slowly turning, jumps at fixed
// intervals and digs the block in front of it.
type Autopilot struct {
	TurnRate  float64 // radians per second
	JumpEvery int     // frames, 0 disables
	DigEvery  int     // frames, 0 disables
}

// DefaultAutopilot wanders in a wide circle.
func DefaultAutopilot() Autopilot {
	return Autopilot{TurnRate: 0.2, JumpEvery: 90, DigEvery: 120}
}

func (a Autopilot) Drive(s *Session, frame int, dt float64) {
	p := s.Player
	p.SetMoveInput(1, 0)
	p.Turn(a.TurnRate*dt, 0)
	p.SetJump(a.JumpEvery > 0 && frame%a.JumpEvery == 0)

	if a.DigEvery > 0 && frame%a.DigEvery == a.DigEvery-1 {
		// glance down to dig, then look ahead again
		pitch := p.Pitch
		p.Look(p.Yaw, -math.Pi/4)
		s.BreakBlock()
		p.Look(p.Yaw, pitch)
	}
}
