package physics

import "math"

// Impulse is a thruster of fixed strength.
type Impulse struct {
	Power float64
}

// Apply kicks b's velocity along direction and returns the heading the
// exhaust leaves in, direction + π. Kicks stack without limit.
func (i Impulse) Apply(b *Body, direction float64) float64 {
	b.Vel.X += i.Power * math.Cos(direction)
	b.Vel.Y += i.Power * math.Sin(direction)
	return direction + math.Pi
}
