package physics

import "math"

// SpecificEnergy returns the kinetic plus potential energy of b per unit
// mass, using the same distance floor as the integrator.
func (g *Gravity) SpecificEnergy(b *Body, bodies []*Body) float64 {
	ke := 0.5 * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)
	pe := 0.0
	for _, o := range bodies {
		if o == b {
			continue
		}
		dist := math.Max(b.DistanceTo(o), MinDistance)
		pe -= g.G * o.Mass / dist
	}
	return ke + pe
}
