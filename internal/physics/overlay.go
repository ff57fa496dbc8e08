package physics

import "math"

// VectorScale stretches pull vectors so they are visible on screen.
const VectorScale = 50.0

// PullVector is the attraction of one static body on a target, ready to be
// drawn as an arrow from From to To in world space.
type PullVector struct {
	Source *Body
	From   Vec2
	To     Vec2
}

// PullVectors returns one vector per static body acting on target.
func (g *Gravity) PullVectors(target *Body, bodies []*Body) []PullVector {
	out := make([]PullVector, 0, len(bodies))
	for _, o := range bodies {
		if o == target || !o.Static {
			continue
		}
		d := o.Pos.Sub(target.Pos)
		dist := math.Max(d.Length(), MinDistance)
		force := g.G * o.Mass / (dist * dist)
		out = append(out, PullVector{
			Source: o,
			From:   target.Pos,
			To:     target.Pos.Add(d.Scale(force * VectorScale)),
		})
	}
	return out
}
