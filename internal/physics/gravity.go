package physics

import "math"

// MinDistance caps the attraction between coincident bodies. It bounds the
// largest acceleration a body of mass m can produce at G*m.
const MinDistance = 1.0

type Gravity struct {
	G float64
}

func NewGravity(g float64) *Gravity {
	return &Gravity{G: g}
}

// Acceleration sums the pull of every other body on b.
func (g *Gravity) Acceleration(b *Body, bodies []*Body) Vec2 {
	var ax, ay float64
	for _, o := range bodies {
		if o == b {
			continue
		}
		dx := o.Pos.X - b.Pos.X
		dy := o.Pos.Y - b.Pos.Y
		dist := math.Max(math.Sqrt(dx*dx+dy*dy), MinDistance)

		a := g.G * o.Mass / (dist * dist)
		ax += a * dx / dist
		ay += a * dy / dist
	}
	return Vec2{ax, ay}
}

// Advance moves every dynamic body by one tick using semi-implicit Euler
// and records the new position in its trail. Bodies are updated in slice
// order, each seeing the positions already written by earlier ones.
func (g *Gravity) Advance(bodies []*Body) {
	for _, b := range bodies {
		if b.Static {
			continue
		}
		acc := g.Acceleration(b, bodies)
		b.Vel.X += acc.X
		b.Vel.Y += acc.Y
		b.Pos.X += b.Vel.X
		b.Pos.Y += b.Vel.Y
		if b.Trail != nil {
			b.Trail.Push(b.Pos)
		}
	}
}
