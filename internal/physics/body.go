package physics

import "fmt"

// Body is a celestial object or the player station.
//
// Name and Color are carried for the renderer and never read by the
// integrator.
type Body struct {
	Name   string
	Color  string
	Pos    Vec2
	Vel    Vec2
	Mass   float64
	Radius float64
	Static bool
	Trail  *Trail
}

// NewBody validates mass and radius and attaches an empty trail.
func NewBody(name string, pos, vel Vec2, mass, radius float64, static bool, trailCap int) (*Body, error) {
	if !(mass > 0) || !(radius > 0) {
		return nil, fmt.Errorf("body %q: %w", name, ErrInvalidBody)
	}
	trail, err := NewTrail(trailCap)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", name, err)
	}
	return &Body{
		Name:   name,
		Pos:    pos,
		Vel:    vel,
		Mass:   mass,
		Radius: radius,
		Static: static,
		Trail:  trail,
	}, nil
}

func (b *Body) Speed() float64 { return b.Vel.Length() }

func (b *Body) DistanceTo(o *Body) float64 { return o.Pos.Sub(b.Pos).Length() }
