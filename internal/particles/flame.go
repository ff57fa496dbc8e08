package particles

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	FlameLength = 15.0
	FlameWidth  = 8.0
)

// Flame is the outline of the exhaust flame in world space.
type Flame struct {
	Base, Side1, Tip, Side2 physics.Vec2
}

// Points lists the outline in drawing order.
func (f Flame) Points() []physics.Vec2 {
	return []physics.Vec2{f.Base, f.Side1, f.Tip, f.Side2}
}

// FlameAt builds the flame outline for an emitter of the given radius with
// exhaust heading direction.
func FlameAt(origin physics.Vec2, radius, direction float64) Flame {
	base := origin.Sub(physics.Polar(radius, direction))
	perp := physics.Polar(FlameWidth, direction+math.Pi/2)
	return Flame{
		Base:  base,
		Side1: base.Add(perp),
		Tip:   origin.Sub(physics.Polar(radius+FlameLength, direction)),
		Side2: base.Sub(perp),
	}
}

// Flame returns the current flame outline, and false outside an episode.
func (s *System) Flame(origin physics.Vec2, radius float64) (Flame, bool) {
	if !s.active {
		return Flame{}, false
	}
	return FlameAt(origin, radius, s.direction), true
}
