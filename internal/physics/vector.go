package physics

import "math"

// Vec2 is a point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Angle returns the heading of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Polar returns the vector of length r pointing along angle.
func Polar(r, angle float64) Vec2 {
	return Vec2{r * math.Cos(angle), r * math.Sin(angle)}
}
