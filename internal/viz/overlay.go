package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	gridWarp     = 40.0
	gridFalloff  = 1.7
	compassSize  = 40.0
	compassInset = 60.0
	arrowHead    = 12.0
)

// Segment is a line in display coordinates.
type Segment struct {
	A, B physics.Vec2
}

func (s Segment) Length() float64 { return s.B.Sub(s.A).Length() }

// GridSegments lays a world-space grid of step gridSize over a w×h display,
// bends each node toward every static body by m/d^1.7*40 and returns the
// neighbour links shorter than maxDist*scale, mapped through cam.
func GridSegments(bodies []*physics.Body, cam camera.Camera, w, h float64, gridSize int, maxDist float64) []Segment {
	rows := int(h)/gridSize + 2
	cols := int(w)/gridSize + 2

	points := make([][]physics.Vec2, rows)
	for i := range points {
		points[i] = make([]physics.Vec2, cols)
		for j := range points[i] {
			wx := float64((j - cols/2) * gridSize)
			wy := float64((i - rows/2) * gridSize)

			var dx, dy float64
			for _, b := range bodies {
				if !b.Static {
					continue
				}
				ox, oy := wx-b.Pos.X, wy-b.Pos.Y
				dist := math.Max(math.Hypot(ox, oy), physics.MinDistance)
				pull := b.Mass / math.Pow(dist, gridFalloff) * gridWarp
				dx -= pull * ox / dist
				dy -= pull * oy / dist
			}

			sx, sy := camera.WorldToScreen(wx+dx, wy+dy, cam, w, h)
			points[i][j] = physics.Vec2{X: sx, Y: sy}
		}
	}

	limit := maxDist * cam.Scale
	segs := make([]Segment, 0, 2*rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols-1; j++ {
			if s := (Segment{points[i][j], points[i][j+1]}); s.Length() < limit {
				segs = append(segs, s)
			}
		}
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows-1; i++ {
			if s := (Segment{points[i][j], points[i+1][j]}); s.Length() < limit {
				segs = append(segs, s)
			}
		}
	}
	return segs
}

// Compass is the velocity dial drawn in the top-right corner.
type Compass struct {
	Center physics.Vec2
	Radius float64
	// Arrow is empty when the velocity is zero.
	Arrow []Segment
}

func CompassFor(vel physics.Vec2, w float64) Compass {
	c := Compass{
		Center: physics.Vec2{X: w - compassInset, Y: compassInset},
		Radius: compassSize,
	}
	if vel.X == 0 && vel.Y == 0 {
		return c
	}

	angle := vel.Angle()
	tip := c.Center.Add(physics.Polar(compassSize*0.8, angle))
	head := compassSize * 0.2
	c.Arrow = []Segment{
		{c.Center, tip},
		{tip, tip.Add(physics.Polar(head, angle+math.Pi*0.8))},
		{tip, tip.Add(physics.Polar(head, angle-math.Pi*0.8))},
	}
	return c
}

// ArrowHead returns the triangle tip pointing along dir at pos.
func ArrowHead(pos, dir physics.Vec2, size float64) [3]physics.Vec2 {
	angle := dir.Angle()
	return [3]physics.Vec2{
		pos.Add(physics.Polar(size, angle)),
		pos.Add(physics.Polar(size*0.5, angle+2.5)),
		pos.Add(physics.Polar(size*0.5, angle-2.5)),
	}
}
