package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	vectorDash    = 8
	highlightSize = 4
	particleFade  = 25
)

// Layers selects the optional overlays.
type Layers struct {
	Grid    bool
	Vectors bool
	Compass bool
}

// Renderer draws a World onto a Canvas. The camera maps world coordinates
// onto the configured display; the display is then fitted into the canvas
// sub-pixel area, letterboxed to keep it square.
type Renderer struct {
	cfg    *config.Config
	canvas *Canvas
	fit    float64
	offX   float64
	offY   float64
}

// NewRenderer sizes the canvas in character cells.
func NewRenderer(cfg *config.Config, cols, rows int) *Renderer {
	r := &Renderer{cfg: cfg}
	r.Resize(cols, rows)
	return r
}

func (r *Renderer) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	r.canvas = NewCanvas(cols, rows)

	w, h := r.displaySize()
	sw, sh := float64(r.canvas.SubWidth()), float64(r.canvas.SubHeight())
	r.fit = math.Min(sw/w, sh/h)
	r.offX = (sw - w*r.fit) / 2
	r.offY = (sh - h*r.fit) / 2
}

func (r *Renderer) Canvas() *Canvas { return r.canvas }

func (r *Renderer) displaySize() (float64, float64) {
	return float64(r.cfg.Display.Width), float64(r.cfg.Display.Height)
}

// DisplayToPixel maps display units to canvas sub-pixels.
func (r *Renderer) DisplayToPixel(p physics.Vec2) (int, int) {
	return int(math.Round(r.offX + p.X*r.fit)), int(math.Round(r.offY + p.Y*r.fit))
}

// PixelToDisplay is the inverse of DisplayToPixel.
func (r *Renderer) PixelToDisplay(x, y int) physics.Vec2 {
	return physics.Vec2{X: (float64(x) - r.offX) / r.fit, Y: (float64(y) - r.offY) / r.fit}
}

// CellToDisplay maps a terminal cell, relative to the canvas origin, to
// display units at the cell centre.
func (r *Renderer) CellToDisplay(col, row int) physics.Vec2 {
	return r.PixelToDisplay(col*2+1, row*4+2)
}

func (r *Renderer) worldToPixel(p physics.Vec2, cam camera.Camera) (int, int) {
	w, h := r.displaySize()
	sx, sy := camera.WorldToScreen(p.X, p.Y, cam, w, h)
	return r.DisplayToPixel(physics.Vec2{X: sx, Y: sy})
}

func (r *Renderer) length(worldLen float64, cam camera.Camera) int {
	return int(math.Round(worldLen * cam.Scale * r.fit))
}

// Draw clears the canvas and paints w. It never mutates w.
func (r *Renderer) Draw(w *sim.World, layers Layers) {
	c := r.canvas
	c.Clear()
	cam := w.Camera()
	colors := r.cfg.Display.Colors

	if layers.Grid {
		dw, dh := r.displaySize()
		c.SetPen(colors.Grid)
		for _, s := range GridSegments(w.Bodies(), cam, dw, dh, r.cfg.Display.GridSize, r.cfg.Display.MaxGridDist) {
			x0, y0 := r.DisplayToPixel(s.A)
			x1, y1 := r.DisplayToPixel(s.B)
			c.DrawLine(x0, y0, x1, y1)
		}
	}

	c.SetPen(colors.Trail)
	for _, b := range w.Bodies() {
		if b.Static || b.Trail.Len() < 2 {
			continue
		}
		px, py := r.worldToPixel(b.Trail.At(0), cam)
		for i := 1; i < b.Trail.Len(); i++ {
			x, y := r.worldToPixel(b.Trail.At(i), cam)
			c.DrawLine(px, py, x, y)
			px, py = x, y
		}
	}

	for _, b := range w.Bodies() {
		x, y := r.worldToPixel(b.Pos, cam)
		radius := max(1, r.length(b.Radius, cam))
		c.SetPen(b.Color)
		c.FillCircle(x, y, radius)
		if radius > highlightSize {
			c.SetPen(Lighten(b.Color, 0.16))
			c.FillCircle(x, y, max(1, radius/2))
		}
	}

	if layers.Vectors {
		for _, v := range w.PullVectors() {
			x0, y0 := r.worldToPixel(v.From, cam)
			x1, y1 := r.worldToPixel(v.To, cam)
			c.SetPen(v.Source.Color)
			c.DrawDashed(x0, y0, x1, y1, vectorDash)
			r.drawArrowHead(x1, y1, v.To.Sub(v.From))
		}
	}

	r.drawParticles(w, cam)

	if flame, ok := w.Flame(); ok {
		c.SetPen(colors.Thrust)
		pts := make([][2]int, 0, 4)
		for _, p := range flame.Points() {
			x, y := r.worldToPixel(p, cam)
			pts = append(pts, [2]int{x, y})
		}
		c.DrawPolygon(pts)
	}

	if layers.Compass {
		r.drawCompass(w.Station().Vel)
	}
	c.SetPen("")
}

func (r *Renderer) drawArrowHead(x, y int, dir physics.Vec2) {
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	tip := physics.Vec2{X: float64(x), Y: float64(y)}
	tri := ArrowHead(tip, dir, arrowHead*r.fit)
	pts := make([][2]int, 0, 3)
	for _, p := range tri {
		pts = append(pts, [2]int{int(math.Round(p.X)), int(math.Round(p.Y))})
	}
	r.canvas.DrawPolygon(pts)
}

func (r *Renderer) drawParticles(w *sim.World, cam camera.Camera) {
	colors := r.cfg.Display.Colors
	for _, p := range w.Particles().Particles() {
		x, y := r.worldToPixel(p.Pos, cam)
		alpha := math.Min(255, float64(p.Life*particleFade)) / 255
		r.canvas.SetPen(Fade(colors.Particle, colors.Background, alpha))
		r.canvas.FillCircle(x, y, int(float64(p.Size)*r.fit))
	}
}

func (r *Renderer) drawCompass(vel physics.Vec2) {
	dw, _ := r.displaySize()
	comp := CompassFor(vel, dw)
	colors := r.cfg.Display.Colors

	cx, cy := r.DisplayToPixel(comp.Center)
	rad := int(math.Round(comp.Radius * r.fit))
	r.canvas.SetPen(colors.Compass)
	r.canvas.DrawCircle(cx, cy, rad)
	r.canvas.DrawLine(cx-rad, cy, cx+rad, cy)
	r.canvas.DrawLine(cx, cy-rad, cx, cy+rad)

	r.canvas.SetPen(colors.Arrow)
	for _, s := range comp.Arrow {
		x0, y0 := r.DisplayToPixel(s.A)
		x1, y1 := r.DisplayToPixel(s.B)
		r.canvas.DrawLine(x0, y0, x1, y1)
	}
}
