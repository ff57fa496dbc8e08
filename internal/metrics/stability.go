package metrics

import (
	"github.com/san-kum/orbitsim/internal/sim"
)

// Bound is the fraction of ticks the station stayed within radius of the
// primary.
type Bound struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBound(radius float64) *Bound {
	return &Bound{
		name:   "bound",
		radius: radius,
	}
}

func (b *Bound) Name() string {
	return b.name
}

func (b *Bound) Observe(s sim.Sample) {
	b.samples++
	if s.Distance > b.radius {
		b.violations++
	}
}

func (b *Bound) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bound) Reset() {
	b.violations = 0
	b.samples = 0
}

// ClosestApproach is the minimum distance to the primary.
type ClosestApproach struct {
	min     float64
	samples int
}

func NewClosestApproach() *ClosestApproach { return &ClosestApproach{} }

func (c *ClosestApproach) Name() string { return "closest_approach" }

func (c *ClosestApproach) Observe(s sim.Sample) {
	if c.samples == 0 || s.Distance < c.min {
		c.min = s.Distance
	}
	c.samples++
}

func (c *ClosestApproach) Value() float64 { return c.min }

func (c *ClosestApproach) Reset() {
	c.min = 0
	c.samples = 0
}
