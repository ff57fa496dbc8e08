package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
)

// ThrustDuty is the fraction of ticks spent inside a thrust episode.
type ThrustDuty struct {
	name    string
	active  int
	samples int
}

func NewThrustDuty() *ThrustDuty {
	return &ThrustDuty{
		name: "thrust_duty",
	}
}

func (c *ThrustDuty) Name() string {
	return c.name
}

func (c *ThrustDuty) Observe(s sim.Sample) {
	if s.Thrust {
		c.active++
	}
	c.samples++
}

func (c *ThrustDuty) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.active) / float64(c.samples)
}

func (c *ThrustDuty) Reset() {
	c.active = 0
	c.samples = 0
}

// PeakSpeed is the largest station speed observed.
type PeakSpeed struct {
	max float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string         { return "peak_speed" }
func (p *PeakSpeed) Observe(s sim.Sample) { p.max = math.Max(p.max, s.Speed) }
func (p *PeakSpeed) Value() float64       { return p.max }
func (p *PeakSpeed) Reset()               { p.max = 0 }

// Default is the metric set attached to headless runs.
func Default(boundRadius float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewBound(boundRadius),
		NewClosestApproach(),
		NewThrustDuty(),
		NewPeakSpeed(),
		NewPeriod(),
		NewRevolutions(),
	}
}
