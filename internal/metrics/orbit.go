package metrics

import (
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Period is the dominant radial period of the orbit, in ticks, taken from
// the distance spectrum. Zero when the run shows no oscillation.
type Period struct {
	distances []float64
}

func NewPeriod() *Period { return &Period{} }

func (p *Period) Name() string         { return "period" }
func (p *Period) Observe(s sim.Sample) { p.distances = append(p.distances, s.Distance) }
func (p *Period) Reset()               { p.distances = p.distances[:0] }

func (p *Period) Value() float64 {
	period, ok := analysis.DominantPeriod(p.distances)
	if !ok {
		return 0
	}
	return period
}

// Revolutions counts signed turns of the station around the primary.
type Revolutions struct {
	bearings []float64
}

func NewRevolutions() *Revolutions { return &Revolutions{} }

func (r *Revolutions) Name() string         { return "revolutions" }
func (r *Revolutions) Observe(s sim.Sample) { r.bearings = append(r.bearings, s.Bearing) }
func (r *Revolutions) Value() float64       { return analysis.Revolutions(r.bearings) }
func (r *Revolutions) Reset()               { r.bearings = r.bearings[:0] }
