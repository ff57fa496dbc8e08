package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRun indicates a headless run with no ticks to execute or a
	// burn scheduled outside them.
	ErrInvalidRun = errors.New("sim: invalid run")

	// ErrUnstable indicates the station left the representable range.
	ErrUnstable = errors.New("sim: station state diverged (NaN or Inf)")
)

// Sample is the station's state after a tick.
type Sample struct {
	Tick      int     `json:"tick"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Speed     float64 `json:"speed"`
	Distance  float64 `json:"distance"`
	Bearing   float64 `json:"bearing"`
	Energy    float64 `json:"energy"`
	Thrust    bool    `json:"thrust"`
	Particles int     `json:"particles"`
}

// Stats summarises the live state for a HUD.
type Stats struct {
	Tick     int
	Speed    float64
	MinSpeed float64
	MaxSpeed float64
	Distance float64
	Energy   float64
	Scale    float64
	Paused   bool
}

// Burn fires the thruster at a given tick of a headless run.
type Burn struct {
	Tick      int     `yaml:"tick" json:"tick"`
	Direction float64 `yaml:"direction" json:"direction"`
}

func (b Burn) String() string { return fmt.Sprintf("%d:%g", b.Tick, b.Direction) }

type RunConfig struct {
	Ticks int
	Burns []Burn
}

type Result struct {
	RunID      string             `json:"run_id"`
	Scenario   string             `json:"scenario"`
	Seed       int64              `json:"seed"`
	Samples    []Sample           `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps"`
}

// Metric accumulates a figure over the samples of a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(w *World)
}
