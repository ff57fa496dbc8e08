// Package automation runs scripted headless flights: YAML flight plans,
// parameter sweeps and seed surveys.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownParam = errors.New("automation: unknown parameter")
	ErrInvalidPlan  = errors.New("automation: invalid flight plan")
)

// BoundRadius is the distance from the primary past which a station is
// counted as escaped by the default metrics.
const BoundRadius = 600.0

// Plan is a scripted flight: a starting configuration and a burn schedule.
type Plan struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Preset      string             `yaml:"preset"`
	Scenario    string             `yaml:"scenario"`
	Seed        int64              `yaml:"seed"`
	Ticks       int                `yaml:"ticks"`
	Params      map[string]float64 `yaml:"params"`
	Burns       []sim.Burn         `yaml:"burns"`
}

// LoadPlan loads a flight plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *Plan) Validate() error {
	if p.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidPlan, p.Ticks)
	}
	for _, b := range p.Burns {
		if b.Tick < 1 || b.Tick > p.Ticks {
			return fmt.Errorf("%w: burn %s outside ticks 1..%d", ErrInvalidPlan, b, p.Ticks)
		}
	}
	if p.Preset != "" && config.GetPreset(p.Preset) == nil {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidPlan, p.Preset)
	}
	return nil
}

// Config derives the plan's configuration from base, or from its preset
// when one is named. base is not modified.
func (p *Plan) Config(base *config.Config) (*config.Config, error) {
	var cfg *config.Config
	if p.Preset != "" {
		cfg = config.GetPreset(p.Preset)
	} else {
		c := *base
		cfg = &c
	}
	if p.Scenario != "" {
		cfg.Scenario = p.Scenario
	}
	if p.Seed != 0 {
		cfg.Seed = p.Seed
	}

	names := make([]string, 0, len(p.Params))
	for k := range p.Params {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := SetParam(cfg, name, p.Params[name]); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunConfig is the plan's tick count and burn schedule.
func (p *Plan) RunConfig() sim.RunConfig {
	return sim.RunConfig{Ticks: p.Ticks, Burns: p.Burns}
}

// RunPlan flies the plan once with the default metric set.
func RunPlan(ctx context.Context, p *Plan, base *config.Config, log *logging.Logger) (*sim.Result, error) {
	cfg, err := p.Config(base)
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", p.Name, err)
	}

	w, err := sim.New(cfg, sim.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", p.Name, err)
	}
	for _, m := range metrics.Default(BoundRadius) {
		w.AddMetric(m)
	}

	log.Info("running plan", "name", p.Name, "ticks", p.Ticks, "burns", len(p.Burns))
	return w.Run(ctx, p.RunConfig())
}

var params = map[string]func(*config.Config) *float64{
	"physics.g":               func(c *config.Config) *float64 { return &c.Physics.G },
	"physics.initial_speed":   func(c *config.Config) *float64 { return &c.Physics.InitialSpeed },
	"physics.impulse_power":   func(c *config.Config) *float64 { return &c.Physics.ImpulsePower },
	"physics.earth_mass":      func(c *config.Config) *float64 { return &c.Physics.EarthMass },
	"physics.moon_mass":       func(c *config.Config) *float64 { return &c.Physics.MoonMass },
	"physics.asteroid_mass":   func(c *config.Config) *float64 { return &c.Physics.AsteroidMass },
	"physics.station_mass":    func(c *config.Config) *float64 { return &c.Physics.StationMass },
	"physics.earth_radius":    func(c *config.Config) *float64 { return &c.Physics.EarthRadius },
	"physics.moon_radius":     func(c *config.Config) *float64 { return &c.Physics.MoonRadius },
	"physics.asteroid_radius": func(c *config.Config) *float64 { return &c.Physics.AsteroidRadius },
	"physics.station_radius":  func(c *config.Config) *float64 { return &c.Physics.StationRadius },
}

// SetParam sets a numeric configuration value by its YAML path.
func SetParam(cfg *config.Config, name string, value float64) error {
	field, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	*field(cfg) = value
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs the same flight across evenly spaced values of one
// parameter.
type ParameterSweep struct {
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	Run      sim.RunConfig
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Err        error
}

// RunSweep executes the sweep. A value whose configuration is invalid or
// whose run diverges is recorded with its error and the sweep carries on.
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep, log *logging.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", ErrInvalidPlan)
	}
	if _, ok := params[sweep.Param]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParam, sweep.Param)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		res := SweepResult{ParamValue: paramVal}

		r, err := runWith(ctx, base, sweep.Param, paramVal, sweep.Run, log)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return results, err
			}
			res.Err = err
		} else {
			res.Metrics = r.Metrics
		}
		results = append(results, res)

		log.Info("sweep step", "step", i+1, "of", sweep.NumSteps, "param", sweep.Param, "value", paramVal)
	}

	return results, nil
}

func runWith(ctx context.Context, base *config.Config, name string, value float64, rc sim.RunConfig, log *logging.Logger) (*sim.Result, error) {
	cfg := *base
	if err := SetParam(&cfg, name, value); err != nil {
		return nil, err
	}
	w, err := sim.New(&cfg, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default(BoundRadius) {
		w.AddMetric(m)
	}
	return w.Run(ctx, rc)
}

// Summary is the spread of one metric across a set of runs.
type Summary struct {
	Metric string
	Runs   int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes the spread of the named metric over results, for
// instance the runs of a seed ensemble.
func Summarize(results []*sim.Result, metric string) Summary {
	s := Summary{Metric: metric, Min: math.Inf(1), Max: math.Inf(-1)}
	var sum, sumSq float64
	for _, r := range results {
		v, ok := r.Metrics[metric]
		if !ok {
			continue
		}
		s.Runs++
		sum += v
		sumSq += v * v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if s.Runs == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	n := float64(s.Runs)
	s.Mean = sum / n
	s.StdDev = math.Sqrt(math.Max(sumSq/n-s.Mean*s.Mean, 0))
	return s
}

// Escaped counts runs whose station spent any tick beyond BoundRadius.
func Escaped(results []*sim.Result) (bound, escaped int) {
	for _, r := range results {
		if r.Metrics["bound"] < 1 {
			escaped++
		} else {
			bound++
		}
	}
	return
}
