package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/particles"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/scenario"
)

type World struct {
	cfg       *config.Config
	base      *logging.Logger
	log       *logging.Logger
	gen       scenario.Generator
	rng       *rand.Rand
	seed      int64
	runID     string
	gravity   *physics.Gravity
	impulse   physics.Impulse
	system    *scenario.System
	particles *particles.System
	camera    *camera.Camera
	metrics   []Metric
	observers []Observer
	paused    bool
	ticks     int
	minSpeed  float64
	maxSpeed  float64
}

type Option func(*World)

func WithLogger(l *logging.Logger) Option { return func(w *World) { w.base = l } }

// WithGenerator overrides the scenario named in the configuration.
func WithGenerator(g scenario.Generator) Option { return func(w *World) { w.gen = g } }

func WithPaused(p bool) Option { return func(w *World) { w.paused = p } }

// New validates cfg and builds the initial registry. A zero seed picks one
// from the clock.
func New(cfg *config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		cfg:       cfg,
		base:      logging.Discard(),
		rng:       rng,
		seed:      seed,
		gravity:   physics.NewGravity(cfg.Physics.G),
		impulse:   physics.Impulse{Power: cfg.Physics.ImpulsePower},
		particles: particles.NewSystem(rng),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.gen == nil {
		gen, err := scenario.NewRegistry().Get(cfg.Scenario)
		if err != nil {
			return nil, err
		}
		w.gen = gen
	}

	cam, err := camera.New(cfg.Camera.InitialScale, cfg.Camera.MinScale, cfg.Camera.MaxScale)
	if err != nil {
		return nil, err
	}
	w.camera = cam

	if err := w.rebuild(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) rebuild() error {
	sys, err := w.gen(w.cfg, w.rng)
	if err != nil {
		return fmt.Errorf("generate %s: %w", w.cfg.Scenario, err)
	}
	w.system = sys
	w.particles.Reset()
	w.ticks = 0
	w.minSpeed = math.Inf(1)
	w.maxSpeed = 0
	w.runID = logging.NewRunID()
	w.log = w.base.WithRun(w.runID)
	w.log.Info("system generated",
		"scenario", w.cfg.Scenario,
		"seed", w.seed,
		"bodies", len(sys.Bodies),
		"station_x", sys.Station.Pos.X,
		"station_y", sys.Station.Pos.Y,
	)
	return nil
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *World) Config() *config.Config       { return w.cfg }
func (w *World) Bodies() []*physics.Body      { return w.system.Bodies }
func (w *World) Station() *physics.Body       { return w.system.Station }
func (w *World) Primary() *physics.Body       { return w.system.Primary }
func (w *World) Particles() *particles.System { return w.particles }
func (w *World) Camera() camera.Camera        { return *w.camera }
func (w *World) Paused() bool                 { return w.paused }
func (w *World) Ticks() int                   { return w.ticks }
func (w *World) RunID() string                { return w.runID }
func (w *World) Seed() int64                  { return w.seed }
func (w *World) Gravity() *physics.Gravity    { return w.gravity }

// PullVectors returns the force overlay for the station.
func (w *World) PullVectors() []physics.PullVector {
	return w.gravity.PullVectors(w.system.Station, w.system.Bodies)
}

// Flame returns the exhaust outline while a thrust episode is active.
func (w *World) Flame() (particles.Flame, bool) {
	st := w.system.Station
	return w.particles.Flame(st.Pos, st.Radius)
}

// Tick advances gravity and then particles, unless paused.
func (w *World) Tick() {
	if w.paused {
		return
	}
	w.gravity.Advance(w.system.Bodies)
	w.ticks++

	speed := w.system.Station.Speed()
	w.maxSpeed = math.Max(w.maxSpeed, speed)
	w.minSpeed = math.Min(w.minSpeed, speed)

	st := w.system.Station
	w.particles.Tick(st.Pos, st.Radius)

	for _, o := range w.observers {
		o.OnTick(w)
	}
}

// Thrust kicks the station toward direction and starts a thrust episode.
// It returns the exhaust heading.
func (w *World) Thrust(direction float64) float64 {
	exhaust := w.impulse.Apply(w.system.Station, direction)
	w.particles.Ignite(exhaust)
	w.log.Debug("thrust", "tick", w.ticks, "direction", direction, "speed", w.system.Station.Speed())
	return exhaust
}

// ThrustRandom fires in a uniformly random direction.
func (w *World) ThrustRandom() float64 {
	return w.Thrust(2 * math.Pi * w.rng.Float64())
}

// ThrustToward fires from the station toward a point of a width×height
// screen.
func (w *World) ThrustToward(sx, sy, width, height float64) float64 {
	st := w.system.Station
	px, py := camera.WorldToScreen(st.Pos.X, st.Pos.Y, *w.camera, width, height)
	return w.Thrust(math.Atan2(sy-py, sx-px))
}

func (w *World) Zoom(factor float64) bool { return w.camera.Zoom(factor) }
func (w *World) ZoomIn() bool             { return w.camera.Zoom(w.cfg.Camera.ZoomStep) }
func (w *World) ZoomOut() bool            { return w.camera.Zoom(1 / w.cfg.Camera.ZoomStep) }
func (w *World) Pan(dx, dy float64)       { w.camera.Pan(dx, dy) }
func (w *World) ResetCamera()             { w.camera.Reset() }

func (w *World) SetPaused(p bool) { w.paused = p }

func (w *World) TogglePause() bool {
	w.paused = !w.paused
	return w.paused
}

func (w *World) ClearTrail() { w.system.Station.Trail.Clear() }

// Reset rebuilds the registry from the generator and restores the camera.
func (w *World) Reset() error {
	w.camera.Reset()
	return w.rebuild()
}

func (w *World) Stats() Stats {
	st := w.system.Station
	minSpeed := w.minSpeed
	if math.IsInf(minSpeed, 1) {
		minSpeed = 0
	}
	return Stats{
		Tick:     w.ticks,
		Speed:    st.Speed(),
		MinSpeed: minSpeed,
		MaxSpeed: w.maxSpeed,
		Distance: st.DistanceTo(w.system.Primary),
		Energy:   w.gravity.SpecificEnergy(st, w.system.Bodies),
		Scale:    w.camera.Scale,
		Paused:   w.paused,
	}
}

func (w *World) Sample() Sample {
	st := w.system.Station
	return Sample{
		Tick:      w.ticks,
		X:         st.Pos.X,
		Y:         st.Pos.Y,
		VX:        st.Vel.X,
		VY:        st.Vel.Y,
		Speed:     st.Speed(),
		Distance:  st.DistanceTo(w.system.Primary),
		Bearing:   math.Atan2(st.Pos.Y-w.system.Primary.Pos.Y, st.Pos.X-w.system.Primary.Pos.X),
		Energy:    w.gravity.SpecificEnergy(st, w.system.Bodies),
		Thrust:    w.particles.Active(),
		Particles: w.particles.Len(),
	}
}

// Run executes a headless run of cfg.Ticks ticks, firing the scheduled burns
// before the tick they name. Burn ticks count from the start of this run,
// 1 to cfg.Ticks.
func (w *World) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Ticks <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRun, cfg.Ticks)
	}

	burns := make(map[int][]float64, len(cfg.Burns))
	for _, b := range cfg.Burns {
		if b.Tick < 1 || b.Tick > cfg.Ticks {
			return nil, fmt.Errorf("%w: burn %s outside ticks 1..%d", ErrInvalidRun, b, cfg.Ticks)
		}
		burns[b.Tick] = append(burns[b.Tick], b.Direction)
	}

	result := &Result{
		RunID:    w.runID,
		Scenario: w.cfg.Scenario,
		Seed:     w.seed,
		Samples:  make([]Sample, 0, cfg.Ticks+1),
		Metrics:  make(map[string]float64),
	}
	for _, m := range w.metrics {
		m.Reset()
	}

	w.paused = false
	result.Samples = append(result.Samples, w.Sample())

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run canceled at tick %d: %w", w.ticks, ctx.Err())
		default:
		}

		for _, dir := range burns[i+1] {
			w.Thrust(dir)
		}
		w.Tick()
		result.StepsTaken++

		s := w.Sample()
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) || math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			return result, fmt.Errorf("tick %d: %w", w.ticks, ErrUnstable)
		}
		result.Samples = append(result.Samples, s)
		for _, m := range w.metrics {
			m.Observe(s)
		}
	}

	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	w.log.Info("run finished", "ticks", result.StepsTaken, "final_speed", w.system.Station.Speed())
	return result, nil
}
