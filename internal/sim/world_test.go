package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/particles"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/scenario"
)

// parked puts a motionless station at the origin with a static earth far
// enough away that a handful of ticks barely moves it.
func parked(cfg *config.Config, _ *rand.Rand) (*scenario.System, error) {
	earth, err := physics.NewBody("earth", physics.Vec2{X: 1e6}, physics.Vec2{}, 1, 30, true, cfg.Physics.TrailCapacity)
	if err != nil {
		return nil, err
	}
	st, err := physics.NewBody("station", physics.Vec2{}, physics.Vec2{}, 1, 6, false, cfg.Physics.TrailCapacity)
	if err != nil {
		return nil, err
	}
	return &scenario.System{Bodies: []*physics.Body{earth, st}, Station: st, Primary: earth}, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	return cfg
}

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := New(testConfig(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Camera.MinScale = 5
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	cfg = testConfig()
	cfg.Scenario = "nope"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected unknown scenario error")
	}
}

func TestPauseGatesTick(t *testing.T) {
	w := newTestWorld(t, WithPaused(true), WithGenerator(parked))
	before := w.Station().Pos

	w.Thrust(0)
	for i := 0; i < 5; i++ {
		w.Tick()
	}

	if w.Station().Pos != before {
		t.Errorf("station moved while paused: %v -> %v", before, w.Station().Pos)
	}
	if w.Ticks() != 0 {
		t.Errorf("expected 0 ticks while paused, got %d", w.Ticks())
	}
	if w.Particles().Len() != 0 {
		t.Errorf("expected no particles while paused, got %d", w.Particles().Len())
	}
	// Input still lands while paused.
	if math.Abs(w.Station().Vel.X-w.cfg.Physics.ImpulsePower) > 1e-12 {
		t.Errorf("impulse not applied while paused: %v", w.Station().Vel)
	}

	if w.TogglePause() {
		t.Fatal("expected TogglePause to resume")
	}
	w.Tick()
	if w.Ticks() != 1 {
		t.Errorf("expected 1 tick after resume, got %d", w.Ticks())
	}
}

func TestThrustEpisode(t *testing.T) {
	w := newTestWorld(t, WithGenerator(parked))

	exhaust := w.Thrust(math.Pi / 2)
	if math.Abs(exhaust-3*math.Pi/2) > 1e-12 {
		t.Errorf("expected exhaust 3π/2, got %f", exhaust)
	}

	for i := 1; i < particles.EpisodeTicks; i++ {
		w.Tick()
		if got, want := w.Particles().Len(), i*particles.PerTick; got != want {
			t.Fatalf("tick %d: expected %d particles, got %d", i, want, got)
		}
		if _, ok := w.Flame(); !ok {
			t.Fatalf("tick %d: expected flame during episode", i)
		}
	}

	w.Tick()
	if w.Particles().Active() {
		t.Error("expected episode to end after 10 ticks")
	}
	if got := w.Particles().Len(); got != particles.PerTick {
		t.Errorf("expected only the final batch to survive the clear, got %d", got)
	}
	if _, ok := w.Flame(); ok {
		t.Error("expected no flame after episode")
	}

	for i := 0; i < particles.MaxLife; i++ {
		w.Tick()
	}
	if w.Particles().Len() != 0 {
		t.Errorf("expected all particles expired, got %d", w.Particles().Len())
	}
}

func TestThrustToward(t *testing.T) {
	w := newTestWorld(t, WithGenerator(parked))
	power := w.cfg.Physics.ImpulsePower

	// Station sits at the screen centre with the default camera.
	w.ThrustToward(100, 100, 200, 100)

	v := w.Station().Vel
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-power) > 1e-12 {
		t.Errorf("expected velocity (0, %f), got %v", power, v)
	}
	if math.Abs(w.Particles().Direction()-3*math.Pi/2) > 1e-12 {
		t.Errorf("expected exhaust pointing up-screen, got %f", w.Particles().Direction())
	}
}

func TestCameraInput(t *testing.T) {
	w := newTestWorld(t)

	zooms := 0
	for w.ZoomIn() {
		zooms++
		if zooms > 100 {
			t.Fatal("zoom never hit the upper bound")
		}
	}
	if s := w.Camera().Scale; s > w.cfg.Camera.MaxScale {
		t.Errorf("scale %f above max", s)
	}

	w.Pan(30, -15)
	w.ResetCamera()
	c := w.Camera()
	if c.X != 0 || c.Y != 0 || c.Scale != 1 {
		t.Errorf("expected reset camera, got %+v", c)
	}
}

func TestResetAndClearTrail(t *testing.T) {
	w := newTestWorld(t)
	w.Thrust(1)
	for i := 0; i < 20; i++ {
		w.Tick()
	}
	if w.Station().Trail.Len() == 0 {
		t.Fatal("expected trail after ticking")
	}

	w.ClearTrail()
	if w.Station().Trail.Len() != 0 {
		t.Errorf("expected empty trail, got %d", w.Station().Trail.Len())
	}

	oldRun := w.RunID()
	w.Pan(50, 50)
	if err := w.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if w.Ticks() != 0 || w.Particles().Len() != 0 || w.Particles().Active() {
		t.Errorf("expected clean state after reset, ticks=%d particles=%d", w.Ticks(), w.Particles().Len())
	}
	if w.Camera().X != 0 || w.Camera().Y != 0 {
		t.Errorf("expected camera at origin, got %+v", w.Camera())
	}
	if w.RunID() == oldRun {
		t.Error("expected a fresh run id")
	}
	if st := w.Stats(); st.MaxSpeed != 0 || st.MinSpeed != 0 {
		t.Errorf("expected speed stats reset, got %+v", st)
	}
}

func TestStatsTrackSpeedRange(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 200; i++ {
		w.Tick()
	}
	st := w.Stats()
	if st.MinSpeed > st.MaxSpeed {
		t.Errorf("min speed %f above max %f", st.MinSpeed, st.MaxSpeed)
	}
	if st.Speed < st.MinSpeed || st.Speed > st.MaxSpeed {
		t.Errorf("current speed %f outside observed range [%f, %f]", st.Speed, st.MinSpeed, st.MaxSpeed)
	}
	if st.Tick != 200 {
		t.Errorf("expected tick 200, got %d", st.Tick)
	}
}

func TestRun(t *testing.T) {
	w := newTestWorld(t, WithPaused(true))

	result, err := w.Run(context.Background(), RunConfig{
		Ticks: 50,
		Burns: []Burn{{Tick: 10, Direction: 0}},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Samples) != 51 {
		t.Errorf("expected 51 samples, got %d", len(result.Samples))
	}
	if result.StepsTaken != 50 {
		t.Errorf("expected 50 steps, got %d", result.StepsTaken)
	}
	if result.Seed != 7 {
		t.Errorf("expected seed 7, got %d", result.Seed)
	}
	if result.Samples[9].Thrust || !result.Samples[10].Thrust {
		t.Errorf("expected thrust to start at tick 10: %v %v", result.Samples[9].Thrust, result.Samples[10].Thrust)
	}
	if result.Samples[20].Thrust {
		t.Error("expected thrust over by tick 20")
	}
}

func TestRunInvalid(t *testing.T) {
	tests := []struct {
		name string
		rc   RunConfig
	}{
		{"no ticks", RunConfig{}},
		{"negative ticks", RunConfig{Ticks: -1}},
		{"burn at zero", RunConfig{Ticks: 5, Burns: []Burn{{Tick: 0}}}},
		{"burn past end", RunConfig{Ticks: 5, Burns: []Burn{{Tick: 99}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			if _, err := w.Run(context.Background(), tt.rc); !errors.Is(err, ErrInvalidRun) {
				t.Errorf("expected ErrInvalidRun, got %v", err)
			}
			if w.Ticks() != 0 {
				t.Errorf("rejected run advanced the world to tick %d", w.Ticks())
			}
		})
	}
}

func TestRunBurnsCountFromRunStart(t *testing.T) {
	w := newTestWorld(t)
	w.SetPaused(false)
	for iter := 0; iter < 3; iter++ {
		w.Tick()
	}

	result, err := w.Run(context.Background(), RunConfig{Ticks: 5, Burns: []Burn{{Tick: 2, Direction: 1}}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Samples[1].Thrust || !result.Samples[2].Thrust {
		t.Errorf("expected the burn before the run's second tick: %v %v", result.Samples[1].Thrust, result.Samples[2].Thrust)
	}
	if result.Samples[2].Tick != 5 {
		t.Errorf("expected world tick 5 at run tick 2, got %d", result.Samples[2].Tick)
	}
}

func TestRunCanceled(t *testing.T) {
	w := newTestWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := w.Run(ctx, RunConfig{Ticks: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
}

func TestRunDeterministic(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)

	ra, err := a.Run(context.Background(), RunConfig{Ticks: 100, Burns: []Burn{{Tick: 5, Direction: 2}}})
	if err != nil {
		t.Fatal(err)
	}
	rb, err := b.Run(context.Background(), RunConfig{Ticks: 100, Burns: []Burn{{Tick: 5, Direction: 2}}})
	if err != nil {
		t.Fatal(err)
	}

	last := len(ra.Samples) - 1
	if ra.Samples[last] != rb.Samples[last] {
		t.Errorf("same seed diverged: %+v vs %+v", ra.Samples[last], rb.Samples[last])
	}
}

func TestEnsembleSeedSkipsZero(t *testing.T) {
	tests := []struct {
		start int64
		want  []int64
	}{
		{100, []int64{100, 101, 102}},
		{-1, []int64{-1, 1, 2}},
		{-3, []int64{-3, -2, -1}},
		{0, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		for i, want := range tt.want {
			if got := ensembleSeed(tt.start, i); got != want {
				t.Errorf("start %d run %d: expected seed %d, got %d", tt.start, i, want, got)
			}
		}
	}

	e := NewEnsemble(testConfig(), 3, -1, nil, nil)
	results, err := e.Run(context.Background(), RunConfig{Ticks: 5})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	for i, want := range []int64{-1, 1, 2} {
		if results[i].Seed != want {
			t.Errorf("run %d: expected seed %d, got %d", i, want, results[i].Seed)
		}
	}
}

type countingMetric struct{ n int }

func (c *countingMetric) Name() string   { return "count" }
func (c *countingMetric) Observe(Sample) { c.n++ }
func (c *countingMetric) Value() float64 { return float64(c.n) }
func (c *countingMetric) Reset()         { c.n = 0 }

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(testConfig(), 4, 100, func() []Metric { return []Metric{&countingMetric{}} }, nil)

	results, err := e.Run(context.Background(), RunConfig{Ticks: 30})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != 100+int64(i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 100+i, r.Seed)
		}
		if r.Metrics["count"] != 30 {
			t.Errorf("run %d: expected 30 observations, got %f", i, r.Metrics["count"])
		}
	}
}

func BenchmarkWorldTick(b *testing.B) {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	w, err := New(cfg, WithPaused(false))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%20 == 0 {
			w.Thrust(float64(i))
		}
		w.Tick()
	}
}
