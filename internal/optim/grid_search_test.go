package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
)

func burnBuild(t *testing.T) Build {
	t.Helper()
	return func(p map[string]float64) (*sim.World, sim.RunConfig, error) {
		cfg := config.DefaultConfig()
		cfg.Seed = 21
		w, err := sim.New(cfg)
		if err != nil {
			return nil, sim.RunConfig{}, err
		}
		w.AddMetric(metrics.NewPeakSpeed())
		rc := sim.RunConfig{
			Ticks: 30,
			Burns: []sim.Burn{{Tick: int(p["tick"]), Direction: p["direction"]}},
		}
		return w, rc, nil
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
	if len(Linspace(3, 9, 1)) != 1 {
		t.Error("expected a single value")
	}
}

func TestGridSearchVisitsEveryPoint(t *testing.T) {
	g := NewGridSearch([]string{"tick", "direction"}, [][]float64{{1, 2, 3}, {0, math.Pi}}, Maximize)

	visits := 0
	build := burnBuild(t)
	counting := func(p map[string]float64) (*sim.World, sim.RunConfig, error) {
		visits++
		return build(p)
	}

	best, value, err := g.Search(context.Background(), counting, "peak_speed")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if visits != 6 {
		t.Errorf("expected 6 candidates, got %d", visits)
	}
	if _, ok := best["tick"]; !ok {
		t.Errorf("missing tick in %v", best)
	}
	if value <= 0 {
		t.Errorf("expected a positive peak speed, got %f", value)
	}
}

func TestGridSearchGoal(t *testing.T) {
	build := func(p map[string]float64) (*sim.World, sim.RunConfig, error) {
		cfg := config.DefaultConfig()
		cfg.Seed = 2
		cfg.Physics.ImpulsePower = p["power"]
		w, err := sim.New(cfg)
		if err != nil {
			return nil, sim.RunConfig{}, err
		}
		w.AddMetric(metrics.NewThrustDuty())
		burns := []sim.Burn{}
		for i := 1; i <= int(p["burns"]); i++ {
			burns = append(burns, sim.Burn{Tick: i * 10})
		}
		return w, sim.RunConfig{Ticks: 50, Burns: burns}, nil
	}

	ranges := [][]float64{{0, 1, 3}, {0.5}}
	names := []string{"burns", "power"}

	low, _, err := NewGridSearch(names, ranges, Minimize).Search(context.Background(), build, "thrust_duty")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if low["burns"] != 0 {
		t.Errorf("expected no burns to minimise duty, got %v", low)
	}

	high, duty, err := NewGridSearch(names, ranges, Maximize).Search(context.Background(), build, "thrust_duty")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if high["burns"] != 3 || duty <= 0 {
		t.Errorf("expected three burns to maximise duty, got %v (%f)", high, duty)
	}
}

func TestGridSearchNoCandidate(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2}}, Minimize)
	failing := func(map[string]float64) (*sim.World, sim.RunConfig, error) {
		return nil, sim.RunConfig{}, errors.New("boom")
	}

	if _, _, err := g.Search(context.Background(), failing, "anything"); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"tick"}, [][]float64{{1}}, Minimize)
	if _, _, err := g.Search(ctx, burnBuild(t), "peak_speed"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGridSearchMismatch(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1}}, Minimize)
	if _, _, err := g.Search(context.Background(), burnBuild(t), "peak_speed"); err == nil {
		t.Error("expected an error for mismatched ranges")
	}
}
