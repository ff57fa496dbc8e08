package scenario

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
)

func TestEarthMoon(t *testing.T) {
	cfg := config.DefaultConfig()
	sys, err := EarthMoon(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(sys.Bodies) != 4 {
		t.Fatalf("expected 4 bodies, got %d", len(sys.Bodies))
	}
	if sys.Primary.Pos.X != 0 || sys.Primary.Pos.Y != 0 || !sys.Primary.Static {
		t.Errorf("earth should be static at the origin: %+v", sys.Primary)
	}

	moon := sys.Bodies[1]
	if d := moon.DistanceTo(sys.Primary); math.Abs(d-MoonDistance) > 1e-9 {
		t.Errorf("moon distance = %v", d)
	}

	ast := sys.Bodies[2]
	if math.Abs(ast.Pos.X) > float64(cfg.Display.Width/2) || math.Abs(ast.Pos.Y) > float64(cfg.Display.Height/2) {
		t.Errorf("asteroid outside screen box: %v", ast.Pos)
	}

	st := sys.Station
	if st.Static || st.Name != StationName {
		t.Errorf("unexpected station %+v", st)
	}
	d := st.DistanceTo(sys.Primary)
	if d < MinStationOrbit-1e-9 || d > MaxStationOrbit+1e-9 {
		t.Errorf("station orbit %v out of range", d)
	}
	if math.Abs(st.Speed()-cfg.Physics.InitialSpeed) > 1e-9 {
		t.Errorf("station speed %v, want %v", st.Speed(), cfg.Physics.InitialSpeed)
	}
	if st.Mass != cfg.Physics.StationMass || st.Radius != cfg.Physics.StationRadius {
		t.Errorf("station mass/radius = %v/%v", st.Mass, st.Radius)
	}
}

func TestEarthMoon_Reproducible(t *testing.T) {
	cfg := config.DefaultConfig()
	a, _ := EarthMoon(cfg, rand.New(rand.NewSource(99)))
	b, _ := EarthMoon(cfg, rand.New(rand.NewSource(99)))
	for i := range a.Bodies {
		if a.Bodies[i].Pos != b.Bodies[i].Pos || a.Bodies[i].Vel != b.Bodies[i].Vel {
			t.Errorf("body %d differs between equal seeds", i)
		}
	}
}

func TestBinary_MoonOrbits(t *testing.T) {
	cfg := config.DefaultConfig()
	sys, err := Binary(cfg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	moon := sys.Bodies[1]
	if moon.Static {
		t.Fatal("binary moon should be dynamic")
	}
	want := math.Sqrt(cfg.Physics.G * cfg.Physics.EarthMass / MoonDistance)
	if math.Abs(moon.Speed()-want) > 1e-9 {
		t.Errorf("moon speed %v, want %v", moon.Speed(), want)
	}
	// velocity perpendicular to radius
	if dot := moon.Pos.X*moon.Vel.X + moon.Pos.Y*moon.Vel.Y; math.Abs(dot) > 1e-6 {
		t.Errorf("moon velocity not tangential, dot = %v", dot)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		gen, err := r.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		sys, err := gen(config.DefaultConfig(), rand.New(rand.NewSource(5)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if sys.Station == nil || sys.Primary == nil {
			t.Errorf("%s: missing station or primary", name)
		}
	}

	if _, err := r.Get("nonexistent"); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestGenerate_InvalidMass(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.MoonMass = 0
	if _, err := EarthMoon(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for zero moon mass")
	}
}
