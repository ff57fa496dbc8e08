// Package scenario builds initial body sets for the simulation.
package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	MoonDistance    = 300.0
	MinStationOrbit = 150
	MaxStationOrbit = 250
	StationName     = "station"
	PrimaryName     = "earth"
)

// System is a freshly generated body registry. Station is the controllable
// body and Primary the body distances are reported against.
type System struct {
	Bodies  []*physics.Body
	Station *physics.Body
	Primary *physics.Body
}

type Generator func(cfg *config.Config, rng *rand.Rand) (*System, error)

type Registry struct {
	generators map[string]Generator
}

func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	r.generators["earth-moon"] = EarthMoon
	r.generators["lone-planet"] = LonePlanet
	r.generators["binary"] = Binary
	return r
}

func (r *Registry) Register(name string, g Generator) {
	r.generators[name] = g
}

func (r *Registry) Get(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return g, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EarthMoon is the classic layout: a static earth at the origin, a static
// moon and asteroid, and the station on a rough orbit around the earth.
func EarthMoon(cfg *config.Config, rng *rand.Rand) (*System, error) {
	p := cfg.Physics
	earth, err := newBody(cfg, PrimaryName, cfg.Display.Colors.Earth, physics.Vec2{}, physics.Vec2{}, p.EarthMass, p.EarthRadius, true)
	if err != nil {
		return nil, err
	}

	moonPos := earth.Pos.Add(physics.Polar(MoonDistance, uniform(rng, 0, 2*math.Pi)))
	moon, err := newBody(cfg, "moon", cfg.Display.Colors.Moon, moonPos, physics.Vec2{}, p.MoonMass, p.MoonRadius, true)
	if err != nil {
		return nil, err
	}

	hw, hh := cfg.Display.Width/2, cfg.Display.Height/2
	astPos := physics.Vec2{
		X: float64(randint(rng, -hw, hw)),
		Y: float64(randint(rng, -hh, hh)),
	}
	asteroid, err := newBody(cfg, "asteroid", cfg.Display.Colors.Asteroid, astPos, physics.Vec2{}, p.AsteroidMass, p.AsteroidRadius, true)
	if err != nil {
		return nil, err
	}

	station, err := newStation(cfg, rng, earth)
	if err != nil {
		return nil, err
	}

	return &System{
		Bodies:  []*physics.Body{earth, moon, asteroid, station},
		Station: station,
		Primary: earth,
	}, nil
}

// LonePlanet is the earth and the station alone.
func LonePlanet(cfg *config.Config, rng *rand.Rand) (*System, error) {
	p := cfg.Physics
	earth, err := newBody(cfg, PrimaryName, cfg.Display.Colors.Earth, physics.Vec2{}, physics.Vec2{}, p.EarthMass, p.EarthRadius, true)
	if err != nil {
		return nil, err
	}
	station, err := newStation(cfg, rng, earth)
	if err != nil {
		return nil, err
	}
	return &System{Bodies: []*physics.Body{earth, station}, Station: station, Primary: earth}, nil
}

// Binary puts the moon on a circular orbit around the earth so the station
// flies through a moving field.
func Binary(cfg *config.Config, rng *rand.Rand) (*System, error) {
	p := cfg.Physics
	earth, err := newBody(cfg, PrimaryName, cfg.Display.Colors.Earth, physics.Vec2{}, physics.Vec2{}, p.EarthMass, p.EarthRadius, true)
	if err != nil {
		return nil, err
	}

	angle := uniform(rng, 0, 2*math.Pi)
	v := math.Sqrt(p.G * p.EarthMass / MoonDistance)
	moon, err := newBody(cfg, "moon", cfg.Display.Colors.Moon,
		physics.Polar(MoonDistance, angle), physics.Polar(v, angle+math.Pi/2),
		p.MoonMass, p.MoonRadius, false)
	if err != nil {
		return nil, err
	}

	station, err := newStation(cfg, rng, earth)
	if err != nil {
		return nil, err
	}
	return &System{Bodies: []*physics.Body{earth, moon, station}, Station: station, Primary: earth}, nil
}

func newStation(cfg *config.Config, rng *rand.Rand, around *physics.Body) (*physics.Body, error) {
	orbit := float64(randint(rng, MinStationOrbit, MaxStationOrbit))
	pos := around.Pos.Add(physics.Polar(orbit, uniform(rng, 0, 2*math.Pi)))
	vel := physics.Polar(cfg.Physics.InitialSpeed, uniform(rng, 0, 2*math.Pi))
	return newBody(cfg, StationName, cfg.Display.Colors.Station, pos, vel,
		cfg.Physics.StationMass, cfg.Physics.StationRadius, false)
}

func newBody(cfg *config.Config, name, color string, pos, vel physics.Vec2, mass, radius float64, static bool) (*physics.Body, error) {
	b, err := physics.NewBody(name, pos, vel, mass, radius, static, cfg.Physics.TrailCapacity)
	if err != nil {
		return nil, err
	}
	b.Color = color
	return b, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// randint is inclusive on both ends.
func randint(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
