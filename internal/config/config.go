package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	DefaultG              = 1.0
	DefaultInitialSpeed   = 2.0
	DefaultImpulsePower   = 0.5
	DefaultEarthMass      = 1000.0
	DefaultMoonMass       = 50.0
	DefaultAsteroidMass   = 10.0
	DefaultStationMass    = 1.0
	DefaultEarthRadius    = 30.0
	DefaultMoonRadius     = 10.0
	DefaultAsteroidRadius = 5.0
	DefaultStationRadius  = 6.0
	DefaultTrailCapacity  = 300

	DefaultMinScale = 0.2
	DefaultMaxScale = 3.0
	DefaultZoomStep = 1.1

	DefaultWidth       = 1024
	DefaultHeight      = 768
	DefaultGridSize    = 40
	DefaultMaxGridDist = 100.0
	DefaultFPS         = 60
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scenario string        `yaml:"scenario"`
	Seed     int64         `yaml:"seed"`
	Physics  PhysicsConfig `yaml:"physics"`
	Camera   CameraConfig  `yaml:"camera"`
	Display  DisplayConfig `yaml:"display"`
}

type PhysicsConfig struct {
	G              float64 `yaml:"g"`
	InitialSpeed   float64 `yaml:"initial_speed"`
	ImpulsePower   float64 `yaml:"impulse_power"`
	EarthMass      float64 `yaml:"earth_mass"`
	MoonMass       float64 `yaml:"moon_mass"`
	AsteroidMass   float64 `yaml:"asteroid_mass"`
	StationMass    float64 `yaml:"station_mass"`
	EarthRadius    float64 `yaml:"earth_radius"`
	MoonRadius     float64 `yaml:"moon_radius"`
	AsteroidRadius float64 `yaml:"asteroid_radius"`
	StationRadius  float64 `yaml:"station_radius"`
	TrailCapacity  int     `yaml:"trail_capacity"`
}

type CameraConfig struct {
	MinScale     float64 `yaml:"min_scale"`
	MaxScale     float64 `yaml:"max_scale"`
	InitialScale float64 `yaml:"initial_scale"`
	ZoomStep     float64 `yaml:"zoom_step"`
}

// DisplayConfig describes the virtual screen the camera maps into and the
// renderer's colours. Colours are hex strings.
type DisplayConfig struct {
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	FPS         int         `yaml:"fps"`
	Theme       string      `yaml:"theme"`
	GridSize    int         `yaml:"grid_size"`
	MaxGridDist float64     `yaml:"max_grid_dist"`
	Colors      ColorConfig `yaml:"colors"`
}

type ColorConfig struct {
	Background string `yaml:"background"`
	Earth      string `yaml:"earth"`
	Moon       string `yaml:"moon"`
	Asteroid   string `yaml:"asteroid"`
	Station    string `yaml:"station"`
	Trail      string `yaml:"trail"`
	Grid       string `yaml:"grid"`
	Thrust     string `yaml:"thrust"`
	Particle   string `yaml:"particle"`
	Compass    string `yaml:"compass"`
	Arrow      string `yaml:"arrow"`
}

func (c ColorConfig) named() map[string]string {
	return map[string]string{
		"background": c.Background,
		"earth":      c.Earth,
		"moon":       c.Moon,
		"asteroid":   c.Asteroid,
		"station":    c.Station,
		"trail":      c.Trail,
		"grid":       c.Grid,
		"thrust":     c.Thrust,
		"particle":   c.Particle,
		"compass":    c.Compass,
		"arrow":      c.Arrow,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: "earth-moon",
		Physics: PhysicsConfig{
			G:              DefaultG,
			InitialSpeed:   DefaultInitialSpeed,
			ImpulsePower:   DefaultImpulsePower,
			EarthMass:      DefaultEarthMass,
			MoonMass:       DefaultMoonMass,
			AsteroidMass:   DefaultAsteroidMass,
			StationMass:    DefaultStationMass,
			EarthRadius:    DefaultEarthRadius,
			MoonRadius:     DefaultMoonRadius,
			AsteroidRadius: DefaultAsteroidRadius,
			StationRadius:  DefaultStationRadius,
			TrailCapacity:  DefaultTrailCapacity,
		},
		Camera: CameraConfig{
			MinScale:     DefaultMinScale,
			MaxScale:     DefaultMaxScale,
			InitialScale: 1.0,
			ZoomStep:     DefaultZoomStep,
		},
		Display: DisplayConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			FPS:         DefaultFPS,
			Theme:       "cyberpunk",
			GridSize:    DefaultGridSize,
			MaxGridDist: DefaultMaxGridDist,
			Colors: ColorConfig{
				Background: "#0a0a14",
				Earth:      "#3c78dc",
				Moon:       "#b4b4b4",
				Asteroid:   "#8c6446",
				Station:    "#ffffff",
				Trail:      "#4682b4",
				Grid:       "#28283c",
				Thrust:     "#ffa500",
				Particle:   "#ff6400",
				Compass:    "#c8c8c8",
				Arrow:      "#ff4444",
			},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulation cannot start from.
func (c *Config) Validate() error {
	p := c.Physics
	positive := []struct {
		name  string
		value float64
	}{
		{"physics.g", p.G},
		{"physics.impulse_power", p.ImpulsePower},
		{"physics.earth_mass", p.EarthMass},
		{"physics.moon_mass", p.MoonMass},
		{"physics.asteroid_mass", p.AsteroidMass},
		{"physics.station_mass", p.StationMass},
		{"physics.earth_radius", p.EarthRadius},
		{"physics.moon_radius", p.MoonRadius},
		{"physics.asteroid_radius", p.AsteroidRadius},
		{"physics.station_radius", p.StationRadius},
		{"camera.min_scale", c.Camera.MinScale},
		{"camera.max_scale", c.Camera.MaxScale},
		{"camera.zoom_step", c.Camera.ZoomStep},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 1) {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalid, f.name, f.value)
		}
	}
	if !(p.InitialSpeed >= 0) || math.IsInf(p.InitialSpeed, 1) {
		return fmt.Errorf("%w: physics.initial_speed must be finite and not negative", ErrInvalid)
	}
	if p.TrailCapacity < 1 {
		return fmt.Errorf("%w: physics.trail_capacity must be at least 1", ErrInvalid)
	}
	if !(c.Camera.MinScale <= c.Camera.MaxScale) {
		return fmt.Errorf("%w: camera.min_scale %v above max_scale %v", ErrInvalid, c.Camera.MinScale, c.Camera.MaxScale)
	}
	if !(c.Camera.MinScale <= c.Camera.InitialScale && c.Camera.InitialScale <= c.Camera.MaxScale) {
		return fmt.Errorf("%w: camera.initial_scale %v outside bounds", ErrInvalid, c.Camera.InitialScale)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("%w: display.fps must be positive", ErrInvalid)
	}
	if !(c.Display.MaxGridDist > 0) || math.IsInf(c.Display.MaxGridDist, 1) {
		return fmt.Errorf("%w: display.max_grid_dist must be positive and finite", ErrInvalid)
	}
	if c.Display.GridSize <= 0 {
		return fmt.Errorf("%w: display.grid_size must be positive", ErrInvalid)
	}
	for name, hex := range c.Display.Colors.named() {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: display.colors.%s %q is not a hex colour", ErrInvalid, name, hex)
		}
	}
	return nil
}
