package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Physics.TrailCapacity != 300 {
		t.Errorf("expected trail capacity 300, got %d", cfg.Physics.TrailCapacity)
	}
	if cfg.Camera.ZoomStep != 1.1 {
		t.Errorf("expected zoom step 1.1, got %f", cfg.Camera.ZoomStep)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero earth mass", func(c *Config) { c.Physics.EarthMass = 0 }},
		{"negative station radius", func(c *Config) { c.Physics.StationRadius = -1 }},
		{"zero impulse", func(c *Config) { c.Physics.ImpulsePower = 0 }},
		{"min above max scale", func(c *Config) { c.Camera.MinScale, c.Camera.MaxScale = 3, 0.2 }},
		{"initial scale out of bounds", func(c *Config) { c.Camera.InitialScale = 10 }},
		{"zero zoom step", func(c *Config) { c.Camera.ZoomStep = 0 }},
		{"zero trail", func(c *Config) { c.Physics.TrailCapacity = 0 }},
		{"negative initial speed", func(c *Config) { c.Physics.InitialSpeed = -1 }},
		{"empty display", func(c *Config) { c.Display.Width = 0 }},
		{"bad colour", func(c *Config) { c.Display.Colors.Trail = "steelblue" }},
		{"nan initial scale", func(c *Config) { c.Camera.InitialScale = math.NaN() }},
		{"infinite max scale", func(c *Config) { c.Camera.MaxScale = math.Inf(1) }},
		{"nan min scale", func(c *Config) { c.Camera.MinScale = math.NaN() }},
		{"infinite g", func(c *Config) { c.Physics.G = math.Inf(1) }},
		{"nan earth mass", func(c *Config) { c.Physics.EarthMass = math.NaN() }},
		{"nan initial speed", func(c *Config) { c.Physics.InitialSpeed = math.NaN() }},
		{"infinite grid distance", func(c *Config) { c.Display.MaxGridDist = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitsim.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Physics.G = 2.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Physics.G != 2.5 {
		t.Errorf("round trip lost values: seed=%d g=%f", loaded.Seed, loaded.Physics.G)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  g: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.G != 3 {
		t.Errorf("expected g 3, got %f", cfg.Physics.G)
	}
	if cfg.Physics.EarthMass != DefaultEarthMass {
		t.Errorf("expected default earth mass, got %f", cfg.Physics.EarthMass)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  min_scale: 5\n  max_scale: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("heavy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Physics.EarthMass != 4000 {
		t.Errorf("expected earth mass 4000, got %f", cfg.Physics.EarthMass)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestLoad_NonFiniteFails(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nan initial scale", "camera:\n  initial_scale: .nan\n"},
		{"infinite max scale", "camera:\n  max_scale: .inf\n"},
		{"infinite g", "physics:\n  g: .inf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "orbitsim.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
