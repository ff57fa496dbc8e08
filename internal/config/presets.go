package config

import "sort"

// Presets are tuned variants of the default configuration.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"gentle": func(c *Config) {
		c.Physics.ImpulsePower = 0.2
		c.Physics.InitialSpeed = 2.2
	},
	"heavy": func(c *Config) {
		c.Physics.EarthMass = 4000
		c.Physics.EarthRadius = 45
		c.Physics.InitialSpeed = 4.4
		c.Physics.ImpulsePower = 1.0
	},
	"lonely": func(c *Config) {
		c.Scenario = "lone-planet"
	},
	"binary": func(c *Config) {
		c.Scenario = "binary"
		c.Physics.MoonMass = 400
	},
	"wide-zoom": func(c *Config) {
		c.Camera.MinScale = 0.05
		c.Camera.MaxScale = 8
	},
}

// GetPreset returns the default configuration with the named preset
// applied, or nil if there is no such preset.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
