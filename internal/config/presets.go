package config

import (
	"fmt"
	"sort"
)

// presets are the canonical demonstration cases, one per regime.
var presets = map[string]func() Config{
	// Modest superheat at moderate vacuum; stays in surface evaporation.
	"mild": func() Config {
		c := Default()
		c.TemperatureK = 350
		c.PressurePa = 10e3
		c.NucleationOnsetK = 35
		c.FragSuperheatK = 60
		c.Dt = 1e-6
		c.MaxTime = 0.01
		return c
	},
	// Boiling-point water dropped into 1 kPa; intense nucleate boiling
	// without fragmentation.
	"violent": func() Config {
		c := Default()
		c.TemperatureK = 373
		c.PressurePa = 1000
		c.NucleationOnsetK = 30
		c.FragSuperheatK = 100
		c.Dt = 1e-8
		c.MaxTime = 2e-4
		return c
	},
	// Superheat far past the threshold; the droplet shatters within
	// microseconds.
	"fragmentation": func() Config {
		c := Default()
		c.TemperatureK = 400
		c.PressurePa = 500
		c.NucleationOnsetK = 5
		c.FragSuperheatK = 30
		c.Dt = 1e-7
		c.MaxTime = 0.1
		return c
	},
	// Below saturation at atmospheric pressure; the evaporation flux
	// clamps to zero and the droplet just sits there.
	"subcooled": func() Config {
		c := Default()
		c.TemperatureK = 350
		c.PressurePa = 101325
		c.Dt = 1e-5
		c.MaxTime = 0.01
		return c
	},
}

// Preset returns a named preset configuration.
func Preset(name string) (Config, error) {
	f, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	return f(), nil
}

// PresetNames lists the presets in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
