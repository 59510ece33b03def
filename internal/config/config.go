// Package config loads and saves run configurations as YAML and bundles
// the named presets. Values use the units a user would type: millimeters
// for radius, kelvin for temperatures, pascals for pressure.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flashboil/internal/droplet"
	"github.com/san-kum/flashboil/internal/sim"
)

type Config struct {
	RadiusMM         float64 `yaml:"radius_mm"`
	TemperatureK     float64 `yaml:"temperature_k"`
	PressurePa       float64 `yaml:"pressure_pa"`
	Alpha            float64 `yaml:"alpha"`
	NucleationFactor float64 `yaml:"nucleation_factor"`
	NucleationOnsetK float64 `yaml:"nucleation_onset_k"`
	FragSuperheatK   float64 `yaml:"fragmentation_superheat_k"`
	NucleateBoiling  bool    `yaml:"nucleate_boiling"`

	Convection      bool    `yaml:"convection"`
	ConvectionCoeff float64 `yaml:"convection_coeff"`
	AmbientTempK    float64 `yaml:"ambient_temperature_k"`

	Dt         float64 `yaml:"dt"`
	MaxTime    float64 `yaml:"max_time"`
	Integrator string  `yaml:"integrator"`
	Adaptive   bool    `yaml:"adaptive"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Default mirrors droplet.DefaultParams and sim.DefaultConfig.
func Default() Config {
	p := droplet.DefaultParams()
	s := sim.DefaultConfig()
	return Config{
		RadiusMM:         p.InitialRadius * 1e3,
		TemperatureK:     p.InitialTemp,
		PressurePa:       p.AmbientPressure,
		Alpha:            p.Alpha,
		NucleationFactor: p.NucleationFactor,
		NucleationOnsetK: p.NucleationOnset,
		FragSuperheatK:   p.FragSuperheat,
		NucleateBoiling:  p.NucleateBoiling,
		Convection:       p.Convection,
		ConvectionCoeff:  p.ConvectionCoeff,
		AmbientTempK:     p.AmbientTemp,
		Dt:               s.Dt,
		MaxTime:          s.MaxTime,
		Integrator:       "rk4",
		Adaptive:         s.Adaptive,
		Tolerance:        s.Tolerance,
	}
}

// Load reads a YAML config. Omitted keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Params converts to the physical parameter set. Validation happens in
// sim.New, not here.
func (c Config) Params() droplet.Params {
	return droplet.Params{
		InitialRadius:    c.RadiusMM * 1e-3,
		InitialTemp:      c.TemperatureK,
		AmbientPressure:  c.PressurePa,
		Alpha:            c.Alpha,
		NucleationFactor: c.NucleationFactor,
		NucleationOnset:  c.NucleationOnsetK,
		FragSuperheat:    c.FragSuperheatK,
		SpecificHeat:     droplet.DefaultParams().SpecificHeat,
		NucleateBoiling:  c.NucleateBoiling,
		Convection:       c.Convection,
		ConvectionCoeff:  c.ConvectionCoeff,
		AmbientTemp:      c.AmbientTempK,
	}
}

// SimConfig converts the numerical settings.
func (c Config) SimConfig() sim.Config {
	s := sim.DefaultConfig()
	s.Dt = c.Dt
	s.MaxTime = c.MaxTime
	s.Adaptive = c.Adaptive
	if c.Tolerance > 0 {
		s.Tolerance = c.Tolerance
	}
	return s
}
