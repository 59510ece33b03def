package droplet

import (
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/thermo"
)

// Documented valid ranges for run parameters. The control surfaces (CLI
// flags, config files, presets) expose exactly these.
const (
	MinRadius   = 0.1e-3 // [m]
	MaxRadius   = 10e-3  // [m]
	MinTemp     = 300.0  // [K]
	MaxTemp     = 450.0  // [K]
	MinPressure = 100.0  // [Pa]
	MaxPressure = 101325.0
	MinAlpha    = 0.01
	MaxAlpha    = 1.0
	MaxNucleationFactor = 100.0
	MinFragSuperheat    = 10.0 // [K]
	MaxFragSuperheat    = 100.0
)

// RadiusFloor is the radius below which the droplet counts as fully
// evaporated. Guards the 1/R^2 singularity in the mass balance.
const RadiusFloor = 1e-9 // [m]

// Params is the immutable physical configuration of one run.
type Params struct {
	InitialRadius   float64 // R0 [m]
	InitialTemp     float64 // T0 [K]
	AmbientPressure float64 // p_inf [Pa]

	Alpha            float64 // evaporation coefficient [-]
	NucleationFactor float64 // nucleate boiling rate multiplier [-]
	NucleationOnset  float64 // superheat to trigger nucleate boiling [K]
	FragSuperheat    float64 // superheat for explosive fragmentation [K]
	SpecificHeat     float64 // liquid cp [J/(kg K)]

	NucleateBoiling bool // enable internal boiling

	// Optional convective heating from the surroundings.
	Convection      bool
	ConvectionCoeff float64 // h [W/(m2 K)]
	AmbientTemp     float64 // [K]
}

// DefaultParams reproduces the canonical strong-flash case: a 1 mm
// droplet at the atmospheric boiling point dropped into 1 kPa.
func DefaultParams() Params {
	return Params{
		InitialRadius:    1.0e-3,
		InitialTemp:      373.0,
		AmbientPressure:  1000.0,
		Alpha:            0.5,
		NucleationFactor: 10.0,
		NucleationOnset:  5.0,
		FragSuperheat:    30.0,
		SpecificHeat:     thermo.CpLiquid,
		NucleateBoiling:  true,
		Convection:       false,
		ConvectionCoeff:  10.0,
		AmbientTemp:      300.0,
	}
}

// Validate rejects out-of-range parameters with an error naming the
// offending one. It runs before any integration starts.
func (p Params) Validate() error {
	switch {
	case p.InitialRadius < MinRadius || p.InitialRadius > MaxRadius:
		return &flash.ConfigError{Param: "initial_radius", Value: p.InitialRadius,
			Reason: "must be within 0.1-10 mm"}
	case p.InitialTemp < MinTemp || p.InitialTemp > MaxTemp:
		return &flash.ConfigError{Param: "initial_temperature", Value: p.InitialTemp,
			Reason: "must be within 300-450 K"}
	case p.AmbientPressure < MinPressure || p.AmbientPressure > MaxPressure:
		return &flash.ConfigError{Param: "ambient_pressure", Value: p.AmbientPressure,
			Reason: "must be within 100-101325 Pa"}
	case p.Alpha < MinAlpha || p.Alpha > MaxAlpha:
		return &flash.ConfigError{Param: "alpha", Value: p.Alpha,
			Reason: "must be within 0.01-1.0"}
	case p.NucleationFactor < 0 || p.NucleationFactor > MaxNucleationFactor:
		return &flash.ConfigError{Param: "nucleation_factor", Value: p.NucleationFactor,
			Reason: "must be within 0-100"}
	case p.FragSuperheat < MinFragSuperheat || p.FragSuperheat > MaxFragSuperheat:
		return &flash.ConfigError{Param: "fragmentation_superheat", Value: p.FragSuperheat,
			Reason: "must be within 10-100 K"}
	case p.NucleationOnset < 0:
		return &flash.ConfigError{Param: "nucleation_onset", Value: p.NucleationOnset,
			Reason: "must be non-negative"}
	case p.NucleationOnset > p.FragSuperheat:
		// Boiling must onset before fragmentation can trigger.
		return &flash.ConfigError{Param: "nucleation_onset", Value: p.NucleationOnset,
			Reason: "must not exceed fragmentation superheat"}
	case p.SpecificHeat <= 0:
		return &flash.ConfigError{Param: "specific_heat", Value: p.SpecificHeat,
			Reason: "must be positive"}
	case p.Convection && p.ConvectionCoeff < 0:
		return &flash.ConfigError{Param: "convection_coeff", Value: p.ConvectionCoeff,
			Reason: "must be non-negative"}
	case p.Convection && (p.AmbientTemp < thermo.TMinValid || p.AmbientTemp > thermo.TMaxValid):
		return &flash.ConfigError{Param: "ambient_temperature", Value: p.AmbientTemp,
			Reason: "must be within the supported property range"}
	}
	return nil
}
