// Package droplet implements the flash-boiling droplet model: the
// Hertz-Knudsen surface evaporation flux, the nucleate boiling flux, and
// the coupled radius/temperature ODE system they drive.
package droplet

import (
	"math"

	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/thermo"
)

// Hint tells the integrator which regime threshold the current superheat
// has crossed. The integrator, not the flux model, owns the authoritative
// regime transition.
type Hint int

const (
	HintNone Hint = iota
	HintNucleation
	HintFragmentation
)

// Flux is one evaluation of the mass-loss model at a given (R, T).
type Flux struct {
	Total     float64 // surface + nucleate [kg/s]
	Surface   float64 // [kg/s]
	Nucleate  float64 // [kg/s]
	Superheat float64 // [K]
	Psat      float64 // [Pa]
	Hint      Hint
}

// Model evaluates fluxes and ODE derivatives for a fixed Params. It
// implements flash.System with state [R, T].
type Model struct {
	params Params
	tsat   float64 // T_sat(p_inf), solved once per run
}

// NewModel solves the saturation temperature at the ambient pressure up
// front; a pressure with no root in the correlation's bracket fails here,
// before any stepping.
func NewModel(p Params) (*Model, error) {
	tsat, err := thermo.SaturationTemperature(p.AmbientPressure)
	if err != nil {
		return nil, err
	}
	return &Model{params: p, tsat: tsat}, nil
}

func (m *Model) Params() Params { return m.params }

// SaturationTemp returns T_sat at the run's ambient pressure.
func (m *Model) SaturationTemp() float64 { return m.tsat }

// Superheat is the driver of boiling intensity: droplet temperature
// above the saturation temperature at ambient pressure.
func (m *Model) Superheat(T float64) float64 { return T - m.tsat }

// Mass returns the droplet mass at (R, T).
func (m *Model) Mass(R, T float64) (float64, error) {
	rho, err := thermo.LiquidDensity(T)
	if err != nil {
		return 0, err
	}
	return (4.0 / 3.0) * math.Pi * R * R * R * rho, nil
}

// SurfaceFlux is the Hertz-Knudsen evaporation rate, clamped to zero
// when the ambient pressure exceeds saturation: condensation is not
// modeled, so mass never grows.
func (m *Model) SurfaceFlux(R, T float64) (float64, error) {
	if R <= 0 {
		return 0, nil
	}
	psat, err := thermo.SaturationPressure(T)
	if err != nil {
		return 0, err
	}
	diff := psat - m.params.AmbientPressure
	if diff <= 0 {
		return 0, nil
	}
	area := 4 * math.Pi * R * R
	return area * m.params.Alpha * diff / math.Sqrt(2*math.Pi*thermo.SpecificGas*T), nil
}

// NucleateFlux is the internal boiling rate, active above the onset
// superheat. It scales with droplet mass and the square of the excess
// superheat, so it switches on continuously at the threshold.
func (m *Model) NucleateFlux(R, T float64) (float64, error) {
	if !m.params.NucleateBoiling || R <= 0 {
		return 0, nil
	}
	excess := m.Superheat(T) - m.params.NucleationOnset
	if excess <= 0 {
		return 0, nil
	}
	mass, err := m.Mass(R, T)
	if err != nil {
		return 0, err
	}
	return mass * m.params.NucleationFactor * excess * excess, nil
}

// Evaluate computes the full flux breakdown at (R, T).
func (m *Model) Evaluate(R, T float64) (Flux, error) {
	psat, err := thermo.SaturationPressure(T)
	if err != nil {
		return Flux{}, err
	}
	surface, err := m.SurfaceFlux(R, T)
	if err != nil {
		return Flux{}, err
	}
	nucleate, err := m.NucleateFlux(R, T)
	if err != nil {
		return Flux{}, err
	}
	dT := m.Superheat(T)

	hint := HintNone
	switch {
	case dT > m.params.FragSuperheat:
		hint = HintFragmentation
	case dT > m.params.NucleationOnset:
		hint = HintNucleation
	}

	return Flux{
		Total:     surface + nucleate,
		Surface:   surface,
		Nucleate:  nucleate,
		Superheat: dT,
		Psat:      psat,
		Hint:      hint,
	}, nil
}

// convectiveHeat is the optional heating from the surroundings,
// Q = h * A * (T_inf - T). Positive heats the droplet.
func (m *Model) convectiveHeat(R, T float64) float64 {
	if !m.params.Convection || R <= 0 {
		return 0
	}
	area := 4 * math.Pi * R * R
	return m.params.ConvectionCoeff * area * (m.params.AmbientTemp - T)
}

// Derive is the ODE right-hand side for state [R, T]:
//
//	dR/dt = -mdot / (4 pi R^2 rho)       (mass balance)
//	dT/dt = (-mdot h_fg + Q_conv)/(m cp) (energy balance)
//
// Below the radius floor the droplet is gone and the derivatives vanish;
// the run orchestrator handles the terminal transition.
func (m *Model) Derive(x flash.State, t float64) (flash.State, error) {
	R, T := x[0], x[1]
	if R <= RadiusFloor {
		return flash.State{0, 0}, nil
	}

	rho, err := thermo.LiquidDensity(T)
	if err != nil {
		return nil, err
	}
	hfg, err := thermo.LatentHeat(T)
	if err != nil {
		return nil, err
	}
	fx, err := m.Evaluate(R, T)
	if err != nil {
		return nil, err
	}

	dRdt := -fx.Total / (4 * math.Pi * R * R * rho)

	mass := (4.0 / 3.0) * math.Pi * R * R * R * rho
	dTdt := (-fx.Total*hfg + m.convectiveHeat(R, T)) / (mass * m.params.SpecificHeat)

	return flash.State{dRdt, dTdt}, nil
}

func (m *Model) StateDim() int { return 2 }
