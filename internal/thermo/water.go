package thermo

import (
	"math"

	"github.com/san-kum/flashboil/internal/flash"
)

// Physical constants for water.
const (
	GasConstant  = 8.314462  // universal gas constant [J/(mol K)]
	MolarMass    = 18.015e-3 // [kg/mol]
	SpecificGas  = GasConstant / MolarMass
	TFreeze      = 273.15 // [K]
	TCritical    = 647.1  // [K]
	CpLiquid     = 4186.0 // liquid specific heat [J/(kg K)]
	PaPerMmHg    = 133.322
	KelvinOffset = 273.15
)

// Antoine coefficients for water, log10(p[mmHg]) = A - B/(C + T[degC]).
// The fit is quoted for 1..100 degC but stays smooth well beyond; the
// supported range below extends into the supercooled region so that the
// saturation curve can be inverted down to ambient pressures of ~100 Pa.
const (
	antoineA = 8.07131
	antoineB = 1730.63
	antoineC = 233.426
)

// Supported temperature range of the saturation and density correlations.
const (
	TMinValid = 250.0  // [K]
	TMaxValid = 473.15 // [K]
)

// Watson correlation reference point: latent heat at the normal boiling
// point.
const (
	watsonExponent = 0.38
	TReference     = 373.15   // [K]
	HfgReference   = 2.257e6  // [J/kg]
	PReference     = 101325.0 // [Pa]
)

// TsatIterations bounds the bisection when inverting the Antoine
// relation.
const TsatIterations = 200

// SaturationPressure evaluates the Antoine equation at T.
func SaturationPressure(T float64) (float64, error) {
	if T < TMinValid || T > TMaxValid {
		return 0, &flash.DomainError{Quantity: "saturation pressure temperature", Value: T, Min: TMinValid, Max: TMaxValid}
	}
	tc := T - KelvinOffset
	logP := antoineA - antoineB/(antoineC+tc)
	return math.Pow(10, logP) * PaPerMmHg, nil
}

// SaturationTemperature inverts the Antoine relation numerically,
// solving SaturationPressure(T) = p by bisection over the supported
// bracket. The closed form exists but the bounded solver keeps the
// inversion honest about the correlation's validity range.
func SaturationTemperature(p float64) (float64, error) {
	pLo, _ := SaturationPressure(TMinValid)
	pHi, _ := SaturationPressure(TMaxValid)
	if p < pLo || p > pHi {
		return 0, &flash.DomainError{Quantity: "saturation temperature pressure", Value: p, Min: pLo, Max: pHi}
	}

	lo, hi := TMinValid, TMaxValid
	for i := 0; i < TsatIterations; i++ {
		mid := 0.5 * (lo + hi)
		pm, err := SaturationPressure(mid)
		if err != nil {
			return 0, err
		}
		if hi-lo < 1e-9 {
			return mid, nil
		}
		if pm < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, &flash.NumericalError{Op: "saturation temperature bisection", Iterations: TsatIterations}
}

// LatentHeat returns the heat of vaporization at T via the Watson
// correlation, scaled from the normal boiling point. It decreases toward
// zero as T approaches the critical temperature and is positive
// everywhere in the supported range.
func LatentHeat(T float64) (float64, error) {
	if T < TMinValid || T >= TCritical {
		return 0, &flash.DomainError{Quantity: "latent heat temperature", Value: T, Min: TMinValid, Max: TCritical}
	}
	tr := T / TCritical
	trRef := TReference / TCritical
	return HfgReference * math.Pow((1-tr)/(1-trRef), watsonExponent), nil
}

// LiquidDensity returns the liquid density at T. The fit is monotone
// decreasing above 277 K and floored at 500 kg/m3.
func LiquidDensity(T float64) (float64, error) {
	if T < TMinValid || T > TMaxValid {
		return 0, &flash.DomainError{Quantity: "liquid density temperature", Value: T, Min: TMinValid, Max: TMaxValid}
	}
	tc := T - KelvinOffset
	rho := 1000.0 - 0.0178*math.Pow(math.Abs(tc-4.0), 1.7)
	return math.Max(rho, 500.0), nil
}

// SpecificHeat returns the liquid specific heat capacity. Weakly
// temperature dependent; a constant suffices for the lumped model.
func SpecificHeat(T float64) float64 {
	return CpLiquid
}
