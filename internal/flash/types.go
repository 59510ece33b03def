package flash

import "math"

// State is an ODE state vector. The droplet system uses [R, T]:
// radius in meters, temperature in kelvin.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE right-hand side dX/dt = f(X, t). Derive returns an
// error when a property correlation is evaluated outside its valid range;
// the error aborts the run.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

// Stepper advances a system state by one timestep.
type Stepper interface {
	Step(sys System, x State, t, dt float64) (State, error)
}

// AdaptiveStepper additionally estimates local error and suggests the
// next timestep.
type AdaptiveStepper interface {
	Stepper
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Regime labels the evaporation regime of the droplet.
type Regime int

const (
	SurfaceEvaporation Regime = iota
	NucleateBoiling
	Fragmented
	Extinguished
)

func (r Regime) String() string {
	switch r {
	case SurfaceEvaporation:
		return "surface_evaporation"
	case NucleateBoiling:
		return "nucleate_boiling"
	case Fragmented:
		return "fragmented"
	case Extinguished:
		return "extinguished"
	}
	return "unknown"
}

// Terminal reports whether the regime ends the run.
func (r Regime) Terminal() bool {
	return r == Fragmented || r == Extinguished
}

// ParseRegime is the inverse of Regime.String. Unrecognized labels map to
// SurfaceEvaporation.
func ParseRegime(s string) Regime {
	switch s {
	case "nucleate_boiling":
		return NucleateBoiling
	case "fragmented":
		return Fragmented
	case "extinguished":
		return Extinguished
	}
	return SurfaceEvaporation
}

// Sample is one point of the run time series.
type Sample struct {
	T         float64 // time [s]
	R         float64 // radius [m]
	Temp      float64 // temperature [K]
	Superheat float64 // T - T_sat(p_inf) [K]
	Psat      float64 // saturation pressure at Temp [Pa]
	MassFlux  float64 // total evaporation rate [kg/s]
	Regime    Regime
}

// Series is the append-only run history. Samples are in strictly
// increasing time order, starting at t=0; appended samples are never
// mutated.
type Series struct {
	samples []Sample
}

func NewSeries(capacity int) *Series {
	return &Series{samples: make([]Sample, 0, capacity)}
}

func (s *Series) Append(smp Sample) { s.samples = append(s.samples, smp) }

func (s *Series) Len() int { return len(s.samples) }

func (s *Series) At(i int) Sample { return s.samples[i] }

func (s *Series) Last() (Sample, bool) {
	if len(s.samples) == 0 {
		return Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

// Samples returns a copy of the full history, safe to hold across
// further appends.
func (s *Series) Samples() []Sample {
	return append([]Sample(nil), s.samples...)
}

// Column extracts one quantity across the series, for plotting.
func (s *Series) Column(f func(Sample) float64) []float64 {
	out := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		out[i] = f(smp)
	}
	return out
}

func (s *Series) Times() []float64 { return s.Column(func(p Sample) float64 { return p.T }) }

func (s *Series) Radii() []float64 { return s.Column(func(p Sample) float64 { return p.R }) }

func (s *Series) Temps() []float64 { return s.Column(func(p Sample) float64 { return p.Temp }) }

func (s *Series) Superheats() []float64 {
	return s.Column(func(p Sample) float64 { return p.Superheat })
}

func (s *Series) Fluxes() []float64 {
	return s.Column(func(p Sample) float64 { return p.MassFlux })
}

// Metric observes samples during a run and reduces them to one number,
// reported in the run result.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}
