// Package metrics provides run-summary metrics computed by observing the
// simulation time series. Each metric implements flash.Metric and is
// reported in the run result under its name.
package metrics

import (
	"math"

	"github.com/san-kum/flashboil/internal/flash"
)

// MaxSuperheat tracks the peak superheat reached during a run.
type MaxSuperheat struct {
	max     float64
	samples int
}

func NewMaxSuperheat() *MaxSuperheat {
	return &MaxSuperheat{}
}

func (m *MaxSuperheat) Name() string { return "max_superheat" }

func (m *MaxSuperheat) Observe(s flash.Sample) {
	if m.samples == 0 || s.Superheat > m.max {
		m.max = s.Superheat
	}
	m.samples++
}

func (m *MaxSuperheat) Value() float64 {
	return m.max
}

func (m *MaxSuperheat) Reset() {
	m.max = 0
	m.samples = 0
}

// EvaporatedFraction estimates the volume fraction lost since the first
// observed sample, 1 - (R/R0)^3.
type EvaporatedFraction struct {
	r0   float64
	last float64
}

func NewEvaporatedFraction() *EvaporatedFraction {
	return &EvaporatedFraction{}
}

func (e *EvaporatedFraction) Name() string { return "evaporated_fraction" }

func (e *EvaporatedFraction) Observe(s flash.Sample) {
	if e.r0 == 0 {
		e.r0 = s.R
	}
	e.last = s.R
}

func (e *EvaporatedFraction) Value() float64 {
	if e.r0 == 0 {
		return 0
	}
	ratio := e.last / e.r0
	return 1 - ratio*ratio*ratio
}

func (e *EvaporatedFraction) Reset() {
	e.r0 = 0
	e.last = 0
}

// RegimeOnset records the time of the first sample in a given regime, or
// -1 if the regime was never entered.
type RegimeOnset struct {
	name   string
	regime flash.Regime
	t      float64
	seen   bool
}

func NewRegimeOnset(name string, regime flash.Regime) *RegimeOnset {
	return &RegimeOnset{name: name, regime: regime, t: -1}
}

func (r *RegimeOnset) Name() string { return r.name }

func (r *RegimeOnset) Observe(s flash.Sample) {
	if !r.seen && s.Regime == r.regime {
		r.t = s.T
		r.seen = true
	}
}

func (r *RegimeOnset) Value() float64 {
	if !r.seen {
		return -1
	}
	return r.t
}

func (r *RegimeOnset) Reset() {
	r.t = -1
	r.seen = false
}

// MinRadius tracks the smallest radius reached, a quick check that mass
// was never created.
type MinRadius struct {
	min     float64
	samples int
}

func NewMinRadius() *MinRadius {
	return &MinRadius{min: math.Inf(1)}
}

func (m *MinRadius) Name() string { return "min_radius" }

func (m *MinRadius) Observe(s flash.Sample) {
	if s.R < m.min {
		m.min = s.R
	}
	m.samples++
}

func (m *MinRadius) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinRadius) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// Defaults returns the metric set attached to every run.
func Defaults() []flash.Metric {
	return []flash.Metric{
		NewMaxSuperheat(),
		NewEvaporatedFraction(),
		NewRegimeOnset("t_nucleation", flash.NucleateBoiling),
		NewRegimeOnset("t_fragmentation", flash.Fragmented),
		NewMinRadius(),
	}
}
