package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/flashboil/internal/flash"
)

func TestMaxSuperheat(t *testing.T) {
	m := NewMaxSuperheat()

	m.Observe(flash.Sample{Superheat: -5})
	m.Observe(flash.Sample{Superheat: 42})
	m.Observe(flash.Sample{Superheat: 10})

	if m.Value() != 42 {
		t.Errorf("expected 42, got %f", m.Value())
	}

	m.Reset()
	m.Observe(flash.Sample{Superheat: -3})
	if m.Value() != -3 {
		t.Errorf("expected -3 after reset, got %f", m.Value())
	}
}

func TestEvaporatedFraction(t *testing.T) {
	e := NewEvaporatedFraction()

	e.Observe(flash.Sample{R: 1e-3})
	e.Observe(flash.Sample{R: 0.5e-3})

	expected := 1 - 0.125
	if math.Abs(e.Value()-expected) > 1e-12 {
		t.Errorf("expected %f, got %f", expected, e.Value())
	}
}

func TestRegimeOnset(t *testing.T) {
	r := NewRegimeOnset("t_nucleation", flash.NucleateBoiling)

	r.Observe(flash.Sample{T: 0, Regime: flash.SurfaceEvaporation})
	if r.Value() != -1 {
		t.Errorf("expected -1 before onset, got %f", r.Value())
	}

	r.Observe(flash.Sample{T: 0.002, Regime: flash.NucleateBoiling})
	r.Observe(flash.Sample{T: 0.003, Regime: flash.NucleateBoiling})

	if r.Value() != 0.002 {
		t.Errorf("expected first onset time 0.002, got %f", r.Value())
	}
}

func TestMinRadius(t *testing.T) {
	m := NewMinRadius()

	if m.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %f", m.Value())
	}

	m.Observe(flash.Sample{R: 2e-3})
	m.Observe(flash.Sample{R: 1e-3})
	m.Observe(flash.Sample{R: 1.5e-3})

	if m.Value() != 1e-3 {
		t.Errorf("expected 1e-3, got %f", m.Value())
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name: %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
