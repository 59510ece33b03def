package droplet

import (
	"math"
	"testing"

	"github.com/san-kum/flashboil/internal/flash"
)

func testParams() Params {
	p := DefaultParams()
	p.AmbientPressure = 10e3
	p.NucleationOnset = 20
	p.FragSuperheat = 50
	return p
}

func mustModel(t *testing.T, p Params) *Model {
	t.Helper()
	m, err := NewModel(p)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestSaturationTempAtAmbient(t *testing.T) {
	m := mustModel(t, testParams())

	// Water boils near 319 K at 10 kPa.
	if math.Abs(m.SaturationTemp()-319) > 2 {
		t.Errorf("T_sat(10 kPa) = %g, expected about 319 K", m.SaturationTemp())
	}
	if got := m.Superheat(350); math.Abs(got-(350-m.SaturationTemp())) > 1e-12 {
		t.Errorf("superheat mismatch: %g", got)
	}
}

func TestSurfaceFluxClampedAtSubsaturation(t *testing.T) {
	p := testParams()
	p.AmbientPressure = 101325
	m := mustModel(t, p)

	// psat(350 K) is about 42 kPa, well below atmospheric.
	flux, err := m.SurfaceFlux(1e-3, 350)
	if err != nil {
		t.Fatalf("surface flux: %v", err)
	}
	if flux != 0 {
		t.Errorf("expected zero flux below saturation, got %g", flux)
	}
}

func TestSurfaceFluxPositiveWhenSuperheated(t *testing.T) {
	m := mustModel(t, testParams())

	flux, err := m.SurfaceFlux(1e-3, 350)
	if err != nil {
		t.Fatalf("surface flux: %v", err)
	}
	if flux <= 0 {
		t.Errorf("expected positive flux, got %g", flux)
	}

	// Flux scales with surface area.
	bigger, err := m.SurfaceFlux(2e-3, 350)
	if err != nil {
		t.Fatalf("surface flux: %v", err)
	}
	if math.Abs(bigger/flux-4) > 1e-9 {
		t.Errorf("expected 4x flux at double radius, got ratio %g", bigger/flux)
	}
}

func TestNucleateFluxThreshold(t *testing.T) {
	m := mustModel(t, testParams())
	tsat := m.SaturationTemp()

	below, err := m.NucleateFlux(1e-3, tsat+10) // below the 20 K onset
	if err != nil {
		t.Fatalf("nucleate flux: %v", err)
	}
	if below != 0 {
		t.Errorf("expected zero nucleate flux below onset, got %g", below)
	}

	above, err := m.NucleateFlux(1e-3, tsat+30)
	if err != nil {
		t.Fatalf("nucleate flux: %v", err)
	}
	if above <= 0 {
		t.Errorf("expected positive nucleate flux above onset, got %g", above)
	}

	p := testParams()
	p.NucleateBoiling = false
	off := mustModel(t, p)
	disabled, err := off.NucleateFlux(1e-3, tsat+30)
	if err != nil {
		t.Fatalf("nucleate flux: %v", err)
	}
	if disabled != 0 {
		t.Errorf("expected zero flux with boiling disabled, got %g", disabled)
	}
}

func TestEvaluateHints(t *testing.T) {
	m := mustModel(t, testParams())
	tsat := m.SaturationTemp()

	cases := []struct {
		temp float64
		hint Hint
	}{
		{tsat + 10, HintNone},
		{tsat + 30, HintNucleation},
		{tsat + 60, HintFragmentation},
	}
	for _, tc := range cases {
		fx, err := m.Evaluate(1e-3, tc.temp)
		if err != nil {
			t.Fatalf("evaluate at %g K: %v", tc.temp, err)
		}
		if fx.Hint != tc.hint {
			t.Errorf("at superheat %g: hint %v, expected %v", tc.temp-tsat, fx.Hint, tc.hint)
		}
		if fx.Total != fx.Surface+fx.Nucleate {
			t.Errorf("flux breakdown inconsistent: %+v", fx)
		}
	}
}

func TestDeriveSigns(t *testing.T) {
	m := mustModel(t, testParams())

	d, err := m.Derive(flash.State{1e-3, 350}, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if d[0] >= 0 {
		t.Errorf("superheated droplet must shrink, dR/dt=%g", d[0])
	}
	if d[1] >= 0 {
		t.Errorf("evaporation must cool, dT/dt=%g", d[1])
	}
}

func TestDeriveVanishesBelowFloor(t *testing.T) {
	m := mustModel(t, testParams())

	d, err := m.Derive(flash.State{RadiusFloor / 2, 350}, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if d[0] != 0 || d[1] != 0 {
		t.Errorf("expected zero derivatives below the radius floor, got %v", d)
	}
}

func TestConvectionSlowsCooling(t *testing.T) {
	base := testParams()
	adiabatic := mustModel(t, base)

	heated := base
	heated.Convection = true
	heated.ConvectionCoeff = 1e5
	heated.AmbientTemp = 400
	warm := mustModel(t, heated)

	da, err := adiabatic.Derive(flash.State{1e-3, 350}, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	dw, err := warm.Derive(flash.State{1e-3, 350}, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if dw[1] <= da[1] {
		t.Errorf("convective heating should slow cooling: %g vs %g", dw[1], da[1])
	}
}

func TestNewModelRejectsUnsolvablePressure(t *testing.T) {
	p := testParams()
	p.AmbientPressure = MinPressure // validation floor, still solvable

	if _, err := NewModel(p); err != nil {
		t.Errorf("expected %g Pa to be solvable, got %v", p.AmbientPressure, err)
	}
}
