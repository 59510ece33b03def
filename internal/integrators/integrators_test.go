package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/flashboil/internal/flash"
)

// decaySystem is dx/dt = -x with exact solution x0*exp(-t).
type decaySystem struct{}

func (d *decaySystem) Derive(x flash.State, t float64) (flash.State, error) {
	return flash.State{-x[0]}, nil
}

func (d *decaySystem) StateDim() int { return 1 }

// failingSystem errors after a set number of derivative evaluations.
type failingSystem struct {
	calls, limit int
}

func (f *failingSystem) Derive(x flash.State, t float64) (flash.State, error) {
	f.calls++
	if f.calls > f.limit {
		return nil, errors.New("boom")
	}
	return flash.State{-x[0]}, nil
}

func (f *failingSystem) StateDim() int { return 1 }

func TestEulerFirstOrder(t *testing.T) {
	sys := &decaySystem{}
	integ := NewEuler()

	x := flash.State{1.0}
	dt := 0.001
	steps := 1000
	for i := 0; i < steps; i++ {
		var err error
		x, err = integ.Step(sys, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-3 {
		t.Errorf("euler error too large: got %.6f, expected %.6f", x[0], expected)
	}
}

func TestRK4Accuracy(t *testing.T) {
	sys := &decaySystem{}
	integ := NewRK4()

	x := flash.State{1.0}
	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		var err error
		x, err = integ.Step(sys, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-8 {
		t.Errorf("rk4 error too large: got %.10f, expected %.10f", x[0], expected)
	}
}

func TestRK45AdaptiveSuggestsLargerStep(t *testing.T) {
	sys := &decaySystem{}
	integ := NewRK45()

	x := flash.State{1.0}
	newX, dtNew, err := integ.StepAdaptive(sys, x, 0, 1e-6, 1e-6)
	if err != nil {
		t.Fatalf("adaptive step failed: %v", err)
	}
	if dtNew <= 1e-6 {
		t.Errorf("expected step growth for smooth system, got dt=%g", dtNew)
	}
	if math.Abs(newX[0]-math.Exp(-1e-6)) > 1e-12 {
		t.Errorf("rk45 step inaccurate: got %.12f", newX[0])
	}
}

func TestStepPropagatesDeriveError(t *testing.T) {
	x := flash.State{1.0}

	for _, integ := range []flash.Stepper{NewEuler(), NewRK4(), NewRK45()} {
		sys := &failingSystem{limit: 0}
		if _, err := integ.Step(sys, x, 0, 0.01); err == nil {
			t.Errorf("%T: expected derivative error to propagate", integ)
		}
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if integ == nil {
			t.Fatalf("lookup %s returned nil", name)
		}
	}

	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
