package integrators

import (
	"fmt"

	"github.com/san-kum/flashboil/internal/flash"
)

// New looks up a stepper by name.
func New(name string) (flash.Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

// Names lists the available steppers.
func Names() []string {
	return []string{"euler", "rk4", "rk45"}
}
