// Package integrators provides explicit ODE steppers over flash.State.
package integrators

import "github.com/san-kum/flashboil/internal/flash"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys flash.System, x flash.State, t, dt float64) (flash.State, error) {
	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	result := make(flash.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result, nil
}
