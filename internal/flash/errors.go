package flash

import (
	"errors"
	"fmt"
)

// Sentinel errors for simulation failures.
var (
	// ErrDomain indicates a property correlation evaluated outside its
	// valid range.
	ErrDomain = errors.New("flash: correlation outside valid range")

	// ErrNoConvergence indicates a bounded numerical procedure exhausted
	// its iteration budget.
	ErrNoConvergence = errors.New("flash: numerical procedure failed to converge")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("flash: invalid state (NaN or Inf detected)")

	// ErrConfig indicates an invalid run parameter, detected before a
	// run starts.
	ErrConfig = errors.New("flash: invalid configuration")
)

// DomainError reports which quantity left which range. It unwraps to
// ErrDomain.
type DomainError struct {
	Quantity string
	Value    float64
	Min, Max float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s = %g outside valid range [%g, %g]", e.Quantity, e.Value, e.Min, e.Max)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// NumericalError reports a solver that ran out of iterations. It unwraps
// to ErrNoConvergence.
type NumericalError struct {
	Op         string
	Iterations int
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations", e.Op, e.Iterations)
}

func (e *NumericalError) Unwrap() error { return ErrNoConvergence }

// ConfigError identifies the offending parameter of an invalid
// configuration. It unwraps to ErrConfig.
type ConfigError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parameter %s = %g: %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }
