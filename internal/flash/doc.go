// Package flash provides the core primitives for flash-boiling droplet
// simulation.
//
// The package defines the fundamental types shared by the physical model,
// the numerical integrators, and the run orchestrator:
//
//   - [State]: ODE state vector; for the droplet system it is [R, T]
//   - [System]: interface for the ODE right-hand side (dX/dt = f(X, t))
//   - [Stepper]: numerical integrator interface
//   - [Regime]: evaporation regime state machine labels
//   - [Sample] / [Series]: the append-only run time series
//
// # Regime transitions
//
// Regimes advance one way only: SurfaceEvaporation -> NucleateBoiling ->
// {Fragmented | Extinguished}. Once internal boiling nucleates it does not
// un-nucleate within a run, even if the superheat later dips below the
// onset threshold.
//
// # Thread Safety
//
// Series and Run instances are NOT thread-safe; one goroutine drives one
// run at a time.
package flash
