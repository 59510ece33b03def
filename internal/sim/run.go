// Package sim owns the integration loop for one flash-boiling run: it
// advances the droplet state, applies the regime state machine, and
// records the time series. A single Advance function drives both the
// incremental (live view) and batch (run-to-completion) modes, so the two
// produce bit-identical series for the same configuration.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/flashboil/internal/droplet"
	"github.com/san-kum/flashboil/internal/flash"
)

// Config holds the numerical settings of a run.
type Config struct {
	Dt        float64 // fixed timestep, or initial timestep when adaptive [s]
	MaxTime   float64 // safety bound against non-convergent configurations [s]
	Adaptive  bool
	Tolerance float64 // local error tolerance for adaptive stepping
	MinDt     float64
	MaxDt     float64

	// ValidateState aborts the run if a step produces NaN or Inf.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-5,
		MaxTime:       1.0,
		Adaptive:      false,
		Tolerance:     1e-8,
		MinDt:         1e-9,
		MaxDt:         1e-3,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return &flash.ConfigError{Param: "dt", Value: c.Dt, Reason: "must be positive"}
	case c.MaxTime <= 0:
		return &flash.ConfigError{Param: "max_time", Value: c.MaxTime, Reason: "must be positive"}
	case c.Adaptive && c.Tolerance <= 0:
		return &flash.ConfigError{Param: "tolerance", Value: c.Tolerance,
			Reason: "must be positive for adaptive stepping"}
	case c.Adaptive && (c.MinDt <= 0 || c.MaxDt < c.MinDt):
		return &flash.ConfigError{Param: "min_dt", Value: c.MinDt,
			Reason: "adaptive stepping needs 0 < min_dt <= max_dt"}
	}
	return nil
}

// Outcome classifies how a run ended.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeExtinguished
	OutcomeFragmented
	OutcomeTimedOut
	OutcomeCanceled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeExtinguished:
		return "extinguished"
	case OutcomeFragmented:
		return "fragmented"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// StepError wraps a failure with the step and time it happened at. The
// series prefix up to the last completed step stays intact for
// inspection.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Result is the immutable summary of a finished (or aborted) run.
type Result struct {
	Series    *flash.Series
	Outcome   Outcome
	Regime    flash.Regime
	FinalTime float64
	Steps     int
	Metrics   map[string]float64
	Err       error
}

// Run drives one droplet from t=0 to a terminal condition. Not safe for
// concurrent use; one goroutine advances one run.
type Run struct {
	params  droplet.Params
	cfg     Config
	model   *droplet.Model
	stepper flash.Stepper
	metrics []flash.Metric

	state   flash.State
	t       float64
	dt      float64
	regime  flash.Regime
	series  *flash.Series
	outcome Outcome
	steps   int
	err     error
}

// New validates the configuration, solves the ambient saturation
// temperature, and records the t=0 sample.
func New(params droplet.Params, cfg Config, stepper flash.Stepper) (*Run, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := droplet.NewModel(params)
	if err != nil {
		return nil, err
	}

	capacity := int(cfg.MaxTime/cfg.Dt) + 1
	if capacity > 1<<20 {
		capacity = 1 << 20
	}

	r := &Run{
		params:  params,
		cfg:     cfg,
		model:   model,
		stepper: stepper,
		state:   flash.State{params.InitialRadius, params.InitialTemp},
		dt:      cfg.Dt,
		regime:  flash.SurfaceEvaporation,
		series:  flash.NewSeries(capacity),
		outcome: OutcomeRunning,
	}

	fx, err := model.Evaluate(r.state[0], r.state[1])
	if err != nil {
		return nil, err
	}
	r.append(fx)
	return r, nil
}

// AddMetric registers a metric and replays the samples recorded so far,
// so the t=0 sample is always observed.
func (r *Run) AddMetric(m flash.Metric) {
	m.Reset()
	for i := 0; i < r.series.Len(); i++ {
		m.Observe(r.series.At(i))
	}
	r.metrics = append(r.metrics, m)
}

// Active reports whether the run can still advance.
func (r *Run) Active() bool { return r.outcome == OutcomeRunning }

// Advance performs exactly one integration step:
//
//  1. advance [R, T] over dt with the configured scheme
//  2. clamp R at zero and re-evaluate the flux model
//  3. apply the regime machine (extinction, fragmentation, nucleation
//     onset, in that order; nucleation never reverts)
//  4. append the sample
//
// On a domain or numerical failure the run stops with the last valid
// sample retained; the error is stored and returned, never swallowed.
func (r *Run) Advance() error {
	if !r.Active() {
		return r.err
	}

	dt := r.dt
	var next flash.State
	var err error
	if ad, ok := r.stepper.(flash.AdaptiveStepper); ok && r.cfg.Adaptive {
		var dtNext float64
		next, dtNext, err = ad.StepAdaptive(r.model, r.state, r.t, dt, r.cfg.Tolerance)
		if err == nil {
			r.dt = clamp(dtNext, r.cfg.MinDt, r.cfg.MaxDt)
		}
	} else {
		next, err = r.stepper.Step(r.model, r.state, r.t, dt)
	}
	if err != nil {
		return r.fail(err)
	}
	if r.cfg.ValidateState && !next.IsValid() {
		return r.fail(flash.ErrInvalidState)
	}
	if next[0] < 0 {
		next[0] = 0
	}

	fx, err := r.model.Evaluate(next[0], next[1])
	if err != nil {
		return r.fail(err)
	}

	r.state = next
	r.t += dt
	r.steps++

	switch {
	case r.state[0] <= droplet.RadiusFloor:
		r.regime = flash.Extinguished
		r.outcome = OutcomeExtinguished
	case fx.Hint == droplet.HintFragmentation:
		r.regime = flash.Fragmented
		r.outcome = OutcomeFragmented
	case fx.Hint == droplet.HintNucleation && r.regime == flash.SurfaceEvaporation:
		r.regime = flash.NucleateBoiling
	}

	r.append(fx)

	if r.outcome == OutcomeRunning && r.t >= r.cfg.MaxTime {
		r.outcome = OutcomeTimedOut
	}
	return nil
}

// RunToCompletion drives the loop until a terminal condition, the time
// bound, a failure, or context cancellation. Cancellation between steps
// leaves the state and series consistent as of the last completed step.
func (r *Run) RunToCompletion(ctx context.Context) *Result {
	for r.Active() {
		select {
		case <-ctx.Done():
			r.outcome = OutcomeCanceled
			r.err = ctx.Err()
			return r.Result()
		default:
		}
		if err := r.Advance(); err != nil {
			break
		}
	}
	return r.Result()
}

// Result snapshots the run summary. Safe to call at any point.
func (r *Run) Result() *Result {
	m := make(map[string]float64, len(r.metrics))
	for _, metric := range r.metrics {
		m[metric.Name()] = metric.Value()
	}
	return &Result{
		Series:    r.series,
		Outcome:   r.outcome,
		Regime:    r.regime,
		FinalTime: r.t,
		Steps:     r.steps,
		Metrics:   m,
		Err:       r.err,
	}
}

func (r *Run) Series() *flash.Series  { return r.series }
func (r *Run) Time() float64          { return r.t }
func (r *Run) Radius() float64        { return r.state[0] }
func (r *Run) Temperature() float64   { return r.state[1] }
func (r *Run) Regime() flash.Regime   { return r.regime }
func (r *Run) Outcome() Outcome       { return r.outcome }
func (r *Run) Steps() int             { return r.steps }
func (r *Run) Err() error             { return r.err }
func (r *Run) Model() *droplet.Model  { return r.model }
func (r *Run) Params() droplet.Params { return r.params }
func (r *Run) Config() Config         { return r.cfg }

func (r *Run) fail(err error) error {
	r.err = &StepError{Step: r.steps, Time: r.t, Err: err}
	r.outcome = OutcomeFailed
	return r.err
}

func (r *Run) append(fx droplet.Flux) {
	smp := flash.Sample{
		T:         r.t,
		R:         r.state[0],
		Temp:      r.state[1],
		Superheat: fx.Superheat,
		Psat:      fx.Psat,
		MassFlux:  fx.Total,
		Regime:    r.regime,
	}
	r.series.Append(smp)
	for _, m := range r.metrics {
		m.Observe(smp)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
