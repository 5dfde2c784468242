// Package converge drives a phase model until its coherence reaches a target
// or a step budget runs out.
//
// The loop is the same for every strategy: measure, stop if the target is
// met, otherwise advance one step. Missing the target is a normal outcome
// reported as Result.Success == false, never an error.
package converge

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultMaxSteps is the default step budget.
	DefaultMaxSteps = 100
	// DefaultTarget is the default coherence threshold.
	DefaultTarget = 0.9
)

var (
	// ErrNilStepper is returned when Run receives no model.
	ErrNilStepper = errors.New("converge: stepper is nil")
	// ErrInvalidBudget indicates MaxSteps <= 0.
	ErrInvalidBudget = errors.New("converge: max steps must be positive")
	// ErrInvalidTarget indicates a target outside (0,1] or NaN.
	ErrInvalidTarget = errors.New("converge: target must be in (0,1]")
	// ErrInvalidStart indicates a negative StartStep.
	ErrInvalidStart = errors.New("converge: start step must be non-negative")
)

// Stepper is a phase model the loop can measure and advance.
type Stepper interface {
	// Coherence returns the current order parameter in [0,1].
	Coherence() float64
	// Step advances the model once at schedule index s.
	Step(s int)
}

// Corrector is implemented by models that count corrective actions.
type Corrector interface {
	Corrections() int
}

// Observer is called with each measured coherence before the stop check.
// step is the loop iteration, starting at 0.
type Observer func(step int, coherence float64)

// Options configures Run.
type Options struct {
	MaxSteps int
	Target   float64
	// StartStep offsets the schedule index passed to Step, so a run can
	// resume a rhythm where an earlier run left it.
	StartStep int
	Observer  Observer
}

// DefaultOptions returns a budget of DefaultMaxSteps and a target of DefaultTarget.
func DefaultOptions() Options {
	return Options{MaxSteps: DefaultMaxSteps, Target: DefaultTarget}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.MaxSteps <= 0 {
		return fmt.Errorf("max_steps=%d: %w", o.MaxSteps, ErrInvalidBudget)
	}
	if math.IsNaN(o.Target) || o.Target <= 0 || o.Target > 1 {
		return fmt.Errorf("target=%v: %w", o.Target, ErrInvalidTarget)
	}
	if o.StartStep < 0 {
		return fmt.Errorf("start=%d: %w", o.StartStep, ErrInvalidStart)
	}
	return nil
}

// Result is the outcome of one run.
type Result struct {
	Steps       int     `json:"steps" yaml:"steps"`
	Coherence   float64 `json:"coherence" yaml:"coherence"`
	Corrections int     `json:"corrections" yaml:"corrections"`
	Success     bool    `json:"success" yaml:"success"`
	// NextStep is the schedule index a follow-up run should start from.
	NextStep int `json:"-" yaml:"-"`
}

// Run measures and steps s until the target is met or MaxSteps iterations pass.
// On success Steps is the 1-based iteration at which the target was observed;
// on exhaustion Steps is MaxSteps and Coherence is the final measurement.
func Run(s Stepper, opts Options) (Result, error) {
	if s == nil {
		return Result{}, fmt.Errorf("Run: %w", ErrNilStepper)
	}
	if err := opts.Validate(); err != nil {
		return Result{}, fmt.Errorf("Run: %w", err)
	}

	var res Result
	for step := 0; step < opts.MaxSteps; step++ {
		c := s.Coherence()
		if opts.Observer != nil {
			opts.Observer(step, c)
		}
		if c >= opts.Target {
			res = Result{Steps: step + 1, Coherence: c, Success: true, NextStep: opts.StartStep + step}
			return withCorrections(s, res), nil
		}
		s.Step(opts.StartStep + step)
	}

	res = Result{
		Steps:     opts.MaxSteps,
		Coherence: s.Coherence(),
		NextStep:  opts.StartStep + opts.MaxSteps,
	}
	return withCorrections(s, res), nil
}

func withCorrections(s Stepper, r Result) Result {
	if c, ok := s.(Corrector); ok {
		r.Corrections = c.Corrections()
	}
	return r
}
