// Package reactive implements the correction-only strategy: a pool of
// uncoupled oscillators, each nudged back toward a fixed reference phase
// whenever its angular error exceeds a threshold.
//
// Engine satisfies converge.Stepper and converge.Corrector.
package reactive

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/entangle/dynamics"
	"github.com/katalvlaran/entangle/rng"
)

const (
	// DefaultThreshold is the error magnitude above which a correction fires.
	DefaultThreshold = 0.5
	// DefaultStrength is the size of one corrective nudge.
	DefaultStrength = 0.3
	// Reference is the phase every oscillator is corrected toward.
	Reference = 0.0
)

var (
	// ErrInvalidPool indicates a pool size <= 0.
	ErrInvalidPool = errors.New("reactive: pool size must be positive")
	// ErrInvalidThreshold indicates a threshold outside [0,π).
	ErrInvalidThreshold = errors.New("reactive: threshold must be in [0,π)")
	// ErrInvalidStrength indicates a non-positive correction step.
	ErrInvalidStrength = errors.New("reactive: strength must be positive")
	// ErrNilRand is returned when no randomness source is supplied.
	ErrNilRand = errors.New("reactive: rng is nil")
	// ErrIndexOutOfRange is returned by SetPhase for a bad oscillator index.
	ErrIndexOutOfRange = errors.New("reactive: oscillator index out of range")
)

// Config holds the correction parameters.
type Config struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Strength  float64 `json:"strength" yaml:"strength"`
}

// DefaultConfig returns DefaultThreshold and DefaultStrength.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, Strength: DefaultStrength}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold >= math.Pi {
		return fmt.Errorf("threshold=%v: %w", c.Threshold, ErrInvalidThreshold)
	}
	if math.IsNaN(c.Strength) || c.Strength <= 0 {
		return fmt.Errorf("strength=%v: %w", c.Strength, ErrInvalidStrength)
	}
	return nil
}

// Engine is one correction-only trial.
type Engine struct {
	cfg    Config
	phases []float64
	next   []float64

	corrections int
	last        int // corrections applied by the most recent Step
}

// New draws pool uniform phases from r.
func New(pool int, cfg Config, r *rand.Rand) (*Engine, error) {
	if pool < 1 {
		return nil, fmt.Errorf("reactive.New: pool=%d: %w", pool, ErrInvalidPool)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("reactive.New: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("reactive.New: %w", ErrNilRand)
	}

	e := &Engine{
		cfg:    cfg,
		phases: make([]float64, pool),
		next:   make([]float64, pool),
	}
	for i := range e.phases {
		e.phases[i] = rng.UniformPhase(r)
	}
	return e, nil
}

// Error returns the signed angular distance of phase from Reference in [-π,π).
func Error(phase float64) float64 {
	return dynamics.WrapSigned(phase - Reference)
}

// Step checks every oscillator against Reference and nudges those outside
// the threshold. The schedule index is ignored.
func (e *Engine) Step(int) {
	e.last = 0
	for i, p := range e.phases {
		err := Error(p)
		if math.Abs(err) <= e.cfg.Threshold {
			e.next[i] = p
			continue
		}
		e.next[i] = dynamics.Wrap(p - e.cfg.Strength*sign(err))
		e.last++
	}
	e.corrections += e.last
	e.phases, e.next = e.next, e.phases
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Coherence returns the order parameter of the current phases.
func (e *Engine) Coherence() float64 { return dynamics.Coherence(e.phases) }

// Corrections returns the cumulative number of corrective nudges.
func (e *Engine) Corrections() int { return e.corrections }

// LastCorrections returns the nudges applied by the most recent Step.
func (e *Engine) LastCorrections() int { return e.last }

// Size returns the pool size.
func (e *Engine) Size() int { return len(e.phases) }

// Phases returns a copy of the current phases.
func (e *Engine) Phases() []float64 { return append([]float64(nil), e.phases...) }

// SetPhase overwrites oscillator i's phase, wrapped into [0, 2π).
func (e *Engine) SetPhase(i int, phase float64) error {
	if i < 0 || i >= len(e.phases) {
		return fmt.Errorf("SetPhase: i=%d n=%d: %w", i, len(e.phases), ErrIndexOutOfRange)
	}
	e.phases[i] = dynamics.Wrap(phase)
	return nil
}
