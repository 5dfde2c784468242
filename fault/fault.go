// Package fault corrupts oscillator phases and aggregates recovery trials.
package fault

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/entangle/converge"
	"github.com/katalvlaran/entangle/rng"
)

// DefaultFraction is the share of pool oscillators corrupted per trial.
const DefaultFraction = 0.5

var (
	// ErrInvalidFraction indicates a corruption fraction outside [0,1] or NaN.
	ErrInvalidFraction = errors.New("fault: fraction must be in [0,1]")
	// ErrInvalidTrials is returned by Summarize for an empty result set.
	ErrInvalidTrials = errors.New("fault: at least one trial is required")
	// ErrInvalidRange indicates an oscillator range that does not fit the target.
	ErrInvalidRange = errors.New("fault: oscillator range is invalid")
	// ErrNilRand is returned when no randomness source is supplied.
	ErrNilRand = errors.New("fault: rng is nil")
	// ErrNilTarget is returned when Inject receives no phase model.
	ErrNilTarget = errors.New("fault: target is nil")
)

// PhaseSetter is a phase model whose oscillators can be overwritten.
type PhaseSetter interface {
	Size() int
	SetPhase(i int, phase float64) error
}

// CorruptCount returns round(fraction × count).
func CorruptCount(count int, fraction float64) int {
	return int(math.Round(fraction * float64(count)))
}

// Inject resets CorruptCount(count, fraction) distinct oscillators from
// [first, first+count) to fresh uniform phases and returns their indices in
// ascending order.
func Inject(target PhaseSetter, first, count int, fraction float64, r *rand.Rand) ([]int, error) {
	if target == nil {
		return nil, fmt.Errorf("Inject: %w", ErrNilTarget)
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("Inject: fraction=%v: %w", fraction, ErrInvalidFraction)
	}
	if first < 0 || count < 0 || first+count > target.Size() {
		return nil, fmt.Errorf("Inject: [%d,%d) of %d: %w", first, first+count, target.Size(), ErrInvalidRange)
	}
	if r == nil {
		return nil, fmt.Errorf("Inject: %w", ErrNilRand)
	}

	picked := rng.SampleWithoutReplacement(r, count, CorruptCount(count, fraction))
	sort.Ints(picked)
	for k := range picked {
		picked[k] += first
		if err := target.SetPhase(picked[k], rng.UniformPhase(r)); err != nil {
			return nil, fmt.Errorf("Inject: %w", err)
		}
	}
	return picked, nil
}

// Summary aggregates repeated recovery trials for one pool size.
type Summary struct {
	Pool      int     `json:"pool" yaml:"pool"`
	K         int     `json:"K" yaml:"K"`
	V         int     `json:"V" yaml:"V"`
	Amplitude float64 `json:"amplitude" yaml:"amplitude"`

	AvgSteps     float64 `json:"avg_steps" yaml:"avg_steps"`
	MinSteps     int     `json:"min_steps" yaml:"min_steps"`
	MaxSteps     int     `json:"max_steps" yaml:"max_steps"`
	AvgCoherence float64 `json:"avg_coherence" yaml:"avg_coherence"`
	SuccessRate  float64 `json:"success_rate" yaml:"success_rate"`
	Trials       int     `json:"trials" yaml:"trials"`
}

// Passed reports whether every trial reached the target.
func (s Summary) Passed() bool { return s.Trials > 0 && s.SuccessRate == 1 }

// Summarize fills the trial statistics of a Summary; the caller sets the
// pool parameters.
func Summarize(results []converge.Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, fmt.Errorf("Summarize: %w", ErrInvalidTrials)
	}
	s := Summary{
		MinSteps: results[0].Steps,
		MaxSteps: results[0].Steps,
		Trials:   len(results),
	}
	var steps, coh, ok float64
	for _, r := range results {
		steps += float64(r.Steps)
		coh += r.Coherence
		if r.Success {
			ok++
		}
		if r.Steps < s.MinSteps {
			s.MinSteps = r.Steps
		}
		if r.Steps > s.MaxSteps {
			s.MaxSteps = r.Steps
		}
	}
	n := float64(len(results))
	s.AvgSteps = steps / n
	s.AvgCoherence = coh / n
	s.SuccessRate = ok / n
	return s, nil
}
