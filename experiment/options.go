package experiment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/katalvlaran/entangle/config"
	"github.com/katalvlaran/entangle/converge"
	"github.com/katalvlaran/entangle/fault"
	"github.com/katalvlaran/entangle/logging"
	"github.com/katalvlaran/entangle/reactive"
)

// ErrInvalidTrials is returned when fewer than one trial is requested.
var ErrInvalidTrials = errors.New("experiment: at least one trial is required")

// ErrInvalidMaxPool is returned when a sweep bound is below every candidate size.
var ErrInvalidMaxPool = errors.New("experiment: max pool yields no pool sizes")

// Options configures every experiment entry point.
type Options struct {
	// MaxSteps and Target bound each convergence loop.
	MaxSteps int
	Target   float64

	Correction reactive.Config

	// Corruption is the share of pool oscillators reset per fault trial.
	Corruption float64
	// Trials is the fault-tolerance trial count.
	Trials int

	// Seed 0 draws a fresh stream per trial.
	Seed int64

	Logger   *slog.Logger
	TrialLog *logging.TrialLogger
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return Options{
		MaxSteps:   converge.DefaultMaxSteps,
		Target:     converge.DefaultTarget,
		Correction: reactive.DefaultConfig(),
		Corruption: fault.DefaultFraction,
		Trials:     5,
	}
}

// FromConfig maps a loaded configuration onto Options.
func FromConfig(c *config.Config) Options {
	return Options{
		MaxSteps: c.Simulation.MaxSteps,
		Target:   c.Simulation.Target,
		Correction: reactive.Config{
			Threshold: c.Correction.Threshold,
			Strength:  c.Correction.Strength,
		},
		Corruption: c.Fault.Corruption,
		Trials:     c.Fault.Trials,
		Seed:       c.Simulation.Seed,
	}
}

func (o Options) logger() *slog.Logger { return logging.OrDiscard(o.Logger) }

// loop builds converge options with a trace observer when tracing is enabled.
func (o Options) loop(start int, attrs ...any) converge.Options {
	co := converge.Options{MaxSteps: o.MaxSteps, Target: o.Target, StartStep: start}
	l := o.logger()
	if l.Enabled(context.Background(), logging.LevelTrace) {
		l = l.With(attrs...)
		co.Observer = func(step int, c float64) {
			l.Log(context.Background(), logging.LevelTrace, "coherence", "step", step, "value", c)
		}
	}
	return co
}
