package experiment

import (
	"fmt"

	"github.com/katalvlaran/entangle/converge"
	"github.com/katalvlaran/entangle/fault"
)

// FaultTolerance runs opts.Trials recovery trials for pool.
//
// Each trial builds a fresh network, warms it up with the convergence loop,
// resets opts.Corruption of the pool oscillators to fresh random phases and
// runs the loop again with the rhythm continuing from where the warm-up
// stopped. The summary aggregates the recovery runs.
func FaultTolerance(pool int, opts Options) (fault.Summary, error) {
	if opts.Trials < 1 {
		return fault.Summary{}, fmt.Errorf("FaultTolerance: trials=%d: %w", opts.Trials, ErrInvalidTrials)
	}
	g, err := prepare(pool)
	if err != nil {
		return fault.Summary{}, fmt.Errorf("FaultTolerance: %w", err)
	}

	results := make([]converge.Result, 0, opts.Trials)
	for trial := 0; trial < opts.Trials; trial++ {
		res, err := g.recoveryTrial(trial, opts)
		if err != nil {
			return fault.Summary{}, fmt.Errorf("FaultTolerance: pool=%d trial=%d: %w", pool, trial, err)
		}
		results = append(results, res)
	}

	s, err := fault.Summarize(results)
	if err != nil {
		return fault.Summary{}, fmt.Errorf("FaultTolerance: %w", err)
	}
	s.Pool, s.K, s.V, s.Amplitude = pool, g.p.K, g.p.V, g.p.Amplitude

	opts.logger().Info("fault tolerance",
		"pool", pool,
		"K", s.K,
		"V", s.V,
		"avg_steps", s.AvgSteps,
		"min_steps", s.MinSteps,
		"max_steps", s.MaxSteps,
		"avg_coherence", s.AvgCoherence,
		"success_rate", s.SuccessRate,
	)
	return s, nil
}

func (g *geometry) recoveryTrial(trial int, opts Options) (converge.Result, error) {
	r := trialRand(opts.Seed, g.pool, trial, streamFault)
	e, net, err := g.engine(r)
	if err != nil {
		return converge.Result{}, err
	}

	warm, err := converge.Run(e, opts.loop(0, "phase", "warmup", "pool", g.pool, "trial", trial))
	if err != nil {
		return converge.Result{}, err
	}

	first, _ := net.PoolRange()
	hit, err := fault.Inject(e, first, net.PoolSize, opts.Corruption, r)
	if err != nil {
		return converge.Result{}, err
	}
	opts.logger().Debug("corrupted",
		"pool", g.pool,
		"trial", trial,
		"warmup_steps", warm.Steps,
		"warmup_success", warm.Success,
		"oscillators", len(hit),
		"coherence", e.Coherence(),
	)

	res, err := converge.Run(e, opts.loop(warm.NextStep, "phase", "recovery", "pool", g.pool, "trial", trial))
	if err != nil {
		return converge.Result{}, err
	}
	opts.record("fault", trial, g.result(res))
	return res, nil
}
