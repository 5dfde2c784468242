package experiment

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/entangle/builder"
	"github.com/katalvlaran/entangle/converge"
	"github.com/katalvlaran/entangle/dynamics"
	"github.com/katalvlaran/entangle/params"
	"github.com/katalvlaran/entangle/reactive"
)

// RunResult is one strategy run together with the pool's parameters.
type RunResult struct {
	Pool      int     `json:"pool" yaml:"pool"`
	K         int     `json:"K" yaml:"K"`
	V         int     `json:"V" yaml:"V"`
	Amplitude float64 `json:"amplitude" yaml:"amplitude"`

	converge.Result `yaml:",inline"`
}

// geometry is the per-pool state shared read-only across trials.
type geometry struct {
	pool int
	p    params.Params
	seed *builder.Seed
}

func prepare(pool int) (*geometry, error) {
	p, err := params.EntanglementParams(pool)
	if err != nil {
		return nil, err
	}
	seed, err := builder.Crystal(p.K)
	if err != nil {
		return nil, err
	}
	return &geometry{pool: pool, p: p, seed: seed}, nil
}

func (g *geometry) result(r converge.Result) RunResult {
	return RunResult{Pool: g.pool, K: g.p.K, V: g.p.V, Amplitude: g.p.Amplitude, Result: r}
}

// engine wires a fresh network and phase state for one trial.
func (g *geometry) engine(r *rand.Rand) (*dynamics.Engine, *builder.Network, error) {
	net, err := builder.AssemblePool(g.seed, g.pool, builder.WithRand(r))
	if err != nil {
		return nil, nil, err
	}
	e, err := dynamics.NewEngine(net, g.p.Amplitude, g.p.Rhythm, r)
	if err != nil {
		return nil, nil, err
	}
	return e, net, nil
}

func (g *geometry) runTrial(trial int, opts Options) (RunResult, error) {
	e, _, err := g.engine(trialRand(opts.Seed, g.pool, trial, streamGeometry))
	if err != nil {
		return RunResult{}, err
	}
	res, err := converge.Run(e, opts.loop(0, "strategy", "geometry", "pool", g.pool, "trial", trial))
	if err != nil {
		return RunResult{}, err
	}
	out := g.result(res)
	opts.record("geometry", trial, out)
	return out, nil
}

func (g *geometry) runCorrection(trial int, opts Options) (RunResult, error) {
	r := trialRand(opts.Seed, g.pool, trial, streamCorrection)
	e, err := reactive.New(g.pool, opts.Correction, r)
	if err != nil {
		return RunResult{}, err
	}
	res, err := converge.Run(e, opts.loop(0, "strategy", "correction", "pool", g.pool, "trial", trial))
	if err != nil {
		return RunResult{}, err
	}
	out := g.result(res)
	opts.record("correction", trial, out)
	return out, nil
}

// RunGeometry runs the seed-entrainment strategy once. Corrections is always 0.
func RunGeometry(pool int, opts Options) (RunResult, error) {
	g, err := prepare(pool)
	if err != nil {
		return RunResult{}, fmt.Errorf("RunGeometry: %w", err)
	}
	res, err := g.runTrial(0, opts)
	if err != nil {
		return RunResult{}, fmt.Errorf("RunGeometry: pool=%d: %w", pool, err)
	}
	return res, nil
}

// RunCorrection runs the correction-only strategy once on pool oscillators.
// K, V and Amplitude are reported for comparison only.
func RunCorrection(pool int, opts Options) (RunResult, error) {
	p, err := params.EntanglementParams(pool)
	if err != nil {
		return RunResult{}, fmt.Errorf("RunCorrection: %w", err)
	}
	g := &geometry{pool: pool, p: p}
	res, err := g.runCorrection(0, opts)
	if err != nil {
		return RunResult{}, fmt.Errorf("RunCorrection: pool=%d: %w", pool, err)
	}
	return res, nil
}

// record logs one trial at Debug and appends it to the trial log.
func (o Options) record(strategy string, trial int, r RunResult) {
	o.logger().Debug("trial",
		"strategy", strategy,
		"pool", r.Pool,
		"trial", trial,
		"steps", r.Steps,
		"coherence", r.Coherence,
		"corrections", r.Corrections,
		"success", r.Success,
	)
	o.TrialLog.Log(map[string]any{
		"strategy":    strategy,
		"pool":        r.Pool,
		"trial":       trial,
		"K":           r.K,
		"V":           r.V,
		"steps":       r.Steps,
		"coherence":   r.Coherence,
		"corrections": r.Corrections,
		"success":     r.Success,
	})
}
