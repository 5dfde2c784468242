// Package entangle synchronizes large pools of phase oscillators through a
// small, rhythmically pulsed seed crystal, and measures how that compares
// with correcting every oscillator on its own.
//
// What is in the box?
//
//	params/       pool size → crystal layers K, vertex count V, pulse amplitude, rhythm
//	core/         index-based undirected simple graph with set semantics
//	builder/      seed crystal geometry and pool network assembly (Constructor idiom)
//	dynamics/     phase coupling step, rhythmic pulses, coherence
//	converge/     measure → stop or step loop shared by every strategy
//	reactive/     threshold-triggered per-oscillator correction
//	fault/        phase corruption and trial aggregation
//	experiment/   single runs, fault-tolerance trials, compare and scale sweeps
//	config/       YAML configuration with environment overrides
//	logging/      leveled slog logger and JSONL trial log
//	store/        SQLite result store
//	report/       text tables, JSON/YAML output, PNG charts
//
// The command-line front end lives in cmd/entangle.
//
// Quick example:
//
//	p, _ := params.EntanglementParams(1000)
//	seed, _ := builder.Crystal(p.K)
//	net, _ := builder.AssemblePool(seed, 1000, builder.WithSeed(42))
//	e, _ := dynamics.NewEngine(net, p.Amplitude, p.Rhythm, rng.New(42))
//	res, _ := converge.Run(e, converge.DefaultOptions())
//	fmt.Println(res.Steps, res.Success)
//
// Randomness is always explicit: every builder and engine takes its own
// *rand.Rand, so trials are reproducible and independent.
package entangle
