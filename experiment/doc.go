// Package experiment runs the two synchronization strategies end to end.
//
// It is the only layer above the simulation core that logs: per-trial
// outcomes at Debug, per-pool summaries at Info and per-step coherence at
// logging.LevelTrace. Every trial derives its own random stream from
// Options.Seed, so a non-zero seed reproduces a whole sweep while trials
// stay independent of each other.
package experiment
