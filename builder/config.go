// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults:
//   • rng             = nil   (stochastic constructors fail with ErrNeedRandSource)
//   • contactFraction = 0.1
//   • meshFactor      = 2
//   • nearest         = 6

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand

	// Pool wiring.
	contactFraction float64 // contacts per pool oscillator = max(1, round(f × pool))
	meshFactor      int     // pool-pool edge draws = meshFactor × pool

	// Crystal wiring.
	nearest int // k in the k-nearest-neighbor wiring
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:             nil,
		contactFraction: DefaultContactFraction,
		meshFactor:      DefaultMeshFactor,
		nearest:         DefaultNearestNeighbors,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
