// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Algorithms themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/entangle/rng"
)

// BuilderOption customizes a builder by mutating a builderConfig instance
// before construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
// The RNG is consumed, so never share one *rand.Rand between goroutines.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rng.New(seed)
	}
}

// WithContactFraction sets f in contacts = max(1, round(f × pool)).
// Panics unless 0 < f <= 1.
func WithContactFraction(f float64) BuilderOption {
	if f <= 0 || f > 1 {
		panic("builder: WithContactFraction(f∉(0,1])")
	}
	return func(c *builderConfig) {
		c.contactFraction = f
	}
}

// WithMeshFactor sets the number of pool-pool edge draws per pool oscillator.
// Zero disables the mesh. Panics on negative m.
func WithMeshFactor(m int) BuilderOption {
	if m < 0 {
		panic("builder: WithMeshFactor(m<0)")
	}
	return func(c *builderConfig) {
		c.meshFactor = m
	}
}

// WithNearestNeighbors sets k for the crystal's k-nearest-neighbor wiring.
// Panics on k < 1.
func WithNearestNeighbors(k int) BuilderOption {
	if k < 1 {
		panic("builder: WithNearestNeighbors(k<1)")
	}
	return func(c *builderConfig) {
		c.nearest = k
	}
}
