// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context using `%w`: "<Method>: <detail>: %w".
//   • Algorithms MUST NOT panic at runtime; validation panics are confined to
//     option constructor functions (WithX...).

package builder

import "errors"

// ErrInvalidLayers indicates a crystal layer count K below MinCrystalLayers.
var ErrInvalidLayers = errors.New("builder: crystal layer count must be >= 2")

// ErrInvalidPool indicates a non-positive pool size.
var ErrInvalidPool = errors.New("builder: pool size must be positive")

// ErrTooFewVertices indicates that a numeric parameter (vertex count, range,
// neighbor count) is smaller than the allowed minimum for the constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that a stochastic constructor requires a non-nil
// *rand.Rand in the resolved builderConfig (WithSeed/WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrNilSeed indicates AssemblePool was called without a crystal seed.
var ErrNilSeed = errors.New("builder: seed is nil")

// ErrConstructFailed indicates a nil constructor or graph was supplied.
var ErrConstructFailed = errors.New("builder: construction failed")
