package experiment

import (
	"math/rand"

	"github.com/katalvlaran/entangle/rng"
)

// Stream tags keep the strategies' random draws disjoint for equal (pool, trial).
const (
	streamGeometry uint64 = iota + 1
	streamCorrection
	streamFault
)

// trialRand returns the random source of one trial.
func trialRand(seed int64, pool, trial int, strategy uint64) *rand.Rand {
	stream := uint64(pool)<<24 ^ uint64(trial)<<4 ^ strategy
	return rng.Derive(seed, stream)
}
