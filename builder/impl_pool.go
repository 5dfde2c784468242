// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// impl_pool.go: combined seed + pool oscillator network.
//
// Contract:
//   • seed != nil (ErrNilSeed), pool ≥ 1 (ErrInvalidPool), cfg.rng != nil (ErrNeedRandSource).
//   • Indices [0, V) copy the seed adjacency verbatim; [V, V+pool) are pool oscillators.
//   • Each pool oscillator gets min(max(1, round(f·pool)), V) seed contacts.
//   • meshFactor·pool random pool-pool edge draws; duplicates collapse.
//   • The seed itself is never mutated; every call works on a fresh clone.
//
// Complexity:
//   • Time: O(V + E_seed + pool · contacts + meshFactor · pool).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/entangle/core"
)

// Network is one trial's oscillator population: the combined adjacency and
// the frozen mask separating seed from pool oscillators.
type Network struct {
	// Graph holds the combined adjacency over SeedSize+PoolSize vertices.
	Graph *core.Graph
	// Frozen[i] is true for seed oscillators (i < SeedSize).
	Frozen []bool
	// Layers are the seed's named layers (indices are shared with Graph).
	Layers Layers
	// K is the seed's crystal layer count.
	K int

	SeedSize int
	PoolSize int
	Contacts int // seed contacts actually drawn per pool oscillator
}

// Size returns the total oscillator count.
func (n *Network) Size() int { return n.SeedSize + n.PoolSize }

// PoolRange returns the half-open index range [first, end) of pool oscillators.
func (n *Network) PoolRange() (first, end int) { return n.SeedSize, n.SeedSize + n.PoolSize }

// ContactCount returns max(1, round(fraction × pool)).
func ContactCount(pool int, fraction float64) int {
	c := int(math.Round(fraction * float64(pool)))
	if c < MinContacts {
		c = MinContacts
	}
	return c
}

// AssemblePool attaches pool oscillators to a clone of seed.
// Supply WithSeed or WithRand; a fresh RNG per trial keeps topologies independent.
func AssemblePool(seed *Seed, pool int, opts ...BuilderOption) (*Network, error) {
	if seed == nil {
		return nil, fmt.Errorf("%s: %w", MethodAssemblePool, ErrNilSeed)
	}
	if pool < 1 {
		return nil, fmt.Errorf("%s: pool=%d: %w", MethodAssemblePool, pool, ErrInvalidPool)
	}
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", MethodAssemblePool, ErrNeedRandSource)
	}

	seedSize := seed.Size()
	g := seed.Clone()
	first := g.Grow(pool)

	perNode := ContactCount(pool, cfg.contactFraction)
	if err := apply(g, cfg, []Constructor{
		Contacts(seedSize, perNode),
		FluidMesh(first, cfg.meshFactor*pool),
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodAssemblePool, err)
	}

	frozen := make([]bool, seedSize+pool)
	for i := 0; i < seedSize; i++ {
		frozen[i] = true
	}
	drawn := perNode
	if drawn > seedSize {
		drawn = seedSize
	}

	return &Network{
		Graph:    g,
		Frozen:   frozen,
		Layers:   seed.Layers(),
		K:        seed.K(),
		SeedSize: seedSize,
		PoolSize: pool,
		Contacts: drawn,
	}, nil
}
