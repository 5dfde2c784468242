// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// impl_mesh.go - implementation of FluidMesh(first, draws) constructor.
//
// Canonical model:
//   - Pool vertices are [first, V).
//   - Perform `draws` trials; each picks two distinct pool vertices uniformly
//     and adds the symmetric edge. Existing edges make the trial a no-op.
//
// Contract:
//   - 0 ≤ first ≤ g.VertexCount(), draws ≥ 0 (else ErrTooFewVertices).
//   - cfg.rng must be non-nil when draws > 0 (else ErrNeedRandSource).
//   - Fewer than two pool vertices ⇒ nothing to wire, returns nil.
//
// Complexity:
//   - Time: O(draws). Space: O(1) extra.

package builder

import (
	"fmt"

	"github.com/katalvlaran/entangle/core"
)

// FluidMesh returns a Constructor adding up to draws random edges among the
// vertices [first, V).
func FluidMesh(first, draws int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := g.VertexCount()
		if first < 0 || first > n {
			return fmt.Errorf("%s: first=%d not in [0,%d]: %w", MethodFluidMesh, first, n, ErrTooFewVertices)
		}
		if draws < 0 {
			return fmt.Errorf("%s: draws=%d < 0: %w", MethodFluidMesh, draws, ErrTooFewVertices)
		}
		pool := n - first
		if pool < 2 || draws == 0 {
			return nil
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodFluidMesh, ErrNeedRandSource)
		}

		for t := 0; t < draws; t++ {
			// Uniform ordered pair of distinct pool members.
			a := cfg.rng.Intn(pool)
			b := cfg.rng.Intn(pool - 1)
			if b >= a {
				b++
			}
			if _, err := g.AddEdge(first+a, first+b); err != nil {
				return fmt.Errorf("%s: AddEdge(%d,%d): %w", MethodFluidMesh, first+a, first+b, err)
			}
		}

		return nil
	}
}
