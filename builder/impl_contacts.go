// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// impl_contacts.go - implementation of Contacts(seedSize, perNode) constructor.
//
// Canonical model:
//   - Vertices [0, seedSize) are the seed; [seedSize, V) are the pool.
//   - Each pool vertex draws min(perNode, seedSize) distinct seed vertices
//     uniformly without replacement and connects to each (symmetric).
//
// Contract:
//   - 1 ≤ seedSize ≤ g.VertexCount(), perNode ≥ 1 (else ErrTooFewVertices).
//   - cfg.rng must be non-nil (else ErrNeedRandSource).
//   - perNode > seedSize is clamped silently (degenerate, not an error).
//
// Complexity:
//   - Time: O(P · m) expected, m = min(perNode, seedSize). Space: O(m).
//
// Determinism:
//   - Pool vertices are processed in ascending index order; draws are
//     reproducible for a fixed seed.

package builder

import (
	"fmt"

	"github.com/katalvlaran/entangle/core"
	"github.com/katalvlaran/entangle/rng"
)

// Contacts returns a Constructor attaching every pool vertex to perNode
// randomly chosen seed vertices.
func Contacts(seedSize, perNode int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := g.VertexCount()
		if seedSize < 1 || seedSize > n {
			return fmt.Errorf("%s: seedSize=%d not in [1,%d]: %w", MethodContacts, seedSize, n, ErrTooFewVertices)
		}
		if perNode < MinContacts {
			return fmt.Errorf("%s: perNode=%d < min=%d: %w", MethodContacts, perNode, MinContacts, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodContacts, ErrNeedRandSource)
		}

		m := perNode
		if m > seedSize {
			m = seedSize
		}
		for i := seedSize; i < n; i++ {
			for _, c := range rng.SampleWithoutReplacement(cfg.rng, seedSize, m) {
				if _, err := g.AddEdge(i, c); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %w", MethodContacts, i, c, err)
				}
			}
		}

		return nil
	}
}
