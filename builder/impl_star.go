// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// impl_star.go - implementation of Star(center) constructor.
//
// Contract:
//   - center must be a vertex of g (else ErrTooFewVertices).
//   - Connects center to every other vertex in ascending index order.
//   - Existing spokes are kept (core set semantics); never errors on duplicates.
//
// Complexity:
//   - Time: O(V). Space: O(1) extra.

package builder

import (
	"fmt"

	"github.com/katalvlaran/entangle/core"
)

// Star returns a Constructor that connects center to all other vertices of g.
func Star(center int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		n := g.VertexCount()
		if center < 0 || center >= n {
			return fmt.Errorf("%s: center=%d not in [0,%d): %w", MethodStar, center, n, ErrTooFewVertices)
		}

		for v := 0; v < n; v++ {
			if v == center {
				continue
			}
			if _, err := g.AddEdge(center, v); err != nil {
				return fmt.Errorf("%s: AddEdge(%d,%d): %w", MethodStar, center, v, err)
			}
		}

		return nil
	}
}
