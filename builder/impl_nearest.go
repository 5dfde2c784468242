// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// impl_nearest.go - implementation of NearestNeighbors(pos, from) constructor.
//
// Canonical model:
//   - For every vertex i in [from, len(pos)), rank all other vertices j in the
//     same range by Euclidean distance, ascending, ties by ascending j.
//   - Connect i to the first cfg.nearest of them (symmetric, deduplicated).
//
// Contract:
//   - len(pos) must equal g.VertexCount() (else ErrTooFewVertices).
//   - 0 ≤ from ≤ len(pos).
//   - Fewer candidates than cfg.nearest ⇒ connect to all of them.
//
// Complexity:
//   - Time: O(m² log m) for m = len(pos) - from. Space: O(m).
//
// Determinism:
//   - Pure function of positions; no RNG.

package builder

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/entangle/core"
)

// neighborDist is one ranked candidate.
type neighborDist struct {
	d float64
	j int
}

// NearestNeighbors returns a Constructor wiring each vertex in [from, len(pos))
// to its cfg.nearest geometrically closest peers in the same range.
func NearestNeighbors(pos []Vec3, from int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := len(pos)
		if n != g.VertexCount() {
			return fmt.Errorf("%s: %d positions for %d vertices: %w",
				MethodNearestNeighbors, n, g.VertexCount(), ErrTooFewVertices)
		}
		if from < 0 || from > n {
			return fmt.Errorf("%s: from=%d not in [0,%d]: %w", MethodNearestNeighbors, from, n, ErrTooFewVertices)
		}

		buf := make([]neighborDist, 0, n)
		for i := from; i < n; i++ {
			buf = buf[:0]
			for j := from; j < n; j++ {
				if j != i {
					buf = append(buf, neighborDist{d: Dist(pos[i], pos[j]), j: j})
				}
			}
			sort.Slice(buf, func(a, b int) bool {
				if buf[a].d != buf[b].d {
					return buf[a].d < buf[b].d
				}
				return buf[a].j < buf[b].j
			})

			k := cfg.nearest
			if k > len(buf) {
				k = len(buf)
			}
			for _, c := range buf[:k] {
				if _, err := g.AddEdge(i, c.j); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %w", MethodNearestNeighbors, i, c.j, err)
				}
			}
		}

		return nil
	}
}
