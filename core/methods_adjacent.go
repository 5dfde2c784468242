// File: methods_adjacent.go
// Role: Neighbor queries and flat adjacency export.
// Determinism:
//   - All neighbor lists are returned in ascending index order.

package core

import "sort"

// Neighbors returns the sorted neighbor indices of v.
// The returned slice is a fresh copy; callers may mutate it.
// Complexity: O(d·log d).
func (g *Graph) Neighbors(v int) ([]int, error) {
	if !g.HasVertex(v) {
		return nil, ErrVertexNotFound
	}

	return sortedKeys(g.adj[v]), nil
}

// NeighborTable materializes the whole adjacency as [][]int, row v holding
// the sorted neighbors of v. Step loops read this instead of the map sets.
// Complexity: O(V + E·log d).
func (g *Graph) NeighborTable() [][]int {
	out := make([][]int, len(g.adj))
	for v, set := range g.adj {
		out[v] = sortedKeys(set)
	}

	return out
}

// sortedKeys returns the keys of set in ascending order.
func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
