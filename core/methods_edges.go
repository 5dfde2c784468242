// File: methods_edges.go
// Role: Edge insertion, lookup and enumeration.
// Determinism:
//   - Edges() is sorted by (U,V); insertion order never leaks into results.

package core

import "sort"

// AddEdge inserts the undirected edge {u,v}.
//
// Behavior:
//   - Both endpoints must exist (ErrVertexNotFound otherwise).
//   - u == v is rejected with ErrLoopNotAllowed unless WithLoops was given.
//   - Inserting an edge that already exists is a no-op: added == false, err == nil.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int) (bool, error) {
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return false, ErrVertexNotFound
	}
	if u == v && !g.allowLoops {
		return false, ErrLoopNotAllowed
	}
	if _, ok := g.adj[u][v]; ok {
		return false, nil
	}

	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edgeCount++

	return true, nil
}

// HasEdge reports whether {u,v} exists. Out-of-range indices yield false.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v int) bool {
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return false
	}
	_, ok := g.adj[u][v]

	return ok
}

// EdgeCount returns the number of undirected edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Edges returns every edge once with U <= V, sorted by (U,V).
// Complexity: O(E·log E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for u, set := range g.adj {
		for v := range set {
			if u <= v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})

	return out
}
