// File: methods_vertices.go
// Role: Vertex lifecycle and per-vertex queries.

package core

// Grow appends k isolated vertices and returns the index of the first one.
// For k <= 0 it appends nothing and returns VertexCount().
// Complexity: O(k) amortized.
func (g *Graph) Grow(k int) int {
	first := len(g.adj)
	for i := 0; i < k; i++ {
		g.adj = append(g.adj, make(map[int]struct{}))
	}

	return first
}

// HasVertex reports whether v is a valid index.
// Complexity: O(1).
func (g *Graph) HasVertex(v int) bool {
	return v >= 0 && v < len(g.adj)
}

// VertexCount returns the number of vertices.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	return len(g.adj)
}

// Degree returns the number of distinct neighbors of v.
// A self-loop, when allowed, counts once.
// Complexity: O(1).
func (g *Graph) Degree(v int) (int, error) {
	if !g.HasVertex(v) {
		return 0, ErrVertexNotFound
	}

	return len(g.adj[v]), nil
}
