// File: methods_clone.go
// Role: Deep copies of graph instances.

package core

// Clone returns a deep copy: flags, vertices and adjacency.
// Mutating the clone never affects the source graph.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		allowLoops: g.allowLoops,
		adj:        make([]map[int]struct{}, len(g.adj)),
		edgeCount:  g.edgeCount,
	}
	for v, set := range g.adj {
		cp := make(map[int]struct{}, len(set))
		for u := range set {
			cp[u] = struct{}{}
		}
		clone.adj[v] = cp
	}

	return clone
}
