// Package core defines the index-based Graph and its sentinel errors.
//
// This file declares Edge, Graph, GraphOption, sentinel errors, and the
// NewGraph constructor.
package core

import "errors"

// Sentinel errors for core graph operations.
var (
	// ErrVertexNotFound indicates an operation referenced an index outside the graph.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")
)

// Edge is an undirected connection between two vertex indices.
// Edges returned by Graph always satisfy U < V (or U == V for loops).
type Edge struct {
	U int
	V int
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// WithCapacity pre-sizes internal storage for up to n vertices.
// Panics on negative n (option constructors validate eagerly).
func WithCapacity(n int) GraphOption {
	if n < 0 {
		panic("core: WithCapacity(n<0)")
	}
	return func(g *Graph) {
		if n > cap(g.adj) {
			adj := make([]map[int]struct{}, len(g.adj), n)
			copy(adj, g.adj)
			g.adj = adj
		}
	}
}

// Graph is an undirected simple graph over dense vertex indices.
//
// adj[v] holds the neighbor set of v; every edge {u,v} is stored in both
// adj[u] and adj[v]. edgeCount counts each undirected edge once.
type Graph struct {
	allowLoops bool

	adj       []map[int]struct{}
	edgeCount int
}

// NewGraph creates a Graph with n isolated vertices 0..n-1.
// A negative n is treated as 0.
// Complexity: O(n).
func NewGraph(n int, opts ...GraphOption) *Graph {
	if n < 0 {
		n = 0
	}
	g := &Graph{adj: make([]map[int]struct{}, 0, n)}
	for _, opt := range opts {
		opt(g)
	}
	g.Grow(n)

	return g
}
