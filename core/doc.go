// Package core provides the index-based, undirected simple Graph used to wire
// oscillator networks.
//
// Vertices are dense integer indices 0..n-1 that stay stable for the lifetime
// of a Graph (arena style). Adjacency is a per-vertex set, so inserting an
// existing edge is a no-op and degree lookups are O(1).
//
// Why a dedicated graph type?
//
//   - Explicit set semantics: duplicate edges collapse, self-loops are rejected.
//   - Deterministic iteration: Neighbors() and Edges() return ascending order.
//   - Cheap cloning: a fixed seed graph is built once and cloned per trial.
//   - Flat export: NeighborTable() materializes [][]int for tight step loops.
//
// Core Methods:
//
//	// Vertex lifecycle
//	NewGraph(n int, opts ...GraphOption) *Graph // O(n)
//	Grow(k int) (first int)                     // O(k), appends k isolated vertices
//	HasVertex(v int) bool                       // O(1)
//
//	// Edge lifecycle
//	AddEdge(u, v int) (added bool, err error)   // O(1), symmetric, deduplicated
//	HasEdge(u, v int) bool                      // O(1)
//
//	// Query
//	Neighbors(v int) ([]int, error)             // O(d·log d), sorted
//	Degree(v int) (int, error)                  // O(1)
//	NeighborTable() [][]int                     // O(V + E·log d)
//	Edges() []Edge                              // O(E·log E), U < V
//
//	// Counts
//	VertexCount() int                           // O(1)
//	EdgeCount() int                             // O(1)
//
//	// Cloning
//	Clone() *Graph                              // O(V + E)
//
// Concurrency:
//
//	A Graph is not safe for concurrent mutation. Concurrent reads of a Graph
//	that is no longer mutated are safe; the seed graph relies on this.
//
// Errors:
//
//	ErrVertexNotFound – index outside [0, VertexCount())
//	ErrLoopNotAllowed – AddEdge(v, v) without WithLoops
package core
