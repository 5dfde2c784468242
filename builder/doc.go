// Package builder constructs oscillator networks: the deterministic crystal
// seed and the randomly wired pool attached to it.
//
// The package offers the following key components:
//
//   - Composition primitives:
//     – Constructor:   a deterministic mutation of a *core.Graph.
//     – BuildGraph:    creates a graph and applies constructors in order.
//     – Apply:         applies constructors to an existing graph.
//     – BuilderOption: functional options resolved into builderConfig.
//   - Topology constructors:
//     – Star:             hub connected to every other vertex.
//     – NearestNeighbors: k-nearest geometric wiring over 3D positions.
//     – Contacts:         each pool vertex draws seed contacts without replacement.
//     – FluidMesh:        random symmetric edges among pool vertices.
//   - Crystal seed:
//     – Crystal(K):      positions, named layers and adjacency of the K-layer seed.
//   - Pool assembly:
//     – AssemblePool:    clone of the seed + pool vertices + frozen mask.
//
// Crystal construction, in order:
//
//  1. vertex 0 at the origin, layer "center".
//  2. K ≥ 3: equilateral triangle of radius 0.3 in the z=0 plane, layer "triad".
//  3. 12 icosahedron vertices at radius 0.6, layer "icosa".
//  4. K-3 Fibonacci-sphere shells, each 3× the previous size, radius 0.85
//     growing by 0.15 per shell, layers "shell_4", "shell_5", ….
//  5. star from vertex 0 to all others.
//  6. every non-center vertex wired to its 6 nearest non-center vertices
//     (ties broken by ascending index).
//
// Guarantees:
//
//   - Crystal is deterministic for a given K; it uses no randomness.
//   - Stochastic constructors require an explicit RNG (WithSeed/WithRand) and
//     are reproducible for a fixed seed.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel runtime errors wrapped with method context; branch with errors.Is.
//
// See individual function documentation for detailed contracts and complexity.
package builder
