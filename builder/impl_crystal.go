// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// impl_crystal.go: the K-layer crystal seed.
//
// Contract:
//   • K ≥ MinCrystalLayers (else ErrInvalidLayers). No partial state on error.
//   • Positions, layers and adjacency are a pure function of (K, nearest).
//   • The returned Seed is read-only; pool assembly works on Clone().
//
// Complexity:
//   • Time: O(V² log V) dominated by nearest-neighbor ranking (V ≤ 484 at K=6).
//   • Space: O(V + E).

package builder

import (
	"fmt"

	"github.com/katalvlaran/entangle/core"
)

// Seed is a fully built crystal: 3D positions, named layers and adjacency.
// It is immutable after Crystal returns and safe to share across trials.
type Seed struct {
	k         int
	positions []Vec3
	layers    Layers
	graph     *core.Graph
}

// Crystal builds the K-layer crystal seed.
// Only WithNearestNeighbors is meaningful among the options.
func Crystal(k int, opts ...BuilderOption) (*Seed, error) {
	if k < MinCrystalLayers {
		return nil, fmt.Errorf("%s: K=%d < min=%d: %w", MethodCrystal, k, MinCrystalLayers, ErrInvalidLayers)
	}

	pos, layers := crystalPositions(k)
	g, err := BuildGraph(len(pos), nil, opts,
		Star(CenterVertex),
		NearestNeighbors(pos, CenterVertex+1),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodCrystal, err)
	}

	return &Seed{k: k, positions: pos, layers: layers, graph: g}, nil
}

// crystalPositions lays out center, triad (K≥3), icosa and K-3 outer shells.
func crystalPositions(k int) ([]Vec3, Layers) {
	pos := []Vec3{{0, 0, 0}}
	layers := Layers{{Name: LayerCenter, Indices: []int{CenterVertex}}}

	push := func(name string, pts []Vec3) {
		start := len(pos)
		pos = append(pos, pts...)
		layers = append(layers, Layer{Name: name, Indices: indexRange(start, len(pos))})
	}

	if k >= 3 {
		push(LayerTriad, TriadVertices(triadRadius))
	}

	ico := IcosahedronVertices()
	for i := range ico {
		ico[i] = ico[i].Scale(icosaRadius)
	}
	push(LayerIcosa, ico)

	shell := icosaVertexCount
	radius := firstShellRadius
	for i := 0; i < k-3; i++ {
		shell *= shellGrowthFactor
		push(ShellLayerName(firstShellIndex+i), FibonacciSphere(shell, radius))
		radius += shellRadiusStep
	}

	return pos, layers
}

// K returns the crystal layer count.
func (s *Seed) K() int { return s.k }

// Size returns the number of seed vertices V.
func (s *Seed) Size() int { return s.graph.VertexCount() }

// Positions returns a copy of the vertex positions.
func (s *Seed) Positions() []Vec3 { return append([]Vec3(nil), s.positions...) }

// Layers returns a deep copy of the named layers, innermost first.
func (s *Seed) Layers() Layers {
	out := make(Layers, len(s.layers))
	for i, l := range s.layers {
		out[i] = Layer{Name: l.Name, Indices: append([]int(nil), l.Indices...)}
	}
	return out
}

// Neighbors returns the sorted neighbors of seed vertex v.
func (s *Seed) Neighbors(v int) ([]int, error) { return s.graph.Neighbors(v) }

// Degree returns the degree of seed vertex v.
func (s *Seed) Degree(v int) (int, error) { return s.graph.Degree(v) }

// HasEdge reports whether seed vertices u and v are adjacent.
func (s *Seed) HasEdge(u, v int) bool { return s.graph.HasEdge(u, v) }

// Edges returns the sorted seed edge list.
func (s *Seed) Edges() []core.Edge { return s.graph.Edges() }

// Clone returns a mutable deep copy of the seed adjacency.
func (s *Seed) Clone() *core.Graph { return s.graph.Clone() }
