package core_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/entangle/core"
)

// BenchmarkAddEdge_RandomMesh measures inserting 2n random edges over n vertices.
func BenchmarkAddEdge_RandomMesh(b *testing.B) {
	const n = 10000
	r := rand.New(rand.NewSource(42))
	pairs := make([][2]int, 2*n)
	for i := range pairs {
		pairs[i] = [2]int{r.Intn(n), r.Intn(n)}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := core.NewGraph(n)
		for _, p := range pairs {
			_, _ = g.AddEdge(p[0], p[1])
		}
	}
}

// BenchmarkNeighborTable measures flat export of a mesh graph.
func BenchmarkNeighborTable(b *testing.B) {
	const n = 10000
	r := rand.New(rand.NewSource(7))
	g := core.NewGraph(n)
	for i := 0; i < 2*n; i++ {
		_, _ = g.AddEdge(r.Intn(n), r.Intn(n))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.NeighborTable()
	}
}
