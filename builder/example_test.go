package builder_test

import (
	"fmt"

	"github.com/katalvlaran/entangle/builder"
)

// ExampleAssemblePool builds a K=4 seed and attaches 50 pool oscillators.
func ExampleAssemblePool() {
	seed, err := builder.Crystal(4)
	if err != nil {
		panic(err)
	}
	net, err := builder.AssemblePool(seed, 50, builder.WithSeed(1))
	if err != nil {
		panic(err)
	}
	fmt.Println(seed.Layers().Names())
	fmt.Println(net.SeedSize, net.PoolSize, net.Contacts)
	// Output:
	// [center triad icosa shell_4]
	// 52 50 5
}
