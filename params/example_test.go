package params_test

import (
	"fmt"

	"github.com/katalvlaran/entangle/params"
)

// ExampleEntanglementParams shows the parameter set for a mid-size pool.
func ExampleEntanglementParams() {
	p, err := params.EntanglementParams(1000)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("K=%d V=%d A=%.1f beats=%d\n", p.K, p.V, p.Amplitude, len(p.Rhythm))
	// Output:
	// K=4 V=52 A=0.2 beats=12
}
