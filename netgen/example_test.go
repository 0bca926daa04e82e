package netgen_test

import (
	"fmt"

	"github.com/katalvlaran/roadrl/netgen"
)

// ExampleReference prints the size of the benchmark network.
func ExampleReference() {
	f := netgen.Reference()
	n, err := f.Network()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := n.Stats()
	fmt.Printf("%s: %d junctions, %d roads, %s → %s\n", f.Name, s.Junctions, s.Roads, f.Start, f.End)
	// Output: reference: 14 junctions, 38 roads, A → N
}
