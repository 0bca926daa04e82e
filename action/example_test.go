package action_test

import (
	"fmt"

	"github.com/katalvlaran/roadrl/action"
	"github.com/katalvlaran/roadrl/network"
)

// ExampleLabeler_RoadFor labels a T-junction and resolves two actions.
func ExampleLabeler_RoadFor() {
	net, _ := network.New(
		[]network.Junction{{ID: "O"}, {ID: "E", X: 1}, {ID: "N", Y: 1}, {ID: "S", Y: -1}},
		[]network.Road{
			{ID: "right", From: "O", To: "E", Length: 1},
			{ID: "up", From: "O", To: "N", Length: 1},
			{ID: "down", From: "O", To: "S", Length: 1},
		},
	)
	lab, err := action.New(net)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	out, _ := net.RoadsAt("O", network.Outgoing)
	for _, a := range []int{2, 3} {
		road, ok := lab.RoadFor(out, a)
		fmt.Println(a, road, ok)
	}
	// Output:
	// 2 down true
	// 3  false
}
