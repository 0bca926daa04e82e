// SPDX-License-Identifier: MIT

// Command roadrl finds routes on road networks with Dijkstra and with tabular
// reinforcement learning, and compares the two.
//
//	roadrl search --builtin reference
//	roadrl --metric time train --algorithm sarsa --episodes 20000
//	roadrl --scenario city.yaml compare
//	roadrl --store ./runs serve --addr :8080
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI()
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
