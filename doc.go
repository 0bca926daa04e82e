// SPDX-License-Identifier: MIT

// Package roadrl finds routes on road networks two ways: exactly, with
// Dijkstra's algorithm, and by trial and error, with tabular Q-learning and
// SARSA agents that learn which exit to take at every junction.
//
// What is in the box?
//
//	network/    immutable directed road graph: junctions, roads, routes
//	action/     angular exit labels per junction (the agents' action space)
//	cost/       distance and travel-time metrics with congestion and traffic lights
//	dijkstra/   exact shortest route under a cost model
//	bfs/        reachability and hop-count traversal
//	qlearn/     environment, value table, policies and the episodic trainer
//	netgen/     fixtures: line, diamond, grid and the 14-junction reference grid
//	osmimport/  road networks from OpenStreetMap extracts (XML or PBF)
//	scenario/   YAML scenario files
//	runstore/   run history in BadgerDB
//	engine/     one network, its labels and cost model, searched and trained
//	server/     HTTP API over an engine
//	cmd/roadrl  command-line front end
//
// Quick ASCII example, the reference grid:
//
//	     [B]--[E]--[H]--[K]
//	      |    |    |    |
//	[A]--[C]--[F]--[I]--[L]--[N]
//	      |    |    |    |
//	     [D]--[G]--[J]--[M]
//
// By distance the best route is A C F I L N (500 m). By time, with F–I
// congested and a light at I, it is A C F E H K L N (0.84 min).
//
//	go run ./cmd/roadrl compare --metric time
package roadrl
