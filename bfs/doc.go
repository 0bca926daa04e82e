// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over the outgoing roads of a
// network.Network, returning hop distances, parent links and visit order.
//
// What
//
//   - Explore junctions in non-decreasing hop count from a start junction,
//     following roads only in their direction of travel.
//   - Returns a Result with Order (visit sequence), Depth (hops from start),
//     Parent (predecessor junction) and Via (road used to reach a junction).
//   - OnVisit sees every junction with its depth and may abort the walk.
//   - WithFilterRoad skips individual roads; WithMaxDepth bounds the hop count.
//
// Why
//
//   - Reachability checks before expensive work: the trainer refuses to start
//     when the destination cannot be reached at all.
//   - Fewest-hops routes and hop rings for `roadrl inspect`, optionally
//     avoiding congested roads.
//
// Determinism
//
//	network.RoadsAt returns roads sorted by ID and BFS enqueues in that order,
//	so the visit sequence is fully reproducible.
//
// Complexity (V = junctions, E = roads)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Cancellation
//
//	WithContext makes the walk stop with ctx.Err() once the context is done.
package bfs
