// SPDX-License-Identifier: MIT

// Package dijkstra finds the exact cheapest route between two junctions of a
// road network.
//
// Overview:
//
//   - Search runs Dijkstra's algorithm from a start junction, relaxing every
//     outgoing road with the cost model's per-road cost (cost.Model.EdgeCost),
//     and stops as soon as the destination is popped from the frontier.
//   - The frontier is a container/heap min-heap with lazy decrease-key: an
//     improved junction is pushed again and the stale entry is skipped when popped.
//   - The route is rebuilt by walking predecessors back from the destination and
//     re-deriving each road as the unique road joining two consecutive junctions.
//
// Cost reporting:
//
//   - Result.Cost is the cost model's RouteCost of the returned road list, which
//     equals the sum of relaxed road costs. Roads leaving the start junction are
//     priced with RouteCost; every later road with EdgeCost, which skips a light
//     delay while moving inside one multi-junction group.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E), the heap may hold one entry per relaxation.
//
// Options:
//
//   - WithMaxCost(c): junctions whose tentative cost exceeds c are not explored.
//
// Errors (sentinel):
//
//   - ErrNilNetwork / ErrNilModel for nil inputs.
//   - ErrModelMismatch if the model was built for another network.
//   - network.ErrInvalidIdentifier for unknown start or destination.
//   - ErrNegativeCost if the model reports a negative road cost.
//   - ErrNoRoute if the destination is never reached.
//   - ErrAmbiguousEdge if two consecutive junctions of the route are joined by zero or
//     several roads; the search never picks one arbitrarily.
//
// Thread safety:
//
//   - Search keeps all state in a per-call runner. Network and Model are read-only,
//     so concurrent searches over the same inputs are safe.
package dijkstra
