// SPDX-License-Identifier: MIT

// Package qlearn learns a route through a road network with tabular
// reinforcement learning.
//
// States are junctions and actions are the angular exit labels of package
// action. One Trainer type runs both algorithm variants; they differ only in
// the Policy that picks an action:
//
//   - Greedy: the label with the highest table value, ties to the lowest label
//     (the Q-learning variant).
//   - EpsilonGreedy(rate): a uniformly random label from the full action space
//     with probability rate, greedy otherwise (the "SARSA" variant).
//
// Both variants learn with the same max-based target after every step:
//
//	Q[s][a] += lr × (r + γ × max Q[s'] − Q[s][a])
//
// Step contract (Environment.Step):
//
//   - An action with no matching exit is Invalid: reward −100, state unchanged.
//   - Otherwise, in order: reaching the destination is Completed (+100); a junction
//     without exits is a DeadEnd (−100); repeating a consecutive road pair already
//     driven this episode is a Loop (−50); anything else is Traveling (0).
//
// Step is pure. Credit that reaches back over a whole episode is applied by the
// trainer in a separate pass right after the step is learned:
//
//   - A completed episode whose route is strictly cheaper than every earlier
//     completion adds a bonus (+100) to every (junction, label) along the route.
//   - A dead end subtracts 100 from each road of the unbranching tail that led to
//     it, walking back from the road before the last one and stopping at the first
//     road that ends at a junction with more than one exit.
//
// Episodes end on Completed, DeadEnd, or after MaxSteps steps (Truncated).
// Train stops once the last `threshold` episodes drove the identical route and
// the latest one completed; otherwise it fails with ErrNotConverged.
//
// Algorithm names the variants for configuration: QLearning maps to Greedy and
// SARSA to EpsilonGreedy.
//
// A Trainer owns its Table and is not safe for concurrent use. Environment,
// network, labeler and cost model are read-only and may be shared.
package qlearn
