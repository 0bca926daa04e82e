// SPDX-License-Identifier: MIT

// Package engine ties a network, its action labels and its cost model together
// and runs shortest-path searches and tabular training over them.
//
// An Engine is read-only after construction and safe for concurrent use: every
// Train call builds its own environment and trainer. When a run store is
// attached, successful searches and trainings are recorded; a failing store is
// logged and never fails the run.
package engine
