// SPDX-License-Identifier: MIT

// Package network provides the immutable, directed road-network graph that every
// routing algorithm in roadrl runs on.
//
// A Network is a set of Junctions (string ID plus planar X/Y coordinates) joined by
// directed Roads (ID, From, To, Length in meters). Two roads running in opposite
// directions between the same pair of junctions are distinct entities; the graph may
// contain cycles, self-loops and parallel roads.
//
// Construction via New is the only mutation point. Every other method is a read-only
// query, so a single *Network can be shared by any number of concurrent searches and
// trainings without locking.
//
// Determinism:
//
//   - Junctions(), Roads() and RoadsAt() return IDs sorted ascending.
//   - Identical inputs (in any order) produce identical query results.
//
// Errors:
//
//	ErrEmptyID            - a junction or road ID is the empty string.
//	ErrDuplicateID        - two junctions or two roads share an ID.
//	ErrInvalidIdentifier  - a query or road endpoint references an unknown ID.
//	ErrBadLength          - a road length is negative, NaN or infinite.
//
// Example:
//
//	net, err := network.New(
//	    []network.Junction{{ID: "A"}, {ID: "B", X: 10}},
//	    []network.Road{{ID: "ab", From: "A", To: "B", Length: 10}},
//	)
//	out, _ := net.RoadsAt("A", network.Outgoing) // ["ab"]
package network
