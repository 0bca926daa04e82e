// SPDX-License-Identifier: MIT

// Package action turns a geometric road network into a fixed-width discrete
// action space.
//
// Every junction labels its outgoing roads 0, 1, 2, … by the direction of
// travel: the bearing of each road (atan2 of Δy, Δx from the road's start
// junction to its end junction, in degrees) is computed, roads with bearing ≥ 0
// are sorted ascending, then roads with bearing < 0 are sorted ascending, and
// the concatenation is numbered from 0. For a four-way junction this walks
// Right → Up → Left → Down.
//
// Labels are computed once in New and cached per road; a label is a property of
// a road given its start junction. The same label therefore means "the k-th exit
// in angular order" at every junction, which lets one small action space serve
// the whole network.
//
// Determinism:
//   - Labeling is a pure function of geometry. Equal bearings are ordered by
//     road ID, so the input order of roads never changes the result.
//
// Errors:
//   - ErrTooManyExits if a junction has more outgoing roads than the width.
//   - ErrBadWidth if WithWidth receives a value < 1.
//   - network.ErrInvalidIdentifier for unknown roads or junctions.
//
// Example:
//
//	lab, err := action.New(net)
//	if err != nil {
//	    return err
//	}
//	out, _ := net.RoadsAt("A", network.Outgoing)
//	road, ok := lab.RoadFor(out, 0) // first exit in angular order
package action
