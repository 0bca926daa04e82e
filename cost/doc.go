// SPDX-License-Identifier: MIT

// Package cost evaluates routes in one of two interchangeable metrics.
//
// Distance is the sum of road lengths in meters.
//
// Time is measured in minutes:
//
//	base   = (Σ length / 1000) / speed_kmh × 60
//	time   = base
//	       + Σ congestion delay of every congested road on the route
//	       + light delay of a group each time the route newly enters it
//
// A route "newly enters" a light group when a road ends at a junction of the
// group and the previous road of the route did not end inside that same group.
// Passing through one logical intersection made of several junctions is charged
// once; idling inside it is free.
//
// Registries (congestion, light groups) and the metric are fixed when the Model
// is built. A Model is read-only afterwards and safe for concurrent use.
//
// Errors:
//   - ErrUnknownMetric for metric names other than distance/d/time/t.
//   - ErrBadSpeed for a travel speed that is not a finite positive number.
//   - ErrBadDelay for a negative or non-finite delay.
//   - ErrUnknownEdge (wrapping network.ErrInvalidIdentifier) for unknown roads.
//   - ErrLightOverlap when a junction is listed in two light groups.
package cost
