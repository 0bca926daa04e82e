// SPDX-License-Identifier: MIT

// Package scenario loads routing scenarios from YAML files.
//
// A scenario names a network source, the cost registries, the metric, the start
// and end junctions and the training parameters:
//
//	name: reference-time
//	metric: time
//	network:
//	  builtin: reference
//	training:
//	  algorithm: q-learning
//	  episodes: 5000
//	  threshold: 5
//
// The network comes from exactly one source: a builtin fixture (reference,
// diamond, grid, line), an OSM extract (osm, resolved relative to the scenario
// file) or inline junctions and roads. Builtin fixtures carry their own
// registries and endpoints; the scenario's congestion and lights add to them and
// a non-empty start or end replaces them.
package scenario
