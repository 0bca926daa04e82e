// SPDX-License-Identifier: MIT

// Package osmimport builds road networks from OpenStreetMap extracts.
//
// Both XML (.osm) and PBF (.pbf, .osm.pbf) files are read with
// github.com/paulmach/osm. Ways tagged with a drivable highway type are kept.
// A node becomes a junction when it is an endpoint of a kept way or is shared by
// more than one kept way; every way is split into roads between consecutive
// junctions.
//
// Road IDs are "w<way>-<seq>" in the way's drawing direction and "-w<way>-<seq>"
// against it. One-way streets (oneway=yes/true/1, motorways and trunks) only get
// the forward road, oneway=-1 only the reverse one. Parallel segments between the
// same ordered junction pair keep only the shortest, so every junction pair is
// joined by at most one road in each direction.
//
// Lengths are great-circle distances (github.com/paulmach/orb/geo) summed along
// the way geometry. Junction coordinates are planar meters east and north of the
// south-west corner of the imported junctions, so angular action labels match the
// map.
package osmimport
