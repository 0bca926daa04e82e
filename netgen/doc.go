// SPDX-License-Identifier: MIT

// Package netgen builds deterministic road-network fixtures.
//
// Every constructor returns a *Fixture: the junctions and roads of a network,
// optional congestion and traffic-light registries, and a suggested start and
// destination. Fixture.Network and Fixture.CostOptions turn it into the inputs
// of the network and cost packages.
//
// Constructors:
//   - Line(n):          n junctions on the x-axis joined by one-way roads.
//   - Diamond():        A → {C, B} → D, where A → C is the first exit in angular order.
//   - Grid(rows, cols): orthogonal grid with IDs "r,c" and two-way roads.
//   - Reference():      the 14-junction A…N benchmark grid with roads gneE0…gneE18,
//     their "-" reverses, congestion on F–I, B–E and J–M, and lights at B, I and G.
//
// Determinism:
//   - Equal arguments always produce equal fixtures, in the same order.
//   - Road lengths are Euclidean distances between junction coordinates.
package netgen
