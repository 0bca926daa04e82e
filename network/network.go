// SPDX-License-Identifier: MIT
//
// File: network.go
// Role: Network construction (the single mutation point) and read-only queries.
// Determinism:
//   - ID listings are sorted ascending; adjacency buckets are sorted at build time.
// Concurrency:
//   - No locks: nothing is mutated after New returns.

package network

import (
	"fmt"
	"math"
	"sort"
)

// Network is an immutable directed road graph.
type Network struct {
	junctions map[string]Junction // junction ID → Junction
	roads     map[string]Road     // road ID → Road

	out map[string][]string // junction ID → outgoing road IDs (sorted)
	in  map[string][]string // junction ID → incoming road IDs (sorted)

	junctionIDs []string // sorted junction IDs
	roadIDs     []string // sorted road IDs
}

// New builds a Network from junctions and roads.
//
// Validation (in order):
//  1. Every junction ID is non-empty and unique (ErrEmptyID, ErrDuplicateID).
//  2. Every road ID is non-empty and unique (ErrEmptyID, ErrDuplicateID).
//  3. Every road endpoint names a known junction (ErrInvalidIdentifier).
//  4. Every road length is finite and ≥ 0 (ErrBadLength).
//
// The input slices are copied; later changes by the caller are not observed.
//
// Complexity: O(V + E log E).
func New(junctions []Junction, roads []Road) (*Network, error) {
	n := &Network{
		junctions:   make(map[string]Junction, len(junctions)),
		roads:       make(map[string]Road, len(roads)),
		out:         make(map[string][]string, len(junctions)),
		in:          make(map[string][]string, len(junctions)),
		junctionIDs: make([]string, 0, len(junctions)),
		roadIDs:     make([]string, 0, len(roads)),
	}

	for _, j := range junctions {
		if j.ID == "" {
			return nil, fmt.Errorf("%w: junction", ErrEmptyID)
		}
		if _, dup := n.junctions[j.ID]; dup {
			return nil, fmt.Errorf("%w: junction %q", ErrDuplicateID, j.ID)
		}
		n.junctions[j.ID] = j
		n.junctionIDs = append(n.junctionIDs, j.ID)
	}

	for _, r := range roads {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: road %s→%s", ErrEmptyID, r.From, r.To)
		}
		if _, dup := n.roads[r.ID]; dup {
			return nil, fmt.Errorf("%w: road %q", ErrDuplicateID, r.ID)
		}
		if _, ok := n.junctions[r.From]; !ok {
			return nil, fmt.Errorf("%w: road %q starts at unknown junction %q", ErrInvalidIdentifier, r.ID, r.From)
		}
		if _, ok := n.junctions[r.To]; !ok {
			return nil, fmt.Errorf("%w: road %q ends at unknown junction %q", ErrInvalidIdentifier, r.ID, r.To)
		}
		if r.Length < 0 || math.IsNaN(r.Length) || math.IsInf(r.Length, 0) {
			return nil, fmt.Errorf("%w: road %q length=%v", ErrBadLength, r.ID, r.Length)
		}
		n.roads[r.ID] = r
		n.roadIDs = append(n.roadIDs, r.ID)
		n.out[r.From] = append(n.out[r.From], r.ID)
		n.in[r.To] = append(n.in[r.To], r.ID)
	}

	sort.Strings(n.junctionIDs)
	sort.Strings(n.roadIDs)
	for _, bucket := range n.out {
		sort.Strings(bucket)
	}
	for _, bucket := range n.in {
		sort.Strings(bucket)
	}

	return n, nil
}

// Junctions returns every junction ID, sorted ascending.
// The returned slice is a copy.
func (n *Network) Junctions() []string {
	return append([]string(nil), n.junctionIDs...)
}

// Roads returns every road ID, sorted ascending.
// The returned slice is a copy.
func (n *Network) Roads() []string {
	return append([]string(nil), n.roadIDs...)
}

// HasJunction reports whether id names a junction.
func (n *Network) HasJunction(id string) bool {
	_, ok := n.junctions[id]
	return ok
}

// HasRoad reports whether id names a road.
func (n *Network) HasRoad(id string) bool {
	_, ok := n.roads[id]
	return ok
}

// Junction returns the junction with the given ID.
func (n *Network) Junction(id string) (Junction, error) {
	j, ok := n.junctions[id]
	if !ok {
		return Junction{}, fmt.Errorf("%w: junction %q", ErrInvalidIdentifier, id)
	}
	return j, nil
}

// Road returns the road with the given ID.
func (n *Network) Road(id string) (Road, error) {
	r, ok := n.roads[id]
	if !ok {
		return Road{}, fmt.Errorf("%w: road %q", ErrInvalidIdentifier, id)
	}
	return r, nil
}

// Endpoints returns the start and end junction of a road.
func (n *Network) Endpoints(roadID string) (from, to string, err error) {
	r, err := n.Road(roadID)
	if err != nil {
		return "", "", err
	}
	return r.From, r.To, nil
}

// RoadsAt lists the roads touching junction id in the given role, sorted by road ID.
//
// Outgoing lists roads leaving id, Incoming lists roads entering id, Both lists the
// union with a self-loop appearing once.
//
// Complexity: O(d) for Outgoing/Incoming, O(d log d) for Both, where d is the degree.
func (n *Network) RoadsAt(id string, dir Direction) ([]string, error) {
	if _, ok := n.junctions[id]; !ok {
		return nil, fmt.Errorf("%w: junction %q", ErrInvalidIdentifier, id)
	}
	switch dir {
	case Outgoing:
		return append([]string(nil), n.out[id]...), nil
	case Incoming:
		return append([]string(nil), n.in[id]...), nil
	case Both:
		seen := make(map[string]struct{}, len(n.out[id])+len(n.in[id]))
		all := make([]string, 0, len(n.out[id])+len(n.in[id]))
		for _, bucket := range [][]string{n.out[id], n.in[id]} {
			for _, rid := range bucket {
				if _, dup := seen[rid]; dup {
					continue
				}
				seen[rid] = struct{}{}
				all = append(all, rid)
			}
		}
		sort.Strings(all)
		return all, nil
	default:
		return nil, fmt.Errorf("network: unknown direction %d", dir)
	}
}

// OutDegree returns the number of roads leaving id, or 0 for an unknown junction.
func (n *Network) OutDegree(id string) int {
	return len(n.out[id])
}

// Connecting returns the roads running from → to, sorted by ID.
// An empty result is not an error; unknown junctions are.
func (n *Network) Connecting(from, to string) ([]string, error) {
	if _, ok := n.junctions[from]; !ok {
		return nil, fmt.Errorf("%w: junction %q", ErrInvalidIdentifier, from)
	}
	if _, ok := n.junctions[to]; !ok {
		return nil, fmt.Errorf("%w: junction %q", ErrInvalidIdentifier, to)
	}
	var common []string
	for _, rid := range n.out[from] {
		if n.roads[rid].To == to {
			common = append(common, rid)
		}
	}
	return common, nil
}

// Stats returns a summary of the network.
// Complexity: O(V + E).
func (n *Network) Stats() Stats {
	s := Stats{
		Junctions: len(n.junctions),
		Roads:     len(n.roads),
	}
	for _, id := range n.junctionIDs {
		d := len(n.out[id])
		if d == 0 {
			s.DeadEnds++
		}
		if d > s.MaxOut {
			s.MaxOut = d
		}
	}
	for _, rid := range n.roadIDs {
		s.TotalLength += n.roads[rid].Length
	}
	return s
}
