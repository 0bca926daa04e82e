// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"strings"
)

// Route is an ordered walk through the network: Junctions[i] → Junctions[i+1] via Roads[i].
// A valid Route always has len(Roads) == len(Junctions)-1.
type Route struct {
	Junctions []string `json:"junctions"`
	Roads     []string `json:"roads"`
}

// Validate checks that r is a connected walk in n.
//
// Errors:
//   - ErrInvalidIdentifier for unknown junctions or roads.
//   - a plain error when lengths mismatch or a road does not join its neighbours.
func (r Route) Validate(n *Network) error {
	if len(r.Junctions) == 0 {
		return fmt.Errorf("network: empty route")
	}
	if len(r.Roads) != len(r.Junctions)-1 {
		return fmt.Errorf("network: route has %d junctions and %d roads", len(r.Junctions), len(r.Roads))
	}
	for _, id := range r.Junctions {
		if !n.HasJunction(id) {
			return fmt.Errorf("%w: junction %q", ErrInvalidIdentifier, id)
		}
	}
	for i, rid := range r.Roads {
		from, to, err := n.Endpoints(rid)
		if err != nil {
			return err
		}
		if from != r.Junctions[i] || to != r.Junctions[i+1] {
			return fmt.Errorf("network: road %q (%s→%s) does not join %s→%s",
				rid, from, to, r.Junctions[i], r.Junctions[i+1])
		}
	}
	return nil
}

// Equal reports whether r and o visit the same junctions over the same roads.
func (r Route) Equal(o Route) bool {
	if len(r.Junctions) != len(o.Junctions) || len(r.Roads) != len(o.Roads) {
		return false
	}
	for i := range r.Junctions {
		if r.Junctions[i] != o.Junctions[i] {
			return false
		}
	}
	for i := range r.Roads {
		if r.Roads[i] != o.Roads[i] {
			return false
		}
	}
	return true
}

// End returns the last junction of the route, or "" for an empty route.
func (r Route) End() string {
	if len(r.Junctions) == 0 {
		return ""
	}
	return r.Junctions[len(r.Junctions)-1]
}

// String renders the route as "A -[ab]-> B -[bc]-> C".
func (r Route) String() string {
	var b strings.Builder
	for i, j := range r.Junctions {
		if i > 0 {
			road := "?"
			if i-1 < len(r.Roads) {
				road = r.Roads[i-1]
			}
			fmt.Fprintf(&b, " -[%s]-> ", road)
		}
		b.WriteString(j)
	}
	return b.String()
}
