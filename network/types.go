// SPDX-License-Identifier: MIT

package network

import "errors"

// Sentinel errors for network construction and queries.
var (
	// ErrEmptyID indicates a junction or road with an empty ID.
	ErrEmptyID = errors.New("network: empty identifier")

	// ErrDuplicateID indicates two junctions or two roads sharing one ID.
	ErrDuplicateID = errors.New("network: duplicate identifier")

	// ErrInvalidIdentifier indicates a junction or road ID outside the network.
	ErrInvalidIdentifier = errors.New("network: invalid identifier")

	// ErrBadLength indicates a negative, NaN or infinite road length.
	ErrBadLength = errors.New("network: bad road length")
)

// Direction filters the roads touching a junction.
type Direction int

const (
	// Outgoing selects roads whose From is the junction.
	Outgoing Direction = iota

	// Incoming selects roads whose To is the junction.
	Incoming

	// Both selects every road touching the junction. A self-loop is listed once.
	Both
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Junction is a node of the road network.
type Junction struct {
	// ID uniquely identifies the junction.
	ID string `json:"id" yaml:"id"`

	// X and Y are planar coordinates in meters.
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Road is a directed road segment between two junctions.
type Road struct {
	// ID uniquely identifies the road.
	ID string `json:"id" yaml:"id"`

	// From is the junction the road leaves.
	From string `json:"from" yaml:"from"`

	// To is the junction the road enters.
	To string `json:"to" yaml:"to"`

	// Length is the road length in meters.
	Length float64 `json:"length" yaml:"length"`
}

// Stats is a read-only summary of a Network.
type Stats struct {
	Junctions   int     // number of junctions
	Roads       int     // number of roads
	DeadEnds    int     // junctions without outgoing roads
	MaxOut      int     // largest out-degree
	TotalLength float64 // sum of road lengths in meters
}
