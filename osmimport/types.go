// SPDX-License-Identifier: MIT

package osmimport

import (
	"errors"

	"github.com/paulmach/orb"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/network"
)

var (
	// ErrUnknownFormat indicates a file extension that is neither XML nor PBF.
	ErrUnknownFormat = errors.New("osmimport: unknown file format")

	// ErrEmpty indicates that no drivable way was found.
	ErrEmpty = errors.New("osmimport: no drivable roads found")
)

// Format selects the decoder.
type Format int

const (
	// XML is the plain .osm format.
	XML Format = iota
	// PBF is the protocol-buffer format.
	PBF
)

// drivable lists the highway values kept by default.
var drivable = map[string]bool{
	"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true,
	"tertiary": true, "tertiary_link": true, "residential": true, "living_street": true,
	"service": true, "unclassified": true, "road": true,
}

// Options configures an import.
type Options struct {
	Highways map[string]bool
	Logger   *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithHighways replaces the accepted highway values.
func WithHighways(values ...string) Option {
	return func(o *Options) {
		o.Highways = make(map[string]bool, len(values))
		for _, v := range values {
			o.Highways[v] = true
		}
	}
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result is an imported network description.
type Result struct {
	Junctions []network.Junction
	Roads     []network.Road
	Origin    orb.Point // lon/lat of the planar origin
	Ways      int       // ways kept
	Dropped   int       // parallel or degenerate segments dropped
}

// Network builds the imported network.
func (r *Result) Network() (*network.Network, error) {
	return network.New(r.Junctions, r.Roads)
}
