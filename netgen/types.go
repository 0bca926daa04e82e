// SPDX-License-Identifier: MIT

package netgen

import (
	"errors"
	"math"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/network"
)

// DefaultSpacing is the distance between neighbouring grid or line junctions, in meters.
const DefaultSpacing = 100.0

var (
	// ErrTooSmall indicates a size parameter below the constructor's minimum.
	ErrTooSmall = errors.New("netgen: parameter too small")

	// ErrBadSpacing indicates a non-positive spacing.
	ErrBadSpacing = errors.New("netgen: spacing must be positive")
)

// Fixture is a ready-to-load network description.
type Fixture struct {
	Name       string
	Junctions  []network.Junction
	Roads      []network.Road
	Congestion map[string]float64 // road ID → delay minutes
	Lights     []cost.LightGroup
	Start      string
	End        string
}

// Network builds the fixture's network.
func (f *Fixture) Network() (*network.Network, error) {
	return network.New(f.Junctions, f.Roads)
}

// CostOptions returns the registry options of the fixture, congested roads in ID order.
func (f *Fixture) CostOptions() []cost.Option {
	var opts []cost.Option
	for _, rid := range sortedKeys(f.Congestion) {
		opts = append(opts, cost.WithCongestion(rid, f.Congestion[rid]))
	}
	for _, g := range f.Lights {
		opts = append(opts, cost.WithTrafficLight(g.Delay, g.Junctions...))
	}
	return opts
}

// Options configures the sized constructors.
type Options struct {
	Spacing float64
}

// Option mutates Options.
type Option func(*Options)

// WithSpacing sets the distance between neighbouring junctions.
func WithSpacing(m float64) Option {
	return func(o *Options) { o.Spacing = m }
}

func resolve(opts []Option) (Options, error) {
	cfg := Options{Spacing: DefaultSpacing}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.Spacing > 0) || math.IsInf(cfg.Spacing, 0) {
		return cfg, ErrBadSpacing
	}
	return cfg, nil
}
