// SPDX-License-Identifier: MIT

package dijkstra

import (
	"errors"
	"math"
	"time"

	"github.com/katalvlaran/roadrl/network"
)

// Sentinel errors returned by Search.
var (
	// ErrNilNetwork indicates that a nil *network.Network was passed.
	ErrNilNetwork = errors.New("dijkstra: network is nil")

	// ErrNilModel indicates that a nil *cost.Model was passed.
	ErrNilModel = errors.New("dijkstra: cost model is nil")

	// ErrModelMismatch indicates a cost model built for a different network.
	ErrModelMismatch = errors.New("dijkstra: cost model belongs to another network")

	// ErrNegativeCost indicates that the cost model produced a negative road cost.
	ErrNegativeCost = errors.New("dijkstra: negative road cost encountered")

	// ErrNoRoute indicates that the destination cannot be reached from the start.
	ErrNoRoute = errors.New("dijkstra: no route found")

	// ErrAmbiguousEdge indicates zero or several roads between two consecutive
	// junctions of a reconstructed route.
	ErrAmbiguousEdge = errors.New("dijkstra: ambiguous edge reconstruction")

	// ErrBadMaxCost indicates that MaxCost was set to a negative value.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be non-negative")
)

// Options configures Search.
//
// MaxCost – junctions whose tentative cost exceeds this value are not explored.
//
//	Must be ≥ 0. Default is +Inf (no cap).
type Options struct {
	MaxCost float64
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// WithMaxCost caps the explored cost. Negative values panic with ErrBadMaxCost.
func WithMaxCost(c float64) Option {
	if c < 0 || math.IsNaN(c) {
		panic(ErrBadMaxCost.Error())
	}
	return func(o *Options) {
		o.MaxCost = c
	}
}

// DefaultOptions returns Options with no cost cap.
func DefaultOptions() Options {
	return Options{MaxCost: math.Inf(1)}
}

// Result is the outcome of a successful Search.
type Result struct {
	Route   network.Route `json:"route"`
	Cost    float64       `json:"cost"`    // model.RouteCost(Route.Roads...)
	Settled int           `json:"settled"` // junctions popped and finalized
	Elapsed time.Duration `json:"elapsed"`
}
