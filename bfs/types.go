// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/roadrl/network"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start junction is absent.
	ErrStartNotFound = errors.New("bfs: start junction not found")

	// ErrNetworkNil is returned if a nil network pointer is passed.
	ErrNetworkNil = errors.New("bfs: network is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNotReached is returned by Result.RouteTo for junctions the walk never reached.
	ErrNotReached = errors.New("bfs: junction not reached")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option (e.g. negative depth) is recorded and surfaced as
// ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a junction. A non-nil error aborts the walk.
	OnVisit func(id string, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this many hops. 0 means no limit.
	MaxDepth int

	// FilterRoad skips a road leaving curr when it returns false.
	FilterRoad func(curr, road string) bool

	err error
}

// DefaultOptions returns Options with a background context, no depth limit,
// no filtering and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		OnVisit:    func(string, int) error { return nil },
		MaxDepth:   0,
		FilterRoad: func(_, _ string) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the walk.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the walk at the given depth.
//
//	d > 0: limit to d hops
//	d == 0: explicit no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterRoad skips roads for which fn returns false.
func WithFilterRoad(fn func(curr, road string) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterRoad = fn
		}
	}
}

// Result holds the outcome of a walk.
type Result struct {
	Start  string
	Order  []string
	Depth  map[string]int
	Parent map[string]string
	Via    map[string]string // junction → road it was first reached over
}

// Reached reports whether the walk reached id.
func (r *Result) Reached(id string) bool {
	_, ok := r.Depth[id]
	return ok
}

// RouteTo rebuilds the fewest-hops route from the start to dest.
func (r *Result) RouteTo(dest string) (network.Route, error) {
	if !r.Reached(dest) {
		return network.Route{}, fmt.Errorf("%w: %q", ErrNotReached, dest)
	}
	junctions := []string{}
	roads := []string{}
	for cur := dest; ; {
		junctions = append(junctions, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		roads = append(roads, r.Via[cur])
		cur = prev
	}
	reverse(junctions)
	reverse(roads)

	return network.Route{Junctions: junctions, Roads: roads}, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
