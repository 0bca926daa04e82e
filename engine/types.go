// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"time"

	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/qlearn"
	"github.com/katalvlaran/roadrl/runstore"
)

// ErrNilNetwork indicates a nil network or fixture.
var ErrNilNetwork = errors.New("engine: nil network")

// MethodDijkstra names the shortest-path search in reports.
const MethodDijkstra = "dijkstra"

// Options configures an Engine.
type Options struct {
	Name   string
	Width  int // action width, 0 sizes it to the busiest junction (at least 4)
	Cost   []cost.Option
	Logger *slog.Logger
	Store  *runstore.Store
}

// Option mutates Options.
type Option func(*Options)

// WithName labels the engine's runs.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithWidth fixes the action width.
func WithWidth(n int) Option {
	return func(o *Options) { o.Width = n }
}

// WithCostOptions appends cost model options.
func WithCostOptions(opts ...cost.Option) Option {
	return func(o *Options) { o.Cost = append(o.Cost, opts...) }
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStore records every successful run in s.
func WithStore(s *runstore.Store) Option {
	return func(o *Options) { o.Store = s }
}

// TrainOption configures a single Train call.
type TrainOption func(*trainConfig)

type trainConfig struct {
	exploration float64
	trainer     []qlearn.Option
}

// WithExploration sets the SARSA exploration rate.
func WithExploration(rate float64) TrainOption {
	return func(c *trainConfig) { c.exploration = rate }
}

// WithTrainer appends trainer options.
func WithTrainer(opts ...qlearn.Option) TrainOption {
	return func(c *trainConfig) { c.trainer = append(c.trainer, opts...) }
}

// Report summarizes one method on one start/end pair in both metrics.
type Report struct {
	Method   string        `json:"method"`
	Metric   string        `json:"metric"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Route    network.Route `json:"route"`
	Cost     float64       `json:"cost"`
	Distance float64       `json:"distance"`
	Time     float64       `json:"time"`
	Episode  int           `json:"episode,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
	Err      string        `json:"error,omitempty"`
}

// OK reports whether the method found a route.
func (r Report) OK() bool { return r.Err == "" }
