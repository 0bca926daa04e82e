// SPDX-License-Identifier: MIT

package server

import (
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/runstore"
)

// DefaultCacheSize is the number of cached search responses.
const DefaultCacheSize = 256

// MaxEpisodes bounds the budget a single train request may ask for.
const MaxEpisodes = 100000

// Options configures a Server.
type Options struct {
	CacheSize int
	Store     *runstore.Store
	Logger    *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithCacheSize sets the search cache size; it must be ≥ 1.
func WithCacheSize(n int) Option {
	return func(o *Options) { o.CacheSize = n }
}

// WithStore serves the run history from s.
func WithStore(s *runstore.Store) Option {
	return func(o *Options) { o.Store = s }
}

// WithLogger sets the request logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

type searchRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type searchResponse struct {
	Route     network.Route `json:"route"`
	Metric    string        `json:"metric"`
	Cost      float64       `json:"cost"`
	Distance  float64       `json:"distance"`
	Time      float64       `json:"time"`
	Settled   int           `json:"settled"`
	ElapsedMS float64       `json:"elapsed_ms"`
	Cached    bool          `json:"cached"`
}

type trainRequest struct {
	Algorithm   string   `json:"algorithm"`
	Start       string   `json:"start" binding:"required"`
	End         string   `json:"end" binding:"required"`
	Episodes    int      `json:"episodes"`
	Threshold   int      `json:"threshold"`
	Exploration *float64 `json:"exploration"`
	Seed        *int64   `json:"seed"`
}

type trainResponse struct {
	Algorithm string        `json:"algorithm"`
	Route     network.Route `json:"route"`
	Metric    string        `json:"metric"`
	Episode   int           `json:"episode"`
	Cost      float64       `json:"cost"`
	Distance  float64       `json:"distance"`
	Time      float64       `json:"time"`
	ElapsedMS float64       `json:"elapsed_ms"`
}

type networkResponse struct {
	Name        string  `json:"name"`
	Junctions   int     `json:"junctions"`
	Roads       int     `json:"roads"`
	DeadEnds    int     `json:"dead_ends"`
	MaxOut      int     `json:"max_out"`
	TotalLength float64 `json:"total_length"`
	Metric      string  `json:"metric"`
	Speed       float64 `json:"speed"`
	Width       int     `json:"width"`
}
