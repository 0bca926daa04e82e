// SPDX-License-Identifier: MIT

package action

import "errors"

// DefaultWidth is the size of the action space when WithWidth is not given.
const DefaultWidth = 4

var (
	// ErrTooManyExits indicates that a junction has more outgoing roads than labels.
	ErrTooManyExits = errors.New("action: junction has more exits than the action width")

	// ErrBadWidth indicates a non-positive action width.
	ErrBadWidth = errors.New("action: width must be ≥ 1")
)

// Options configures a Labeler.
type Options struct {
	Width int // number of labels per junction
}

// Option mutates Options.
type Option func(*Options)

// WithWidth sets the action width. Values < 1 are rejected by New.
func WithWidth(n int) Option {
	return func(o *Options) { o.Width = n }
}

// DefaultOptions returns Options with Width = DefaultWidth.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth}
}
