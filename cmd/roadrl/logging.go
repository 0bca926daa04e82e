// SPDX-License-Identifier: MIT

package main

import (
	"io"

	"golang.org/x/exp/slog"
)

// newLogger returns a text logger at Warn by default, Debug with verbose and
// Error with quiet.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
