// SPDX-License-Identifier: MIT

package qlearn

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/roadrl/network"
)

// Table maps (junction, label) to a learned value.
type Table struct {
	width  int
	states []string       // sorted
	index  map[string]int // junction → row
	rows   [][]float64
}

// NewTable returns a zeroed table over states with width labels per state.
func NewTable(states []string, width int) *Table {
	sorted := append([]string(nil), states...)
	sort.Strings(sorted)
	t := &Table{
		width:  width,
		states: sorted,
		index:  make(map[string]int, len(sorted)),
		rows:   make([][]float64, len(sorted)),
	}
	for i, s := range sorted {
		t.index[s] = i
		t.rows[i] = make([]float64, width)
	}
	return t
}

// Width returns the number of labels per state.
func (t *Table) Width() int { return t.width }

// States returns the state IDs, sorted.
func (t *Table) States() []string { return append([]string(nil), t.states...) }

// Reset zeroes every entry.
func (t *Table) Reset() {
	for _, row := range t.rows {
		for a := range row {
			row[a] = 0
		}
	}
}

// Value returns Q[state][action].
func (t *Table) Value(state string, action int) (float64, error) {
	row, err := t.row(state)
	if err != nil {
		return 0, err
	}
	if action < 0 || action >= t.width {
		return 0, fmt.Errorf("%w: action %d outside [0, %d)", ErrBadParameter, action, t.width)
	}
	return row[action], nil
}

// Row returns a copy of the values of state.
func (t *Table) Row(state string) ([]float64, error) {
	row, err := t.row(state)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), row...), nil
}

// Max returns the largest value of state.
func (t *Table) Max(state string) float64 {
	row, err := t.row(state)
	if err != nil || len(row) == 0 {
		return 0
	}
	best := row[0]
	for _, v := range row[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// Snapshot copies the table into a map keyed by junction.
func (t *Table) Snapshot() map[string][]float64 {
	out := make(map[string][]float64, len(t.states))
	for i, s := range t.states {
		out[s] = append([]float64(nil), t.rows[i]...)
	}
	return out
}

// add shifts Q[state][action] by delta. Unknown entries are ignored.
func (t *Table) add(state string, action int, delta float64) {
	row, err := t.row(state)
	if err != nil || action < 0 || action >= t.width {
		return
	}
	row[action] += delta
}

// learn applies Q[s][a] += lr × (r + γ × max Q[s'] − Q[s][a]) and returns the new value.
func (t *Table) learn(s string, a int, r float64, next string, lr, gamma float64) float64 {
	row, err := t.row(s)
	if err != nil || a < 0 || a >= t.width {
		return 0
	}
	target := r + gamma*t.Max(next)
	row[a] += lr * (target - row[a])
	return row[a]
}

func (t *Table) row(state string) ([]float64, error) {
	i, ok := t.index[state]
	if !ok {
		return nil, fmt.Errorf("%w: state %q", network.ErrInvalidIdentifier, state)
	}
	return t.rows[i], nil
}
