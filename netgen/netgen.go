// SPDX-License-Identifier: MIT

package netgen

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/network"
)

const (
	minLine   = 2
	minGrid   = 1
	gridIDFmt = "%d,%d"
)

// draft accumulates junctions and roads, deriving lengths from coordinates.
type draft struct {
	junctions []network.Junction
	at        map[string]network.Junction
	roads     []network.Road
}

func newDraft() *draft {
	return &draft{at: make(map[string]network.Junction)}
}

func (d *draft) junction(id string, x, y float64) {
	j := network.Junction{ID: id, X: x, Y: y}
	d.junctions = append(d.junctions, j)
	d.at[id] = j
}

func (d *draft) road(id, from, to string) {
	a, b := d.at[from], d.at[to]
	d.roads = append(d.roads, network.Road{
		ID:     id,
		From:   from,
		To:     to,
		Length: math.Hypot(b.X-a.X, b.Y-a.Y),
	})
}

// Line returns n junctions J0…J(n-1) on the x-axis with one-way roads "J0>J1", …
// Start is J0 and End is J(n-1). n must be ≥ 2.
func Line(n int, opts ...Option) (*Fixture, error) {
	if n < minLine {
		return nil, fmt.Errorf("Line: n=%d (must be ≥ %d): %w", n, minLine, ErrTooSmall)
	}
	cfg, err := resolve(opts)
	if err != nil {
		return nil, fmt.Errorf("Line: %w", err)
	}

	d := newDraft()
	for i := 0; i < n; i++ {
		d.junction(fmt.Sprintf("J%d", i), float64(i)*cfg.Spacing, 0)
	}
	for i := 0; i+1 < n; i++ {
		from, to := fmt.Sprintf("J%d", i), fmt.Sprintf("J%d", i+1)
		d.road(from+">"+to, from, to)
	}

	return &Fixture{
		Name:      fmt.Sprintf("line-%d", n),
		Junctions: d.junctions,
		Roads:     d.roads,
		Start:     "J0",
		End:       fmt.Sprintf("J%d", n-1),
	}, nil
}

// Diamond returns A(0,0), C(100,100), B(100,-100), D(200,0) with roads
// "ac", "ab", "cd", "bd". Both branches have equal length; "bd" is congested
// by 5 minutes, so A → C → D is the cheaper route in time.
// At A the road to C carries label 0 and the road to B label 1.
func Diamond() *Fixture {
	d := newDraft()
	d.junction("A", 0, 0)
	d.junction("B", 100, -100)
	d.junction("C", 100, 100)
	d.junction("D", 200, 0)
	d.road("ab", "A", "B")
	d.road("ac", "A", "C")
	d.road("bd", "B", "D")
	d.road("cd", "C", "D")

	return &Fixture{
		Name:       "diamond",
		Junctions:  d.junctions,
		Roads:      d.roads,
		Congestion: map[string]float64{"bd": 5},
		Start:      "A",
		End:        "D",
	}
}

// Grid returns a rows×cols grid with junction IDs "r,c" at (c·spacing, r·spacing)
// and a road in each direction between orthogonal neighbours, named "r,c>r',c'".
// Start is "0,0" and End is the opposite corner.
func Grid(rows, cols int, opts ...Option) (*Fixture, error) {
	if rows < minGrid || cols < minGrid {
		return nil, fmt.Errorf("Grid: rows=%d, cols=%d (each must be ≥ %d): %w",
			rows, cols, minGrid, ErrTooSmall)
	}
	cfg, err := resolve(opts)
	if err != nil {
		return nil, fmt.Errorf("Grid: %w", err)
	}

	id := func(r, c int) string { return fmt.Sprintf(gridIDFmt, r, c) }
	d := newDraft()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d.junction(id(r, c), float64(c)*cfg.Spacing, float64(r)*cfg.Spacing)
		}
	}
	link := func(a, b string) {
		d.road(a+">"+b, a, b)
		d.road(b+">"+a, b, a)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				link(id(r, c), id(r, c+1))
			}
			if r+1 < rows {
				link(id(r, c), id(r+1, c))
			}
		}
	}

	return &Fixture{
		Name:      fmt.Sprintf("grid-%dx%d", rows, cols),
		Junctions: d.junctions,
		Roads:     d.roads,
		Start:     id(0, 0),
		End:       id(rows-1, cols-1),
	}, nil
}

// referenceEdges lists the forward roads gneE0…gneE18 of the reference grid.
var referenceEdges = [][2]string{
	{"A", "C"}, {"C", "F"}, {"F", "I"}, {"I", "L"}, {"L", "N"},
	{"B", "C"}, {"B", "E"}, {"E", "H"}, {"H", "K"}, {"K", "L"},
	{"C", "D"}, {"D", "G"}, {"G", "J"}, {"J", "M"}, {"L", "M"},
	{"E", "F"}, {"F", "G"}, {"H", "I"}, {"I", "J"},
}

// Reference returns the 14-junction benchmark network: a three-row grid between
// A(0,0) and N(500,0), every road present in both directions, start A, end N.
// Congestion: F↔I 10 min, B↔E 20 min, J↔M 30 min. Lights: B, I and G at 5 min each.
func Reference() *Fixture {
	d := newDraft()
	d.junction("A", 0, 0)
	for col, ids := range [][3]string{{"B", "C", "D"}, {"E", "F", "G"}, {"H", "I", "J"}, {"K", "L", "M"}} {
		x := float64(col+1) * 100
		d.junction(ids[0], x, 100)
		d.junction(ids[1], x, 0)
		d.junction(ids[2], x, -100)
	}
	d.junction("N", 500, 0)

	for i, e := range referenceEdges {
		id := fmt.Sprintf("gneE%d", i)
		d.road(id, e[0], e[1])
		d.road("-"+id, e[1], e[0])
	}

	return &Fixture{
		Name:      "reference",
		Junctions: d.junctions,
		Roads:     d.roads,
		Congestion: map[string]float64{
			"gneE2": 10, "-gneE2": 10, // F–I
			"gneE6": 20, "-gneE6": 20, // B–E
			"gneE13": 30, "-gneE13": 30, // J–M
		},
		Lights: []cost.LightGroup{
			{Junctions: []string{"B"}, Delay: 5},
			{Junctions: []string{"I"}, Delay: 5},
			{Junctions: []string{"G"}, Delay: 5},
		},
		Start: "A",
		End:   "N",
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
