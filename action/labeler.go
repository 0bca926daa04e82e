// SPDX-License-Identifier: MIT

package action

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/katalvlaran/roadrl/network"
)

// Labeler holds the precomputed road → label mapping of a network.
// It is read-only after New and safe for concurrent use.
type Labeler struct {
	net    *network.Network
	width  int
	labels map[string]int            // road ID → label
	byNode map[string]map[int]string // junction ID → label → road ID
}

// exit is one outgoing road with its bearing, used while sorting.
type exit struct {
	road    string
	bearing float64
}

// New labels every junction of net.
//
// Complexity: O(E log d) where d is the maximum out-degree.
func New(net *network.Network, opts ...Option) (*Labeler, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Width < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWidth, cfg.Width)
	}

	l := &Labeler{
		net:    net,
		width:  cfg.Width,
		labels: make(map[string]int),
		byNode: make(map[string]map[int]string),
	}

	for _, jid := range net.Junctions() {
		out, err := net.RoadsAt(jid, network.Outgoing)
		if err != nil {
			return nil, err
		}
		if len(out) > cfg.Width {
			return nil, fmt.Errorf("%w: junction %q has %d exits, width %d",
				ErrTooManyExits, jid, len(out), cfg.Width)
		}
		ordered, err := l.order(jid, out)
		if err != nil {
			return nil, err
		}
		slots := make(map[int]string, len(ordered))
		for label, e := range ordered {
			l.labels[e.road] = label
			slots[label] = e.road
		}
		l.byNode[jid] = slots
	}

	return l, nil
}

// order sorts the exits of junction jid into label order.
func (l *Labeler) order(jid string, roads []string) ([]exit, error) {
	from, err := l.net.Junction(jid)
	if err != nil {
		return nil, err
	}
	var ahead, behind []exit
	for _, rid := range roads {
		r, err := l.net.Road(rid)
		if err != nil {
			return nil, err
		}
		to, err := l.net.Junction(r.To)
		if err != nil {
			return nil, err
		}
		e := exit{road: rid, bearing: Bearing(from, to)}
		if e.bearing >= 0 {
			ahead = append(ahead, e)
		} else {
			behind = append(behind, e)
		}
	}
	byBearing := func(s []exit) {
		sort.SliceStable(s, func(i, j int) bool {
			if s[i].bearing != s[j].bearing {
				return s[i].bearing < s[j].bearing
			}
			return s[i].road < s[j].road
		})
	}
	byBearing(ahead)
	byBearing(behind)

	return append(ahead, behind...), nil
}

// Bearing returns the direction of travel from a to b in degrees, in (-180, 180].
// A self-loop (a and b at the same point) has bearing 0.
func Bearing(a, b network.Junction) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// Width returns the size of the action space.
func (l *Labeler) Width() int { return l.width }

// Space returns every label, 0..Width-1.
func (l *Labeler) Space() []int {
	return lo.Range(l.width)
}

// Label returns the label of road.
func (l *Labeler) Label(road string) (int, error) {
	label, ok := l.labels[road]
	if !ok {
		return 0, fmt.Errorf("%w: road %q", network.ErrInvalidIdentifier, road)
	}
	return label, nil
}

// LabelsAt returns label → road for the exits of junction. The map is a copy.
func (l *Labeler) LabelsAt(junction string) (map[int]string, error) {
	slots, ok := l.byNode[junction]
	if !ok {
		return nil, fmt.Errorf("%w: junction %q", network.ErrInvalidIdentifier, junction)
	}
	return lo.Assign(slots), nil
}

// Available returns the distinct labels carried by roads, sorted ascending.
// Unknown road IDs are ignored.
func (l *Labeler) Available(roads []string) []int {
	labels := lo.Uniq(lo.FilterMap(roads, func(rid string, _ int) (int, bool) {
		label, ok := l.labels[rid]
		return label, ok
	}))
	sort.Ints(labels)
	return labels
}

// RoadFor returns the road among roads whose label is action.
// The boolean is false when no road carries that label.
func (l *Labeler) RoadFor(roads []string, action int) (string, bool) {
	return lo.Find(roads, func(rid string) bool {
		label, ok := l.labels[rid]
		return ok && label == action
	})
}
