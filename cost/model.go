// SPDX-License-Identifier: MIT

package cost

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/roadrl/network"
)

// Model evaluates routes over one network.
type Model struct {
	net        *network.Network
	metric     Metric
	speed      float64
	congestion map[string]float64
	lights     []LightGroup
	groupOf    map[string]int // junction ID → index into lights
}

// New validates opts against net and returns a Model.
func New(net *network.Network, opts ...Option) (*Model, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Metric != Distance && cfg.Metric != Time {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, cfg.Metric)
	}
	if !(cfg.Speed > 0) || math.IsInf(cfg.Speed, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrBadSpeed, cfg.Speed)
	}

	m := &Model{
		net:        net,
		metric:     cfg.Metric,
		speed:      cfg.Speed,
		congestion: make(map[string]float64, len(cfg.Congestion)),
		groupOf:    make(map[string]int),
	}

	for road, delay := range cfg.Congestion {
		if !net.HasRoad(road) {
			return nil, fmt.Errorf("%w: congested road %q", ErrUnknownEdge, road)
		}
		if !validDelay(delay) {
			return nil, fmt.Errorf("%w: road %q delay=%v", ErrBadDelay, road, delay)
		}
		m.congestion[road] = delay
	}

	for i, g := range cfg.Lights {
		if !validDelay(g.Delay) {
			return nil, fmt.Errorf("%w: light group %d delay=%v", ErrBadDelay, i, g.Delay)
		}
		for _, jid := range g.Junctions {
			if !net.HasJunction(jid) {
				return nil, fmt.Errorf("%w: light junction %q", network.ErrInvalidIdentifier, jid)
			}
			if prev, dup := m.groupOf[jid]; dup && prev != i {
				return nil, fmt.Errorf("%w: %q", ErrLightOverlap, jid)
			}
			m.groupOf[jid] = i
		}
		m.lights = append(m.lights, LightGroup{
			Junctions: append([]string(nil), g.Junctions...),
			Delay:     g.Delay,
		})
	}

	return m, nil
}

func validDelay(d float64) bool {
	return d >= 0 && !math.IsInf(d, 0)
}

// Network returns the network the model evaluates.
func (m *Model) Network() *network.Network { return m.net }

// Metric returns the configured metric.
func (m *Model) Metric() Metric { return m.metric }

// Speed returns the configured travel speed in km/h.
func (m *Model) Speed() float64 { return m.speed }

// Congested returns the congested road IDs, sorted.
func (m *Model) Congested() []string {
	ids := make([]string, 0, len(m.congestion))
	for id := range m.congestion {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Delay returns the congestion delay of road, 0 if it is not congested.
func (m *Model) Delay(road string) float64 { return m.congestion[road] }

// Lights returns a copy of the light groups.
func (m *Model) Lights() []LightGroup {
	out := make([]LightGroup, len(m.lights))
	for i, g := range m.lights {
		out[i] = LightGroup{Junctions: append([]string(nil), g.Junctions...), Delay: g.Delay}
	}
	return out
}

// RouteDistance returns the summed length of roads in meters.
func (m *Model) RouteDistance(roads ...string) (float64, error) {
	var total float64
	for _, rid := range roads {
		r, err := m.road(rid)
		if err != nil {
			return 0, err
		}
		total += r.Length
	}
	return total, nil
}

// RouteTime returns the travel time of roads in minutes, delays included.
func (m *Model) RouteTime(roads ...string) (float64, error) {
	dist, err := m.RouteDistance(roads...)
	if err != nil {
		return 0, err
	}
	minutes := dist / 1000 / m.speed * 60

	prevGroup := -1
	for _, rid := range roads {
		minutes += m.congestion[rid]

		r, _ := m.road(rid)
		g, lit := m.groupOf[r.To]
		if lit && g != prevGroup {
			minutes += m.lights[g].Delay
		}
		if !lit {
			g = -1
		}
		prevGroup = g
	}
	return minutes, nil
}

// RouteCost evaluates roads with the configured metric.
func (m *Model) RouteCost(roads ...string) (float64, error) {
	if m.metric == Time {
		return m.RouteTime(roads...)
	}
	return m.RouteDistance(roads...)
}

// EdgeCost is the cost of taking road after arriving at its From junction over
// another road. In time mode a light group's delay is charged only when From
// lies outside the group of To, so a route's cost is the sum of its EdgeCosts,
// except the first road, which RouteCost always treats as a new entry.
func (m *Model) EdgeCost(road string) (float64, error) {
	r, err := m.road(road)
	if err != nil {
		return 0, err
	}
	if m.metric != Time {
		return r.Length, nil
	}

	minutes := r.Length/1000/m.speed*60 + m.congestion[road]
	if g, lit := m.groupOf[r.To]; lit {
		if from, ok := m.groupOf[r.From]; !ok || from != g {
			minutes += m.lights[g].Delay
		}
	}
	return minutes, nil
}

func (m *Model) road(id string) (network.Road, error) {
	r, err := m.net.Road(id)
	if err != nil {
		return network.Road{}, fmt.Errorf("%w: %q", ErrUnknownEdge, id)
	}
	return r, nil
}
