// SPDX-License-Identifier: MIT

package cost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/roadrl/network"
)

// DefaultSpeed is the travel speed in km/h used when WithSpeed is not given.
const DefaultSpeed = 50.0

var (
	// ErrUnknownMetric indicates an unrecognized metric name.
	ErrUnknownMetric = errors.New("cost: unknown metric")

	// ErrBadSpeed indicates a non-positive or non-finite travel speed.
	ErrBadSpeed = errors.New("cost: speed must be a positive number")

	// ErrBadDelay indicates a negative or non-finite delay.
	ErrBadDelay = errors.New("cost: delay must be a non-negative number")

	// ErrUnknownEdge indicates a road that is not part of the network.
	ErrUnknownEdge = fmt.Errorf("cost: unknown edge: %w", network.ErrInvalidIdentifier)

	// ErrLightOverlap indicates a junction that belongs to more than one light group.
	ErrLightOverlap = errors.New("cost: junction is in more than one light group")
)

// Metric selects how a route is evaluated.
type Metric int

const (
	// Distance sums road lengths (meters).
	Distance Metric = iota
	// Time converts distance to minutes and adds congestion and light delays.
	Time
)

// String returns "distance" or "time".
func (m Metric) String() string {
	switch m {
	case Distance:
		return "distance"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Unit returns the unit the metric is measured in.
func (m Metric) Unit() string {
	if m == Time {
		return "min"
	}
	return "m"
}

// ParseMetric accepts "distance", "d", "time" or "t" in any case.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance", "d":
		return Distance, nil
	case "time", "t":
		return Time, nil
	default:
		return Distance, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseMetric.
func (m *Metric) UnmarshalText(b []byte) error {
	parsed, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LightGroup is a set of junctions treated as one signal-controlled intersection.
type LightGroup struct {
	Junctions []string `json:"junctions" yaml:"junctions"`
	Delay     float64  `json:"delay" yaml:"delay"` // minutes per entry
}

// Options configures a Model.
type Options struct {
	Metric     Metric
	Speed      float64            // km/h
	Congestion map[string]float64 // road ID → delay minutes
	Lights     []LightGroup
}

// Option mutates Options.
type Option func(*Options)

// WithMetric selects the metric RouteCost and EdgeCost evaluate.
func WithMetric(m Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// WithSpeed sets the travel speed in km/h used by the time metric.
func WithSpeed(kmh float64) Option {
	return func(o *Options) { o.Speed = kmh }
}

// WithCongestion registers road as congested with a fixed delay in minutes.
// Registering the same road twice keeps the last delay.
func WithCongestion(road string, minutes float64) Option {
	return func(o *Options) {
		if o.Congestion == nil {
			o.Congestion = make(map[string]float64)
		}
		o.Congestion[road] = minutes
	}
}

// WithTrafficLight registers one light group made of junctions.
func WithTrafficLight(minutes float64, junctions ...string) Option {
	return func(o *Options) {
		o.Lights = append(o.Lights, LightGroup{
			Junctions: append([]string(nil), junctions...),
			Delay:     minutes,
		})
	}
}

// DefaultOptions returns distance metric, DefaultSpeed and empty registries.
func DefaultOptions() Options {
	return Options{Metric: Distance, Speed: DefaultSpeed}
}
