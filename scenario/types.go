// SPDX-License-Identifier: MIT

package scenario

import (
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/qlearn"
)

// Training defaults beyond the ones qlearn provides.
const (
	DefaultEpisodes  = 5000
	DefaultThreshold = 5
)

var (
	// ErrInvalid indicates a scenario that cannot be resolved.
	ErrInvalid = errors.New("scenario: invalid scenario")

	// ErrUnknownBuiltin indicates a builtin network name that does not exist.
	ErrUnknownBuiltin = errors.New("scenario: unknown builtin network")
)

// Builtin network names.
const (
	Reference = "reference"
	Diamond   = "diamond"
	Grid      = "grid"
	Line      = "line"
)

// Scenario is one routing problem.
type Scenario struct {
	Name       string            `yaml:"name"`
	Metric     MetricName        `yaml:"metric"`
	Speed      float64           `yaml:"speed,omitempty"` // km/h, 0 keeps cost.DefaultSpeed
	Start      string            `yaml:"start,omitempty"`
	End        string            `yaml:"end,omitempty"`
	Network    Source            `yaml:"network"`
	Congestion []Congestion      `yaml:"congestion,omitempty"`
	Lights     []cost.LightGroup `yaml:"lights,omitempty"`
	Training   Training          `yaml:"training"`

	dir string // directory of the scenario file, for relative OSM paths
}

// Source selects where the network comes from.
type Source struct {
	Builtin string  `yaml:"builtin,omitempty"`
	Rows    int     `yaml:"rows,omitempty"`
	Cols    int     `yaml:"cols,omitempty"`
	Size    int     `yaml:"size,omitempty"`
	Spacing float64 `yaml:"spacing,omitempty"`

	OSM      string   `yaml:"osm,omitempty"`
	Highways []string `yaml:"highways,omitempty"`

	Junctions []network.Junction `yaml:"junctions,omitempty"`
	Roads     []network.Road     `yaml:"roads,omitempty"`
}

// Congestion registers a fixed delay on one road.
type Congestion struct {
	Road  string  `yaml:"road"`
	Delay float64 `yaml:"delay"` // minutes
}

// Training holds the trainer parameters. Nil pointers keep the qlearn defaults.
type Training struct {
	Algorithm    qlearn.Algorithm `yaml:"algorithm"`
	Episodes     int              `yaml:"episodes"`
	Threshold    int              `yaml:"threshold"`
	Exploration  *float64         `yaml:"exploration,omitempty"`
	LearningRate *float64         `yaml:"learning_rate,omitempty"`
	Discount     *float64         `yaml:"discount,omitempty"`
	MaxSteps     int              `yaml:"max_steps,omitempty"`
	Seed         *int64           `yaml:"seed,omitempty"`
}

// MetricName is a cost.Metric written by name in YAML.
type MetricName cost.Metric

// Metric returns the cost metric.
func (m MetricName) Metric() cost.Metric { return cost.Metric(m) }

func (m MetricName) MarshalYAML() (any, error) {
	return cost.Metric(m).String(), nil
}

func (m *MetricName) UnmarshalYAML(value *yaml.Node) error {
	met, err := cost.ParseMetric(value.Value)
	if err != nil {
		return err
	}
	*m = MetricName(met)
	return nil
}
