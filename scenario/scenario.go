// SPDX-License-Identifier: MIT

package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/netgen"
	"github.com/katalvlaran/roadrl/osmimport"
	"github.com/katalvlaran/roadrl/qlearn"
)

// Load reads, defaults and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	slog.Info("reading scenario", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Builtin returns a scenario over a builtin network with default training.
func Builtin(name string) (*Scenario, error) {
	s := &Scenario{Name: name, Network: Source{Builtin: name}}
	switch name {
	case Grid:
		s.Network.Rows, s.Network.Cols = 4, 4
	case Line:
		s.Network.Size = 5
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func (s *Scenario) applyDefaults() {
	if s.Training.Algorithm == "" {
		s.Training.Algorithm = qlearn.QLearning
	}
	if s.Training.Episodes == 0 {
		s.Training.Episodes = DefaultEpisodes
	}
	if s.Training.Threshold == 0 {
		s.Training.Threshold = DefaultThreshold
	}
	if s.Name == "" {
		s.Name = s.kind()
		if s.Network.OSM != "" {
			base := filepath.Base(s.Network.OSM)
			s.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
}

// Validate checks the scenario without building the network.
func (s *Scenario) Validate() error {
	src := s.Network
	sources := lo.Count([]bool{src.Builtin != "", src.OSM != "", len(src.Junctions) > 0 || len(src.Roads) > 0}, true)
	if sources != 1 {
		return fmt.Errorf("%w: network needs exactly one of builtin, osm or junctions/roads (got %d)", ErrInvalid, sources)
	}
	switch src.Builtin {
	case "", Reference, Diamond, Grid, Line:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBuiltin, src.Builtin)
	}
	if src.OSM == "" && len(src.Junctions) == 0 && src.Builtin == "" {
		return fmt.Errorf("%w: inline network without junctions", ErrInvalid)
	}

	algo, err := qlearn.ParseAlgorithm(string(s.Training.Algorithm))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s.Training.Algorithm = algo

	t := s.Training
	switch {
	case s.Speed < 0:
		return fmt.Errorf("%w: speed %v", ErrInvalid, s.Speed)
	case t.Episodes < 1:
		return fmt.Errorf("%w: episodes %d", ErrInvalid, t.Episodes)
	case t.Threshold < 1:
		return fmt.Errorf("%w: threshold %d", ErrInvalid, t.Threshold)
	case t.Exploration != nil && (*t.Exploration < 0 || *t.Exploration > 1):
		return fmt.Errorf("%w: exploration %v", ErrInvalid, *t.Exploration)
	case t.MaxSteps < 0:
		return fmt.Errorf("%w: max_steps %d", ErrInvalid, t.MaxSteps)
	}
	for _, c := range s.Congestion {
		if c.Road == "" || c.Delay < 0 {
			return fmt.Errorf("%w: congestion entry %+v", ErrInvalid, c)
		}
	}
	return nil
}

// Fixture resolves the network source and overlays the scenario's registries
// and endpoints.
func (s *Scenario) Fixture(ctx context.Context) (*netgen.Fixture, error) {
	f, err := s.source(ctx)
	if err != nil {
		return nil, err
	}

	f.Name = s.Name
	extra := lo.SliceToMap(s.Congestion, func(c Congestion) (string, float64) { return c.Road, c.Delay })
	f.Congestion = lo.Assign(f.Congestion, extra)
	f.Lights = append(f.Lights, s.Lights...)
	if s.Start != "" {
		f.Start = s.Start
	}
	if s.End != "" {
		f.End = s.End
	}
	if f.Start == "" || f.End == "" {
		return nil, fmt.Errorf("%w: start and end are required for %s networks", ErrInvalid, s.kind())
	}
	return f, nil
}

func (s *Scenario) kind() string {
	switch {
	case s.Network.Builtin != "":
		return s.Network.Builtin
	case s.Network.OSM != "":
		return "osm"
	default:
		return "inline"
	}
}

func (s *Scenario) source(ctx context.Context) (*netgen.Fixture, error) {
	src := s.Network
	var spacing []netgen.Option
	if src.Spacing != 0 {
		spacing = append(spacing, netgen.WithSpacing(src.Spacing))
	}

	switch {
	case src.Builtin == Reference:
		return netgen.Reference(), nil
	case src.Builtin == Diamond:
		return netgen.Diamond(), nil
	case src.Builtin == Grid:
		return netgen.Grid(src.Rows, src.Cols, spacing...)
	case src.Builtin == Line:
		return netgen.Line(src.Size, spacing...)
	case src.OSM != "":
		path := src.OSM
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		var opts []osmimport.Option
		if len(src.Highways) > 0 {
			opts = append(opts, osmimport.WithHighways(src.Highways...))
		}
		res, err := osmimport.Load(ctx, path, opts...)
		if err != nil {
			return nil, err
		}
		return &netgen.Fixture{Junctions: res.Junctions, Roads: res.Roads}, nil
	default:
		return &netgen.Fixture{Junctions: src.Junctions, Roads: src.Roads}, nil
	}
}

// CostOptions returns the fixture's registries plus the scenario's metric and speed.
func (s *Scenario) CostOptions(f *netgen.Fixture) []cost.Option {
	opts := append(f.CostOptions(), cost.WithMetric(s.Metric.Metric()))
	if s.Speed > 0 {
		opts = append(opts, cost.WithSpeed(s.Speed))
	}
	return opts
}

// TrainOptions returns the trainer options the scenario sets.
func (s *Scenario) TrainOptions() []qlearn.Option {
	t := s.Training
	var opts []qlearn.Option
	if t.LearningRate != nil {
		opts = append(opts, qlearn.WithLearningRate(*t.LearningRate))
	}
	if t.Discount != nil {
		opts = append(opts, qlearn.WithDiscount(*t.Discount))
	}
	if t.MaxSteps > 0 {
		opts = append(opts, qlearn.WithMaxSteps(t.MaxSteps))
	}
	if t.Seed != nil {
		opts = append(opts, qlearn.WithSeed(*t.Seed))
	}
	return opts
}

// Exploration returns the configured exploration rate or qlearn.DefaultExploration.
func (s *Scenario) Exploration() float64 {
	if s.Training.Exploration == nil {
		return qlearn.DefaultExploration
	}
	return *s.Training.Exploration
}
