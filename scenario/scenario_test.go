package scenario_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/qlearn"
	"github.com/katalvlaran/roadrl/scenario"
)

func TestLoadReference(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "reference_time.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "reference-time", s.Name)
	assert.Equal(t, cost.Time, s.Metric.Metric())
	assert.Equal(t, qlearn.QLearning, s.Training.Algorithm)
	assert.Equal(t, 500, s.Training.Episodes)
	assert.Len(t, s.TrainOptions(), 1)

	f, err := s.Fixture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", f.Start)
	assert.Equal(t, "N", f.End)
	assert.Len(t, f.Congestion, 6)
	assert.Len(t, f.Lights, 3)

	net, err := f.Network()
	require.NoError(t, err)
	m, err := cost.New(net, s.CostOptions(f)...)
	require.NoError(t, err)
	got, err := m.RouteCost("gneE0", "gneE1", "-gneE15", "gneE7", "gneE8", "gneE9", "gneE4")
	require.NoError(t, err)
	assert.InDelta(t, 0.84, got, 1e-9)
}

func TestLoadInline(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "inline.yaml"))
	require.NoError(t, err)

	assert.Equal(t, cost.Distance, s.Metric.Metric())
	assert.Equal(t, qlearn.SARSA, s.Training.Algorithm)
	assert.Equal(t, 0.2, s.Exploration())
	assert.Len(t, s.TrainOptions(), 3)

	f, err := s.Fixture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "triangle", f.Name)
	assert.Equal(t, map[string]float64{"ac": 4}, f.Congestion)

	net, err := f.Network()
	require.NoError(t, err)
	m, err := cost.New(net, s.CostOptions(f)...)
	require.NoError(t, err)
	assert.Equal(t, 30.0, m.Speed())

	d, err := m.RouteCost("ab", "bc")
	require.NoError(t, err)
	assert.Equal(t, 200.0, d)
	tm, err := m.RouteTime("ab", "bc")
	require.NoError(t, err)
	assert.InDelta(t, 0.2/30*60+2, tm, 1e-9, "light at B")
}

func TestLoadOSM(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "city.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "city", s.Name, "named after the extract")

	f, err := s.Fixture(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.Junctions, 5)
	assert.Equal(t, "1", f.Start)
	assert.Equal(t, "5", f.End)
}

func TestParseDefaults(t *testing.T) {
	s, err := scenario.Parse([]byte("network:\n  builtin: diamond\n"))
	require.NoError(t, err)

	assert.Equal(t, "diamond", s.Name)
	assert.Equal(t, cost.Distance, s.Metric.Metric())
	assert.Equal(t, qlearn.QLearning, s.Training.Algorithm)
	assert.Equal(t, scenario.DefaultEpisodes, s.Training.Episodes)
	assert.Equal(t, scenario.DefaultThreshold, s.Training.Threshold)
	assert.Equal(t, qlearn.DefaultExploration, s.Exploration())
	assert.Empty(t, s.TrainOptions())
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"empty":           {"", scenario.ErrInvalid},
		"unknown key":     {"network: {builtin: diamond}\ncolour: red\n", scenario.ErrInvalid},
		"two sources":     {"network: {builtin: diamond, osm: a.osm}\n", scenario.ErrInvalid},
		"unknown builtin": {"network: {builtin: moon}\n", scenario.ErrUnknownBuiltin},
		"bad metric":      {"metric: fuel\nnetwork: {builtin: diamond}\n", scenario.ErrInvalid},
		"bad algorithm":   {"network: {builtin: diamond}\ntraining: {algorithm: dqn}\n", scenario.ErrInvalid},
		"negative speed":  {"speed: -1\nnetwork: {builtin: diamond}\n", scenario.ErrInvalid},
		"bad exploration": {"network: {builtin: diamond}\ntraining: {exploration: 2}\n", scenario.ErrInvalid},
		"bad episodes":    {"network: {builtin: diamond}\ntraining: {episodes: -3}\n", scenario.ErrInvalid},
		"bad congestion":  {"network: {builtin: diamond}\ncongestion: [{road: bd, delay: -1}]\n", scenario.ErrInvalid},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFixtureNeedsEndpoints(t *testing.T) {
	doc := `
network:
  junctions: [{id: A}, {id: B}]
  roads: [{id: ab, from: A, to: B, length: 1}]
`
	s, err := scenario.Parse([]byte(doc))
	require.NoError(t, err)
	_, err = s.Fixture(context.Background())
	assert.ErrorIs(t, err, scenario.ErrInvalid)
}

func TestBuiltin(t *testing.T) {
	s, err := scenario.Builtin(scenario.Grid)
	require.NoError(t, err)
	f, err := s.Fixture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0,0", f.Start)
	assert.Equal(t, "3,3", f.End)

	_, err = scenario.Builtin("moon")
	assert.ErrorIs(t, err, scenario.ErrUnknownBuiltin)
}

func TestMarshal(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "reference_time.yaml"))
	require.NoError(t, err)
	out, err := s.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "metric: time")

	back, err := scenario.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, s.Training, back.Training)
	assert.Equal(t, cost.Time, back.Metric.Metric())
}
