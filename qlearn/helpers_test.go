package qlearn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadrl/action"
	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/netgen"
	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/qlearn"
)

func envFor(t *testing.T, n *network.Network, start, end string, costOpts ...cost.Option) *qlearn.Environment {
	t.Helper()
	lab, err := action.New(n)
	require.NoError(t, err)
	m, err := cost.New(n, costOpts...)
	require.NoError(t, err)
	env, err := qlearn.NewEnvironment(n, lab, m, start, end)
	require.NoError(t, err)
	return env
}

func fixtureEnv(t *testing.T, f *netgen.Fixture, metric cost.Metric) *qlearn.Environment {
	t.Helper()
	n, err := f.Network()
	require.NoError(t, err)
	return envFor(t, n, f.Start, f.End, append(f.CostOptions(), cost.WithMetric(metric))...)
}

// deadEndDiamond is A → C (label 0, dead end) and A → B → D.
func deadEndDiamond(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.New(
		[]network.Junction{{ID: "A"}, {ID: "B", X: 100, Y: -100}, {ID: "C", X: 100, Y: 100}, {ID: "D", X: 200}},
		[]network.Road{
			{ID: "ab", From: "A", To: "B", Length: 141},
			{ID: "ac", From: "A", To: "C", Length: 141},
			{ID: "bd", From: "B", To: "D", Length: 141},
		},
	)
	require.NoError(t, err)
	return n
}

// triangle is A → B → C → A with an exit C → D.
func triangle(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.New(
		[]network.Junction{{ID: "A"}, {ID: "B", X: 10}, {ID: "C", X: 5, Y: 10}, {ID: "D", X: 5, Y: 20}},
		[]network.Road{
			{ID: "ab", From: "A", To: "B", Length: 10},
			{ID: "bc", From: "B", To: "C", Length: 10},
			{ID: "ca", From: "C", To: "A", Length: 10},
			{ID: "cd", From: "C", To: "D", Length: 10},
		},
	)
	require.NoError(t, err)
	return n
}
