package dijkstra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/dijkstra"
	"github.com/katalvlaran/roadrl/netgen"
	"github.com/katalvlaran/roadrl/network"
)

func build(t *testing.T, js []network.Junction, rs []network.Road, opts ...cost.Option) (*network.Network, *cost.Model) {
	t.Helper()
	n, err := network.New(js, rs)
	require.NoError(t, err)
	m, err := cost.New(n, opts...)
	require.NoError(t, err)
	return n, m
}

func fixture(t *testing.T, f *netgen.Fixture, metric cost.Metric) (*network.Network, *cost.Model) {
	t.Helper()
	n, err := f.Network()
	require.NoError(t, err)
	m, err := cost.New(n, append(f.CostOptions(), cost.WithMetric(metric))...)
	require.NoError(t, err)
	return n, m
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSearch_Validation(t *testing.T) {
	n, m := build(t,
		[]network.Junction{{ID: "A"}, {ID: "B", X: 1}},
		[]network.Road{{ID: "ab", From: "A", To: "B", Length: 1}},
	)
	other, _ := build(t, []network.Junction{{ID: "A"}}, nil)

	_, err := dijkstra.Search(nil, m, "A", "B")
	assert.ErrorIs(t, err, dijkstra.ErrNilNetwork)

	_, err = dijkstra.Search(n, nil, "A", "B")
	assert.ErrorIs(t, err, dijkstra.ErrNilModel)

	_, err = dijkstra.Search(other, m, "A", "A")
	assert.ErrorIs(t, err, dijkstra.ErrModelMismatch)

	_, err = dijkstra.Search(n, m, "X", "B")
	assert.ErrorIs(t, err, network.ErrInvalidIdentifier)

	_, err = dijkstra.Search(n, m, "A", "Y")
	assert.ErrorIs(t, err, network.ErrInvalidIdentifier)

	assert.Panics(t, func() { dijkstra.WithMaxCost(-1) })
}

// ------------------------------------------------------------------------
// 2. Basic routes
// ------------------------------------------------------------------------

func TestSearch_LineByDistance(t *testing.T) {
	n, m := build(t,
		[]network.Junction{{ID: "A"}, {ID: "B", X: 10}, {ID: "C", X: 20}},
		[]network.Road{
			{ID: "ab", From: "A", To: "B", Length: 10},
			{ID: "bc", From: "B", To: "C", Length: 10},
		},
	)
	res, err := dijkstra.Search(n, m, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Route.Junctions)
	assert.Equal(t, []string{"ab", "bc"}, res.Route.Roads)
	assert.Equal(t, 20.0, res.Cost)
	assert.NoError(t, res.Route.Validate(n))
}

func TestSearch_StartIsDestination(t *testing.T) {
	n, m := fixture(t, netgen.Diamond(), cost.Distance)
	res, err := dijkstra.Search(n, m, "B", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, res.Route.Junctions)
	assert.Empty(t, res.Route.Roads)
	assert.Zero(t, res.Cost)
}

func TestSearch_DiamondByTimeAvoidsCongestion(t *testing.T) {
	n, m := fixture(t, netgen.Diamond(), cost.Time)
	res, err := dijkstra.Search(n, m, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, res.Route.Junctions)
	assert.Equal(t, []string{"ac", "cd"}, res.Route.Roads)
}

// ------------------------------------------------------------------------
// 3. Reference network: optimality and cost agreement
// ------------------------------------------------------------------------

func TestSearch_ReferenceByDistance(t *testing.T) {
	n, m := fixture(t, netgen.Reference(), cost.Distance)
	res, err := dijkstra.Search(n, m, "A", "N")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "F", "I", "L", "N"}, res.Route.Junctions)
	assert.Equal(t, []string{"gneE0", "gneE1", "gneE2", "gneE3", "gneE4"}, res.Route.Roads)
	assert.InDelta(t, 500.0, res.Cost, 1e-9)
	assert.Positive(t, res.Settled)
}

func TestSearch_ReferenceByTime(t *testing.T) {
	n, m := fixture(t, netgen.Reference(), cost.Time)
	res, err := dijkstra.Search(n, m, "A", "N")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"gneE0", "gneE1", "-gneE15", "gneE7", "gneE8", "gneE9", "gneE4"},
		res.Route.Roads)

	// 700 m at 50 km/h, no delays on this detour.
	assert.InDelta(t, 0.84, res.Cost, 1e-9)
}

func TestSearch_CostMatchesModelAndBeatsAlternatives(t *testing.T) {
	alternatives := [][]string{
		{"gneE0", "gneE1", "gneE2", "gneE3", "gneE4"},                         // straight through F–I
		{"gneE0", "-gneE5", "gneE6", "gneE7", "gneE8", "gneE9", "gneE4"},      // top row via B
		{"gneE0", "gneE10", "gneE11", "gneE12", "gneE13", "-gneE14", "gneE4"}, // bottom row
		{"gneE0", "gneE1", "-gneE15", "gneE7", "gneE17", "gneE3", "gneE4"},    // up then through I
	}
	for _, metric := range []cost.Metric{cost.Distance, cost.Time} {
		t.Run(metric.String(), func(t *testing.T) {
			n, m := fixture(t, netgen.Reference(), metric)
			res, err := dijkstra.Search(n, m, "A", "N")
			require.NoError(t, err)

			own, err := m.RouteCost(res.Route.Roads...)
			require.NoError(t, err)
			assert.InDelta(t, own, res.Cost, 1e-9)

			for _, alt := range alternatives {
				c, err := m.RouteCost(alt...)
				require.NoError(t, err)
				assert.LessOrEqual(t, res.Cost, c+1e-9, "alternative %v", alt)
			}
		})
	}
}

func TestSearch_Idempotent(t *testing.T) {
	n, m := fixture(t, netgen.Reference(), cost.Time)
	first, err := dijkstra.Search(n, m, "A", "N")
	require.NoError(t, err)
	second, err := dijkstra.Search(n, m, "A", "N")
	require.NoError(t, err)
	assert.True(t, first.Route.Equal(second.Route))
	assert.Equal(t, first.Cost, second.Cost)
}

func TestSearch_MultiJunctionLightGroupChargedOnce(t *testing.T) {
	// At 0.6 km/h every 10 m takes one minute. A B C D crosses the {B, C}
	// intersection once: 3 + 10 = 13 minutes, cheaper than A E D at 15.
	n, m := build(t,
		[]network.Junction{
			{ID: "A"}, {ID: "B", X: 10}, {ID: "C", X: 20}, {ID: "D", X: 30}, {ID: "E", X: 15, Y: 50},
		},
		[]network.Road{
			{ID: "ab", From: "A", To: "B", Length: 10},
			{ID: "bc", From: "B", To: "C", Length: 10},
			{ID: "cd", From: "C", To: "D", Length: 10},
			{ID: "ae", From: "A", To: "E", Length: 100},
			{ID: "ed", From: "E", To: "D", Length: 50},
		},
		cost.WithMetric(cost.Time),
		cost.WithSpeed(0.6),
		cost.WithTrafficLight(10, "B", "C"),
	)

	res, err := dijkstra.Search(n, m, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Route.Junctions)
	assert.InDelta(t, 13.0, res.Cost, 1e-9)

	want, err := m.RouteCost(res.Route.Roads...)
	require.NoError(t, err)
	assert.InDelta(t, want, res.Cost, 1e-9)

	detour, err := m.RouteCost("ae", "ed")
	require.NoError(t, err)
	assert.InDelta(t, 15.0, detour, 1e-9)
	assert.LessOrEqual(t, res.Cost, detour)
}

func TestSearch_StartInsideLightGroup(t *testing.T) {
	// Leaving B toward C enters the group as far as the route is concerned.
	n, m := build(t,
		[]network.Junction{{ID: "B"}, {ID: "C", X: 10}, {ID: "D", X: 20}, {ID: "F", Y: 10}},
		[]network.Road{
			{ID: "bc", From: "B", To: "C", Length: 10},
			{ID: "cd", From: "C", To: "D", Length: 10},
			{ID: "bf", From: "B", To: "F", Length: 20},
			{ID: "fd", From: "F", To: "D", Length: 20},
		},
		cost.WithMetric(cost.Time),
		cost.WithSpeed(0.6),
		cost.WithTrafficLight(10, "B", "C"),
	)

	res, err := dijkstra.Search(n, m, "B", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "F", "D"}, res.Route.Junctions)
	assert.InDelta(t, 4.0, res.Cost, 1e-9)

	want, err := m.RouteCost(res.Route.Roads...)
	require.NoError(t, err)
	assert.InDelta(t, want, res.Cost, 1e-9)
}

// ------------------------------------------------------------------------
// 4. Failure modes
// ------------------------------------------------------------------------

func TestSearch_NoRoute(t *testing.T) {
	n, m := build(t,
		[]network.Junction{{ID: "A"}, {ID: "B", X: 1}, {ID: "C", X: 2}},
		[]network.Road{{ID: "ba", From: "B", To: "A", Length: 1}, {ID: "bc", From: "B", To: "C", Length: 1}},
	)
	_, err := dijkstra.Search(n, m, "A", "C")
	assert.ErrorIs(t, err, dijkstra.ErrNoRoute)
}

func TestSearch_ParallelRoadsAreAmbiguous(t *testing.T) {
	n, m := build(t,
		[]network.Junction{{ID: "A"}, {ID: "B", X: 1}},
		[]network.Road{
			{ID: "fast", From: "A", To: "B", Length: 1},
			{ID: "slow", From: "A", To: "B", Length: 3},
		},
	)
	_, err := dijkstra.Search(n, m, "A", "B")
	assert.ErrorIs(t, err, dijkstra.ErrAmbiguousEdge)
}

func TestSearch_MaxCostPrunes(t *testing.T) {
	n, m := fixture(t, netgen.Reference(), cost.Distance)

	_, err := dijkstra.Search(n, m, "A", "N", dijkstra.WithMaxCost(400))
	assert.ErrorIs(t, err, dijkstra.ErrNoRoute)

	res, err := dijkstra.Search(n, m, "A", "N", dijkstra.WithMaxCost(500))
	require.NoError(t, err)
	assert.InDelta(t, 500.0, res.Cost, 1e-9)
}
