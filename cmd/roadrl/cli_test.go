package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/bfs"
)

func quietGlobals(out io.Writer) *Globals {
	return &Globals{
		Builtin: "reference",
		out:     out,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSearchCmd(t *testing.T) {
	var buf bytes.Buffer
	g := quietGlobals(&buf)

	require.NoError(t, (&SearchCmd{}).Run(g))
	out := buf.String()
	assert.Contains(t, out, "A -[gneE0]-> C")
	assert.Contains(t, out, "distance  500.0 m")
	assert.Contains(t, out, "cost      500.000 m")

	buf.Reset()
	g.Metric = "time"
	require.NoError(t, (&SearchCmd{}).Run(g))
	assert.Contains(t, buf.String(), "cost      0.840 min")
}

func TestTrainCmd(t *testing.T) {
	var buf bytes.Buffer
	g := quietGlobals(&buf)

	cmd := &TrainCmd{Training: Training{Exploration: -1, Seed: -1}, Log: true}
	require.NoError(t, cmd.Run(g))
	out := buf.String()
	assert.Contains(t, out, "q-learning: A -[gneE0]-> C")
	assert.Contains(t, out, "episode   ")
	assert.Contains(t, out, "completed")

	buf.Reset()
	cmd = &TrainCmd{Training: Training{Episodes: 3, Threshold: 5, Exploration: -1, Seed: -1}}
	assert.Error(t, cmd.Run(g))
	assert.Contains(t, buf.String(), "did not converge")
}

func TestCompareCmd(t *testing.T) {
	var buf bytes.Buffer
	g := quietGlobals(&buf)
	g.Builtin = "diamond"
	g.Metric = "t"

	require.NoError(t, (&CompareCmd{Training: Training{Algorithm: "q", Exploration: -1, Seed: -1}}).Run(g))
	out := buf.String()
	assert.Contains(t, out, "diamond: A → D (time)")
	assert.Contains(t, out, "dijkstra")
	assert.Contains(t, out, "q-learning")
	assert.NotContains(t, out, "sarsa")
}

func TestInspectCmd(t *testing.T) {
	var buf bytes.Buffer
	g := quietGlobals(&buf)

	require.NoError(t, (&InspectCmd{Junction: "A"}).Run(g))
	out := buf.String()
	assert.Contains(t, out, "junctions  14 (0 dead ends)")
	assert.Contains(t, out, "congestion gneE13")
	assert.Contains(t, out, "labels at A:")
	assert.Contains(t, out, "0  gneE0")
	assert.Contains(t, out, "reach      14 junctions within")
	assert.Contains(t, out, "fewest     A -[")
	assert.Contains(t, out, "-> N (5 roads)")

	assert.Error(t, (&InspectCmd{Junction: "Z"}).Run(g))
}

func TestInspectCmd_ReachabilityBounds(t *testing.T) {
	var buf bytes.Buffer
	g := quietGlobals(&buf)

	require.NoError(t, (&InspectCmd{Hops: 1}).Run(g))
	out := buf.String()
	assert.Contains(t, out, "within 1 hops of A")
	assert.Contains(t, out, "hop 1")
	assert.NotContains(t, out, "hop 2")
	assert.Contains(t, out, "fewest     N not reached")

	buf.Reset()
	require.NoError(t, (&InspectCmd{AvoidCongested: true}).Run(g))
	assert.Contains(t, buf.String(), "reach      ")

	assert.ErrorIs(t, (&InspectCmd{Hops: -1}).Run(g), bfs.ErrOptionViolation)
}

func TestScenarioFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "line.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: {builtin: line, size: 4}\n"), 0o644))

	var buf bytes.Buffer
	g := quietGlobals(&buf)
	g.Scenario = path
	require.NoError(t, (&SearchCmd{}).Run(g))
	assert.Contains(t, buf.String(), "J0 -[J0>J1]-> J1")
}

func TestRunsWithStore(t *testing.T) {
	var buf bytes.Buffer
	g := quietGlobals(&buf)
	g.Store = t.TempDir()

	require.NoError(t, (&SearchCmd{}).Run(g))
	buf.Reset()
	require.NoError(t, (&RunsCmd{Limit: 5}).Run(g))
	assert.Contains(t, buf.String(), "search dijkstra")

	assert.Error(t, (&RunsCmd{ID: "missing"}).Run(g))
}

func TestParseFlags(t *testing.T) {
	cli := NewCLI()
	parser, err := kong.New(cli, kong.Name("roadrl"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--metric", "time", "train", "-a", "sarsa", "-e", "10", "--start", "B"})
	require.NoError(t, err)
	assert.Equal(t, "train", kctx.Command())
	assert.Equal(t, "time", cli.Metric)
	assert.Equal(t, "reference", cli.Builtin)
	assert.Equal(t, "sarsa", cli.Train.Algorithm)
	assert.Equal(t, 10, cli.Train.Episodes)
	assert.Equal(t, -1.0, cli.Train.Exploration)
	assert.Equal(t, "B", cli.Train.Start)

	_, err = parser.Parse([]string{"--builtin", "moon", "search"})
	assert.Error(t, err)
}

func TestRunsNeedsStore(t *testing.T) {
	err := NewCLI().Execute([]string{"runs"})
	assert.EqualError(t, err, "runs needs --store")
}
