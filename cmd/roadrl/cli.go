// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/bfs"
	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/engine"
	"github.com/katalvlaran/roadrl/netgen"
	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/qlearn"
	"github.com/katalvlaran/roadrl/runstore"
	"github.com/katalvlaran/roadrl/scenario"
	"github.com/katalvlaran/roadrl/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Verbose  bool   `short:"v" help:"Log every episode"`
	Quiet    bool   `short:"q" help:"Log errors only"`
	Scenario string `short:"s" type:"existingfile" help:"Scenario YAML file"`
	Builtin  string `short:"b" default:"reference" enum:"reference,diamond,grid,line" help:"Builtin network when no scenario is given"`
	Metric   string `short:"m" help:"Override the metric (distance, time)"`
	Store    string `type:"path" help:"Run store directory; runs are recorded when set"`

	out io.Writer
	log *slog.Logger
}

// session is everything a command needs, opened from the globals.
type session struct {
	scenario *scenario.Scenario
	fixture  *netgen.Fixture
	engine   *engine.Engine
	store    *runstore.Store
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return color.Output
	}
	return g.out
}

func (g *Globals) logger() *slog.Logger {
	if g.log == nil {
		g.log = newLogger(os.Stderr, g.Verbose, g.Quiet)
		slog.SetDefault(g.log)
	}
	return g.log
}

func (g *Globals) loadScenario() (*scenario.Scenario, error) {
	var (
		s   *scenario.Scenario
		err error
	)
	if g.Scenario != "" {
		s, err = scenario.Load(g.Scenario)
	} else {
		s, err = scenario.Builtin(g.Builtin)
	}
	if err != nil {
		return nil, err
	}
	if g.Metric != "" {
		m, err := cost.ParseMetric(g.Metric)
		if err != nil {
			return nil, err
		}
		s.Metric = scenario.MetricName(m)
	}
	return s, nil
}

func (g *Globals) open(ctx context.Context) (*session, error) {
	log := g.logger()
	s, err := g.loadScenario()
	if err != nil {
		return nil, err
	}

	sess := &session{scenario: s}
	opts := []engine.Option{engine.WithLogger(log)}
	if g.Store != "" {
		if sess.store, err = runstore.Open(g.Store); err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithStore(sess.store))
	}
	sess.engine, sess.fixture, err = engine.FromScenario(ctx, s, opts...)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	return sess, nil
}

// Endpoints are the optional start/end overrides.
type Endpoints struct {
	Start string `help:"Start junction (default from the scenario)"`
	End   string `help:"End junction (default from the scenario)"`
}

func (e Endpoints) resolve(f *netgen.Fixture) (string, string) {
	start, end := e.Start, e.End
	if start == "" {
		start = f.Start
	}
	if end == "" {
		end = f.End
	}
	return start, end
}

// Training are the training overrides. Zero or negative values keep the scenario's.
type Training struct {
	Algorithm   string  `short:"a" help:"q-learning or sarsa (default from the scenario)"`
	Episodes    int     `short:"e" help:"Episode budget"`
	Threshold   int     `short:"t" help:"Identical completed episodes needed to converge"`
	Exploration float64 `default:"-1" help:"SARSA exploration rate in [0, 1]"`
	Seed        int64   `default:"-1" help:"Random seed, -1 keeps the scenario's"`
}

func (t Training) apply(s *scenario.Scenario) ([]engine.TrainOption, int, int) {
	episodes, threshold := s.Training.Episodes, s.Training.Threshold
	if t.Episodes > 0 {
		episodes = t.Episodes
	}
	if t.Threshold > 0 {
		threshold = t.Threshold
	}
	rate := s.Exploration()
	if t.Exploration >= 0 {
		rate = t.Exploration
	}
	trainer := s.TrainOptions()
	if t.Seed >= 0 {
		trainer = append(trainer, qlearn.WithSeed(t.Seed))
	}
	return []engine.TrainOption{engine.WithExploration(rate), engine.WithTrainer(trainer...)}, episodes, threshold
}

func (t Training) algorithm(s *scenario.Scenario) (qlearn.Algorithm, error) {
	if t.Algorithm == "" {
		return s.Training.Algorithm, nil
	}
	return qlearn.ParseAlgorithm(t.Algorithm)
}

// SearchCmd runs Dijkstra.
type SearchCmd struct {
	Endpoints
}

// Run executes the search command.
func (c *SearchCmd) Run(g *Globals) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	start, end := c.resolve(sess.fixture)
	res, err := sess.engine.Search(start, end)
	if err != nil {
		return err
	}
	return printRoute(g.stdout(), sess.engine, engine.MethodDijkstra, res.Route, res.Cost, res.Elapsed, -1)
}

// TrainCmd trains a tabular agent.
type TrainCmd struct {
	Endpoints
	Training
	Log bool `help:"Print the episode log"`
}

// Run executes the train command.
func (c *TrainCmd) Run(g *Globals) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	algo, err := c.algorithm(sess.scenario)
	if err != nil {
		return err
	}
	opts, episodes, threshold := c.apply(sess.scenario)
	start, end := c.resolve(sess.fixture)

	res, err := sess.engine.Train(algo, start, end, episodes, threshold, opts...)
	if errors.Is(err, qlearn.ErrNotConverged) {
		color.New(color.FgRed).Fprintf(g.stdout(), "✗ %s did not converge within %d episodes\n", algo, episodes)
	}
	if err != nil {
		return err
	}

	w := g.stdout()
	if c.Log {
		for _, ep := range res.Log {
			fmt.Fprintf(w, "  %5d  %-9s  %4d steps  %8.1f  %s\n", ep.Index, ep.Outcome, ep.Steps, ep.Reward, ep.Route)
		}
	}
	return printRoute(w, sess.engine, string(algo), res.Route, res.Cost, res.Elapsed, res.Episode)
}

// CompareCmd runs Dijkstra and both learners on one pair.
type CompareCmd struct {
	Endpoints
	Training
}

// Run executes the compare command.
func (c *CompareCmd) Run(g *Globals) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	opts, episodes, threshold := c.apply(sess.scenario)
	start, end := c.resolve(sess.fixture)
	algos := []qlearn.Algorithm{qlearn.QLearning, qlearn.SARSA}
	if c.Algorithm != "" {
		a, err := qlearn.ParseAlgorithm(c.Algorithm)
		if err != nil {
			return err
		}
		algos = []qlearn.Algorithm{a}
	}

	w := g.stdout()
	color.New(color.Bold).Fprintf(w, "%s: %s → %s (%s)\n", sess.engine.Name(), start, end, sess.engine.Model().Metric())
	fmt.Fprintf(w, "%-11s %10s %10s %9s %8s %10s  %s\n", "method", "cost", "distance", "time", "episode", "elapsed", "route")
	for _, r := range sess.engine.Compare(start, end, episodes, threshold, algos, opts...) {
		if !r.OK() {
			color.New(color.FgRed).Fprintf(w, "%-11s %s\n", r.Method, r.Err)
			continue
		}
		episode := "-"
		if r.Method != engine.MethodDijkstra {
			episode = fmt.Sprint(r.Episode)
		}
		fmt.Fprintf(w, "%-11s %10.3f %8.1f m %5.2f min %8s %10s  %s\n",
			r.Method, r.Cost, r.Distance, r.Time, episode, r.Elapsed.Round(time.Microsecond), r.Route)
	}
	return nil
}

// InspectCmd prints the network, its registries, what the start reaches and
// optionally the labels at a junction.
type InspectCmd struct {
	Junction       string `short:"j" help:"Print the action labels at this junction"`
	Hops           int    `help:"Stop the reachability walk after this many roads (0 = no limit)"`
	AvoidCongested bool   `help:"Leave congested roads out of the reachability walk"`
}

// Run executes the inspect command.
func (c *InspectCmd) Run(g *Globals) error {
	ctx := context.Background()
	sess, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	w := g.stdout()
	e := sess.engine
	st := e.Network().Stats()
	m := e.Model()
	color.New(color.Bold).Fprintf(w, "%s\n", e.Name())
	fmt.Fprintf(w, "  junctions  %d (%d dead ends)\n", st.Junctions, st.DeadEnds)
	fmt.Fprintf(w, "  roads      %d, %.1f m total\n", st.Roads, st.TotalLength)
	fmt.Fprintf(w, "  labels     %d per junction (busiest has %d exits)\n", e.Labeler().Width(), st.MaxOut)
	fmt.Fprintf(w, "  metric     %s at %.1f km/h\n", m.Metric(), m.Speed())
	fmt.Fprintf(w, "  endpoints  %s → %s\n", sess.fixture.Start, sess.fixture.End)
	for _, rid := range m.Congested() {
		fmt.Fprintf(w, "  congestion %-10s +%.1f min\n", rid, m.Delay(rid))
	}
	for _, lg := range m.Lights() {
		fmt.Fprintf(w, "  light      %-10s +%.1f min\n", strings.Join(lg.Junctions, ","), lg.Delay)
	}
	if err := c.reach(ctx, w, e, sess.fixture.Start, sess.fixture.End); err != nil {
		return err
	}

	if c.Junction == "" {
		return nil
	}
	labels, err := e.Labeler().LabelsAt(c.Junction)
	if err != nil {
		return err
	}
	keys := make([]int, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fmt.Fprintf(w, "labels at %s:\n", c.Junction)
	for _, k := range keys {
		_, to, _ := e.Network().Endpoints(labels[k])
		fmt.Fprintf(w, "  %d  %-10s → %s\n", k, labels[k], to)
	}
	return nil
}

// reach walks outgoing roads from start and prints the hop rings and the
// fewest-roads route to end.
func (c *InspectCmd) reach(ctx context.Context, w io.Writer, e *engine.Engine, start, end string) error {
	var rings [][]string
	opts := []bfs.Option{
		bfs.WithContext(ctx),
		bfs.WithMaxDepth(c.Hops),
		bfs.WithOnVisit(func(id string, depth int) error {
			for len(rings) <= depth {
				rings = append(rings, nil)
			}
			rings[depth] = append(rings[depth], id)
			return nil
		}),
	}
	if c.AvoidCongested {
		m := e.Model()
		opts = append(opts, bfs.WithFilterRoad(func(_, road string) bool {
			return m.Delay(road) == 0
		}))
	}

	res, err := bfs.BFS(e.Network(), start, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  reach      %d junctions within %d hops of %s\n", len(res.Order), len(rings)-1, start)
	for d := 1; d < len(rings); d++ {
		fmt.Fprintf(w, "  hop %-6d %s\n", d, strings.Join(rings[d], " "))
	}
	route, err := res.RouteTo(end)
	if errors.Is(err, bfs.ErrNotReached) {
		color.New(color.FgYellow).Fprintf(w, "  fewest     %s not reached\n", end)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  fewest     %s (%d roads)\n", route, len(route.Roads))
	return nil
}

// ServeCmd starts the HTTP API.
type ServeCmd struct {
	Addr  string `default:":8080" help:"Listen address"`
	Cache int    `default:"256" help:"Search cache size"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := []server.Option{server.WithLogger(g.logger()), server.WithCacheSize(c.Cache)}
	if sess.store != nil {
		opts = append(opts, server.WithStore(sess.store))
	}
	srv, err := server.New(sess.engine, opts...)
	if err != nil {
		return err
	}
	color.Green("Serving %s on %s", sess.engine.Name(), c.Addr)
	return srv.Serve(ctx, c.Addr)
}

// RunsCmd lists the run store.
type RunsCmd struct {
	ID    string `arg:"" optional:"" help:"Show one run"`
	Limit int    `short:"n" default:"20" help:"Maximum runs listed"`
}

// Run executes the runs command.
func (c *RunsCmd) Run(g *Globals) error {
	if g.Store == "" {
		return errors.New("runs needs --store")
	}
	g.logger()
	store, err := runstore.Open(g.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	w := g.stdout()
	if c.ID != "" {
		rec, err := store.Get(c.ID)
		if err != nil {
			return err
		}
		printRecord(w, rec)
		fmt.Fprintf(w, "  route %s\n", rec.Route)
		return nil
	}

	recs, err := store.List(c.Limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	for _, rec := range recs {
		printRecord(w, rec)
	}
	return nil
}

func printRecord(w io.Writer, rec runstore.Record) {
	fmt.Fprintf(w, "%s  %s  %-6s %-10s %s %s → %s  %.1f m  %.2f min\n",
		rec.ID, rec.CreatedAt.Format(time.RFC3339), rec.Kind, rec.Algorithm,
		rec.Scenario, rec.Start, rec.End, rec.Distance, rec.Time)
}

func printRoute(w io.Writer, e *engine.Engine, method string, route network.Route, total float64, elapsed time.Duration, episode int) error {
	dist, err := e.RouteDistance(route.Roads...)
	if err != nil {
		return err
	}
	minutes, err := e.RouteTime(route.Roads...)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(w, "✓ %s: %s\n", method, route)
	fmt.Fprintf(w, "  roads     %s\n", strings.Join(route.Roads, " "))
	fmt.Fprintf(w, "  cost      %.3f %s\n", total, e.Model().Metric().Unit())
	fmt.Fprintf(w, "  distance  %.1f m\n", dist)
	fmt.Fprintf(w, "  time      %.2f min\n", minutes)
	if episode >= 0 {
		fmt.Fprintf(w, "  episode   %d\n", episode)
	}
	fmt.Fprintf(w, "  elapsed   %s\n", elapsed.Round(time.Microsecond))
	return nil
}

// CLI is the command tree.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version information"`

	Search  SearchCmd  `cmd:"" help:"Shortest route with Dijkstra"`
	Train   TrainCmd   `cmd:"" help:"Train a tabular agent until its route converges"`
	Compare CompareCmd `cmd:"" help:"Compare Dijkstra with the learners"`
	Inspect InspectCmd `cmd:"" help:"Describe the network and its registries"`
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API"`
	Runs    RunsCmd    `cmd:"" help:"List recorded runs"`
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	return &CLI{}
}

// Execute parses command-line arguments and executes the selected command.
func (c *CLI) Execute(args []string) error {
	parser, err := kong.New(c,
		kong.Name("roadrl"),
		kong.Description("Route finding with Dijkstra and tabular reinforcement learning"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": Version},
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(&c.Globals)
}
