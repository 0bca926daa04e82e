// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/action"
	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/dijkstra"
	"github.com/katalvlaran/roadrl/netgen"
	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/qlearn"
	"github.com/katalvlaran/roadrl/runstore"
	"github.com/katalvlaran/roadrl/scenario"
)

// Engine runs searches and trainings over one network.
type Engine struct {
	name    string
	net     *network.Network
	labeler *action.Labeler
	model   *cost.Model
	log     *slog.Logger
	store   *runstore.Store
}

// New builds the labels and the cost model of net.
func New(net *network.Network, opts ...Option) (*Engine, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	cfg := Options{Logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	width := cfg.Width
	if width == 0 {
		width = lo.Max([]int{action.DefaultWidth, net.Stats().MaxOut})
	}
	labeler, err := action.New(net, action.WithWidth(width))
	if err != nil {
		return nil, fmt.Errorf("engine: labels: %w", err)
	}
	model, err := cost.New(net, cfg.Cost...)
	if err != nil {
		return nil, fmt.Errorf("engine: cost model: %w", err)
	}

	return &Engine{
		name:    cfg.Name,
		net:     net,
		labeler: labeler,
		model:   model,
		log:     cfg.Logger,
		store:   cfg.Store,
	}, nil
}

// FromFixture builds an engine over a fixture with its registries. Options given
// here are applied after the fixture's.
func FromFixture(f *netgen.Fixture, opts ...Option) (*Engine, error) {
	if f == nil {
		return nil, ErrNilNetwork
	}
	net, err := f.Network()
	if err != nil {
		return nil, err
	}
	base := []Option{WithName(f.Name), WithCostOptions(f.CostOptions()...)}
	return New(net, append(base, opts...)...)
}

// FromScenario resolves a scenario and builds its engine. The resolved fixture
// carries the start and end junctions.
func FromScenario(ctx context.Context, s *scenario.Scenario, opts ...Option) (*Engine, *netgen.Fixture, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, nil, err
	}
	net, err := f.Network()
	if err != nil {
		return nil, nil, err
	}
	base := []Option{WithName(s.Name), WithCostOptions(s.CostOptions(f)...)}
	e, err := New(net, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return e, f, nil
}

// Name returns the engine's label.
func (e *Engine) Name() string { return e.name }

// Network returns the road network.
func (e *Engine) Network() *network.Network { return e.net }

// Labeler returns the action labels.
func (e *Engine) Labeler() *action.Labeler { return e.labeler }

// Model returns the cost model.
func (e *Engine) Model() *cost.Model { return e.model }

// RouteDistance returns the length of roads in meters.
func (e *Engine) RouteDistance(roads ...string) (float64, error) {
	return e.model.RouteDistance(roads...)
}

// RouteTime returns the travel time of roads in minutes.
func (e *Engine) RouteTime(roads ...string) (float64, error) {
	return e.model.RouteTime(roads...)
}

// Search runs Dijkstra under the engine's metric.
func (e *Engine) Search(start, end string) (*dijkstra.Result, error) {
	res, err := dijkstra.Search(e.net, e.model, start, end)
	if err != nil {
		return nil, err
	}
	e.log.Info("search finished",
		"start", start, "end", end, "cost", res.Cost, "settled", res.Settled, "elapsed", res.Elapsed)
	e.record(runstore.Record{
		Kind:    runstore.Search,
		Start:   start,
		End:     end,
		Route:   res.Route,
		Cost:    res.Cost,
		Elapsed: res.Elapsed,
	}, MethodDijkstra)
	return res, nil
}

// Train runs a fresh trainer of the given algorithm until convergence.
func (e *Engine) Train(algorithm qlearn.Algorithm, start, end string, episodes, threshold int, opts ...TrainOption) (*qlearn.Result, error) {
	cfg := trainConfig{exploration: qlearn.DefaultExploration}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy, err := algorithm.Policy(cfg.exploration)
	if err != nil {
		return nil, err
	}
	env, err := qlearn.NewEnvironment(e.net, e.labeler, e.model, start, end)
	if err != nil {
		return nil, err
	}
	trainer, err := qlearn.New(env, policy, append([]qlearn.Option{qlearn.WithLogger(e.log)}, cfg.trainer...)...)
	if err != nil {
		return nil, err
	}
	res, err := trainer.Train(episodes, threshold)
	if err != nil {
		return nil, err
	}
	e.record(runstore.Record{
		Kind:    runstore.Train,
		Start:   start,
		End:     end,
		Route:   res.Route,
		Cost:    res.Cost,
		Episode: res.Episode,
		Elapsed: res.Elapsed,
	}, string(algorithm))
	return res, nil
}

// Compare runs Dijkstra and each algorithm on start → end. A failing method is
// reported with its error instead of aborting the comparison.
func (e *Engine) Compare(start, end string, episodes, threshold int, algorithms []qlearn.Algorithm, opts ...TrainOption) []Report {
	reports := make([]Report, 0, len(algorithms)+1)

	sr, err := e.Search(start, end)
	rep := e.report(MethodDijkstra, start, end, err)
	if err == nil {
		rep.Route, rep.Cost, rep.Elapsed = sr.Route, sr.Cost, sr.Elapsed
		e.evaluate(&rep)
	}
	reports = append(reports, rep)

	trained := lo.Map(algorithms, func(a qlearn.Algorithm, _ int) Report {
		tr, err := e.Train(a, start, end, episodes, threshold, opts...)
		rep := e.report(string(a), start, end, err)
		if err == nil {
			rep.Route, rep.Cost, rep.Episode, rep.Elapsed = tr.Route, tr.Cost, tr.Episode, tr.Elapsed
			e.evaluate(&rep)
		}
		return rep
	})
	return append(reports, trained...)
}

func (e *Engine) report(method, start, end string, err error) Report {
	rep := Report{Method: method, Metric: e.model.Metric().String(), Start: start, End: end}
	if err != nil {
		rep.Err = err.Error()
	}
	return rep
}

// evaluate fills both metrics of a found route.
func (e *Engine) evaluate(rep *Report) {
	rep.Distance, _ = e.model.RouteDistance(rep.Route.Roads...)
	rep.Time, _ = e.model.RouteTime(rep.Route.Roads...)
}

func (e *Engine) record(rec runstore.Record, algorithm string) {
	if e.store == nil {
		return
	}
	rec.Scenario = e.name
	rec.Algorithm = algorithm
	rec.Metric = e.model.Metric().String()
	rec.Distance, _ = e.model.RouteDistance(rec.Route.Roads...)
	rec.Time, _ = e.model.RouteTime(rec.Route.Roads...)
	if _, err := e.store.Put(rec); err != nil {
		e.log.Warn("run not recorded", "kind", rec.Kind, "err", err)
	}
}
