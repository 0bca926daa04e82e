// SPDX-License-Identifier: MIT

package qlearn

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/bfs"
	"github.com/katalvlaran/roadrl/network"
)

// Trainer runs episodes against an Environment with one Policy.
type Trainer struct {
	env    *Environment
	policy Policy
	opts   Options
	table  *Table
	credit *creditor
	rng    *rand.Rand
	log    *slog.Logger
}

// New returns a Trainer with a zeroed table over every junction of env.
func New(env *Environment, policy Policy, opts ...Option) (*Trainer, error) {
	if env == nil || policy == nil {
		return nil, ErrNilInput
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	table := NewTable(env.net.Junctions(), env.labeler.Width())
	return &Trainer{
		env:    env,
		policy: policy,
		opts:   cfg,
		table:  table,
		credit: newCreditor(env, table),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		log:    cfg.Logger,
	}, nil
}

// Table returns the trainer's value table. It is mutated by Train.
func (t *Trainer) Table() *Table { return t.table }

// Train resets the table and runs up to episodes episodes. It returns as soon as
// an episode with index ≥ threshold completes and the last threshold episodes all
// drove the same route.
//
// Errors:
//   - ErrBadParameter if episodes < 1, threshold < 1 or start == destination.
//   - ErrUnreachable if no road sequence leads from start to destination. The
//     error also wraps ErrNotConverged, since no episode could ever complete.
//   - ErrNotConverged if the budget is exhausted.
func (t *Trainer) Train(episodes, threshold int) (*Result, error) {
	started := time.Now()

	if episodes < 1 || threshold < 1 {
		return nil, fmt.Errorf("%w: episodes=%d threshold=%d", ErrBadParameter, episodes, threshold)
	}
	if t.env.start == t.env.end {
		return nil, fmt.Errorf("%w: start equals destination %q", ErrBadParameter, t.env.start)
	}
	ok, err := bfs.Reachable(t.env.net, t.env.start, t.env.end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w (%w): %s → %s", ErrUnreachable, ErrNotConverged, t.env.start, t.env.end)
	}

	t.table.Reset()
	t.credit.reset()
	t.rng = rand.New(rand.NewSource(t.opts.Seed))

	t.log.Info("training started",
		"start", t.env.start, "end", t.env.end,
		"episodes", episodes, "threshold", threshold)

	entries := make([]Episode, 0, episodes)
	for i := 0; i < episodes; i++ {
		ep, err := t.episode(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ep)
		t.log.Debug("episode",
			"index", i, "outcome", ep.Outcome.String(), "steps", ep.Steps,
			"reward", ep.Reward, "route", ep.Route.String())

		if i < threshold || ep.Outcome != Completed || !stable(entries, threshold) {
			continue
		}

		total, err := t.env.model.RouteCost(ep.Route.Roads...)
		if err != nil {
			return nil, err
		}
		res := &Result{
			Route:   ep.Route,
			Episode: i,
			Log:     entries,
			Cost:    total,
			Elapsed: time.Since(started),
		}
		t.log.Info("training converged",
			"episode", i, "cost", total, "elapsed", res.Elapsed, "route", ep.Route.String())
		return res, nil
	}

	t.log.Warn("training did not converge", "episodes", episodes, "threshold", threshold)
	return nil, fmt.Errorf("%w: %d episodes, threshold %d", ErrNotConverged, episodes, threshold)
}

// episode runs one episode from the start with no current road.
func (t *Trainer) episode(index int) (Episode, error) {
	state, road := t.env.start, ""
	junctions := []string{state}
	roads := []string{}
	ep := Episode{Index: index, Outcome: Truncated}

	for ep.Steps < t.opts.MaxSteps {
		row, _ := t.table.row(state)
		act := t.policy(row, t.rng)

		tr := t.env.Step(state, road, act, roads)
		t.table.learn(state, act, tr.Reward, tr.Next, t.opts.LearningRate, t.opts.Discount)
		ep.Steps++
		ep.Reward += tr.Reward

		if tr.Outcome == Invalid {
			continue
		}
		roads = append(roads, tr.Road)
		junctions = append(junctions, tr.Next)
		state, road = tr.Next, tr.Road

		if tr.Outcome == Completed {
			if _, err := t.credit.completed(junctions, roads); err != nil {
				return Episode{}, err
			}
			ep.Outcome = Completed
			break
		}
		if tr.Outcome == DeadEnd {
			t.credit.deadEnd(junctions, roads)
			ep.Outcome = DeadEnd
			break
		}
	}

	ep.Route = network.Route{Junctions: junctions, Roads: roads}
	return ep, nil
}

// Rollout follows the greedy policy from the start without learning and returns
// the route driven and how it ended. Loops are cut by the step cap.
func (t *Trainer) Rollout() (network.Route, Outcome) {
	state, road := t.env.start, ""
	junctions := []string{state}
	roads := []string{}
	greedy := Greedy()

	for steps := 0; steps < t.opts.MaxSteps; steps++ {
		row, _ := t.table.row(state)
		tr := t.env.Step(state, road, greedy(row, nil), roads)
		if tr.Outcome == Invalid {
			return network.Route{Junctions: junctions, Roads: roads}, Invalid
		}
		roads = append(roads, tr.Road)
		junctions = append(junctions, tr.Next)
		state, road = tr.Next, tr.Road
		if tr.Outcome == Completed || tr.Outcome == DeadEnd {
			return network.Route{Junctions: junctions, Roads: roads}, tr.Outcome
		}
	}
	return network.Route{Junctions: junctions, Roads: roads}, Truncated
}

// stable reports whether the last n log entries drove the same route.
func stable(entries []Episode, n int) bool {
	if len(entries) < n {
		return false
	}
	last := entries[len(entries)-1]
	for _, ep := range entries[len(entries)-n : len(entries)-1] {
		if !ep.sameRoute(last) {
			return false
		}
	}
	return true
}
