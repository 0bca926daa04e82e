// SPDX-License-Identifier: MIT

package qlearn

import (
	"fmt"

	"github.com/katalvlaran/roadrl/action"
	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/network"
)

// Environment is the routing task: a network, its action labels, a cost model,
// a start and a destination. It is read-only after NewEnvironment.
type Environment struct {
	net     *network.Network
	labeler *action.Labeler
	model   *cost.Model
	start   string
	end     string
	rewards Rewards
}

// EnvOption configures an Environment.
type EnvOption func(*Environment)

// WithRewards replaces the reward constants.
func WithRewards(r Rewards) EnvOption {
	return func(e *Environment) { e.rewards = r }
}

// NewEnvironment validates its inputs and returns the routing task.
func NewEnvironment(net *network.Network, labeler *action.Labeler, model *cost.Model,
	start, end string, opts ...EnvOption) (*Environment, error) {
	if net == nil || labeler == nil || model == nil {
		return nil, ErrNilInput
	}
	if model.Network() != net {
		return nil, fmt.Errorf("%w: cost model belongs to another network", ErrBadParameter)
	}
	if !net.HasJunction(start) {
		return nil, fmt.Errorf("%w: start %q", network.ErrInvalidIdentifier, start)
	}
	if !net.HasJunction(end) {
		return nil, fmt.Errorf("%w: destination %q", network.ErrInvalidIdentifier, end)
	}

	e := &Environment{
		net:     net,
		labeler: labeler,
		model:   model,
		start:   start,
		end:     end,
		rewards: DefaultRewards(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start returns the start junction.
func (e *Environment) Start() string { return e.start }

// End returns the destination junction.
func (e *Environment) End() string { return e.end }

// Rewards returns the reward constants.
func (e *Environment) Rewards() Rewards { return e.rewards }

// Network returns the road network.
func (e *Environment) Network() *network.Network { return e.net }

// Labeler returns the action labeler.
func (e *Environment) Labeler() *action.Labeler { return e.labeler }

// Model returns the cost model.
func (e *Environment) Model() *cost.Model { return e.model }

// Step applies action at state, where road is the road that brought the agent
// to state ("" at the start of an episode) and history holds every road driven
// so far this episode. Step never mutates its inputs and never fails: an unknown
// state simply has no exits.
func (e *Environment) Step(state, road string, act int, history []string) Transition {
	tr := Transition{State: state, Action: act, Next: state}

	out, _ := e.net.RoadsAt(state, network.Outgoing)
	next, ok := e.labeler.RoadFor(out, act)
	if !ok {
		tr.Reward = e.rewards.Invalid
		tr.Outcome = Invalid
		return tr
	}

	_, to, _ := e.net.Endpoints(next)
	tr.Road = next
	tr.Next = to

	switch {
	case to == e.end:
		tr.Reward = e.rewards.Completion
		tr.Outcome = Completed
	case e.net.OutDegree(to) == 0:
		tr.Reward = e.rewards.DeadEnd
		tr.Outcome = DeadEnd
	case road != "" && drivenBefore(history, road, next):
		tr.Reward = e.rewards.Loop
		tr.Outcome = Loop
	default:
		tr.Outcome = Traveling
	}
	return tr
}

// drivenBefore reports whether road a was immediately followed by road b in history.
func drivenBefore(history []string, a, b string) bool {
	for i := 0; i+1 < len(history); i++ {
		if history[i] == a && history[i+1] == b {
			return true
		}
	}
	return false
}
