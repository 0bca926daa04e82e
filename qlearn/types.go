// SPDX-License-Identifier: MIT

package qlearn

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/network"
)

// Defaults for the trainer options.
const (
	DefaultLearningRate = 0.9
	DefaultDiscount     = 0.1
	DefaultMaxSteps     = 1000
	DefaultSeed         = 1
)

// Sentinel errors.
var (
	// ErrNotConverged is returned when the episode budget runs out before the
	// route stabilizes. Callers treat it as fatal; retrying needs a larger budget.
	ErrNotConverged = errors.New("qlearn: training did not converge")

	// ErrUnreachable is returned when the destination cannot be reached from the start.
	ErrUnreachable = errors.New("qlearn: destination unreachable from start")

	// ErrBadParameter is returned for invalid training parameters.
	ErrBadParameter = errors.New("qlearn: bad parameter")

	// ErrNilInput is returned when a required collaborator is nil.
	ErrNilInput = errors.New("qlearn: nil input")
)

// Outcome classifies a step or the end of an episode.
type Outcome int

const (
	// Traveling is a valid move that ends nowhere special.
	Traveling Outcome = iota
	// Invalid is an action without a matching exit; the state does not change.
	Invalid
	// Loop is a move repeating a road pair already driven this episode.
	Loop
	// Completed is a move onto the destination.
	Completed
	// DeadEnd is a move onto a junction without exits.
	DeadEnd
	// Truncated marks an episode stopped by the step cap. Steps never return it.
	Truncated
)

var outcomeNames = [...]string{"traveling", "invalid", "loop", "completed", "dead-end", "truncated"}

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Terminal reports whether the outcome ends an episode.
func (o Outcome) Terminal() bool {
	return o == Completed || o == DeadEnd || o == Truncated
}

// Rewards holds the reward-shaping constants.
type Rewards struct {
	Completion float64 `json:"completion" yaml:"completion"`
	Invalid    float64 `json:"invalid" yaml:"invalid"`
	DeadEnd    float64 `json:"dead_end" yaml:"dead_end"`
	Loop       float64 `json:"loop" yaml:"loop"`
	Bonus      float64 `json:"bonus" yaml:"bonus"` // added along a strictly cheaper completed route
	Tail       float64 `json:"tail" yaml:"tail"`   // added along the unbranching tail of a dead end
}

// DefaultRewards returns 100 / −100 / −100 / −50 with a +100 bonus and a −100 tail penalty.
func DefaultRewards() Rewards {
	return Rewards{
		Completion: 100,
		Invalid:    -100,
		DeadEnd:    -100,
		Loop:       -50,
		Bonus:      100,
		Tail:       -100,
	}
}

// Transition is the result of one Environment.Step.
type Transition struct {
	State   string  // junction the step started at
	Action  int     // label chosen
	Road    string  // road taken, "" when Invalid
	Next    string  // junction after the step
	Reward  float64 // immediate reward
	Outcome Outcome
}

// Episode is one entry of the training log.
type Episode struct {
	Index   int           `json:"index"`
	Route   network.Route `json:"route"`
	Outcome Outcome       `json:"outcome"`
	Steps   int           `json:"steps"`
	Reward  float64       `json:"reward"` // sum of immediate rewards
}

// sameRoute reports whether two episodes drove the identical junction and road sequence.
func (e Episode) sameRoute(o Episode) bool { return e.Route.Equal(o.Route) }

// Result is returned by a converged Train.
type Result struct {
	Route   network.Route `json:"route"`
	Episode int           `json:"episode"` // zero-based index of the converging episode
	Log     []Episode     `json:"log"`
	Cost    float64       `json:"cost"`
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a Trainer.
type Options struct {
	LearningRate float64
	Discount     float64
	MaxSteps     int
	Seed         int64
	Logger       *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLearningRate sets lr, which must lie in (0, 1].
func WithLearningRate(lr float64) Option {
	return func(o *Options) { o.LearningRate = lr }
}

// WithDiscount sets γ, which must lie in [0, 1].
func WithDiscount(g float64) Option {
	return func(o *Options) { o.Discount = g }
}

// WithMaxSteps caps the steps of one episode. The cap must be ≥ 1.
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.MaxSteps = n }
}

// WithSeed seeds the random source used by exploring policies.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns lr 0.9, γ 0.1, a 1000-step cap, seed 1 and slog.Default().
func DefaultOptions() Options {
	return Options{
		LearningRate: DefaultLearningRate,
		Discount:     DefaultDiscount,
		MaxSteps:     DefaultMaxSteps,
		Seed:         DefaultSeed,
		Logger:       slog.Default(),
	}
}

func (o Options) validate() error {
	switch {
	case !(o.LearningRate > 0 && o.LearningRate <= 1):
		return fmt.Errorf("%w: learning rate %v not in (0, 1]", ErrBadParameter, o.LearningRate)
	case !(o.Discount >= 0 && o.Discount <= 1):
		return fmt.Errorf("%w: discount %v not in [0, 1]", ErrBadParameter, o.Discount)
	case o.MaxSteps < 1:
		return fmt.Errorf("%w: max steps %d < 1", ErrBadParameter, o.MaxSteps)
	}
	return nil
}
