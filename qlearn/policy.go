// SPDX-License-Identifier: MIT

package qlearn

import (
	"fmt"
	"math/rand"
	"strings"
)

// DefaultExploration is the exploration rate used by SARSA when none is given.
const DefaultExploration = 0.1

// Algorithm names a policy family.
type Algorithm string

const (
	// QLearning acts greedily.
	QLearning Algorithm = "q-learning"
	// SARSA acts epsilon-greedily.
	SARSA Algorithm = "sarsa"
)

// ParseAlgorithm accepts "q-learning", "qlearning", "q" and "sarsa", case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q-learning", "qlearning", "q":
		return QLearning, nil
	case "sarsa":
		return SARSA, nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm %q", ErrBadParameter, s)
	}
}

// Policy returns the policy of the algorithm. rate is ignored by QLearning.
func (a Algorithm) Policy(rate float64) (Policy, error) {
	switch a {
	case QLearning:
		return Greedy(), nil
	case SARSA:
		if !(rate >= 0 && rate <= 1) {
			return nil, fmt.Errorf("%w: exploration rate %v", ErrBadParameter, rate)
		}
		return EpsilonGreedy(rate), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrBadParameter, string(a))
	}
}

// Policy picks an action from the values of the current state.
// row is never empty; rng is owned by the trainer.
type Policy func(row []float64, rng *rand.Rand) int

// Greedy returns the Q-learning policy: argmax, ties to the lowest label.
func Greedy() Policy {
	return func(row []float64, _ *rand.Rand) int {
		return argmax(row)
	}
}

// EpsilonGreedy returns the exploring policy: with probability rate a uniform
// label from the full action space, greedy otherwise. rate must lie in [0, 1].
func EpsilonGreedy(rate float64) Policy {
	if !(rate >= 0 && rate <= 1) {
		panic(fmt.Sprintf("qlearn: exploration rate %v not in [0, 1]", rate))
	}
	return func(row []float64, rng *rand.Rand) int {
		if rng.Float64() < rate {
			return rng.Intn(len(row))
		}
		return argmax(row)
	}
}

func argmax(row []float64) int {
	best := 0
	for a := 1; a < len(row); a++ {
		if row[a] > row[best] {
			best = a
		}
	}
	return best
}
