package qlearn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadrl/qlearn"
)

func TestGreedy_TiesToLowestLabel(t *testing.T) {
	p := qlearn.Greedy()
	assert.Equal(t, 0, p([]float64{0, 0, 0, 0}, nil))
	assert.Equal(t, 1, p([]float64{-90, 0, 0, 0}, nil))
	assert.Equal(t, 2, p([]float64{1, 1, 3, 3}, nil))
}

func TestEpsilonGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	never := qlearn.EpsilonGreedy(0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 3, never([]float64{0, 1, 2, 5}, rng))
	}

	always := qlearn.EpsilonGreedy(1)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		a := always([]float64{0, 1, 2, 5}, rng)
		assert.True(t, a >= 0 && a < 4)
		seen[a] = true
	}
	assert.Len(t, seen, 4)

	assert.Panics(t, func() { qlearn.EpsilonGreedy(1.5) })
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]qlearn.Algorithm{
		"q-learning": qlearn.QLearning,
		"QLearning":  qlearn.QLearning,
		" q ":        qlearn.QLearning,
		"SARSA":      qlearn.SARSA,
	} {
		got, err := qlearn.ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := qlearn.ParseAlgorithm("dqn")
	assert.ErrorIs(t, err, qlearn.ErrBadParameter)
}

func TestAlgorithmPolicy(t *testing.T) {
	p, err := qlearn.QLearning.Policy(5)
	require.NoError(t, err, "rate is ignored for the greedy policy")
	assert.Equal(t, 2, p([]float64{0, 0, 1, 0}, nil))

	p, err = qlearn.SARSA.Policy(0)
	require.NoError(t, err)
	assert.Equal(t, 2, p([]float64{0, 0, 1, 0}, rand.New(rand.NewSource(1))))

	_, err = qlearn.SARSA.Policy(-0.1)
	assert.ErrorIs(t, err, qlearn.ErrBadParameter)
	_, err = qlearn.Algorithm("dqn").Policy(0)
	assert.ErrorIs(t, err, qlearn.ErrBadParameter)
}
