package mdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniformPolicy(t *testing.T) {
	policy := UniformPolicy(3, 4)

	for s := range policy {
		sum := 0.0
		for _, p := range policy[s] {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-12, "Each row should be a distribution")
	}
}

func TestDeterministicPolicy(t *testing.T) {
	t.Run("one-hot rows", func(t *testing.T) {
		policy := DeterministicPolicy([]Action{2, 0}, 3)

		require.Equal(t, Policy{{0, 0, 1}, {1, 0, 0}}, policy)
		require.Equal(t, []Action{2, 0}, policy.Actions())
	})

	t.Run("panics with out of bounds action", func(t *testing.T) {
		require.Panics(t, func() {
			DeterministicPolicy([]Action{3}, 3)
		})
	})
}

func TestPolicyAction(t *testing.T) {
	t.Run("most probable action", func(t *testing.T) {
		policy := Policy{{0.2, 0.5, 0.3}}
		require.Equal(t, 1, policy.Action(0))
	})

	t.Run("ties go to the lowest index", func(t *testing.T) {
		policy := UniformPolicy(1, 4)
		require.Equal(t, 0, policy.Action(0))
	})
}

func TestPolicySetGreedy(t *testing.T) {
	policy := UniformPolicy(2, 2)
	policy.SetGreedy(1, 1)

	require.Equal(t, []float64{0.5, 0.5}, policy[0], "Other rows should not change")
	require.Equal(t, []float64{0, 1}, policy[1])
}

func TestPolicyClone(t *testing.T) {
	policy := DeterministicPolicy([]Action{0, 1}, 2)
	clone := policy.Clone()
	clone.SetGreedy(0, 1)

	require.Equal(t, 0, policy.Action(0), "Clone should not share rows")
}
