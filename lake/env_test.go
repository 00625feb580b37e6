package lake

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	t.Run("resetting to the start tile", func(t *testing.T) {
		env := NewLake(Maps["4x4"], true).Env(1)

		require.Equal(t, 0, env.Reset())
	})

	t.Run("panics when stepping before reset", func(t *testing.T) {
		env := NewLake(Maps["4x4"], false).Env(1)

		require.Panics(t, func() {
			env.Step(Down)
		})
	})

	t.Run("walking to the goal on a deterministic lake", func(t *testing.T) {
		env := NewLake(Maps["4x4"], false).Env(1)
		env.Reset()

		total := 0.0
		var done bool
		for _, a := range []int{Down, Down, Right, Right, Down, Right} {
			var reward float64
			_, reward, done, _ = env.Step(a)
			total += reward
		}

		require.Equal(t, 15, env.State())
		require.True(t, done)
		require.Equal(t, 1.0, total)
	})

	t.Run("falling into a hole", func(t *testing.T) {
		env := NewLake(Maps["4x4"], false).Env(1)
		env.Reset()

		next, reward, done, truncated := env.Step(Right)
		require.Equal(t, 1, next)
		require.False(t, done)

		next, reward, done, truncated = env.Step(Down)
		require.Equal(t, 5, next)
		require.Zero(t, reward)
		require.True(t, done)
		require.False(t, truncated)
	})

	t.Run("truncating after the step limit", func(t *testing.T) {
		env := NewLake(Maps["4x4"], false).Env(1, WithMaxSteps(3))
		env.Reset()

		_, _, _, truncated := env.Step(Left)
		require.False(t, truncated)
		env.Step(Left)
		_, _, done, truncated := env.Step(Left)
		require.False(t, done)
		require.True(t, truncated, "Third step should hit the limit")
	})

	t.Run("default step limits", func(t *testing.T) {
		require.Equal(t, 100, NewLake(Maps["4x4"], true).Env(1).maxSteps)
		require.Equal(t, 200, NewLake(Maps["8x8"], true).Env(1).maxSteps)
	})

	t.Run("sampling only modelled outcomes", func(t *testing.T) {
		l := NewLake(Maps["4x4"], true)
		env := l.Env(99)
		allowed := map[int]bool{0: true, 1: true, 4: true}
		for i := 0; i < 200; i++ {
			env.Reset()
			next, _, _, _ := env.Step(Down)
			require.True(t, allowed[next], "Down from the start may only slip left or right")
		}
	})

	t.Run("same seed gives the same episode", func(t *testing.T) {
		l := NewLake(Maps["8x8"], true)
		run := func() []int {
			env := l.Env(7)
			env.Reset()
			var states []int
			for i := 0; i < 30; i++ {
				next, _, done, _ := env.Step(Right)
				states = append(states, next)
				if done {
					break
				}
			}
			return states
		}

		require.Equal(t, run(), run())
	})
}

func TestEnvRender(t *testing.T) {
	env := NewLake(Maps["4x4"], false).Env(1)
	env.Reset()
	env.Step(Right)

	var buf bytes.Buffer
	require.NoError(t, env.Render(&buf))

	require.Equal(t, "  (Right)\nSFFF\nFHFH\nFFFH\nHFFG\n", buf.String())

	colored := NewLake(Maps["4x4"], false).Env(1, WithColors(true))
	colored.Reset()
	buf.Reset()
	require.NoError(t, colored.Render(&buf))
	require.Contains(t, buf.String(), "\x1b[", "Colored render should carry escape codes")
	require.NotContains(t, buf.String(), "(", "No action before the first step")
}

func TestFormatPolicy(t *testing.T) {
	l := NewLake(Maps["4x4"], false)
	actions := make([]int, 16)
	for s := range actions {
		actions[s] = Right
	}
	actions[3] = Down

	got := l.FormatPolicy(deterministic(actions), false)

	require.Equal(t, "→→→↓\n→H→H\n→→→H\nH→→G\n", got)
}

func TestFormatValues(t *testing.T) {
	l := NewLake([]string{"SG"}, false)

	got := l.FormatValues([]float64{0.5, 0}, false)

	require.Equal(t, "  0.500|  0.000|\n", got)
	require.True(t, strings.Contains(l.FormatValues([]float64{0.5, 0}, true), "\x1b["), "Colored output should carry escape codes")
}

func deterministic(actions []int) [][]float64 {
	policy := make([][]float64, len(actions))
	for s, a := range actions {
		policy[s] = make([]float64, NumActions)
		policy[s][a] = 1
	}
	return policy
}
