package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("recording a run", func(t *testing.T) {
		c := NewCollector()
		c.Start("vi", 2, 0.9, 1e-8)
		c.AddSweep(1.0)
		c.AddSweep(0.5)
		c.AddEvaluation()
		c.AddImprovement()
		c.Stop()

		got := c.Complete()

		require.Equal(t, "vi", got.Algorithm)
		require.Equal(t, 2, got.Goroutines)
		require.Equal(t, 0.9, got.Gamma)
		require.Equal(t, 2, got.Sweeps)
		require.Equal(t, []float64{1.0, 0.5}, got.Deltas)
		require.Equal(t, 0.5, got.FinalDelta, "Final delta should be the last sweep's delta")
		require.Equal(t, 1, got.Evaluations)
		require.Equal(t, 1, got.Improvements)
		require.GreaterOrEqual(t, int64(got.Duration), int64(0))
	})

	t.Run("restarting clears previous run", func(t *testing.T) {
		c := NewCollector()
		c.Start("pi", 1, 0.9, 1e-8)
		c.AddSweep(1.0)
		c.AddEvaluation()
		c.Start("vi", 1, 0.5, 1e-6)

		got := c.Complete()

		require.Equal(t, "vi", got.Algorithm)
		require.Zero(t, got.Sweeps)
		require.Zero(t, got.Evaluations)
	})

	t.Run("concurrent updates", func(t *testing.T) {
		c := NewCollector()
		c.Start("pe", 8, 0.9, 1e-8)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddSweep(0.1)
					c.AddEvaluation()
				}
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, 800, got.Sweeps)
		require.Equal(t, 800, got.Evaluations)
	})
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("vi", 1, 0.9, 1e-8)
	c.AddSweep(1)

	require.Equal(t, RunMetric{}, c.Complete(), "Dummy collector should not record")
}
