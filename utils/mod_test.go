package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	t.Run("finding an existing item", func(t *testing.T) {
		require.Equal(t, 2, FindIndex([]byte("FFSG"), 'S'))
	})

	t.Run("missing item", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]int{1, 2, 3}, 4))
	})
}

func TestArgmax(t *testing.T) {
	t.Run("unique maximum", func(t *testing.T) {
		require.Equal(t, 1, Argmax([]float64{0.1, 0.7, 0.2}))
	})

	t.Run("ties go to the lowest index", func(t *testing.T) {
		require.Equal(t, 0, Argmax([]float64{1, 1, 0}), "First maximal element should win")
		require.Equal(t, 1, Argmax([]float64{0, 2, 2}), "First maximal element should win")
	})

	t.Run("empty slice", func(t *testing.T) {
		require.Equal(t, -1, Argmax([]float64{}))
	})
}

func TestMaxAbsDiff(t *testing.T) {
	t.Run("computing max-norm distance", func(t *testing.T) {
		require.InDelta(t, 3.0, MaxAbsDiff([]float64{1, -2, 0}, []float64{0, 1, 0.5}), 1e-12)
	})

	t.Run("identical vectors", func(t *testing.T) {
		require.Zero(t, MaxAbsDiff([]float64{1, 2}, []float64{1, 2}))
	})

	t.Run("panics with different lengths", func(t *testing.T) {
		require.Panics(t, func() {
			MaxAbsDiff([]float64{1}, []float64{1, 2})
		}, "Should panic when lengths differ")
	})
}
