package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "discount")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(w.Dir(), filepath.Join(root, "discount")))

	t.Run("writing planner configs", func(t *testing.T) {
		err := w.WritePlannerConfigs([]PlannerConfig{
			{ID: 1, Algorithm: "vi", Map: "4x4", Slippery: true, Gamma: 0.9, Tolerance: 1e-8, Goroutines: 1, Episodes: 10},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "planner_configs.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "vi", "4x4", "true", "0.9", "1e-08", "1", "10"}, rows[1])
	})

	t.Run("writing run records", func(t *testing.T) {
		err := w.WriteRunRecords([]RunRecord{
			{Config: 1, RunMetric: RunMetric{Algorithm: "pi", Gamma: 0.5, Sweeps: 12, Duration: time.Millisecond}, TotalReward: 7, Episodes: 10},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "run_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "pi", rows[1][1])
		require.Equal(t, "12", rows[1][6])
		require.Equal(t, "7", rows[1][11])
	})

	t.Run("writing sweep records", func(t *testing.T) {
		records := SweepRecords(3, RunMetric{Deltas: []float64{1, 0.25}})
		require.NoError(t, w.WriteSweepRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "sweep_records.csv"))
		require.Equal(t, [][]string{{"run", "sweep", "delta"}, {"3", "1", "1"}, {"3", "2", "0.25"}}, rows)
	})

	t.Run("writing episode records", func(t *testing.T) {
		err := w.WriteEpisodeRecords([]EpisodeRecord{
			{Run: 1, EpisodeMetric: EpisodeMetric{Episode: 1, Steps: 6, Reward: 1}},
			{Run: 1, EpisodeMetric: EpisodeMetric{Episode: 2, Steps: 100, Truncated: true}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "episode_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "true", rows[2][4])
	})

	t.Run("writing convergence chart", func(t *testing.T) {
		path, err := w.WriteConvergenceChart("convergence", []Series{
			{Name: "vi", Deltas: []float64{1, 0.1, 0.01, 0}},
			{Name: "pe", Deltas: []float64{1, 0.5}},
		})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(content), "echarts")
	})
}
