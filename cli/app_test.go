package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), append([]string{"--log-level", "error"}, args...))
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	require.Contains(t, out, "dynprog version dev")
}

func TestSolve(t *testing.T) {
	t.Run("solving a deterministic lake with both algorithms", func(t *testing.T) {
		out, err := run(t, "solve", "--slippery=false", "--episodes", "3", "--colors=false")

		require.NoError(t, err)
		require.Contains(t, out, "== Policy iteration")
		require.Contains(t, out, "== Value iteration")
		require.Contains(t, out, "  0.590|", "Start value should be 0.9^5")
		require.Contains(t, out, "Total reward over 3 episodes: 3")
	})

	t.Run("solving a custom map with one algorithm", func(t *testing.T) {
		out, err := run(t, "solve", "--rows", "SFG", "--slippery=false", "-a", "vi", "-n", "1", "--colors=false")

		require.NoError(t, err)
		require.NotContains(t, out, "Policy iteration")
		require.Contains(t, out, "→→G\n")
	})

	t.Run("loading a config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.yaml")
		require.NoError(t, os.WriteFile(path, []byte("algorithm: pi\nslippery: false\nepisodes: 2\n"), 0644))

		out, err := run(t, "solve", "-c", path, "--colors=false")

		require.NoError(t, err)
		require.Contains(t, out, "== Policy iteration")
		require.NotContains(t, out, "Value iteration")
		require.Contains(t, out, "Total reward over 2 episodes: 2")
	})

	t.Run("flags override the config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.yaml")
		require.NoError(t, os.WriteFile(path, []byte("algorithm: pi\nepisodes: 2\n"), 0644))

		out, err := run(t, "solve", "-c", path, "-a", "vi", "--colors=false")

		require.NoError(t, err)
		require.Contains(t, out, "== Value iteration")
	})

	t.Run("writing run records", func(t *testing.T) {
		dir := t.TempDir()

		out, err := run(t, "solve", "-a", "vi", "-n", "2", "-o", dir, "--colors=false")

		require.NoError(t, err)
		require.Contains(t, out, "Records written to")
		matches, err := filepath.Glob(filepath.Join(dir, "solve", "*", "run_records.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
	})

	t.Run("rendering the rollout", func(t *testing.T) {
		out, err := run(t, "solve", "--slippery=false", "-a", "vi", "-n", "1", "--render", "--colors=false")

		require.NoError(t, err)
		require.Contains(t, out, "  (Down)\n")
	})

	t.Run("rejecting an invalid discount", func(t *testing.T) {
		_, err := run(t, "solve", "--gamma", "1")

		require.ErrorContains(t, err, "gamma")
	})

	t.Run("rejecting a missing config file", func(t *testing.T) {
		_, err := run(t, "solve", "-c", filepath.Join(t.TempDir(), "missing.yaml"))

		require.ErrorContains(t, err, "config file not found")
	})
}

func TestExperiment(t *testing.T) {
	t.Run("running the parallel experiment", func(t *testing.T) {
		dir := t.TempDir()

		out, err := run(t, "experiment", "parallel", "--size", "5", "-o", dir)

		require.NoError(t, err)
		require.Contains(t, out, "Experiment parallel stored under")
	})

	t.Run("rejecting a parallel lake smaller than two tiles", func(t *testing.T) {
		dir := t.TempDir()

		out, err := run(t, "experiment", "parallel", "--size", "1", "-o", dir)

		require.ErrorContains(t, err, "random lake size must be at least 2")
		require.NotContains(t, out, "stored under")
	})

	t.Run("rejecting an unknown experiment", func(t *testing.T) {
		_, err := run(t, "experiment", "bandit")

		require.Error(t, err)
	})
}

func TestLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{"--log-level", "loud", "version"})

	require.ErrorContains(t, err, "invalid log level")
}
