package cli

import (
	"fmt"

	"dynprog/config"
	"dynprog/engine"
	"dynprog/experiments"
	"dynprog/experiments/metrics"
	"dynprog/lake"
	"dynprog/planner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type solveFlags struct {
	configPath string
	mapName    string
	rows       []string
	slippery   bool
	algorithm  string
	gamma      float64
	tolerance  float64
	goroutines int
	episodes   int
	seed       uint64
	render     bool
	output     string
	colors     bool
}

func (a *App) newSolveCmd() *cobra.Command {
	flags := &solveFlags{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Plan on a lake and roll out the resulting policy",
		Long: `Solve builds the FrozenLake transition model, computes the optimal value
function and policy with policy iteration, value iteration or both, prints them,
and plays the policy for a number of episodes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return a.runSolve(cfg, flags.colors)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "YAML run configuration")
	f.StringVar(&flags.mapName, "map", defaults.Map, "standard map (4x4, 8x8)")
	f.StringSliceVar(&flags.rows, "rows", nil, "custom map rows, e.g. SFFF,FHFH,FFFH,HFFG")
	f.BoolVar(&flags.slippery, "slippery", defaults.Slippery, "slippery ice")
	f.StringVarP(&flags.algorithm, "algorithm", "a", defaults.Algorithm, "pi, vi or both")
	f.Float64Var(&flags.gamma, "gamma", defaults.Gamma, "discount factor in [0, 1)")
	f.Float64Var(&flags.tolerance, "tol", defaults.Tolerance, "max-norm convergence tolerance")
	f.IntVar(&flags.goroutines, "goroutines", defaults.Goroutines, "goroutines per sweep")
	f.IntVarP(&flags.episodes, "episodes", "n", defaults.Episodes, "rollout episodes")
	f.Uint64Var(&flags.seed, "seed", defaults.Seed, "rollout seed")
	f.BoolVar(&flags.render, "render", defaults.Render, "render every rollout step")
	f.StringVarP(&flags.output, "output", "o", "", "directory for run records")
	f.BoolVar(&flags.colors, "colors", true, "colored output")

	return cmd
}

// resolve loads the config file, if any, and applies explicitly set flags on top of it.
func (f *solveFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadFile(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("map") {
		cfg.Map = f.mapName
		cfg.Rows = nil
	}
	if changed("rows") {
		cfg.Rows = f.rows
	}
	if changed("slippery") {
		cfg.Slippery = f.slippery
	}
	if changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if changed("gamma") {
		cfg.Gamma = f.gamma
	}
	if changed("tol") {
		cfg.Tolerance = f.tolerance
	}
	if changed("goroutines") {
		cfg.Goroutines = f.goroutines
	}
	if changed("episodes") {
		cfg.Episodes = f.episodes
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("render") {
		cfg.Render = f.render
	}
	if changed("output") {
		cfg.Output = f.output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) runSolve(cfg *config.Config, colors bool) error {
	algorithms := []string{cfg.Algorithm}
	if cfg.Algorithm == config.AlgorithmBoth {
		algorithms = []string{planner.AlgorithmPolicyIteration, planner.AlgorithmValueIteration}
	}

	name := cfg.Map
	if len(cfg.Rows) > 0 {
		name = "custom"
	}
	layout := cfg.Layout()
	l := lake.NewLake(layout, cfg.Slippery)

	var options []engine.Option
	if cfg.Render {
		options = append(options, engine.WithRender(a.stdout))
	}

	configs := make([]metrics.PlannerConfig, 0, len(algorithms))
	results := make([]experiments.Result, 0, len(algorithms))
	for i, algorithm := range algorithms {
		plannerConfig := metrics.PlannerConfig{
			ID:         i + 1,
			Algorithm:  algorithm,
			Map:        name,
			Slippery:   cfg.Slippery,
			Gamma:      cfg.Gamma,
			Tolerance:  cfg.Tolerance,
			Goroutines: cfg.Goroutines,
			Episodes:   cfg.Episodes,
		}
		log.Info().Msgf("solving %s lake with %s", name, algorithm)

		result, err := experiments.Solve(plannerConfig, layout, cfg.Seed, options...)
		if err != nil {
			return fmt.Errorf("failed to solve %s lake: %w", name, err)
		}
		configs = append(configs, plannerConfig)
		results = append(results, result)

		fmt.Fprintf(a.stdout, "== %s: %d sweeps, %d evaluations, %s\n", algorithmTitle(algorithm), result.Run.Sweeps, result.Run.Evaluations, result.Run.Duration)
		fmt.Fprintf(a.stdout, "Value function:\n%s", l.FormatValues(result.Values, colors))
		fmt.Fprintf(a.stdout, "Policy:\n%s", l.FormatPolicy(result.Policy, colors))
		fmt.Fprintf(a.stdout, "Total reward over %d episodes: %g\n", len(result.Episodes), result.TotalReward)
	}

	if cfg.Output == "" {
		return nil
	}
	writer, err := metrics.NewWriter(cfg.Output, "solve")
	if err != nil {
		return fmt.Errorf("failed to create run writer: %w", err)
	}
	if err := experiments.Store(writer, name, configs, results); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Records written to %s\n", writer.Dir())
	return nil
}

func algorithmTitle(algorithm string) string {
	switch algorithm {
	case planner.AlgorithmPolicyIteration:
		return "Policy iteration"
	case planner.AlgorithmValueIteration:
		return "Value iteration"
	}
	return algorithm
}
