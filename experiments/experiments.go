package experiments

import (
	"dynprog/engine"
	"dynprog/experiments/metrics"
	"dynprog/lake"
	"dynprog/mdp"
	"dynprog/meta"
	"dynprog/planner"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var (
	ErrInvalidExperiment = errors.New("invalid experiment")
	ErrInvalidModel      = errors.New("invalid transition model")
)

var discounts = []float64{0.5, 0.9, 0.99}

// Result is the outcome of solving one lake with one planner config and rolling out the policy.
type Result struct {
	Config      metrics.PlannerConfig
	Policy      mdp.Policy
	Values      mdp.Values
	Run         metrics.RunMetric
	TotalReward float64
	Episodes    []metrics.EpisodeMetric
}

// RunDiscountExperiment compares policy and value iteration across discount factors on both standard maps.
func RunDiscountExperiment(root string) error {
	configs := []metrics.PlannerConfig{}
	for _, name := range []string{"4x4", "8x8"} {
		for _, gamma := range discounts {
			for _, algorithm := range []string{planner.AlgorithmPolicyIteration, planner.AlgorithmValueIteration} {
				configs = append(configs, metrics.PlannerConfig{
					ID:         len(configs) + 1,
					Algorithm:  algorithm,
					Map:        name,
					Slippery:   true,
					Gamma:      gamma,
					Tolerance:  meta.TOLERANCE,
					Goroutines: 1,
					Episodes:   meta.EPISODES,
				})
			}
		}
	}

	layouts := func(config metrics.PlannerConfig) []string { return lake.Maps[config.Map] }
	return runExperiment(root, "discount", configs, layouts)
}

// RunParallelExperiment measures value iteration sweep time on a large random lake as goroutines grow.
func RunParallelExperiment(root string, size int) error {
	if size < 2 {
		return fmt.Errorf("%w: random lake size must be at least 2, got %d", ErrInvalidExperiment, size)
	}
	layout := lake.RandomMap(rand.New(rand.NewSource(1)), size, 0.8)
	name := fmt.Sprintf("random%dx%d", size, size)

	configs := []metrics.PlannerConfig{}
	for _, goroutines := range []int{1, 2, 4, 8, 16} {
		configs = append(configs, metrics.PlannerConfig{
			ID:         len(configs) + 1,
			Algorithm:  planner.AlgorithmValueIteration,
			Map:        name,
			Slippery:   true,
			Gamma:      0.99,
			Tolerance:  meta.TOLERANCE,
			Goroutines: goroutines,
			Episodes:   meta.EPISODES,
		})
	}

	layouts := func(metrics.PlannerConfig) []string { return layout }
	return runExperiment(root, "parallel", configs, layouts)
}

func runExperiment(root, name string, configs []metrics.PlannerConfig, layout func(metrics.PlannerConfig) []string) error {
	log.Info().Msgf("starting %s experiment...", name)

	results := make([]Result, 0, len(configs))
	for i, config := range configs {
		log.Info().Msgf("running config %d of %d: %+v", i+1, len(configs), config)

		result, err := Solve(config, layout(config), uint64(config.ID))
		if err != nil {
			return fmt.Errorf("failed to solve config %d: %w", config.ID, err)
		}
		results = append(results, result)

		log.Info().Msgf("completed config %d of %d in %d sweeps with total reward %g", i+1, len(configs), result.Run.Sweeps, result.TotalReward)
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := Store(writer, name, configs, results); err != nil {
		return err
	}
	log.Info().Msgf("stored %s experiment records in %s", name, writer.Dir())
	return nil
}

// Solve plans on the lake described by layout with the given config and rolls out the resulting policy.
func Solve(config metrics.PlannerConfig, layout []string, seed uint64, options ...engine.Option) (Result, error) {
	l := lake.NewLake(layout, config.Slippery)

	policy, values, run, err := plan(config, l.Model())
	if err != nil {
		return Result{}, err
	}

	options = append([]engine.Option{engine.WithEpisodes(config.Episodes)}, options...)
	total, episodes := engine.New(l.Env(seed), options...).Run(policy)

	return Result{
		Config:      config,
		Policy:      policy,
		Values:      values,
		Run:         run,
		TotalReward: total,
		Episodes:    episodes,
	}, nil
}

// plan checks the model on ingestion and runs the configured algorithm on it.
func plan(config metrics.PlannerConfig, model *mdp.Model) (mdp.Policy, mdp.Values, metrics.RunMetric, error) {
	if err := model.Validate(); err != nil {
		return nil, nil, metrics.RunMetric{}, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	collector := metrics.NewCollector()
	p := planner.New(
		planner.WithGamma(config.Gamma),
		planner.WithTolerance(config.Tolerance),
		planner.WithGoroutines(config.Goroutines),
		planner.WithMetrics(collector),
	)

	var policy mdp.Policy
	var values mdp.Values
	switch config.Algorithm {
	case planner.AlgorithmPolicyIteration:
		policy, values = p.PolicyIteration(model, mdp.UniformPolicy(model.States(), model.Actions()))
	case planner.AlgorithmValueIteration:
		policy, values = p.ValueIteration(model, mdp.NewValues(model.States()))
	default:
		panic(fmt.Sprintf("unknown algorithm %q", config.Algorithm))
	}
	return policy, values, collector.Complete(), nil
}

// Store writes the configs, run, sweep and episode records and the convergence chart of an experiment.
func Store(writer *metrics.Writer, title string, configs []metrics.PlannerConfig, results []Result) error {
	runRecords := []metrics.RunRecord{}
	sweepRecords := []metrics.SweepRecord{}
	episodeRecords := []metrics.EpisodeRecord{}
	series := []metrics.Series{}
	for _, result := range results {
		id := result.Config.ID
		runRecords = append(runRecords, metrics.RunRecord{
			Config:      id,
			RunMetric:   result.Run,
			TotalReward: result.TotalReward,
			Episodes:    len(result.Episodes),
		})
		sweepRecords = append(sweepRecords, metrics.SweepRecords(id, result.Run)...)
		for _, episode := range result.Episodes {
			episodeRecords = append(episodeRecords, metrics.EpisodeRecord{Run: id, EpisodeMetric: episode})
		}
		series = append(series, metrics.Series{
			Name:   fmt.Sprintf("%d %s %s gamma=%g", id, result.Config.Algorithm, result.Config.Map, result.Config.Gamma),
			Deltas: result.Run.Deltas,
		})
	}

	if err := writer.WritePlannerConfigs(configs); err != nil {
		return fmt.Errorf("failed to store planner configs: %w", err)
	}
	if err := writer.WriteRunRecords(runRecords); err != nil {
		return fmt.Errorf("failed to write run records: %w", err)
	}
	if err := writer.WriteSweepRecords(sweepRecords); err != nil {
		return fmt.Errorf("failed to write sweep records: %w", err)
	}
	if err := writer.WriteEpisodeRecords(episodeRecords); err != nil {
		return fmt.Errorf("failed to write episode records: %w", err)
	}
	if _, err := writer.WriteConvergenceChart(title, series); err != nil {
		return fmt.Errorf("failed to write convergence chart: %w", err)
	}
	return nil
}
