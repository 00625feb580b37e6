package engine

import (
	"dynprog/experiments/metrics"
	"dynprog/mdp"
	"dynprog/meta"
	"io"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

type Engine struct {
	env      Environment
	episodes int
	render   io.Writer
}

func WithEpisodes(episodes int) Option {
	return func(e *Engine) {
		if episodes >= 0 {
			e.episodes = episodes
		}
	}
}

// WithRender draws the environment to w before every step, when it implements Renderer.
func WithRender(w io.Writer) Option {
	return func(e *Engine) {
		e.render = w
	}
}

func New(env Environment, options ...Option) *Engine {
	if env == nil {
		panic("need an environment")
	}
	e := &Engine{ // Default values
		env:      env,
		episodes: meta.EPISODES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays the policy greedily, taking the most probable action in every state,
// until each episode is done or truncated.
func (e *Engine) Run(policy mdp.Policy) (float64, []metrics.EpisodeMetric) {
	renderer, canRender := e.env.(Renderer)
	canRender = canRender && e.render != nil

	log.Info().Msgf("rolling out policy for %d episodes", e.episodes)

	total := 0.0
	episodeMetrics := make([]metrics.EpisodeMetric, 0, e.episodes)
	for i := 0; i < e.episodes; i++ {
		start := time.Now()
		state := e.env.Reset()
		metric := metrics.EpisodeMetric{Episode: i + 1}

		done, truncated := false, false
		for !done && !truncated {
			if canRender {
				if err := renderer.Render(e.render); err != nil {
					log.Warn().Err(err).Msg("failed to render environment")
				}
			}

			var reward float64
			state, reward, done, truncated = e.env.Step(policy.Action(state))
			metric.Reward += reward
			metric.Steps++
		}
		if canRender {
			if err := renderer.Render(e.render); err != nil {
				log.Warn().Err(err).Msg("failed to render environment")
			}
		}

		metric.Truncated = truncated && !done
		metric.Duration = time.Since(start)
		episodeMetrics = append(episodeMetrics, metric)
		total += metric.Reward

		log.Debug().Msgf("episode %d finished after %d steps with reward %g", metric.Episode, metric.Steps, metric.Reward)
	}

	log.Info().Msgf("completed %d episodes with total reward %g", e.episodes, total)
	return total, episodeMetrics
}
