package engine

import (
	"dynprog/experiments/metrics"
	"dynprog/mdp"
	"io"
)

// Environment is an episodic task a policy can be rolled out in.
type Environment interface {
	Reset() mdp.State
	Step(action mdp.Action) (next mdp.State, reward float64, done bool, truncated bool)
}

// Renderer is implemented by environments that can draw their current state.
type Renderer interface {
	Render(w io.Writer) error
}

type Runner interface {
	// Run plays the policy for the configured number of episodes and returns the total reward
	Run(policy mdp.Policy) (total float64, episodeMetrics []metrics.EpisodeMetric)
}
