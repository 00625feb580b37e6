package lake

import (
	"fmt"
	"io"

	"dynprog/mdp"
	"dynprog/meta"

	"golang.org/x/exp/rand"
)

type EnvOption func(e *Env)

// Env is an interactive episode on a lake, sampling transitions from its model.
type Env struct {
	lake       *Lake
	model      *mdp.Model
	rng        *rand.Rand
	maxSteps   int
	colors     bool
	starts     []mdp.State
	state      mdp.State
	lastAction mdp.Action
	steps      int
	started    bool
}

// WithMaxSteps truncates episodes after the given number of steps.
func WithMaxSteps(steps int) EnvOption {
	return func(e *Env) {
		if steps > 0 {
			e.maxSteps = steps
		}
	}
}

func WithColors(colors bool) EnvOption {
	return func(e *Env) {
		e.colors = colors
	}
}

func (l *Lake) Env(seed uint64, options ...EnvOption) *Env {
	maxSteps := meta.MAX_STEPS_SMALL
	if l.States() > 16 {
		maxSteps = meta.MAX_STEPS_LARGE
	}

	var starts []mdp.State
	for s := 0; s < l.States(); s++ {
		if l.Tile(s) == Start {
			starts = append(starts, s)
		}
	}

	e := &Env{
		lake:       l,
		model:      l.Model(),
		rng:        rand.New(rand.NewSource(seed)),
		maxSteps:   maxSteps,
		starts:     starts,
		lastAction: -1,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Reset starts a new episode on a start tile chosen uniformly.
func (e *Env) Reset() mdp.State {
	e.state = e.starts[e.rng.Intn(len(e.starts))]
	e.lastAction = -1
	e.steps = 0
	e.started = true
	return e.state
}

// Step takes action a and reports the next state, the reward, whether a hole or the goal
// was entered, and whether the step limit was reached.
func (e *Env) Step(a mdp.Action) (next mdp.State, reward float64, done bool, truncated bool) {
	if !e.started {
		panic("must reset before stepping")
	}

	outcomes := e.model.Outcomes(e.state, a)
	outcome := outcomes[len(outcomes)-1] // Fallback in case of rounding errors
	sampled := e.rng.Float64()
	cumulative := 0.0
	for _, o := range outcomes {
		cumulative += o.Probability
		if sampled < cumulative {
			outcome = o
			break
		}
	}

	e.state = outcome.Next
	e.lastAction = a
	e.steps++
	truncated = e.steps >= e.maxSteps
	return e.state, outcome.Reward, outcome.Terminal, truncated
}

func (e *Env) State() mdp.State {
	return e.state
}

// Render draws the lake with the agent's tile highlighted, preceded by the last action taken.
func (e *Env) Render(w io.Writer) error {
	var err error
	if e.lastAction >= 0 {
		_, err = fmt.Fprintf(w, "  (%s)\n", ActionName(e.lastAction))
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, e.lake.FormatMap(e.state, e.colors))
	return err
}
