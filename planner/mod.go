package planner

import (
	"dynprog/experiments/metrics"
	"dynprog/mdp"
	"dynprog/meta"
	"fmt"
	"math"
	"sync"
)

// Algorithm names reported to the metrics collector
const (
	AlgorithmEvaluation      = "pe"
	AlgorithmImprovement     = "pimp"
	AlgorithmPolicyIteration = "pi"
	AlgorithmValueIteration  = "vi"
)

type Option func(p *Planner)

// Planner runs dynamic-programming algorithms over a fixed transition model.
// gamma >= 1 or a malformed model may keep the sweeps from converging; that is left unchecked.
type Planner struct {
	gamma      float64
	tolerance  float64
	goroutines int
	metrics    metrics.Collector
}

func WithGamma(gamma float64) Option {
	return func(p *Planner) {
		if gamma >= 0 {
			p.gamma = gamma
		}
	}
}

func WithTolerance(tolerance float64) Option {
	return func(p *Planner) {
		if tolerance > 0 {
			p.tolerance = tolerance
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(p *Planner) {
		if goroutines > 0 {
			p.goroutines = goroutines
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(p *Planner) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

func New(options ...Option) *Planner {
	p := &Planner{ // Default values
		gamma:      meta.GAMMA,
		tolerance:  meta.TOLERANCE,
		goroutines: meta.GO_ROUTINES,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Planner) Gamma() float64 {
	return p.gamma
}

func (p *Planner) Tolerance() float64 {
	return p.tolerance
}

func (p *Planner) start(algorithm string) {
	p.metrics.Start(algorithm, p.goroutines, p.gamma, p.tolerance)
}

// qValue is the one-step lookahead value of taking action a in state s under values.
func (p *Planner) qValue(model *mdp.Model, s mdp.State, a mdp.Action, values mdp.Values) float64 {
	q := 0.0
	for _, o := range model.Outcomes(s, a) {
		q += o.Probability * (o.Reward + p.gamma*values[o.Next])
	}
	return q
}

// sweep writes update(s) into next for every state and returns max |next[s] - prev[s]|.
// update must read only from prev, so states can be updated in any order.
func (p *Planner) sweep(prev, next mdp.Values, update func(s mdp.State) float64) float64 {
	numStates := len(prev)
	workers := min(p.goroutines, numStates)
	if workers <= 1 {
		return sweepRange(prev, next, 0, numStates, update)
	}

	deltas := make([]float64, workers)
	chunk := (numStates + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * chunk
		hi := min(lo+chunk, numStates)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			deltas[i] = sweepRange(prev, next, lo, hi, update)
		}(i, lo, hi)
	}
	wg.Wait()

	delta := 0.0
	for _, d := range deltas {
		delta = max(delta, d)
	}
	return delta
}

func sweepRange(prev, next mdp.Values, lo, hi int, update func(s mdp.State) float64) float64 {
	delta := 0.0
	for s := lo; s < hi; s++ {
		next[s] = update(s)
		delta = math.Max(delta, math.Abs(next[s]-prev[s]))
	}
	return delta
}

// checkParameters guards the package-level functions, whose explicit arguments are not
// replaced by defaults the way options are.
func checkParameters(gamma, tol float64) {
	checkGamma(gamma)
	if tol <= 0 {
		panic(fmt.Sprintf("tolerance must be positive, got %g", tol))
	}
}

func checkGamma(gamma float64) {
	if gamma < 0 {
		panic(fmt.Sprintf("discount factor must be non-negative, got %g", gamma))
	}
}
