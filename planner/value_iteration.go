package planner

import (
	"dynprog/mdp"
	"dynprog/utils"

	"github.com/rs/zerolog/log"
)

// ValueIteration applies the Bellman optimality operator from values until convergence and
// returns the greedy policy extracted during the final sweep together with the value function.
func ValueIteration(model *mdp.Model, values mdp.Values, gamma, tol float64) (mdp.Policy, mdp.Values) {
	checkParameters(gamma, tol)
	return New(WithGamma(gamma), WithTolerance(tol)).ValueIteration(model, values)
}

func (p *Planner) ValueIteration(model *mdp.Model, initial mdp.Values) (mdp.Policy, mdp.Values) {
	p.start(AlgorithmValueIteration)
	defer p.metrics.Stop()

	checkValues(model, initial)

	numActions := model.Actions()
	policy := mdp.NewPolicy(model.States(), numActions)
	values := initial.Clone()
	next := mdp.NewValues(model.States())
	sweeps := 0
	for {
		prev := values
		delta := p.sweep(prev, next, func(s mdp.State) float64 {
			q := make([]float64, numActions)
			for a := range q {
				q[a] = p.qValue(model, s, a, prev)
			}
			best := utils.Argmax(q)
			policy.SetGreedy(s, best) // Rows are disjoint across states
			return q[best]
		})
		values, next = next, values
		sweeps++
		p.metrics.AddSweep(delta)

		if delta < p.tolerance {
			log.Debug().Msgf("value iteration converged after %d sweeps with delta %g", sweeps, delta)
			return policy, values
		}
	}
}
