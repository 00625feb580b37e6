package planner

import (
	"dynprog/mdp"
	"dynprog/utils"

	"github.com/rs/zerolog/log"
)

// PolicyIteration alternates evaluation and improvement from policy until the value
// function stops changing, and returns the final policy with its value function.
func PolicyIteration(model *mdp.Model, policy mdp.Policy, gamma, tol float64) (mdp.Policy, mdp.Values) {
	checkParameters(gamma, tol)
	return New(WithGamma(gamma), WithTolerance(tol)).PolicyIteration(model, policy)
}

func (p *Planner) PolicyIteration(model *mdp.Model, policy mdp.Policy) (mdp.Policy, mdp.Values) {
	p.start(AlgorithmPolicyIteration)
	defer p.metrics.Stop()

	current := policy.Clone()
	rounds := 0
	for {
		values := p.evaluate(model, current)
		improved := p.improve(model, values)
		improvedValues := p.evaluate(model, improved)
		delta := utils.MaxAbsDiff(values, improvedValues)
		rounds++
		log.Debug().Msgf("policy iteration round %d: value change %g", rounds, delta)

		current = improved
		if delta < p.tolerance {
			log.Debug().Msgf("policy iteration converged after %d rounds", rounds)
			return current, improvedValues
		}
	}
}
