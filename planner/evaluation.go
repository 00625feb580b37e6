package planner

import (
	"fmt"

	"dynprog/mdp"

	"github.com/rs/zerolog/log"
)

// PolicyEvaluation computes the value function of policy to within tol.
func PolicyEvaluation(model *mdp.Model, policy mdp.Policy, gamma, tol float64) mdp.Values {
	checkParameters(gamma, tol)
	return New(WithGamma(gamma), WithTolerance(tol)).Evaluate(model, policy)
}

// Evaluate solves the Bellman expectation equation for a possibly stochastic policy by
// synchronous sweeps from V = 0, stopping once a sweep changes no state by tolerance or more.
func (p *Planner) Evaluate(model *mdp.Model, policy mdp.Policy) mdp.Values {
	p.start(AlgorithmEvaluation)
	defer p.metrics.Stop()

	return p.evaluate(model, policy)
}

func (p *Planner) evaluate(model *mdp.Model, policy mdp.Policy) mdp.Values {
	checkPolicy(model, policy)
	p.metrics.AddEvaluation()

	values := mdp.NewValues(model.States())
	next := mdp.NewValues(model.States())
	sweeps := 0
	for {
		prev := values
		delta := p.sweep(prev, next, func(s mdp.State) float64 {
			v := 0.0
			for a, pa := range policy[s] {
				if pa == 0 {
					continue
				}
				v += pa * p.qValue(model, s, a, prev)
			}
			return v
		})
		values, next = next, values
		sweeps++
		p.metrics.AddSweep(delta)

		if delta < p.tolerance {
			log.Debug().Msgf("policy evaluation converged after %d sweeps with delta %g", sweeps, delta)
			return values
		}
	}
}

func checkPolicy(model *mdp.Model, policy mdp.Policy) {
	if len(policy) != model.States() {
		panic(fmt.Sprintf("policy has %d rows, model has %d states", len(policy), model.States()))
	}
	for s, row := range policy {
		if len(row) != model.Actions() {
			panic(fmt.Sprintf("policy row %d has %d actions, model has %d", s, len(row), model.Actions()))
		}
	}
}
