package planner

import (
	"fmt"

	"dynprog/mdp"
	"dynprog/utils"
)

// PolicyImprovement returns the deterministic policy greedy with respect to values.
func PolicyImprovement(model *mdp.Model, values mdp.Values, gamma float64) mdp.Policy {
	checkGamma(gamma)
	return New(WithGamma(gamma)).Improve(model, values)
}

// Improve picks, in every state, the action with the highest one-step lookahead value.
// Ties go to the lowest action index.
func (p *Planner) Improve(model *mdp.Model, values mdp.Values) mdp.Policy {
	p.start(AlgorithmImprovement)
	defer p.metrics.Stop()

	return p.improve(model, values)
}

func (p *Planner) improve(model *mdp.Model, values mdp.Values) mdp.Policy {
	checkValues(model, values)
	p.metrics.AddImprovement()

	policy := mdp.NewPolicy(model.States(), model.Actions())
	q := make([]float64, model.Actions())
	for s := 0; s < model.States(); s++ {
		for a := range q {
			q[a] = p.qValue(model, s, a, values)
		}
		policy.SetGreedy(s, utils.Argmax(q))
	}
	return policy
}

func checkValues(model *mdp.Model, values mdp.Values) {
	if len(values) != model.States() {
		panic(fmt.Sprintf("value function has %d entries, model has %d states", len(values), model.States()))
	}
}
