package mdp

import (
	"fmt"

	"dynprog/utils"
)

// Policy is an nS x nA matrix, each row a probability distribution over actions.
type Policy [][]float64

// NewPolicy returns an all-zero policy to be filled row by row.
func NewPolicy(numStates, numActions int) Policy {
	policy := make(Policy, numStates)
	for s := range policy {
		policy[s] = make([]float64, numActions)
	}
	return policy
}

func UniformPolicy(numStates, numActions int) Policy {
	policy := NewPolicy(numStates, numActions)
	p := 1.0 / float64(numActions)
	for s := range policy {
		for a := range policy[s] {
			policy[s][a] = p
		}
	}
	return policy
}

// DeterministicPolicy returns the one-hot policy choosing actions[s] in state s.
func DeterministicPolicy(actions []Action, numActions int) Policy {
	policy := NewPolicy(len(actions), numActions)
	for s, a := range actions {
		policy.SetGreedy(s, a)
	}
	return policy
}

// SetGreedy replaces row s with the one-hot vector of action a.
func (p Policy) SetGreedy(s State, a Action) {
	row := p[s]
	if a < 0 || a >= len(row) {
		panic(fmt.Sprintf("action index out of bounds: %d not in [0, %d)", a, len(row)))
	}
	for i := range row {
		row[i] = 0
	}
	row[a] = 1
}

// Action returns the most probable action in state s, lowest index on ties.
func (p Policy) Action(s State) Action {
	return utils.Argmax(p[s])
}

func (p Policy) Actions() []Action {
	actions := make([]Action, len(p))
	for s := range p {
		actions[s] = p.Action(s)
	}
	return actions
}

func (p Policy) Clone() Policy {
	clone := make(Policy, len(p))
	for s, row := range p {
		clone[s] = make([]float64, len(row))
		copy(clone[s], row)
	}
	return clone
}
