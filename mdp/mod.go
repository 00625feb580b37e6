package mdp

import "fmt"

type State = int
type Action = int

// Outcome is one possible result of taking an action in a state.
// Terminal flags that Next ends the episode; planning does not treat it specially.
type Outcome struct {
	Probability float64
	Next        State
	Reward      float64
	Terminal    bool
}

// Model is a read-only transition model P[s][a] -> outcomes.
type Model struct {
	numStates   int
	numActions  int
	transitions [][][]Outcome
}

// NewModel wraps transitions indexed by state then action. Every state must offer the same number of actions.
func NewModel(transitions [][][]Outcome) *Model {
	if len(transitions) == 0 {
		panic("model has no states")
	}
	numActions := len(transitions[0])
	if numActions == 0 {
		panic("model has no actions")
	}
	for s, actions := range transitions {
		if len(actions) != numActions {
			panic(fmt.Sprintf("state %d has %d actions, expected %d", s, len(actions), numActions))
		}
	}
	return &Model{
		numStates:   len(transitions),
		numActions:  numActions,
		transitions: transitions,
	}
}

func (m *Model) States() int {
	return m.numStates
}

func (m *Model) Actions() int {
	return m.numActions
}

// Outcomes returns the outcome distribution of taking action a in state s.
// The returned slice must not be modified.
func (m *Model) Outcomes(s State, a Action) []Outcome {
	if s < 0 || s >= m.numStates {
		panic(fmt.Sprintf("state index out of bounds: %d not in [0, %d)", s, m.numStates))
	}
	if a < 0 || a >= m.numActions {
		panic(fmt.Sprintf("action index out of bounds: %d not in [0, %d)", a, m.numActions))
	}
	return m.transitions[s][a]
}

// Values is a value function: Values[s] is the expected discounted return from s.
type Values []float64

func NewValues(numStates int) Values {
	return make(Values, numStates)
}

func (v Values) Clone() Values {
	clone := make(Values, len(v))
	copy(clone, v)
	return clone
}
