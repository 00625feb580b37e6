package mdp

import "golang.org/x/exp/rand"

// Random generates a well-formed model where each (s, a) has between 1 and maxOutcomes
// outcomes with random probabilities and rewards in [0, 1).
func Random(rng *rand.Rand, numStates, numActions, maxOutcomes int) *Model {
	if numStates <= 0 || numActions <= 0 || maxOutcomes <= 0 {
		panic("random model needs positive states, actions and outcomes")
	}

	transitions := make([][][]Outcome, numStates)
	for s := range transitions {
		transitions[s] = make([][]Outcome, numActions)
		for a := range transitions[s] {
			n := 1 + rng.Intn(maxOutcomes)
			weights := make([]float64, n)
			total := 0.0
			for i := range weights {
				weights[i] = rng.Float64() + 1e-3 // Avoid zero-weight outcomes
				total += weights[i]
			}

			outcomes := make([]Outcome, n)
			for i := range outcomes {
				outcomes[i] = Outcome{
					Probability: weights[i] / total,
					Next:        rng.Intn(numStates),
					Reward:      rng.Float64(),
				}
			}
			transitions[s][a] = outcomes
		}
	}
	return NewModel(transitions)
}
