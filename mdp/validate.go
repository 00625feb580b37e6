package mdp

import (
	"errors"
	"fmt"
	"math"
)

// ProbabilityTolerance bounds how far an outcome distribution may sum away from 1.
const ProbabilityTolerance = 1e-9

var (
	ErrEmptyOutcomes   = errors.New("no outcomes")
	ErrProbabilitySum  = errors.New("probabilities do not sum to 1")
	ErrStateOutOfRange = errors.New("next state out of range")
)

// Validate checks that every (state, action) pair has a well-formed outcome distribution.
// Planning does not call it; suppliers should validate at ingestion.
func (m *Model) Validate() error {
	var errs []error
	for s := 0; s < m.numStates; s++ {
		for a := 0; a < m.numActions; a++ {
			outcomes := m.transitions[s][a]
			if len(outcomes) == 0 {
				errs = append(errs, fmt.Errorf("state %d action %d: %w", s, a, ErrEmptyOutcomes))
				continue
			}

			sum := 0.0
			for _, o := range outcomes {
				if o.Next < 0 || o.Next >= m.numStates {
					errs = append(errs, fmt.Errorf("state %d action %d: %w: %d", s, a, ErrStateOutOfRange, o.Next))
				}
				if o.Probability < 0 {
					errs = append(errs, fmt.Errorf("state %d action %d: %w: negative probability %g", s, a, ErrProbabilitySum, o.Probability))
				}
				sum += o.Probability
			}
			if math.Abs(sum-1) > ProbabilityTolerance {
				errs = append(errs, fmt.Errorf("state %d action %d: %w: got %g", s, a, ErrProbabilitySum, sum))
			}
		}
	}
	return errors.Join(errs...)
}
