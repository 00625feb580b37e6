package lake

import (
	"errors"
	"fmt"

	"dynprog/mdp"
)

const (
	Left mdp.Action = iota
	Down
	Right
	Up
)

const NumActions = 4

const (
	Start  = 'S'
	Frozen = 'F'
	Hole   = 'H'
	Goal   = 'G'
)

var ErrInvalidMap = errors.New("invalid lake map")

// Maps holds the standard layouts.
var Maps = map[string][]string{
	"4x4": {
		"SFFF",
		"FHFH",
		"FFFH",
		"HFFG",
	},
	"8x8": {
		"SFFFFFFF",
		"FFFFFFFF",
		"FFFHFFFF",
		"FFFFFHFF",
		"FFFHFFFF",
		"FHHFFFHF",
		"FHFFHFHF",
		"FFFHFFFG",
	},
}

// Lake is a grid of frozen tiles, holes and a goal. Entering the goal pays 1; holes and the goal end the episode.
// On a slippery lake the agent moves in the intended direction or either perpendicular one, each with probability 1/3.
type Lake struct {
	desc     [][]byte
	rows     int
	cols     int
	slippery bool
}

func NewLake(desc []string, slippery bool) *Lake {
	if err := ValidateMap(desc); err != nil {
		panic(err.Error())
	}

	grid := make([][]byte, len(desc))
	for r, row := range desc {
		grid[r] = []byte(row)
	}
	return &Lake{
		desc:     grid,
		rows:     len(desc),
		cols:     len(desc[0]),
		slippery: slippery,
	}
}

// ValidateMap checks that desc is a non-empty rectangle of S, F, H and G tiles with at least one start.
func ValidateMap(desc []string) error {
	if len(desc) == 0 || len(desc[0]) == 0 {
		return fmt.Errorf("%w: empty map", ErrInvalidMap)
	}
	starts := 0
	for r, row := range desc {
		if len(row) != len(desc[0]) {
			return fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrInvalidMap, r, len(row), len(desc[0]))
		}
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case Start:
				starts++
			case Frozen, Hole, Goal:
			default:
				return fmt.Errorf("%w: unknown tile %q at row %d column %d", ErrInvalidMap, row[c], r, c)
			}
		}
	}
	if starts == 0 {
		return fmt.Errorf("%w: no start tile", ErrInvalidMap)
	}
	return nil
}

func (l *Lake) Rows() int {
	return l.rows
}

func (l *Lake) Cols() int {
	return l.cols
}

func (l *Lake) States() int {
	return l.rows * l.cols
}

func (l *Lake) Tile(s mdp.State) byte {
	row, col := l.position(s)
	return l.desc[row][col]
}

func (l *Lake) state(row, col int) mdp.State {
	return row*l.cols + col
}

func (l *Lake) position(s mdp.State) (row, col int) {
	return s / l.cols, s % l.cols
}

func (l *Lake) move(row, col int, a mdp.Action) (int, int) {
	switch a {
	case Left:
		col = max(col-1, 0)
	case Down:
		row = min(row+1, l.rows-1)
	case Right:
		col = min(col+1, l.cols-1)
	case Up:
		row = max(row-1, 0)
	default:
		panic(fmt.Sprintf("unknown action %d", a))
	}
	return row, col
}

// Model builds the transition model of the lake.
func (l *Lake) Model() *mdp.Model {
	transitions := make([][][]mdp.Outcome, l.States())
	for s := range transitions {
		transitions[s] = make([][]mdp.Outcome, NumActions)
		row, col := l.position(s)
		tile := l.desc[row][col]

		for a := 0; a < NumActions; a++ {
			if tile == Hole || tile == Goal {
				transitions[s][a] = []mdp.Outcome{{Probability: 1, Next: s, Reward: 0, Terminal: true}}
				continue
			}

			if !l.slippery {
				transitions[s][a] = []mdp.Outcome{l.outcome(row, col, a, 1)}
				continue
			}

			// Outcomes are kept separate even when two directions land on the same tile
			outcomes := make([]mdp.Outcome, 0, 3)
			for _, b := range []mdp.Action{(a + NumActions - 1) % NumActions, a, (a + 1) % NumActions} {
				outcomes = append(outcomes, l.outcome(row, col, b, 1.0/3.0))
			}
			transitions[s][a] = outcomes
		}
	}
	return mdp.NewModel(transitions)
}

func (l *Lake) outcome(row, col int, a mdp.Action, probability float64) mdp.Outcome {
	nextRow, nextCol := l.move(row, col, a)
	tile := l.desc[nextRow][nextCol]
	reward := 0.0
	if tile == Goal {
		reward = 1
	}
	return mdp.Outcome{
		Probability: probability,
		Next:        l.state(nextRow, nextCol),
		Reward:      reward,
		Terminal:    tile == Hole || tile == Goal,
	}
}
