package lake

import (
	"fmt"
	"strings"

	"dynprog/mdp"

	"github.com/logrusorgru/aurora"
)

var actionNames = [NumActions]string{"Left", "Down", "Right", "Up"}
var actionArrows = [NumActions]string{"←", "↓", "→", "↑"}

func ActionName(a mdp.Action) string {
	if a < 0 || a >= NumActions {
		return fmt.Sprintf("Action(%d)", a)
	}
	return actionNames[a]
}

func (l *Lake) paint(au aurora.Aurora, tile byte, text string) aurora.Value {
	switch tile {
	case Hole:
		return au.Blue(text)
	case Goal:
		return au.Green(text)
	case Start:
		return au.Yellow(text)
	}
	return au.White(text)
}

// FormatMap draws the tiles, highlighting the agent's current state.
func (l *Lake) FormatMap(current mdp.State, colors bool) string {
	au := aurora.NewAurora(colors)
	var b strings.Builder
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			tile := l.desc[r][c]
			if l.state(r, c) == current {
				b.WriteString(au.Bold(au.Red(string(tile))).String())
				continue
			}
			b.WriteString(l.paint(au, tile, string(tile)).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatValues lays the value function out on the grid.
func (l *Lake) FormatValues(values mdp.Values, colors bool) string {
	au := aurora.NewAurora(colors)
	var b strings.Builder
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			s := l.state(r, c)
			b.WriteString(l.paint(au, l.desc[r][c], fmt.Sprintf(" %6.3f", values[s])).String())
			b.WriteString(au.White("|").String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatPolicy draws the most probable action of each state as an arrow; holes and goals show their tile.
func (l *Lake) FormatPolicy(policy mdp.Policy, colors bool) string {
	au := aurora.NewAurora(colors)
	var b strings.Builder
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			tile := l.desc[r][c]
			text := string(tile)
			if tile != Hole && tile != Goal {
				text = actionArrows[policy.Action(l.state(r, c))]
			}
			b.WriteString(l.paint(au, tile, text).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
