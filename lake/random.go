package lake

import "golang.org/x/exp/rand"

// RandomMap draws a size x size map whose tiles are frozen with probability p, redrawing
// until the goal in the bottom-right corner is reachable from the start in the top-left corner.
func RandomMap(rng *rand.Rand, size int, p float64) []string {
	if size < 2 {
		panic("random map needs size of at least 2")
	}
	if p <= 0 {
		panic("random map needs a positive frozen probability")
	}

	for {
		board := make([][]byte, size)
		for r := range board {
			board[r] = make([]byte, size)
			for c := range board[r] {
				if rng.Float64() < p {
					board[r][c] = Frozen
				} else {
					board[r][c] = Hole
				}
			}
		}
		board[0][0] = Start
		board[size-1][size-1] = Goal

		if reachable(board) {
			desc := make([]string, size)
			for r, row := range board {
				desc[r] = string(row)
			}
			return desc
		}
	}
}

// reachable runs a depth-first search from the top-left corner to any goal tile.
func reachable(board [][]byte) bool {
	type cell struct{ row, col int }

	size := len(board)
	visited := make(map[cell]bool)
	frontier := []cell{{0, 0}}
	for len(frontier) > 0 {
		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, d := range []cell{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			next := cell{current.row + d.row, current.col + d.col}
			if next.row < 0 || next.row >= size || next.col < 0 || next.col >= size {
				continue
			}
			switch board[next.row][next.col] {
			case Goal:
				return true
			case Hole:
				continue
			}
			frontier = append(frontier, next)
		}
	}
	return false
}
