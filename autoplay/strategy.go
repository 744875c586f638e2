package main

const emptyTile = -1

// GreedyStrategy picks the placement that clears the most stones right now.
// When no match is available it parks the digit on the free tile with the
// fewest occupied neighbors, keeping future match sums small and the board
// edges clear for dumping junk digits.
type GreedyStrategy struct{}

func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

// NextPlacement returns the position to play next, or false when the board
// has no free tile.
func (s *GreedyStrategy) NextPlacement(state *GameState) (Position, bool) {
	if state == nil || len(state.Board) == 0 || len(state.Upcoming) == 0 {
		return Position{}, false
	}

	next := state.Upcoming[0]

	bestMatch := Position{}
	bestMatchNeighbors := 0
	bestPark := Position{}
	bestParkNeighbors := -1
	foundPark := false

	for row := range state.Board {
		for col := range state.Board[row] {
			if state.Board[row][col].Value != emptyTile {
				continue
			}

			sum, occupied := neighborSum(state, row, col)

			if occupied > 0 && sum%10 == next {
				// Matching here clears this digit plus every occupied neighbor
				if occupied > bestMatchNeighbors {
					bestMatchNeighbors = occupied
					bestMatch = Position{Row: row, Col: col}
				}
				continue
			}

			if !foundPark || occupied < bestParkNeighbors {
				bestParkNeighbors = occupied
				bestPark = Position{Row: row, Col: col}
				foundPark = true
			}
		}
	}

	if bestMatchNeighbors > 0 {
		return bestMatch, true
	}
	if foundPark {
		return bestPark, true
	}
	return Position{}, false
}

// neighborSum totals the occupied neighbors of row,col under the state's
// adjacency mode and reports how many there are.
func neighborSum(state *GameState, row, col int) (sum, occupied int) {
	offsets := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	if state.Adjacency != "cross" {
		offsets = append(offsets, [2]int{-1, -1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{1, 1})
	}

	for _, off := range offsets {
		r, c := row+off[0], col+off[1]
		if r < 0 || r >= len(state.Board) || c < 0 || c >= len(state.Board[r]) {
			continue
		}
		if v := state.Board[r][c].Value; v != emptyTile {
			sum += v
			occupied++
		}
	}
	return sum, occupied
}
