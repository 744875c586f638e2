package engine

import (
	"fmt"
	"strings"
)

// DefaultGameConfig returns the classic rules: a 9×9 board whose central 7×7
// interior is filled with random digits, box adjacency, fresh seed per game.
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:        "Classic",
		Description: "9x9 board, random 7x7 starting interior, diagonal neighbors count",
		Rows:        9,
		Cols:        9,
		Adjacency:   AdjacencyBox,
	}
	config.Messages.Welcome = "Clear the board in as few placements as you can."
	config.Messages.Placed = "Placed %d at (%d,%d)"
	config.Messages.Match = "Match! Cleared %d tiles"
	config.Messages.Won = "Board cleared in %d placements!"
	config.Messages.Stuck = "Board full. No tile left to play."
	config.Messages.Occupied = "That tile is occupied"
	config.Messages.GameOver = "The game is over"
	return config
}

// ValidateGameConfig checks a configuration for structural problems before an
// engine is built from it.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
		return fmt.Errorf("rows must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Rows)
	}
	if config.Cols < MinBoardSize || config.Cols > MaxBoardSize {
		return fmt.Errorf("cols must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Cols)
	}
	switch config.Adjacency {
	case "", AdjacencyBox, AdjacencyCross:
	default:
		return fmt.Errorf("unknown adjacency %q (want %q or %q)", config.Adjacency, AdjacencyBox, AdjacencyCross)
	}
	if len(config.Layout) > 0 {
		if err := validateLayout(config); err != nil {
			return err
		}
	}
	return nil
}

// validateLayout checks a pinned interior layout: exact interior dimensions,
// digit or '.' characters only, and at least one starting digit (an empty
// board would be born won).
func validateLayout(config *GameConfig) error {
	wantRows, wantCols := config.Rows-2, config.Cols-2
	if len(config.Layout) != wantRows {
		return fmt.Errorf("layout must have %d rows, got %d", wantRows, len(config.Layout))
	}
	digits := 0
	for i, row := range config.Layout {
		if len(row) != wantCols {
			return fmt.Errorf("layout row %d must have %d characters, got %d", i, wantCols, len(row))
		}
		for j, ch := range row {
			if ch == '.' {
				continue
			}
			if !strings.ContainsRune("0123456789", ch) {
				return fmt.Errorf("invalid layout character %q at [%d,%d]", ch, i, j)
			}
			digits++
		}
	}
	if digits == 0 {
		return fmt.Errorf("layout must contain at least one digit")
	}
	return nil
}

// interiorValues expands the configured layout (or draws from the stream when
// no layout is pinned) into the (rows-2)×(cols-2) starting interior.
func interiorValues(config *GameConfig, stream *DigitStream) [][]int {
	rows, cols := config.Rows-2, config.Cols-2
	out := make([][]int, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			if len(config.Layout) > 0 {
				ch := config.Layout[r][c]
				if ch == '.' {
					out[r][c] = Empty
				} else {
					out[r][c] = int(ch - '0')
				}
				continue
			}
			// The starting interior is just the first rows*cols digits of
			// the stream, which keeps a whole game reproducible from one seed.
			out[r][c] = stream.Next()
		}
	}
	return out
}
