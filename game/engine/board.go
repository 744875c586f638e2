package engine

// Board owns the grid of tiles and every placement, neighbor-sum and clearing
// rule. It is deliberately free of locking and randomness: digits come from
// the caller, concurrency control lives in the layers above.
type Board struct {
	tiles     [][]Tile
	rows      int
	cols      int
	adjacency Adjacency

	occupied   int
	placements int
	terminal   TerminalState
}

// boxOffsets covers the 8 surrounding tiles, crossOffsets the orthogonal 4.
var (
	boxOffsets = [][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	crossOffsets = [][2]int{
		{-1, 0}, {0, -1}, {0, 1}, {1, 0},
	}
)

// NewBoard builds a rows×cols board whose interior (everything but the
// one-tile border ring) is pre-populated from interior, a (rows-2)×(cols-2)
// value grid using Empty for free tiles. All pre-populated tiles are
// fixed-origin; the border ring starts free but is fully playable.
func NewBoard(rows, cols int, interior [][]int, adjacency Adjacency) *Board {
	b := &Board{
		rows:      rows,
		cols:      cols,
		adjacency: adjacency,
		terminal:  Ongoing,
		tiles:     make([][]Tile, rows),
	}
	for r := 0; r < rows; r++ {
		b.tiles[r] = make([]Tile, cols)
		for c := 0; c < cols; c++ {
			b.tiles[r][c] = Tile{Value: Empty}
		}
	}
	for r := 0; r < rows-2; r++ {
		for c := 0; c < cols-2; c++ {
			v := interior[r][c]
			if v == Empty {
				continue
			}
			b.tiles[r+1][c+1] = Tile{Value: v, Origin: OriginFixed}
			b.occupied++
		}
	}
	return b
}

// RestoreBoard rebuilds a board from a persisted tile grid and counters.
func RestoreBoard(tiles [][]Tile, adjacency Adjacency, placements int, terminal TerminalState) *Board {
	rows := len(tiles)
	cols := 0
	if rows > 0 {
		cols = len(tiles[0])
	}
	b := &Board{
		rows:       rows,
		cols:       cols,
		adjacency:  adjacency,
		placements: placements,
		terminal:   terminal,
		tiles:      make([][]Tile, rows),
	}
	for r := range tiles {
		b.tiles[r] = make([]Tile, cols)
		copy(b.tiles[r], tiles[r])
		for _, t := range tiles[r] {
			if !t.Free() {
				b.occupied++
			}
		}
	}
	return b
}

// Place writes digit onto the free tile at row,col and evaluates the match
// rule: when the placed digit equals the sum of its occupied neighbors mod
// 10 (and there is at least one such neighbor), the placed tile and those
// neighbors all clear. The check is single-pass; clears never cascade.
//
// A failed call mutates nothing.
func (b *Board) Place(row, col, digit int) (*PlacementResult, error) {
	if b.terminal != Ongoing {
		return nil, ErrGameOver
	}
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil, ErrOutOfBounds
	}
	if digit < 0 || digit >= NumDigits {
		return nil, ErrDigitOutOfRange
	}
	if !b.tiles[row][col].Free() {
		return nil, ErrTileOccupied
	}

	b.tiles[row][col] = Tile{Value: digit, Origin: OriginPlaced}
	b.occupied++

	neighbors := b.occupiedNeighbors(row, col)
	sum := 0
	for _, n := range neighbors {
		sum += b.tiles[n.Row][n.Col].Value
	}
	sum %= NumDigits

	result := &PlacementResult{
		Placed:      Position{Row: row, Col: col},
		Digit:       digit,
		NeighborSum: sum,
	}

	if len(neighbors) > 0 && sum == digit {
		result.Matched = true
		result.Cleared = append([]Position{result.Placed}, neighbors...)
		for _, p := range result.Cleared {
			b.tiles[p.Row][p.Col] = Tile{Value: Empty}
			b.occupied--
		}
	}

	b.placements++

	switch b.occupied {
	case 0:
		b.terminal = Won
	case b.rows * b.cols:
		b.terminal = Stuck
	}
	result.Terminal = b.terminal

	return result, nil
}

// occupiedNeighbors returns the adjacent occupied tiles of row,col. Tiles
// beyond the board edge simply do not exist.
func (b *Board) occupiedNeighbors(row, col int) []Position {
	offsets := boxOffsets
	if b.adjacency == AdjacencyCross {
		offsets = crossOffsets
	}
	var out []Position
	for _, d := range offsets {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
			continue
		}
		if !b.tiles[r][c].Free() {
			out = append(out, Position{Row: r, Col: c})
		}
	}
	return out
}

// ValueAt returns the digit at row,col and whether the tile is occupied.
func (b *Board) ValueAt(row, col int) (int, bool) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return 0, false
	}
	t := b.tiles[row][col]
	if t.Free() {
		return 0, false
	}
	return t.Value, true
}

// OriginAt returns the origin of the tile at row,col, or empty when free.
func (b *Board) OriginAt(row, col int) Origin {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return ""
	}
	return b.tiles[row][col].Origin
}

// FreeTiles returns the coordinates of every free tile in row-major order,
// recomputed from the current state on each call.
func (b *Board) FreeTiles() []Position {
	var out []Position
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.tiles[r][c].Free() {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// FindFree locates the nearest free tile from the given position in the
// given direction, wrapping around the board. North/south scan the column,
// east/west scan the row, any scans the whole board row-major. The starting
// tile itself is considered last.
func (b *Board) FindFree(from Position, dir Direction) (Position, bool) {
	if b.occupied == b.rows*b.cols {
		return Position{}, false
	}
	switch dir {
	case DirNorth:
		for i := 1; i <= b.rows; i++ {
			r := ((from.Row-i)%b.rows + b.rows) % b.rows
			if b.tiles[r][from.Col].Free() {
				return Position{Row: r, Col: from.Col}, true
			}
		}
	case DirSouth:
		for i := 1; i <= b.rows; i++ {
			r := (from.Row + i) % b.rows
			if b.tiles[r][from.Col].Free() {
				return Position{Row: r, Col: from.Col}, true
			}
		}
	case DirEast:
		for i := 1; i <= b.cols; i++ {
			c := (from.Col + i) % b.cols
			if b.tiles[from.Row][c].Free() {
				return Position{Row: from.Row, Col: c}, true
			}
		}
	case DirWest:
		for i := 1; i <= b.cols; i++ {
			c := ((from.Col-i)%b.cols + b.cols) % b.cols
			if b.tiles[from.Row][c].Free() {
				return Position{Row: from.Row, Col: c}, true
			}
		}
	default: // DirAny
		total := b.rows * b.cols
		start := from.Row*b.cols + from.Col
		for i := 1; i <= total; i++ {
			idx := (start + i) % total
			r, c := idx/b.cols, idx%b.cols
			if b.tiles[r][c].Free() {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// OccupiedCount returns the number of non-free tiles.
func (b *Board) OccupiedCount() int { return b.occupied }

// PlacementsMade returns the number of successful placements, the score to
// minimize.
func (b *Board) PlacementsMade() int { return b.placements }

// Terminal returns the board's terminal state.
func (b *Board) Terminal() TerminalState { return b.terminal }

// IsTerminal reports whether the game has ended, won or stuck.
func (b *Board) IsTerminal() bool { return b.terminal != Ongoing }

// Tiles returns a deep copy of the grid for snapshots.
func (b *Board) Tiles() [][]Tile {
	out := make([][]Tile, b.rows)
	for r := range b.tiles {
		out[r] = make([]Tile, b.cols)
		copy(out[r], b.tiles[r])
	}
	return out
}
