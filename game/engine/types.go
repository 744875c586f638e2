package engine

import "strings"

// Origin tells where a tile's digit came from
type Origin string

const (
	OriginFixed  Origin = "fixed"  // part of the initial interior layout
	OriginPlaced Origin = "placed" // placed by the player from the stream

	// Validation constants
	MinBoardSize      = 3
	MaxBoardSize      = 25
	NumDigits         = 10
	LookaheadSize     = 4
	MaxBulkPlacements = 50

	// Empty marks a free tile's value
	Empty = -1
)

// Adjacency selects which tiles count as neighbors of a placement
type Adjacency string

const (
	// AdjacencyBox includes the 8 surrounding tiles, diagonals included
	AdjacencyBox Adjacency = "box"
	// AdjacencyCross includes only the 4 orthogonal tiles
	AdjacencyCross Adjacency = "cross"
)

// Direction steers FindFree scans across the board
type Direction string

const (
	DirAny   Direction = "any"
	DirNorth Direction = "north"
	DirSouth Direction = "south"
	DirEast  Direction = "east"
	DirWest  Direction = "west"
)

// ParseDirection maps a direction name to its Direction, accepting single
// letter shorthands. The second return is false for unknown names.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "any", "":
		return DirAny, true
	case "north", "n", "up":
		return DirNorth, true
	case "south", "s", "down":
		return DirSouth, true
	case "east", "e", "right":
		return DirEast, true
	case "west", "w", "left":
		return DirWest, true
	}
	return DirAny, false
}

// Tile represents a single board cell
type Tile struct {
	Value  int    `json:"value"`            // 0..9, or Empty when free
	Origin Origin `json:"origin,omitempty"` // unset while free
}

// Free reports whether the tile holds no digit
func (t Tile) Free() bool {
	return t.Value == Empty
}

// Position represents row,col coordinates (0-based, row-major)
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// TerminalState tells whether a board is still playable
type TerminalState string

const (
	Ongoing TerminalState = "ongoing"
	Won     TerminalState = "won"   // board emptied, the player's goal
	Stuck   TerminalState = "stuck" // board full with no free tile remaining
)

// PlacementResult describes the outcome of a single successful placement
type PlacementResult struct {
	Placed      Position      `json:"placed"`
	Digit       int           `json:"digit"`
	Matched     bool          `json:"matched"`
	NeighborSum int           `json:"neighbor_sum"` // sum of occupied neighbors mod 10
	Cleared     []Position    `json:"cleared,omitempty"`
	Terminal    TerminalState `json:"terminal"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	// Layout optionally pins the starting interior: (Rows-2) strings of
	// (Cols-2) characters, digits or '.' for a free tile. When absent the
	// interior is drawn from the digit stream itself.
	Layout    []string  `json:"layout,omitempty"`
	Adjacency Adjacency `json:"adjacency,omitempty"` // defaults to box
	// Seed fixes the digit stream; 0 picks a fresh seed per session.
	Seed     int64 `json:"seed,omitempty"`
	Messages struct {
		Welcome  string `json:"welcome"`
		Placed   string `json:"placed"`
		Match    string `json:"match"`
		Won      string `json:"won"`
		Stuck    string `json:"stuck"`
		Occupied string `json:"occupied"`
		GameOver string `json:"game_over"`
	} `json:"messages"`
}

// PlacementHistoryEntry represents a single placement in the game history
type PlacementHistoryEntry struct {
	Position   Position   `json:"position"`
	Digit      int        `json:"digit"`
	Matched    bool       `json:"matched"`
	Cleared    []Position `json:"cleared,omitempty"`
	Timestamp  int64      `json:"timestamp"`
	MoveNumber int        `json:"move_number"`
}

// GameState is a complete, JSON-serializable snapshot of a game.
// Seed plus DigitsConsumed reconstruct the stream exactly, so a persisted
// state resumes with the same upcoming digits it was saved with.
type GameState struct {
	Board          [][]Tile      `json:"board"`
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	Adjacency      Adjacency     `json:"adjacency"`
	PlacementsMade int           `json:"placements_made"`
	OccupiedCount  int           `json:"occupied_count"`
	Upcoming       []int         `json:"upcoming"`
	Seed           int64         `json:"seed"`
	DigitsConsumed int           `json:"digits_consumed"`
	Terminal       TerminalState `json:"terminal"`
	GameOver       bool          `json:"game_over"`
	Won            bool          `json:"won"`
	Message        string        `json:"message"`
	ConfigName     string        `json:"config_name"`

	// History is cumulative across resets; CurrentRound mirrors the entries
	// made since the last reset and is cleared by Reset.
	History           []PlacementHistoryEntry `json:"history"`
	TotalPlacements   int                     `json:"total_placements"`
	CurrentRound      []PlacementHistoryEntry `json:"current_round"`
	CurrentRoundCount int                     `json:"current_round_count"`
}
