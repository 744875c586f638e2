package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsWon() bool
	GetScore() int
	GetSeed() int64

	// Placement operations
	Place(row, col int) (*PlacementResult, error)
	PlaceDigit(row, col, digit int) (*PlacementResult, error)

	// Stream queries
	PeekDigit(n int) (int, error)
	Upcoming() []int

	// Board queries
	FreeTiles() []Position
	ValueAt(row, col int) (int, bool)
	FindFree(from Position, dir Direction) (Position, bool)

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetPlacementHistory() []PlacementHistoryEntry
	GetLastPlacement() *PlacementHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	config *GameConfig
	board  *Board
	stream *DigitStream

	message string

	history      []PlacementHistoryEntry
	totalPlaced  int
	currentRound []PlacementHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	e.initRound(sessionSeed(config))
	e.message = config.Messages.Welcome
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the classic rules
func NewEngineWithDefaults() *GameEngine {
	e, _ := NewEngine(DefaultGameConfig())
	return e
}

// sessionSeed picks the configured seed, or a fresh one when unset.
func sessionSeed(config *GameConfig) int64 {
	if config.Seed != 0 {
		return config.Seed
	}
	return time.Now().UnixNano()
}

// initRound builds a fresh board and stream for a new round.
func (e *GameEngine) initRound(seed int64) {
	e.stream = NewDigitStream(seed)
	interior := interiorValues(e.config, e.stream)
	e.board = NewBoard(e.config.Rows, e.config.Cols, interior, e.adjacency())
	e.currentRound = nil
}

func (e *GameEngine) adjacency() Adjacency {
	if e.config.Adjacency == "" {
		return AdjacencyBox
	}
	return e.config.Adjacency
}

// Place consumes the head of the digit stream and places it at row,col.
// The stream only advances on a successful placement, so a rejected call
// leaves both the board and the look-ahead window untouched.
func (e *GameEngine) Place(row, col int) (*PlacementResult, error) {
	digit, _ := e.stream.Peek(1)

	result, err := e.board.Place(row, col, digit)
	if err != nil {
		return nil, err
	}
	e.stream.Next()

	entry := PlacementHistoryEntry{
		Position:   result.Placed,
		Digit:      digit,
		Matched:    result.Matched,
		Cleared:    result.Cleared,
		Timestamp:  time.Now().Unix(),
		MoveNumber: e.totalPlaced + 1,
	}
	e.history = append(e.history, entry)
	e.currentRound = append(e.currentRound, entry)
	e.totalPlaced++

	e.message = e.resultMessage(result)

	return result, nil
}

// PlaceDigit places like Place but verifies the caller's digit against the
// head of the stream first, failing with ErrDigitMismatch on a desync.
func (e *GameEngine) PlaceDigit(row, col, digit int) (*PlacementResult, error) {
	head, _ := e.stream.Peek(1)
	if digit != head {
		return nil, ErrDigitMismatch
	}
	return e.Place(row, col)
}

// resultMessage renders the configured message template for a result.
func (e *GameEngine) resultMessage(result *PlacementResult) string {
	msgs := e.config.Messages
	switch {
	case result.Terminal == Won && msgs.Won != "":
		return fmt.Sprintf(msgs.Won, e.board.PlacementsMade())
	case result.Terminal == Stuck && msgs.Stuck != "":
		return msgs.Stuck
	case result.Matched && msgs.Match != "":
		return fmt.Sprintf(msgs.Match, len(result.Cleared))
	case msgs.Placed != "":
		return fmt.Sprintf(msgs.Placed, result.Digit, result.Placed.Row, result.Placed.Col)
	}
	return ""
}

// PeekDigit returns the n-th upcoming digit (1-indexed, 1..4).
func (e *GameEngine) PeekDigit(n int) (int, error) {
	return e.stream.Peek(n)
}

// Upcoming returns the look-ahead window, next digit first.
func (e *GameEngine) Upcoming() []int {
	return e.stream.Window()
}

// FreeTiles returns all currently free coordinates.
func (e *GameEngine) FreeTiles() []Position {
	return e.board.FreeTiles()
}

// ValueAt returns the digit at row,col and whether the tile is occupied.
func (e *GameEngine) ValueAt(row, col int) (int, bool) {
	return e.board.ValueAt(row, col)
}

// FindFree locates the nearest free tile from a position in a direction.
func (e *GameEngine) FindFree(from Position, dir Direction) (Position, bool) {
	return e.board.FindFree(from, dir)
}

// IsGameOver returns whether the game has ended, won or stuck
func (e *GameEngine) IsGameOver() bool {
	return e.board.IsTerminal()
}

// IsWon returns whether the board has been emptied
func (e *GameEngine) IsWon() bool {
	return e.board.Terminal() == Won
}

// GetScore returns the number of placements made this round; lower is better
func (e *GameEngine) GetScore() int {
	return e.board.PlacementsMade()
}

// GetSeed returns the seed of the current round's digit stream
func (e *GameEngine) GetSeed() int64 {
	return e.stream.Seed()
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a fresh game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	e.config = config
	e.history = nil
	e.totalPlaced = 0
	e.initRound(sessionSeed(config))
	e.message = config.Messages.Welcome
	return nil
}

// Reset starts a new round from scratch. Cumulative history and totals
// survive; only the current round's segment is cleared. A config without a
// pinned seed gets a fresh one, so restarts are new puzzles.
func (e *GameEngine) Reset() *GameState {
	e.initRound(sessionSeed(e.config))
	e.message = e.config.Messages.Welcome
	return e.GetState()
}

// GetPlacementHistory returns the complete placement history
func (e *GameEngine) GetPlacementHistory() []PlacementHistoryEntry {
	return e.history
}

// GetLastPlacement returns the last placement made, or nil if none
func (e *GameEngine) GetLastPlacement() *PlacementHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		Board:             e.board.Tiles(),
		Rows:              e.board.Rows(),
		Cols:              e.board.Cols(),
		Adjacency:         e.adjacency(),
		PlacementsMade:    e.board.PlacementsMade(),
		OccupiedCount:     e.board.OccupiedCount(),
		Upcoming:          e.stream.Window(),
		Seed:              e.stream.Seed(),
		DigitsConsumed:    e.stream.Consumed(),
		Terminal:          e.board.Terminal(),
		GameOver:          e.board.IsTerminal(),
		Won:               e.board.Terminal() == Won,
		Message:           e.message,
		ConfigName:        e.config.Name,
		History:           append([]PlacementHistoryEntry(nil), e.history...),
		TotalPlacements:   e.totalPlaced,
		CurrentRound:      append([]PlacementHistoryEntry(nil), e.currentRound...),
		CurrentRoundCount: len(e.currentRound),
	}
	return state
}

// SetState restores a persisted game state. The digit stream is rebuilt by
// replaying the recorded number of consumed digits against the saved seed,
// which reproduces the exact look-ahead window.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Board) == 0 {
		return fmt.Errorf("state has no board")
	}

	e.board = RestoreBoard(state.Board, state.Adjacency, state.PlacementsMade, state.Terminal)
	e.stream = RestoreDigitStream(state.Seed, state.DigitsConsumed)
	e.message = state.Message
	e.history = append([]PlacementHistoryEntry(nil), state.History...)
	e.totalPlaced = state.TotalPlacements
	e.currentRound = append([]PlacementHistoryEntry(nil), state.CurrentRound...)
	return nil
}
