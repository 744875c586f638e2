package engine

import "errors"

var (
	ErrOutOfBounds     = errors.New("coordinate outside the board")
	ErrTileOccupied    = errors.New("tile is already occupied")
	ErrDigitMismatch   = errors.New("digit does not match the head of the stream")
	ErrDigitOutOfRange = errors.New("digit outside 0-9")
	ErrGameOver        = errors.New("game is over")
	ErrPeekOutOfRange  = errors.New("peek position outside the look-ahead window")
)
