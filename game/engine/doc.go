// Package engine provides the core game logic for SumStones.
//
// The engine package implements the puzzle mechanics including:
//   - The seeded, infinite digit stream with its 4-digit look-ahead window
//   - The board of tiles with placement, neighbor-sum and clearing rules
//   - Win/loss determination (board emptied vs. board full)
//   - Game state snapshots for persistence
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. A GameEngine owns a Board and a DigitStream
// built from a GameConfig; GameState is a JSON-serializable snapshot of the
// pair.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place the next digit from the stream
//	result, err := gameEngine.Place(4, 5)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// A 9x9 board starts with its central 7x7 interior filled with digits. The
// player places the head of the digit stream onto any free tile. When the
// placed digit equals the sum of its occupied neighbors modulo 10, the
// placed tile and those neighbors clear. The game is won when the board is
// empty and lost when it fills up; the score is the number of placements,
// lower being better.
//
// The engine owns no locking: callers serialize access, which the service
// and session layers above it do.
package engine
