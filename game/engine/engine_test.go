package engine

import (
	"encoding/json"
	"reflect"
	"testing"
)

func createTestConfig() *GameConfig {
	config := DefaultGameConfig()
	config.Name = "Engine Test Config"
	config.Description = "Configuration for engine integration tests"
	config.Seed = 42
	return config
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	e, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}
	if e == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	if e.GetScore() != 0 {
		t.Errorf("Expected initial score 0, got %d", e.GetScore())
	}
	if e.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if e.IsWon() {
		t.Error("Expected game not to be won initially")
	}
	if e.GetSeed() != 42 {
		t.Errorf("Expected seed 42, got %d", e.GetSeed())
	}

	state := e.GetState()
	if state.OccupiedCount != 49 {
		t.Errorf("Expected 49 starting tiles, got %d", state.OccupiedCount)
	}
	if len(state.Upcoming) != LookaheadSize {
		t.Errorf("Expected %d upcoming digits, got %d", LookaheadSize, len(state.Upcoming))
	}
	if state.Message != config.Messages.Welcome {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()
	if e == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	state := e.GetState()
	if state.Rows != 9 || state.Cols != 9 {
		t.Errorf("Expected 9x9 board, got %dx%d", state.Rows, state.Cols)
	}
	if state.OccupiedCount != 49 {
		t.Errorf("Expected 49 starting tiles, got %d", state.OccupiedCount)
	}
}

func TestEngine_SameSeedSameGame(t *testing.T) {
	a, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	b, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	sa, sb := a.GetState(), b.GetState()
	if !reflect.DeepEqual(sa.Board, sb.Board) {
		t.Error("Same seed produced different starting boards")
	}
	if !reflect.DeepEqual(sa.Upcoming, sb.Upcoming) {
		t.Errorf("Same seed produced different windows: %v vs %v", sa.Upcoming, sb.Upcoming)
	}
}

func TestEngine_PlaceConsumesStream(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	before := e.Upcoming()
	free := e.FreeTiles()
	if len(free) == 0 {
		t.Fatal("Expected free tiles on a fresh board")
	}

	result, err := e.Place(free[0].Row, free[0].Col)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if result.Digit != before[0] {
		t.Errorf("Placed digit %d, want stream head %d", result.Digit, before[0])
	}

	after := e.Upcoming()
	for i := 0; i < LookaheadSize-1; i++ {
		if after[i] != before[i+1] {
			t.Errorf("Upcoming[%d] = %d after place, want %d", i, after[i], before[i+1])
		}
	}

	if e.GetScore() != 1 {
		t.Errorf("Score = %d after one placement, want 1", e.GetScore())
	}
	history := e.GetPlacementHistory()
	if len(history) != 1 {
		t.Fatalf("History has %d entries, want 1", len(history))
	}
	if history[0].Digit != result.Digit || history[0].Position != result.Placed {
		t.Error("History entry does not match the placement")
	}
	if last := e.GetLastPlacement(); last == nil || last.MoveNumber != 1 {
		t.Error("GetLastPlacement should return the first move")
	}
}

func TestEngine_RejectedPlaceLeavesStreamAlone(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	before := e.Upcoming()
	stateBefore := e.GetState()

	// (1,1) is inside the pre-filled interior, so it is occupied
	if _, err := e.Place(1, 1); err != ErrTileOccupied {
		t.Fatalf("Expected ErrTileOccupied, got %v", err)
	}
	if _, err := e.Place(99, 0); err != ErrOutOfBounds {
		t.Fatalf("Expected ErrOutOfBounds, got %v", err)
	}

	if !reflect.DeepEqual(e.Upcoming(), before) {
		t.Error("Rejected placement consumed the stream")
	}
	if !reflect.DeepEqual(e.GetState().Board, stateBefore.Board) {
		t.Error("Rejected placement mutated the board")
	}
	if e.GetScore() != 0 {
		t.Errorf("Score = %d after rejections, want 0", e.GetScore())
	}
}

func TestEngine_PlaceDigit(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	head, err := e.PeekDigit(1)
	if err != nil {
		t.Fatalf("PeekDigit failed: %v", err)
	}

	// A digit other than the stream head is a caller desync
	if _, err := e.PlaceDigit(0, 0, (head+1)%NumDigits); err != ErrDigitMismatch {
		t.Fatalf("Expected ErrDigitMismatch, got %v", err)
	}
	if e.GetScore() != 0 {
		t.Error("Mismatched digit must not count as a placement")
	}

	result, err := e.PlaceDigit(0, 0, head)
	if err != nil {
		t.Fatalf("PlaceDigit with stream head failed: %v", err)
	}
	if result.Digit != head {
		t.Errorf("Placed %d, want %d", result.Digit, head)
	}
}

func TestEngine_PeekOutOfRange(t *testing.T) {
	e := NewEngineWithDefaults()

	if _, err := e.PeekDigit(LookaheadSize + 1); err != ErrPeekOutOfRange {
		t.Errorf("Expected ErrPeekOutOfRange, got %v", err)
	}
}

func TestEngine_ResetKeepsCumulativeHistory(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	for _, p := range e.FreeTiles()[:2] {
		if _, err := e.Place(p.Row, p.Col); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
	}

	state := e.Reset()

	if state.PlacementsMade != 0 {
		t.Errorf("Score after reset = %d, want 0", state.PlacementsMade)
	}
	if state.CurrentRoundCount != 0 {
		t.Errorf("CurrentRoundCount after reset = %d, want 0", state.CurrentRoundCount)
	}
	if len(state.History) != 2 {
		t.Errorf("Cumulative history lost on reset: %d entries, want 2", len(state.History))
	}
	if state.TotalPlacements != 2 {
		t.Errorf("TotalPlacements = %d, want 2", state.TotalPlacements)
	}
	if state.OccupiedCount != 49 {
		t.Errorf("Reset board has %d occupied tiles, want 49", state.OccupiedCount)
	}
}

func TestEngine_StateRoundtrip(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	for _, p := range e.FreeTiles()[:3] {
		if _, err := e.Place(p.Row, p.Col); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
	}

	// Through JSON, the way the persistence layer stores it
	data, err := json.Marshal(e.GetState())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	restored, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if err := restored.SetState(&state); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}

	got, want := restored.GetState(), e.GetState()
	if !reflect.DeepEqual(got.Board, want.Board) {
		t.Error("Restored board differs")
	}
	if !reflect.DeepEqual(got.Upcoming, want.Upcoming) {
		t.Errorf("Restored window %v, want %v", got.Upcoming, want.Upcoming)
	}
	if got.PlacementsMade != want.PlacementsMade {
		t.Errorf("Restored score %d, want %d", got.PlacementsMade, want.PlacementsMade)
	}
	if got.OccupiedCount != want.OccupiedCount {
		t.Errorf("Restored occupied count %d, want %d", got.OccupiedCount, want.OccupiedCount)
	}

	// Both engines must continue identically
	free := e.FreeTiles()[0]
	ra, ea := e.Place(free.Row, free.Col)
	rb, eb := restored.Place(free.Row, free.Col)
	if (ea == nil) != (eb == nil) {
		t.Fatalf("Engines diverged after restore: %v vs %v", ea, eb)
	}
	if ea == nil && !reflect.DeepEqual(ra, rb) {
		t.Errorf("Placement results diverged after restore: %+v vs %+v", ra, rb)
	}
}

func TestEngine_SetStateInvalid(t *testing.T) {
	e := NewEngineWithDefaults()

	if err := e.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
	if err := e.SetState(&GameState{}); err == nil {
		t.Error("Expected error for state without a board")
	}
}

func TestEngine_InvariantsUnderPlay(t *testing.T) {
	config := createTestConfig()
	config.Seed = 7
	e, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	for i := 0; i < 500 && !e.IsGameOver(); i++ {
		free := e.FreeTiles()
		if len(free) == 0 {
			t.Fatal("No free tile but the game is not over")
		}
		if _, err := e.Place(free[0].Row, free[0].Col); err != nil {
			t.Fatalf("Place failed at step %d: %v", i, err)
		}

		state := e.GetState()
		count := 0
		for _, row := range state.Board {
			for _, tile := range row {
				if !tile.Free() {
					count++
				}
			}
		}
		if count != state.OccupiedCount {
			t.Fatalf("OccupiedCount %d but %d occupied tiles at step %d", state.OccupiedCount, count, i)
		}
		if state.GameOver != (state.Terminal != Ongoing) {
			t.Fatalf("GameOver flag inconsistent with terminal %q", state.Terminal)
		}
	}

	if e.IsGameOver() {
		state := e.GetState()
		switch state.Terminal {
		case Won:
			if state.OccupiedCount != 0 {
				t.Error("Won with tiles still on the board")
			}
		case Stuck:
			if state.OccupiedCount != state.Rows*state.Cols {
				t.Error("Stuck with free tiles remaining")
			}
		}
		if _, err := e.Place(0, 0); err != ErrGameOver {
			t.Errorf("Place after game over: expected ErrGameOver, got %v", err)
		}
	}
}
