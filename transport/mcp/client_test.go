package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/digitsum/sumstones/game/engine"
	"github.com/digitsum/sumstones/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":             "test-session",
		"occupied_count": float64(49),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall("GET", "/api", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 500 response")
	}
	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/nope", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}
	if !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected server error message, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "test-session-123",
			ConfigName: "classic",
			GameState: &engine.GameState{
				Rows:          3,
				Cols:          3,
				Board:         emptyTestBoard(3, 3),
				Upcoming:      []int{5, 2, 8, 1},
				OccupiedCount: 0,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(context.Background(), request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_placeStone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/abcd/place" {
			t.Errorf("Expected POST /api/sessions/abcd/place, got %s %s", r.Method, r.URL.Path)
		}

		var req service.PlaceRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Row != 1 || req.Col != 2 {
			t.Errorf("Expected placement at (1,2), got (%d,%d)", req.Row, req.Col)
		}

		resp := service.PlaceResult{
			Success: true,
			Result: &engine.PlacementResult{
				Placed:      engine.Position{Row: 1, Col: 2},
				Digit:       7,
				Matched:     true,
				NeighborSum: 7,
				Cleared:     []engine.Position{{Row: 1, Col: 2}, {Row: 1, Col: 1}},
			},
			GameState: &engine.GameState{
				Rows:     3,
				Cols:     3,
				Board:    emptyTestBoard(3, 3),
				Upcoming: []int{2, 8, 1, 4},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "place_stone",
			Arguments: map[string]interface{}{
				"session_id": "abcd",
				"row":        float64(1),
				"col":        float64(2),
				"intent":     "match the 7 in the corner",
			},
		},
	}

	result, err := client.handlePlaceStone(context.Background(), request)
	if err != nil {
		t.Fatalf("handlePlaceStone failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	if !strings.Contains(resultStr.Text, "Placement successful") {
		t.Errorf("Expected success marker, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "MATCH!") {
		t.Errorf("Expected match announcement, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "cleared 2 stones") {
		t.Errorf("Expected cleared count, got: %s", resultStr.Text)
	}
}

func TestFormatGameState(t *testing.T) {
	board := emptyTestBoard(3, 3)
	board[1][1] = engine.Tile{Value: 5, Origin: engine.OriginFixed}
	board[0][2] = engine.Tile{Value: 3, Origin: engine.OriginPlaced}

	gameState := &engine.GameState{
		Rows:            3,
		Cols:            3,
		Board:           board,
		Upcoming:        []int{7, 1, 9, 0},
		OccupiedCount:   2,
		PlacementsMade:  1,
		TotalPlacements: 1,
		Message:         "Placed 3 at (0,2).",
	}

	result := formatGameState(gameState)

	expectedFields := []string{
		"Occupied: 2/9",
		"Upcoming: [7] 1 9 0",
		"Placed 3 at (0,2).",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field %q in formatted output, got: %s", field, result)
		}
	}

	// Board rows render digits and dots
	if !strings.Contains(result, "..3") {
		t.Errorf("Expected row 0 rendering '..3', got: %s", result)
	}
	if !strings.Contains(result, ".5.") {
		t.Errorf("Expected row 1 rendering '.5.', got: %s", result)
	}
}

func TestFormatGameState_Terminal(t *testing.T) {
	won := &engine.GameState{
		Rows: 3, Cols: 3, Board: emptyTestBoard(3, 3),
		GameOver: true, Won: true,
	}
	if result := formatGameState(won); !strings.Contains(result, "YOU WIN") {
		t.Errorf("Expected win banner, got: %s", result)
	}

	stuck := &engine.GameState{
		Rows: 3, Cols: 3, Board: emptyTestBoard(3, 3),
		GameOver: true, Won: false,
	}
	if result := formatGameState(stuck); !strings.Contains(result, "STUCK") {
		t.Errorf("Expected stuck banner, got: %s", result)
	}
}

func TestFormatPlaceResult_Rejected(t *testing.T) {
	placeResult := &service.PlaceResult{
		Success:    false,
		RejectCode: service.RejectTileOccupied,
		GameState: &engine.GameState{
			Rows: 3, Cols: 3, Board: emptyTestBoard(3, 3),
		},
	}

	result := formatPlaceResult(placeResult)
	if !strings.Contains(result, "Placement rejected (tile_occupied)") {
		t.Errorf("Expected rejection with code, got: %s", result)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Placements: []engine.PlacementHistoryEntry{
			{MoveNumber: 2, Digit: 4, Position: engine.Position{Row: 1, Col: 1}, Matched: true, Cleared: []engine.Position{{Row: 1, Col: 1}, {Row: 0, Col: 0}}},
			{MoveNumber: 1, Digit: 9, Position: engine.Position{Row: 0, Col: 0}},
		},
		Total:      2,
		Page:       1,
		TotalPages: 1,
	}

	result := formatHistory(history)
	if !strings.Contains(result, "#2: 4 at (1,1) MATCH cleared=2") {
		t.Errorf("Expected match entry, got: %s", result)
	}
	if !strings.Contains(result, "#1: 9 at (0,0) miss") {
		t.Errorf("Expected miss entry, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"SumStones - Complete Instructions",
		"GAME OBJECTIVE:",
		"GAME MECHANICS:",
		"VICTORY AND DEFEAT:",
		"STRATEGY NOTES FOR AI AGENTS:",
		"sum % 10",
		"No cascades",
	}
	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected %q in instructions", content)
		}
	}
}

func TestClient_describeTile(t *testing.T) {
	board := emptyTestBoard(3, 3)
	board[1][1] = engine.Tile{Value: 5, Origin: engine.OriginFixed}
	board[0][0] = engine.Tile{Value: 9, Origin: engine.OriginPlaced}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := engine.GameState{
			Rows:      3,
			Cols:      3,
			Adjacency: engine.AdjacencyBox,
			Board:     board,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "describe_tile",
			Arguments: map[string]interface{}{
				"session_id": "abcd",
				"row":        float64(0),
				"col":        float64(1),
			},
		},
	}

	result, err := client.handleDescribeTile(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDescribeTile failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	// (0,1) is free; box neighbors (0,0)=9 and (1,1)=5 sum to 14
	if !strings.Contains(resultStr.Text, "Free") {
		t.Errorf("Expected free tile description, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Neighbor sum: 14") {
		t.Errorf("Expected neighbor sum 14, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "matches on digit 4") {
		t.Errorf("Expected match digit 4, got: %s", resultStr.Text)
	}

	// Out of bounds
	request.Params.Arguments = map[string]interface{}{
		"session_id": "abcd",
		"row":        float64(9),
		"col":        float64(0),
	}
	result, err = client.handleDescribeTile(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDescribeTile failed: %v", err)
	}
	resultStr = result.Content[0].(mcp.TextContent)
	if !strings.Contains(resultStr.Text, "out of bounds") {
		t.Errorf("Expected out of bounds message, got: %s", resultStr.Text)
	}
}

// emptyTestBoard builds a rows x cols board of free tiles
func emptyTestBoard(rows, cols int) [][]engine.Tile {
	board := make([][]engine.Tile, rows)
	for r := range board {
		board[r] = make([]engine.Tile, cols)
		for c := range board[r] {
			board[r][c] = engine.Tile{Value: engine.Empty}
		}
	}
	return board
}
