package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/digitsum/sumstones/game/engine"
	"github.com/digitsum/sumstones/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"SumStones",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`SumStones - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Clear every digit stone from the board. You place the next digit from a
fixed stream onto a free tile; if the digit equals the last digit of the
sum of its occupied neighbors, the placed stone and those neighbors vanish.

AVAILABLE TOOLS:
- game_state: Get current board, upcoming digits, and status
- place_stone: Place the next digit at (row, col) - requires intent explanation
- bulk_place: Place a sequence of digits at given positions - requires intent explanation
- upcoming_digits: Peek at the 4-digit look-ahead window
- free_tiles: List free tiles, with optional cursor-assist suggestion
- reset_game: Start a fresh round
- placement_history: View past placements
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_tile: Get detailed info about a specific board tile

NOTE: The 'intent' parameter on place_stone/bulk_place serves as rubber duck
debugging - explain your reasoning before committing a stone!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_stone",
		Description: "Place the next digit from the stream onto a free tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the target tile (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the target tile (0-based)",
				},
				"digit": map[string]interface{}{
					"type":        "integer",
					"description": "Expected digit; rejected if it is not the head of the stream (optional safety check)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this placement (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before placing",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handlePlaceStone)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_place",
		Description: "Place a sequence of digits onto the board, one stream digit per position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"placements": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row": map[string]interface{}{"type": "integer"},
							"col": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"row", "col"},
					},
					"description": "Array of board positions, applied in order",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of placements (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before placing",
				},
			},
			Required: []string{"session_id", "placements"},
		},
	}, c.handleBulkPlace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "upcoming_digits",
		Description: "Peek at the look-ahead window of upcoming digits without consuming them",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUpcomingDigits)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "free_tiles",
		Description: "List free tiles. With row, col and direction set, also suggests the next free tile in that direction (wrapping around the board).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Starting row for the cursor-assist scan (optional)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Starting column for the cursor-assist scan (optional)",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"any", "north", "south", "east", "west"},
					"description": "Scan direction (optional, defaults to any)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleFreeTiles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to a fresh round",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "placement_history",
		Description: "Get placement history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlacementHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get detailed information about a specific board tile: its digit, whether it is fixed or placed, and the digit a placement there would need to match.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the tile to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the tile to describe (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeTile)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "ongoing"
		if s.GameState != nil {
			switch {
			case s.GameState.Won:
				status = "won"
			case s.GameState.GameOver:
				status = "stuck"
			}
		}
		result += fmt.Sprintf("- %s (Config: %s, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handlePlaceStone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := intArg(args, "row")
	col := intArg(args, "col")
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging
	_ = intent

	body := map[string]interface{}{
		"row":   row,
		"col":   col,
		"reset": reset,
	}
	if digit, ok := args["digit"].(float64); ok {
		body["digit"] = int(digit)
	}

	var result service.PlaceResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/place", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResult(&result)), nil
}

func (c *Client) handleBulkPlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	placementsRaw, _ := args["placements"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging
	_ = intent

	placements := make([]map[string]int, 0, len(placementsRaw))
	for _, p := range placementsRaw {
		pos, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		row, _ := pos["row"].(float64)
		col, _ := pos["col"].(float64)
		placements = append(placements, map[string]int{"row": int(row), "col": int(col)})
	}

	body := map[string]interface{}{
		"placements": placements,
		"reset":      reset,
	}

	var result service.BulkPlaceResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-place", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkPlaceResult(sessionID, &result)), nil
}

func (c *Client) handleUpcomingDigits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var stream service.StreamInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/stream", sessionID), nil, &stream); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Upcoming digits: %s\nNext to place: %d\nPlacements made: %d",
		formatUpcoming(stream.Upcoming), stream.Upcoming[0], stream.PlacementsMade)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFreeTiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := ""
	if row, ok := args["row"].(float64); ok {
		if col, ok := args["col"].(float64); ok {
			params = fmt.Sprintf("?row=%d&col=%d", int(row), int(col))
			if dir, ok := args["direction"].(string); ok && dir != "" {
				params += "&direction=" + dir
			}
		}
	}

	var tiles service.FreeTilesInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/free-tiles%s", sessionID, params), nil, &tiles); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Free tiles: %d\n", tiles.Count))
	if tiles.Suggested != nil {
		b.WriteString(fmt.Sprintf("Suggested: (%d,%d)\n", tiles.Suggested.Row, tiles.Suggested.Col))
	}
	for i, pos := range tiles.Tiles {
		if i > 0 && i%8 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("(%d,%d) ", pos.Row, pos.Col))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlacementHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		seeded := ""
		if config.Seeded {
			seeded = ", seeded"
		}
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, Adjacency: %s%s\n\n",
			config.Name, config.ConfigID, config.Description, config.Rows, config.Cols, config.Adjacency, seeded)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `SumStones - Complete Instructions

GAME OBJECTIVE:
Clear every digit stone from the board.

GAME MECHANICS:
• The stream: digits 0-9 arrive in a fixed pseudo-random order. You always
  see the next 4 digits but you must play the head of the stream; peeking
  never consumes a digit.
• Placement: choose any free tile. The head digit lands there and the next
  digit moves up.
• Matching: after a placement, sum the digits on occupied neighboring tiles
  (diagonals included on "box" boards, orthogonal only on "cross" boards).
  If the placed digit equals the last digit of that sum, the placed stone
  AND those neighbors are removed. A placement with no occupied neighbors
  never matches, so a lone 0 does not clear itself.
• No cascades: a match removes one batch of stones. The holes it opens can
  set up future matches, but nothing chains within a single placement.
• Fixed stones: the starting interior stones behave like placed ones; they
  are cleared when caught in a match.

VICTORY AND DEFEAT:
• Won: the board is completely empty.
• Stuck: every tile is occupied and no digit can be placed.
• Any placement can end the game either way; watch the occupied count.

BOARD DISPLAY:
• Digits 0-9 are stones; '.' is a free tile.
• Row and column indexes are 0-based, row first: (row,col).

STRATEGY NOTES FOR AI AGENTS:
1. Arithmetic first: before placing, compute the neighbor sum of the target
   tile. The placement clears only if head digit == sum % 10.
2. Use the look-ahead: a digit that cannot match anywhere now may match
   after you open space with the digits before it.
3. Mind the border: border tiles start empty, so early border placements
   have few occupied neighbors and rarely match. Build toward the interior.
4. The occupied count is your scoreboard: matches shrink it by at least 2,
   misses grow it by 1. If it trends toward rows*cols you are losing.
5. Use free_tiles with a direction for precise targeting, and describe_tile
   to double-check what is on a tile before relying on it in a sum.
6. bulk_place saves round trips but stops at the first rejection; verify
   each position in the sequence is free when planning.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a short hex ID and keeps its own board and stream
- A session's stream is seeded: resetting a seeded config replays the same
  digits, so you can practice a line repeatedly

Good luck clearing the board!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := intArg(args, "row")
	col := intArg(args, "col")

	var state engine.GameState
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if row < 0 || row >= state.Rows || col < 0 || col >= state.Cols {
		return mcp.NewToolResultError(fmt.Sprintf("Position (%d,%d) is out of bounds. Board is %dx%d (0-%d rows, 0-%d cols)",
			row, col, state.Rows, state.Cols, state.Rows-1, state.Cols-1)), nil
	}

	tile := state.Board[row][col]

	var tileChar, tileType, description string
	if tile.Free() {
		tileChar = "."
		tileType = "Free"
		description = "Free tile - the next stream digit can be placed here"
	} else {
		tileChar = fmt.Sprintf("%d", tile.Value)
		switch tile.Origin {
		case engine.OriginFixed:
			tileType = "Fixed stone"
			description = "Part of the starting layout - clearable by a match like any stone"
		default:
			tileType = "Placed stone"
			description = "Placed from the stream during play"
		}
	}

	// Neighbor arithmetic for the match rule
	sum := 0
	occupied := 0
	var parts []string
	for _, pos := range neighborPositions(row, col, &state) {
		t := state.Board[pos.Row][pos.Col]
		if t.Free() {
			continue
		}
		sum += t.Value
		occupied++
		parts = append(parts, fmt.Sprintf("%d@(%d,%d)", t.Value, pos.Row, pos.Col))
	}

	var matchLine string
	if occupied == 0 {
		matchLine = "No occupied neighbors: a placement here can never match."
	} else {
		matchLine = fmt.Sprintf("Occupied neighbors: %s\nNeighbor sum: %d -> a placement here matches on digit %d",
			strings.Join(parts, " + "), sum, sum%10)
	}

	result := fmt.Sprintf(`Tile at (%d,%d):
Character: %s
Type: %s
Description: %s

%s`,
		row, col, tileChar, tileType, description, matchLine)

	return mcp.NewToolResultText(result), nil
}

// neighborPositions lists in-bounds neighbors of (row,col) per the board's
// adjacency mode.
func neighborPositions(row, col int, state *engine.GameState) []engine.Position {
	offsets := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	if state.Adjacency != engine.AdjacencyCross {
		offsets = append(offsets, [2]int{-1, -1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{1, 1})
	}

	var result []engine.Position
	for _, off := range offsets {
		r, c := row+off[0], col+off[1]
		if r < 0 || r >= state.Rows || c < 0 || c >= state.Cols {
			continue
		}
		result = append(result, engine.Position{Row: r, Col: c})
	}
	return result
}

func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatUpcoming(upcoming []int) string {
	if len(upcoming) == 0 {
		return "(none)"
	}
	parts := make([]string, len(upcoming))
	for i, d := range upcoming {
		parts[i] = fmt.Sprintf("%d", d)
	}
	// Head of the stream is what the next placement uses
	parts[0] = "[" + parts[0] + "]"
	return strings.Join(parts, " ")
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Occupied: %d/%d | Placements: %d | Total: %d\n",
		state.OccupiedCount, state.Rows*state.Cols, state.PlacementsMade, state.TotalPlacements))
	result.WriteString(fmt.Sprintf("Upcoming: %s\n\n", formatUpcoming(state.Upcoming)))

	// Column header
	result.WriteString("   ")
	for col := 0; col < state.Cols; col++ {
		result.WriteString(fmt.Sprintf("%d", col%10))
	}
	result.WriteString("\n")

	for row := 0; row < state.Rows; row++ {
		result.WriteString(fmt.Sprintf("%2d ", row))
		for col := 0; col < state.Cols; col++ {
			tile := state.Board[row][col]
			if tile.Free() {
				result.WriteString(".")
			} else {
				result.WriteString(fmt.Sprintf("%d", tile.Value))
			}
		}
		result.WriteString("\n")
	}

	if state.GameOver {
		if state.Won {
			result.WriteString("\nBOARD CLEARED - YOU WIN!")
		} else {
			result.WriteString("\nBOARD FULL - STUCK")
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatPlaceResult(result *service.PlaceResult) string {
	var response string
	if result.Success {
		response = "✓ Placement successful\n"
	} else {
		response = fmt.Sprintf("✗ Placement rejected (%s)\n", result.RejectCode)
	}

	if result.Result != nil {
		p := result.Result
		response += fmt.Sprintf("Placed %d at (%d,%d)\n", p.Digit, p.Placed.Row, p.Placed.Col)
		if p.Matched {
			response += fmt.Sprintf("MATCH! Neighbor sum ends in %d; cleared %d stones\n",
				p.NeighborSum, len(p.Cleared))
		} else {
			response += fmt.Sprintf("No match (neighbor sum ends in %d)\n", p.NeighborSum)
		}
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkPlaceResult(sessionID string, result *service.BulkPlaceResult) string {
	var b strings.Builder

	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s\n", sessionID, configName))
	b.WriteString(fmt.Sprintf("Executed %d/%d placements, %d matches, occupied %d -> %d\n",
		result.Executed, result.RequestedPlacements, result.MatchesMade, result.StartOccupied, result.EndOccupied))

	if result.Truncated {
		b.WriteString(fmt.Sprintf("Request truncated to the %d-placement limit\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			outcome := "miss"
			if step.Matched {
				outcome = fmt.Sprintf("MATCH cleared=%d", step.ClearedCount)
			}
			b.WriteString(fmt.Sprintf("%2d. %d at (%d,%d) %s occupied=%d\n",
				step.Idx, step.Digit, step.Position.Row, step.Position.Col, outcome, step.OccupiedAfter))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Placement History (page %d/%d, %d total):\n\n",
		history.Page, history.TotalPages, history.Total))

	for _, entry := range history.Placements {
		outcome := "miss"
		if entry.Matched {
			outcome = fmt.Sprintf("MATCH cleared=%d", len(entry.Cleared))
		}
		b.WriteString(fmt.Sprintf("#%d: %d at (%d,%d) %s\n",
			entry.MoveNumber, entry.Digit, entry.Position.Row, entry.Position.Col, outcome))
	}

	if history.HasNext {
		b.WriteString(fmt.Sprintf("\nMore entries on page %d", history.Page+1))
	}

	return b.String()
}
