// Package mcp provides the Model Context Protocol interface for SumStones.
//
// The Client is a thin proxy: every tool call is translated into a REST API
// request, so MCP agents and HTTP clients always see the same game. This
// also means an MCP session can attach to a server that is already running.
//
// MCP Tools:
//
//	game_state         current board, upcoming digits, and status
//	place_stone        place the next stream digit at (row, col)
//	bulk_place         place a sequence of digits in one call
//	upcoming_digits    peek at the look-ahead window
//	free_tiles         list free tiles with optional cursor assist
//	reset_game         start a fresh round
//	placement_history  paginated placement history
//	create_session     create a session with an optional config
//	get_session        session details
//	list_sessions      all active sessions
//	list_configs       available board configurations
//	game_instructions  full rules and strategy notes
//	describe_tile      one tile's digit, origin, and neighbor-sum arithmetic
//
// The place_stone and bulk_place tools take an optional intent argument.
// It is never sent to the server; writing the reasoning down before acting
// measurably helps agents play better.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
