// Package websocket provides the WebSocket transport for SumStones.
//
// A central Hub manages all connections using a hub-and-spoke model. Each
// client connection gets a read and a write goroutine, and the hub's Run
// loop owns the session map, so registration, removal, and fan-out never
// race.
//
// Connections are session-aware: clients connect with a session ID
// (/ws?session=abcd1234) and only receive updates for that session. After
// every board mutation the API server calls BroadcastToSession, which
// pushes a JSON Message carrying the full GameState:
//
//	{"session_id": "abcd1234", "event": "state_update", "game_state": {...}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler
//	hub.ServeWS(w, r, sessionID)
//
// Incoming client messages are ignored; the socket is a one-way state feed
// with ping/pong keepalive. Mutations go through the REST API.
package websocket
