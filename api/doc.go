// Package api provides the REST API server for SumStones.
//
// The server wraps a service.GameService behind gorilla/mux routes and
// pushes state updates to WebSocket subscribers after every mutation.
//
// Endpoints:
//
//	POST   /api/sessions                    create a session (optional config_id)
//	GET    /api/sessions                    list sessions (sort, order, limit)
//	GET    /api/sessions/overview           aggregate progress across sessions
//	GET    /api/sessions/{id}               session metadata and state
//	DELETE /api/sessions/{id}               delete a session
//	GET    /api/sessions/{id}/state         current game state
//	POST   /api/sessions/{id}/place         place the next digit (row, col, optional digit, reset)
//	POST   /api/sessions/{id}/bulk-place    place a sequence of digits
//	POST   /api/sessions/{id}/reset         start a fresh round
//	GET    /api/sessions/{id}/history       paginated placement history
//	GET    /api/sessions/{id}/stream        upcoming digits
//	GET    /api/sessions/{id}/free-tiles    free tiles, optional cursor assist
//	GET    /api/configs                     list configurations
//	POST   /api/configs                     save a configuration
//	GET    /api/configs/{name}              fetch a configuration
//	GET    /api/health                      health check
//	GET    /ws?session={id}                 WebSocket state updates
//
// Rule rejections come back with HTTP 200 and success=false plus a
// reject_code, so clients distinguish "illegal placement" from transport
// failures. Unknown sessions and configs are 404s.
package api
