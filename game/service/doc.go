// Package service defines the GameService interface and its implementation,
// sitting between the transports (REST, WebSocket, MCP) and the game engine.
//
// The service owns session lifecycle and configuration lookup and translates
// engine rule errors into unsuccessful results with stable reject codes, so
// every transport reports rejections the same way. Only infrastructure
// failures, such as an unknown session, surface as errors.
package service
