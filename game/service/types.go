package service

import (
	"time"

	"github.com/digitsum/sumstones/game/engine"
)

// Reject codes mirror the engine's rule errors on unsuccessful placements.
const (
	RejectOutOfBounds   = "out_of_bounds"
	RejectTileOccupied  = "tile_occupied"
	RejectDigitMismatch = "digit_mismatch"
	RejectGameOver      = "game_over"
)

// SessionInfo represents session metadata returned to clients
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state,omitempty"`
	GameConfig     *engine.GameConfig `json:"game_config,omitempty"`
}

// PlaceRequest carries a single placement. Digit is optional: when set, the
// engine verifies it against the head of the stream before placing.
type PlaceRequest struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Digit *int `json:"digit,omitempty"`
	Reset bool `json:"reset,omitempty"`
}

// PlaceResult is the outcome of a single placement request
type PlaceResult struct {
	Success    bool                    `json:"success"`
	RejectCode string                  `json:"reject_code,omitempty"`
	Result     *engine.PlacementResult `json:"result,omitempty"`
	GameState  *engine.GameState       `json:"game_state"`
	Message    string                  `json:"message"`
	Events     []GameEvent             `json:"events"`
}

// PlaceStep records one executed placement in a bulk request
type PlaceStep struct {
	Idx           int             `json:"idx"`
	Position      engine.Position `json:"position"`
	Digit         int             `json:"digit"`
	Matched       bool            `json:"matched"`
	ClearedCount  int             `json:"cleared_count"`
	OccupiedAfter int             `json:"occupied_after"`
	Success       bool            `json:"success"`
}

// BulkPlaceResult is the outcome of a bulk placement request
type BulkPlaceResult struct {
	RequestedPlacements int               `json:"requested_placements"`
	Executed            int               `json:"executed"`
	Steps               []PlaceStep       `json:"steps,omitempty"`
	Events              []GameEvent       `json:"events"`
	Success             bool              `json:"success"`
	StoppedReason       string            `json:"stopped_reason,omitempty"`
	StopReasonCode      string            `json:"stop_reason_code,omitempty"`
	StoppedOn           int               `json:"stopped_on,omitempty"`
	Truncated           bool              `json:"truncated,omitempty"`
	Limit               int               `json:"limit,omitempty"`
	MatchesMade         int               `json:"matches_made"`
	StartOccupied       int               `json:"start_occupied"`
	EndOccupied         int               `json:"end_occupied"`
	GameOver            bool              `json:"game_over"`
	Message             string            `json:"message"`
	GameState           *engine.GameState `json:"game_state"`
}

// GameEvent represents a notable moment during play
type GameEvent struct {
	Type      string           `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// StreamInfo exposes the look-ahead window of a session's digit stream
type StreamInfo struct {
	SessionID      string `json:"session_id"`
	Upcoming       []int  `json:"upcoming"`
	PlacementsMade int    `json:"placements_made"`
}

// FreeTilesInfo lists the free tiles of a session's board, optionally with a
// cursor-assist suggestion computed by FindFree
type FreeTilesInfo struct {
	SessionID string            `json:"session_id"`
	Count     int               `json:"count"`
	Tiles     []engine.Position `json:"tiles"`
	Suggested *engine.Position  `json:"suggested,omitempty"`
}

// HistoryOptions controls placement-history pagination
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse is a page of placement history
type HistoryResponse struct {
	Placements  []engine.PlacementHistoryEntry `json:"placements"`
	Total       int                            `json:"total"`
	Page        int                            `json:"page"`
	PageSize    int                            `json:"page_size"`
	TotalPages  int                            `json:"total_pages"`
	HasNext     bool                           `json:"has_next"`
	HasPrevious bool                           `json:"has_previous"`
}

// ConfigInfo summarizes an available configuration
type ConfigInfo struct {
	Filename    string           `json:"filename"`
	ConfigID    string           `json:"config_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Rows        int              `json:"rows"`
	Cols        int              `json:"cols"`
	Adjacency   engine.Adjacency `json:"adjacency"`
	Seeded      bool             `json:"seeded"`
}
