package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/digitsum/sumstones/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for
// consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate an ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Place executes a single placement for a session. Rule rejections (occupied
// tile, out of bounds, digit mismatch, game over) come back as an
// unsuccessful result with a reject code, not as an error.
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, req PlaceRequest) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if req.Reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to a fresh board",
			Timestamp: time.Now(),
		})
	}

	var placement *engine.PlacementResult
	var placeErr error
	if req.Digit != nil {
		placement, placeErr = sess.Engine.PlaceDigit(req.Row, req.Col, *req.Digit)
	} else {
		placement, placeErr = sess.Engine.Place(req.Row, req.Col)
	}

	state := sess.Engine.GetState()
	result := &PlaceResult{
		Success:   placeErr == nil,
		Result:    placement,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if placeErr != nil {
		result.RejectCode = rejectCode(placeErr)
		result.Message = placeErr.Error()
		return result, nil
	}

	result.Events = append(result.Events, s.extractPlacementEvents(placement, state)...)

	// Auto-save session after a successful placement
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after placement: %v", sessionID, err)
	}

	return result, nil
}

// BulkPlace executes multiple placements in sequence, stopping at the first
// rejection or when the game ends.
func (s *gameServiceImpl) BulkPlace(ctx context.Context, sessionID string, placements []engine.Position, reset bool) (*BulkPlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	result := &BulkPlaceResult{
		RequestedPlacements: len(placements),
		Events:              make([]GameEvent, 0),
		Success:             true,
		StartOccupied:       state.OccupiedCount,
		GameOver:            state.GameOver,
		Message:             state.Message,
	}

	if reset {
		sess.Engine.Reset()
		result.StartOccupied = sess.Engine.GetState().OccupiedCount
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to a fresh board",
			Timestamp: time.Now(),
		})
	}

	// Limit placements to prevent abuse
	if len(placements) > engine.MaxBulkPlacements {
		result.Truncated = true
		result.Limit = engine.MaxBulkPlacements
		placements = placements[:engine.MaxBulkPlacements]
	}

	for i, pos := range placements {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = RejectGameOver
			result.StoppedOn = i + 1
			break
		}

		placement, placeErr := sess.Engine.Place(pos.Row, pos.Col)
		if placeErr != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("placement %d at (%d,%d) rejected: %v", i+1, pos.Row, pos.Col, placeErr)
			result.StopReasonCode = rejectCode(placeErr)
			result.StoppedOn = i + 1
			break
		}

		result.Executed++
		if placement.Matched {
			result.MatchesMade++
		}

		currState := sess.Engine.GetState()
		result.Steps = append(result.Steps, PlaceStep{
			Idx:           i + 1,
			Position:      placement.Placed,
			Digit:         placement.Digit,
			Matched:       placement.Matched,
			ClearedCount:  len(placement.Cleared),
			OccupiedAfter: currState.OccupiedCount,
			Success:       true,
		})
		result.Events = append(result.Events, s.extractPlacementEvents(placement, currState)...)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndOccupied = endState.OccupiedCount
	result.GameOver = endState.GameOver
	result.Message = endState.Message

	if result.GameOver && result.StopReasonCode == "" {
		if endState.Won {
			result.StopReasonCode = "won"
		} else {
			result.StopReasonCode = "stuck"
		}
	}

	// Auto-save session after bulk placements
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after bulk placements: %v", sessionID, err)
	}

	return result, nil
}

// Reset resets a game session to a fresh round
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetUpcoming returns the look-ahead window of a session's digit stream
func (s *gameServiceImpl) GetUpcoming(ctx context.Context, sessionID string) (*StreamInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return &StreamInfo{
		SessionID:      sess.ID,
		Upcoming:       sess.Engine.Upcoming(),
		PlacementsMade: sess.Engine.GetScore(),
	}, nil
}

// GetFreeTiles lists the free tiles of a session's board. When from and a
// direction are given, a cursor-assist suggestion is included.
func (s *gameServiceImpl) GetFreeTiles(ctx context.Context, sessionID string, from *engine.Position, dir engine.Direction) (*FreeTilesInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	tiles := sess.Engine.FreeTiles()
	info := &FreeTilesInfo{
		SessionID: sess.ID,
		Count:     len(tiles),
		Tiles:     tiles,
	}

	if from != nil {
		if suggestion, ok := sess.Engine.FindFree(*from, dir); ok {
			info.Suggested = &suggestion
		}
	}

	return info, nil
}

// GetPlacementHistory returns paginated placement history
func (s *gameServiceImpl) GetPlacementHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetPlacementHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var placements []engine.PlacementHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			placements = append(placements, history[i])
		}
	} else {
		if start < total {
			placements = history[start:end]
		}
	}

	if placements == nil {
		placements = []engine.PlacementHistoryEntry{}
	}

	return &HistoryResponse{
		Placements:  placements,
		Total:       total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractPlacementEvents generates events from a successful placement
func (s *gameServiceImpl) extractPlacementEvents(placement *engine.PlacementResult, state *engine.GameState) []GameEvent {
	events := []GameEvent{
		{
			Type:      "place",
			Message:   fmt.Sprintf("Placed %d at (%d,%d)", placement.Digit, placement.Placed.Row, placement.Placed.Col),
			Timestamp: time.Now(),
			Position:  &placement.Placed,
		},
	}

	if placement.Matched {
		events = append(events, GameEvent{
			Type:      "match",
			Message:   fmt.Sprintf("Match! Cleared %d tiles, %d remain", len(placement.Cleared), state.OccupiedCount),
			Timestamp: time.Now(),
			Position:  &placement.Placed,
		})
	}

	switch placement.Terminal {
	case engine.Won:
		events = append(events, GameEvent{
			Type:      "won",
			Message:   fmt.Sprintf("Board cleared in %d placements!", state.PlacementsMade),
			Timestamp: time.Now(),
		})
	case engine.Stuck:
		events = append(events, GameEvent{
			Type:      "stuck",
			Message:   "Board is full. No tile left to play.",
			Timestamp: time.Now(),
		})
	}

	return events
}

// rejectCode maps engine rule errors to stable reject codes.
func rejectCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrOutOfBounds):
		return RejectOutOfBounds
	case errors.Is(err, engine.ErrTileOccupied):
		return RejectTileOccupied
	case errors.Is(err, engine.ErrDigitMismatch):
		return RejectDigitMismatch
	case errors.Is(err, engine.ErrGameOver):
		return RejectGameOver
	}
	return "rejected"
}
