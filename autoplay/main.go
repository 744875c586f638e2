package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Tile struct {
	Value  int    `json:"value"`
	Origin string `json:"origin,omitempty"`
}

type GameState struct {
	Board          [][]Tile `json:"board"`
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	Adjacency      string   `json:"adjacency"`
	PlacementsMade int      `json:"placements_made"`
	OccupiedCount  int      `json:"occupied_count"`
	Upcoming       []int    `json:"upcoming"`
	GameOver       bool     `json:"game_over"`
	Won            bool     `json:"won"`
	Message        string   `json:"message"`
	ConfigName     string   `json:"config_name"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	GameState  *GameState `json:"game_state"`
}

type PlaceRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type PlaceResponse struct {
	Success    bool       `json:"success"`
	RejectCode string     `json:"reject_code,omitempty"`
	GameState  *GameState `json:"game_state"`
	Message    string     `json:"message"`
}

type ResetResponse struct {
	Message string     `json:"message"`
	State   *GameState `json:"state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configName string) (*GameState, error) {
	var reqBody []byte
	var err error

	if configName != "" {
		reqBody, err = json.Marshal(map[string]string{"config_name": configName})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return session.GameState, nil
}

// Place submits a single placement. A rejected placement is not an error at
// the transport level; the response carries the reject code and fresh state.
func (c *Client) Place(pos Position) (*PlaceResponse, error) {
	body, err := json.Marshal(PlaceRequest{Row: pos.Row, Col: pos.Col})
	if err != nil {
		return nil, fmt.Errorf("marshal place: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/place", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute place: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("place failed: %s - %s", resp.Status, string(respBody))
	}

	var placeResp PlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&placeResp); err != nil {
		return nil, fmt.Errorf("parse place response: %w", err)
	}

	return &placeResp, nil
}

func (c *Client) Reset() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.State, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configName := flag.String("config", "", "Game configuration name (classic, crossfire, mini, practice)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxMoves := flag.Int("max-moves", 2000, "Maximum placements per attempt")
	maxAttempts := flag.Int("max-attempts", 50, "Maximum attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between placements in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		} else {
			log.Printf("Session resumed - Board: %dx%d, Stones: %d, Placements: %d",
				state.Rows, state.Cols, state.OccupiedCount, state.PlacementsMade)
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*configName)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)
		log.Printf("Board: %dx%d, Starting stones: %d", state.Rows, state.Cols, state.OccupiedCount)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	strategy := NewGreedyStrategy()

	attemptNum := 0
	for attemptNum < *maxAttempts {
		attemptNum++

		// Fresh board for every attempt; unseeded configs roll a new stream
		state, err = client.Reset()
		if err != nil {
			log.Printf("Failed to reset: %v", err)
			break
		}

		log.Printf("\n=== Attempt %d/%d ===", attemptNum, *maxAttempts)

		moveCount := 0
		rejects := 0
		for !state.GameOver && moveCount < *maxMoves {
			if *verbose && moveCount%25 == 0 && moveCount > 0 {
				log.Printf("Placements: %d, Stones: %d, Next: %v",
					state.PlacementsMade, state.OccupiedCount, state.Upcoming)
			}

			pos, ok := strategy.NextPlacement(state)
			if !ok {
				log.Printf("No free tiles left to play")
				break
			}

			placeResp, err := client.Place(pos)
			if err != nil {
				log.Printf("Place failed: %v", err)
				break
			}

			if placeResp.GameState != nil {
				state = placeResp.GameState
			}
			if !placeResp.Success {
				rejects++
				if *verbose {
					log.Printf("Rejected (%d,%d): %s", pos.Row, pos.Col, placeResp.RejectCode)
				}
				if rejects > 10 {
					log.Printf("Too many rejected placements, giving up attempt")
					break
				}
				continue
			}

			moveCount++
			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		log.Printf("Attempt %d: Placements=%d, Stones=%d, Won=%v",
			attemptNum, moveCount, state.OccupiedCount, state.Won)

		if state.Won {
			log.Printf("\nVICTORY! Board cleared in attempt %d with %d placements!", attemptNum, moveCount)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	log.Printf("\nFailed to clear the board after %d attempts", attemptNum)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
