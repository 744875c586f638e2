package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/digitsum/sumstones/game/engine"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.sessions["test-session"]; !exists {
		t.Fatal("Session was not created")
	}
	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should be cleaned up after last client unregisters")
	}
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
	client2 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining, got %d", len(hub.sessions[sessionID]))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestBroadcastFanOut(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
	other := &Client{hub: hub, sessionID: "other-session", send: make(chan []byte, 256)}
	hub.registerClient(client)
	hub.registerClient(other)

	hub.broadcastMessage(&Message{
		SessionID: sessionID,
		Event:     "state_update",
		GameState: &engine.GameState{OccupiedCount: 42, PlacementsMade: 7},
	})

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != sessionID {
			t.Errorf("Expected session %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != "state_update" {
			t.Errorf("Expected event state_update, got %s", message.Event)
		}
		if message.GameState.OccupiedCount != 42 {
			t.Errorf("Game state not transmitted, occupied = %d", message.GameState.OccupiedCount)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("No message received within timeout")
	}

	select {
	case <-other.send:
		t.Error("Client in another session should not receive the broadcast")
	default:
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	sessionID := "slow-client"

	// Unbuffered send channel fills immediately
	client := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte)}
	hub.registerClient(client)

	hub.broadcastMessage(&Message{SessionID: sessionID, Event: "state_update"})

	if _, exists := hub.sessions[sessionID]; exists {
		t.Error("Slow client should be unregistered")
	}
}

func newWSTestServer(hub *Hub) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := newWSTestServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	if count := hub.ClientCount(); count != 1 {
		t.Errorf("Expected 1 connected client, got %d", count)
	}

	conn.Close()
	time.Sleep(50 * time.Millisecond)

	if count := hub.ClientCount(); count != 0 {
		t.Errorf("Expected 0 clients after close, got %d", count)
	}
}

func TestWebSocketStateUpdateDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := newWSTestServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	hub.BroadcastToSession("msg-test", &engine.GameState{
		OccupiedCount:  33,
		PlacementsMade: 16,
		Upcoming:       []int{1, 2, 3, 4},
	})

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID msg-test, got %s", message.SessionID)
	}
	if message.GameState.OccupiedCount != 33 || message.GameState.PlacementsMade != 16 {
		t.Error("Game state not correctly received")
	}
	if len(message.GameState.Upcoming) != 4 {
		t.Errorf("Expected 4 upcoming digits, got %d", len(message.GameState.Upcoming))
	}
}
