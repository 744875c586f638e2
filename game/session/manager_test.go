package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestManagerCreate(t *testing.T) {
	manager := NewManager()
	config := pinnedConfig()

	session, err := manager.Create("", config)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if len(session.ID) != 8 {
		t.Errorf("Expected 8-character generated ID, got %q", session.ID)
	}
	if session.Engine == nil {
		t.Fatal("Session should have an engine")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManagerCreateWithID(t *testing.T) {
	manager := NewManager()
	config := pinnedConfig()

	session, err := manager.Create("myGame", config)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if session.ID != "myGame" {
		t.Errorf("Expected ID myGame, got %s", session.ID)
	}

	// Duplicate IDs are rejected, case-insensitively
	if _, err := manager.Create("MYGAME", config); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
	}
}

func TestManagerGeneratedIDsAreUnique(t *testing.T) {
	manager := NewManager()
	config := pinnedConfig()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
		if seen[session.ID] {
			t.Fatalf("Duplicate generated ID: %s", session.ID)
		}
		seen[session.ID] = true
	}
}

func TestManagerGetCaseInsensitive(t *testing.T) {
	manager := NewManager()
	session, err := manager.Create("AbCd", pinnedConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	for _, id := range []string{"AbCd", "abcd", "ABCD"} {
		got, err := manager.Get(id)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
			continue
		}
		if got.ID != session.ID {
			t.Errorf("Get(%q) returned session %s", id, got.ID)
		}
	}

	if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerGetOrCreate(t *testing.T) {
	manager := NewManager()
	config := pinnedConfig()

	first, err := manager.GetOrCreate("shared", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	second, err := manager.GetOrCreate("shared", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("GetOrCreate should return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManagerDelete(t *testing.T) {
	manager := NewManager()
	if _, err := manager.Create("doomed", pinnedConfig()); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if err := manager.Delete("DOOMED"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 sessions after delete, got %d", manager.Count())
	}
	if err := manager.Delete("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerUpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, err := manager.Create("touch", pinnedConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	before := session.LastAccessedAt
	time.Sleep(5 * time.Millisecond)

	if err := manager.UpdateLastAccessed("touch"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("LastAccessedAt should move forward")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerCleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	config := pinnedConfig()

	stale, _ := manager.Create("stale", config)
	fresh, _ := manager.Create("fresh", config)
	stale.LastAccessedAt = time.Now().Add(-48 * time.Hour)
	fresh.LastAccessedAt = time.Now()

	removed := manager.CleanupExpiredSessions(24 * time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, err := manager.Get("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Stale session should be gone")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Errorf("Fresh session should remain: %v", err)
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := pinnedConfig()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("game-%d", n)
			if _, err := manager.Create(id, config); err != nil {
				t.Errorf("Create %s failed: %v", id, err)
				return
			}
			if _, err := manager.Get(id); err != nil {
				t.Errorf("Get %s failed: %v", id, err)
			}
			manager.UpdateLastAccessed(id)
		}(i)
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManagerWithPersistence(t *testing.T) {
	persistence, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(persistence)

	session, err := manager.Create("persisted", pinnedConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if !persistence.Exists("persisted") {
		t.Fatal("Session should be written to disk on create")
	}

	// Mutate, save, drop from memory, then reload transparently via Get
	session.Engine.Place(0, 0)
	if err := manager.Save("persisted"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := manager.DeleteFromMemory("persisted"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if manager.Count() != 0 {
		t.Fatalf("Expected empty memory, got %d sessions", manager.Count())
	}

	reloaded, err := manager.Get("persisted")
	if err != nil {
		t.Fatalf("Get after memory drop failed: %v", err)
	}
	if reloaded.Engine.GetScore() != 1 {
		t.Errorf("Expected restored score 1, got %d", reloaded.Engine.GetScore())
	}
	if manager.Count() != 1 {
		t.Errorf("Reloaded session should be cached in memory, count = %d", manager.Count())
	}
}

func TestManagerLoadPersistedSessions(t *testing.T) {
	persistence, configs := newTestPersistence(t)

	for _, id := range []string{"alpha", "beta"} {
		if err := persistence.Save(newTestSession(t, id, configs.config)); err != nil {
			t.Fatalf("Failed to seed session %s: %v", id, err)
		}
	}

	manager := NewManagerWithPersistence(persistence)
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if manager.Count() != 2 {
		t.Errorf("Expected 2 loaded sessions, got %d", manager.Count())
	}
	for _, id := range []string{"alpha", "beta"} {
		if _, err := manager.Get(id); err != nil {
			t.Errorf("Session %s not loaded: %v", id, err)
		}
	}
}

func TestManagerDeleteRemovesFile(t *testing.T) {
	persistence, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(persistence)

	if _, err := manager.Create("gone", pinnedConfig()); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if err := manager.Delete("gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if persistence.Exists("gone") {
		t.Error("Session file should be removed with the session")
	}
}

func TestManagerSaveAllSessions(t *testing.T) {
	persistence, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(persistence)

	ids := []string{"one", "two", "three"}
	for _, id := range ids {
		if _, err := manager.Create(id, pinnedConfig()); err != nil {
			t.Fatalf("Failed to create session %s: %v", id, err)
		}
	}

	if err := manager.SaveAllSessions(); err != nil {
		t.Fatalf("SaveAllSessions failed: %v", err)
	}

	persisted, err := persistence.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(persisted) != len(ids) {
		t.Errorf("Expected %d persisted sessions, got %d", len(ids), len(persisted))
	}
}

func TestGeneratedIDFormat(t *testing.T) {
	id := generateSessionID()
	if len(id) != 8 {
		t.Fatalf("Expected 8 characters, got %d", len(id))
	}
	if id != strings.ToLower(id) {
		t.Errorf("Expected lowercase hex ID, got %s", id)
	}
}
