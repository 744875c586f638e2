// Package session manages the lifecycle of SumStones game sessions.
//
// Manager is a thread-safe store of active sessions. Each session owns its
// own engine instance, so concurrent games never share board or stream
// state. Session IDs are short hex strings derived from UUIDs and are
// matched case-insensitively.
//
// When a SessionPersistence is attached, sessions survive restarts: the
// manager writes a JSON snapshot after mutations, lazily loads sessions
// that exist only on disk, and can prune in-memory sessions whose backing
// files were removed. A snapshot stores the stream's seed and consumed
// count rather than raw RNG state, so a restored game continues with
// exactly the digits it was saved with.
//
// Usage:
//
//	persistence, _ := session.NewFilePersistence("sessions", configManager)
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Sessions that go untouched past a retention window can be removed with
// CleanupExpiredSessions.
package session
