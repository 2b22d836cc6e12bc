package session

import (
	"sync"
	"time"

	"scenery/models"
)

// memoryCache is the in-process degrade path used while Redis is in its
// failure cooldown. Same TTL discipline, process-local only.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	expiresAt time.Time
	sctx      models.SessionContext
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]memoryEntry)}
}

func (m *memoryCache) get(sessionID string, now time.Time) (models.SessionContext, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[sessionID]
	if !ok {
		return models.SessionContext{}, false
	}
	if entry.expiresAt.Before(now) {
		delete(m.entries, sessionID)
		return models.SessionContext{}, false
	}
	return entry.sctx, true
}

func (m *memoryCache) set(sctx models.SessionContext, ttl time.Duration, now time.Time) {
	if sctx.SessionID == "" {
		return
	}
	m.mu.Lock()
	m.entries[sctx.SessionID] = memoryEntry{expiresAt: now.Add(ttl), sctx: sctx}
	m.mu.Unlock()
}

// prune drops expired entries and returns how many were removed.
func (m *memoryCache) prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, entry := range m.entries {
		if entry.expiresAt.Before(now) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}
