package importer

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager tracks live import sessions by ID. Sessions are independent; the
// manager only provides lookup, a concurrency cap, and TTL cleanup for
// sessions that were abandoned without an explicit close.
type Manager struct {
	writer      RecordWriter
	ttl         time.Duration
	maxSessions int

	mu       sync.RWMutex
	sessions map[string]*managedSession
}

type managedSession struct {
	session *Session
	expiry  *time.Timer
}

// NewManager creates a Manager that commits through writer. Sessions idle
// longer than ttl are dropped; at most maxSessions may be live at once
// (0 = unlimited).
func NewManager(writer RecordWriter, ttl time.Duration, maxSessions int) *Manager {
	return &Manager{
		writer:      writer,
		ttl:         ttl,
		maxSessions: maxSessions,
		sessions:    make(map[string]*managedSession),
	}
}

// Writer returns the record writer sessions commit through.
func (m *Manager) Writer() RecordWriter { return m.writer }

// Create starts a new session for the given destination target and schema
// and returns it. The session ID is a fresh UUID.
func (m *Manager) Create(target string, defs []ColumnDefinition) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("too many import sessions (limit %d)", m.maxSessions)
	}

	id := uuid.New().String()
	session := NewSession(id, target, defs)
	ms := &managedSession{session: session}
	if m.ttl > 0 {
		ms.expiry = time.AfterFunc(m.ttl, func() { m.Close(id) })
	}
	m.sessions[id] = ms
	return session, nil
}

// Get returns the session with the given ID and refreshes its TTL.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ms, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if ms.expiry != nil {
		ms.expiry.Reset(m.ttl)
	}
	return ms.session, true
}

// Close destroys a session. Closing an unknown ID is a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ms, ok := m.sessions[id]; ok {
		if ms.expiry != nil {
			ms.expiry.Stop()
		}
		delete(m.sessions, id)
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
