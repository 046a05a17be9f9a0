package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session binds a browser session to its state store and card views.
type Session struct {
	ID    string
	Store *Store

	views    *viewSet
	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// StoreFactory builds the initial store for a new session.
type StoreFactory func(sessionID string) *Store

// SessionManager keeps one Session per id.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  StoreFactory
	now      func() time.Time
}

// NewSessionManager creates a manager. A nil factory yields default stores.
func NewSessionManager(factory StoreFactory) *SessionManager {
	if factory == nil {
		factory = func(id string) *Store {
			return NewStore(StoreOptions{SessionID: id})
		}
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns an existing session.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if ok {
		sess.touch(m.now())
	}
	return sess, ok
}

// Ensure returns the session for id, creating it (and an id when empty).
func (m *SessionManager) Ensure(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if sess, ok := m.sessions[id]; ok {
			sess.touch(m.now())
			return sess, false
		}
	} else {
		id = uuid.NewString()
	}
	sess := &Session{
		ID:       id,
		Store:    m.factory(id),
		views:    newViewSet(),
		lastSeen: m.now(),
	}
	m.sessions[id] = sess
	return sess, true
}

// Drop removes a session and cancels its in-flight loads.
func (m *SessionManager) Drop(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		sess.views.invalidate()
	}
}

// Sweep evicts sessions idle for longer than maxIdle and returns the count.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	var evicted []*Session
	for id, sess := range m.sessions {
		if sess.idleSince().Before(cutoff) {
			evicted = append(evicted, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, sess := range evicted {
		sess.views.invalidate()
	}
	return len(evicted)
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
