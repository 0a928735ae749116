package cache

import (
	"adaptivequiz/internal/model"
	"errors"
	"sync"
)

var ErrSessionExists = errors.New("session id already registered")

// SessionEntry guards one live session. Hold the lock for the whole of an
// engine operation so calls on the same session are serialised.
type SessionEntry struct {
	sync.Mutex
	Session *model.QuizSession
	// Closed is set once the session has been terminated. A caller that
	// obtained the entry before removal must treat it as gone.
	Closed bool
}

// SessionStore is the process-local table of running quiz sessions
type SessionStore interface {
	Create(session *model.QuizSession) (*SessionEntry, error)
	Get(id string) (*SessionEntry, bool)
	Delete(id string) bool
	Len() int
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionEntry
}

// NewSessionStore creates an empty in-memory session table
func NewSessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]*SessionEntry),
	}
}

func (s *memorySessionStore) Create(session *model.QuizSession) (*SessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return nil, ErrSessionExists
	}
	entry := &SessionEntry{Session: session}
	s.sessions[session.ID] = entry
	return entry, nil
}

func (s *memorySessionStore) Get(id string) (*SessionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	return entry, ok
}

func (s *memorySessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *memorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
