package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one browser-side conversation. Its buffer is private to the
// session; the mutex serializes turns so a session never has two in flight.
type Session struct {
	ID        string
	StartedAt time.Time

	mu     sync.Mutex
	buffer *Buffer
}

func newSession(id string, maxLen int) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:        id,
		StartedAt: time.Now().UTC(),
		buffer:    NewBuffer(maxLen),
	}
}

// Sessions is the registry of live sessions, keyed by session id. Session
// state is held here explicitly rather than in ambient globals.
type Sessions struct {
	mu     sync.Mutex
	byID   map[string]*Session
	maxLen int
}

func NewSessions(maxLen int) *Sessions {
	return &Sessions{byID: make(map[string]*Session), maxLen: maxLen}
}

// GetOrCreate returns the session for id, creating it when absent. The
// second result reports whether the session was created by this call; a
// fresh session is the rehydration point for store-backed deployments.
func (s *Sessions) GetOrCreate(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.byID[id]; ok {
			return sess, false
		}
	}
	sess := newSession(id, s.maxLen)
	s.byID[sess.ID] = sess
	return sess, true
}

func (s *Sessions) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	return sess, ok
}
