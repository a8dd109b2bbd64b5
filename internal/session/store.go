package session

import (
	"errors"
	"sync"
	"time"

	readings "powerplan/internal/readings/domain"
)

var (
	// ErrSessionNotFound indicates an unknown or expired session.
	ErrSessionNotFound = errors.New("session: not found")
)

// Clock provides time for expiry checks.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Store keeps sessions in memory. Nothing survives a restart: the
// analysis lifecycle is one upload, one session, no persistence.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	clock    Clock
	sessions map[string]*Session
}

// NewStore constructs a store. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session owning the reading set.
func (s *Store) Create(set []readings.Reading) *Session {
	sess := &Session{
		ID:        NewSessionID(),
		CreatedAt: s.clock.Now(),
		Readings:  set,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get loads a live session by id.
func (s *Store) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	s.mu.RLock()
	sess := s.sessions[id]
	s.mu.RUnlock()
	if sess == nil || s.expired(sess) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep evicts expired sessions and returns the number remaining.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
	return len(s.sessions)
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.clock.Now().Sub(sess.CreatedAt) > s.ttl
}
