package form

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// session pairs a controller with its expiry. Expiry slides on access so an
// open page keeps its form state alive.
type session struct {
	controller *Controller
	mu         sync.Mutex
	expiresAt  time.Time
}

// Store holds one controller per page view, keyed by an opaque session ID.
// Sessions that go untouched past the TTL are swept by a background
// goroutine.
type Store struct {
	sessions    sync.Map
	ttl         time.Duration
	factory     func() *Controller
	cleanupOnce sync.Once
}

// NewStore creates a session store; ttl defaults to 30 minutes.
func NewStore(ttl time.Duration, factory func() *Controller) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{ttl: ttl, factory: factory}
}

// Create makes a fresh controller and returns its session ID.
func (s *Store) Create() (string, *Controller) {
	s.cleanupOnce.Do(s.startCleanup)

	id := uuid.NewString()
	sess := &session{
		controller: s.factory(),
		expiresAt:  time.Now().Add(s.ttl),
	}
	s.sessions.Store(id, sess)
	return id, sess.controller
}

// Get returns the controller for a session ID and slides its expiry.
func (s *Store) Get(id string) (*Controller, bool) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return nil, false
	}
	sess := value.(*session)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if time.Now().After(sess.expiresAt) {
		s.sessions.Delete(id)
		sess.controller.Close()
		return nil, false
	}
	sess.expiresAt = time.Now().Add(s.ttl)
	return sess.controller, true
}

// Delete tears a session down explicitly (page navigation).
func (s *Store) Delete(id string) {
	if value, ok := s.sessions.LoadAndDelete(id); ok {
		value.(*session).controller.Close()
	}
}

// startCleanup runs a background goroutine to clean up expired sessions
func (s *Store) startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			s.sessions.Range(func(key, value interface{}) bool {
				sess := value.(*session)
				sess.mu.Lock()
				expired := now.After(sess.expiresAt)
				sess.mu.Unlock()
				if expired {
					s.sessions.Delete(key)
					sess.controller.Close()
				}
				return true
			})
		}
	}()
}
