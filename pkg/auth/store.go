package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrStoreClosed is returned when operations are attempted on a closed store.
var ErrStoreClosed = errors.New("auth: session store is closed")

// Store keeps signed-in principals by session ID in memory. It is safe for
// concurrent use and suited to single-server deployments.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*storedSession
	closed   bool
	done     chan struct{}
}

type storedSession struct {
	principal Principal
	expiresAt time.Time
}

// StoreOption configures Store behavior.
type StoreOption func(*storeConfig)

type storeConfig struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired sessions are removed.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) StoreOption {
	return func(c *storeConfig) {
		if d > 0 {
			c.cleanupInterval = d
		}
	}
}

// NewStore creates a store and starts its cleanup loop. Call Close to stop it.
func NewStore(opts ...StoreOption) *Store {
	cfg := &storeConfig{
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Store{
		sessions: make(map[string]*storedSession),
		done:     make(chan struct{}),
	}
	go s.cleanupLoop(cfg.cleanupInterval)
	return s
}

// Create stores p under a new random session ID.
func (s *Store) Create(ctx context.Context, p Principal, ttl time.Duration) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrStoreClosed
	}
	s.sessions[id] = &storedSession{principal: p, expiresAt: time.Now().Add(ttl)}
	return id, nil
}

// Load returns the principal for id if it exists and has not expired.
func (s *Store) Load(ctx context.Context, id string) (Principal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Principal{}, false, ErrStoreClosed
	}
	sess, ok := s.sessions[id]
	if !ok || time.Now().After(sess.expiresAt) {
		return Principal{}, false, nil
	}
	return sess.principal, true, nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	delete(s.sessions, id)
	return nil
}

// Touch extends a session's expiry.
func (s *Store) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if sess, ok := s.sessions[id]; ok {
		sess.expiresAt = expiresAt
	}
	return nil
}

// Count returns the number of stored sessions, expired ones included.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup loop and drops every session.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	s.sessions = nil
	return nil
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup removes expired sessions.
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
