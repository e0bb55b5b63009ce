// Package session holds per-shopper server state: the cart and, once
// checkout begins, the checkout wizard. Sessions are keyed by an opaque
// token carried in a cookie. All mutation runs through a single-slot
// in-flight guard so concurrent requests against one session never
// interleave.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/markethub/storefront/internal/cart"
	"github.com/markethub/storefront/internal/checkout"
	"github.com/markethub/storefront/internal/domain"
)

// ErrOperationInFlight is returned when a second operation arrives for a
// session whose slot is already taken. Callers retry; nothing queues.
var ErrOperationInFlight = &domain.Error{
	Code:    domain.ECONFLICT,
	Message: "Another operation is already in progress for this session",
}

// Entry is one session's state. It is only reachable inside Store.With,
// so access is already serialized when a caller sees it.
type Entry struct {
	Cart     *cart.Model
	Checkout *checkout.Session

	busy     bool
	lastSeen time.Time
}

// Options configures a Store.
type Options struct {
	// TTL evicts sessions idle longer than this. Zero disables eviction.
	TTL time.Duration

	// SweepInterval is how often expired sessions are collected.
	// Defaults to one minute when TTL is set.
	SweepInterval time.Duration

	// SimulatedLatency is slept inside every operation before the
	// callback runs, making the in-flight guard observable in demos.
	// Zero in production.
	SimulatedLatency time.Duration
}

// Store owns all live sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Entry

	ttl     time.Duration
	latency time.Duration
	done    chan struct{}
}

// NewStore creates a store and, when a TTL is configured, starts the
// eviction sweeper. Close releases the sweeper.
func NewStore(opts Options) *Store {
	s := &Store{
		sessions: make(map[string]*Entry),
		ttl:      opts.TTL,
		latency:  opts.SimulatedLatency,
		done:     make(chan struct{}),
	}
	if opts.TTL > 0 {
		interval := opts.SweepInterval
		if interval <= 0 {
			interval = time.Minute
		}
		go s.sweep(interval)
	}
	return s
}

// Close stops the eviction sweeper. Live sessions are left in place.
func (s *Store) Close() {
	close(s.done)
}

// Create makes a new session with an empty cart and returns its token.
func (s *Store) Create() (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", domain.Internal(err, "session.create", "could not create session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &Entry{
		Cart:     cart.NewModel(),
		lastSeen: time.Now(),
	}
	return token, nil
}

// With runs fn against the session's entry while holding its in-flight
// slot. A second caller arriving while the slot is taken gets
// ErrOperationInFlight immediately; nothing queues behind a slow
// operation. Operations are not cancelable once started.
func (s *Store) With(token string, fn func(*Entry) error) error {
	s.mu.Lock()
	e, ok := s.sessions[token]
	if !ok {
		s.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	if e.busy {
		s.mu.Unlock()
		return ErrOperationInFlight
	}
	e.busy = true
	e.lastSeen = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		e.busy = false
		s.mu.Unlock()
	}()

	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	return fn(e)
}

// Exists reports whether a token names a live session.
func (s *Store) Exists(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweep evicts idle sessions until Close. Busy sessions are skipped; an
// operation in flight proves the session is not idle.
func (s *Store) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, e := range s.sessions {
				if !e.busy && now.Sub(e.lastSeen) > s.ttl {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

// generateToken produces a cryptographically secure session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
