// Package session manages the server-side login state. A session is
// created on register/login, looked up on every guarded request and
// destroyed on logout. Sessions live outside the users/tasks
// collections — either in process memory or in Redis — and expire a
// fixed time after creation.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/utils"
)

// DefaultTTL is the session lifetime when the config does not override
// it. Matches the 24h cookie lifetime the service has always used.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned by Get for a token that is unknown, expired
// or already destroyed. Callers treat all three identically.
var ErrNotFound = errors.New("session not found")

// Store issues, resolves and destroys sessions.
//
// Create binds a fresh opaque token to userID. Get resolves a token to
// its session, returning ErrNotFound when the token is unknown or the
// session has expired. Destroy invalidates a token; destroying a token
// twice (or one that never existed) is a successful no-op.
type Store interface {
	Create(ctx context.Context, userID int64) (model.Session, error)
	Get(ctx context.Context, token string) (model.Session, error)
	Destroy(ctx context.Context, token string) error
}

// MemoryStore keeps sessions in a mutex-guarded map. Expired entries
// are rejected on Get and reaped by an optional background sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns an in-memory store with the given TTL; a
// non-positive TTL falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]model.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a new session for userID.
func (s *MemoryStore) Create(ctx context.Context, userID int64) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}
	now := s.now()
	sess := model.Session{
		Token:     utils.NewSessionToken(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess, nil
}

// Get resolves token to a live session. An expired session is removed
// and reported as ErrNotFound, exactly like a missing one.
func (s *MemoryStore) Get(ctx context.Context, token string) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return model.Session{}, ErrNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		return model.Session{}, ErrNotFound
	}
	return sess, nil
}

// Destroy removes token. Idempotent: unknown tokens succeed.
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// StartSweep reaps expired sessions every interval until ctx is
// cancelled. Purely a memory-pressure measure — Get already refuses
// expired sessions on its own.
func (s *MemoryStore) StartSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}
