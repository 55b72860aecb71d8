package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, int64(42), sess.UserID)
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

	got, err := s.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	_, err := s.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, 7)
	require.NoError(t, err)

	// Move the store's clock past the TTL; an expired session must be
	// indistinguishable from a missing one.
	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDestroyIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, s.Destroy(ctx, sess.Token))
	_, err = s.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying again, or destroying garbage, is a no-op success.
	assert.NoError(t, s.Destroy(ctx, sess.Token))
	assert.NoError(t, s.Destroy(ctx, "never-existed"))
}

func TestMemoryStoreSessionsAreIndependent(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	a, err := s.Create(ctx, 1)
	require.NoError(t, err)
	b, err := s.Create(ctx, 2)
	require.NoError(t, err)
	require.NotEqual(t, a.Token, b.Token)

	require.NoError(t, s.Destroy(ctx, a.Token))

	got, err := s.Get(ctx, b.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UserID)
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, 9)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	s.sweep()

	s.mu.Lock()
	_, ok := s.sessions[sess.Token]
	s.mu.Unlock()
	assert.False(t, ok, "sweep must drop expired sessions")
}
