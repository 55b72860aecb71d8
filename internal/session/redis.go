package session

// redis.go provides the Redis-backed Store. It keeps the same contract
// as MemoryStore but lets sessions survive a process restart and be
// shared by multiple instances. Each session is one JSON value under
// "session:<token>" whose Redis TTL doubles as the expiry, so expired
// sessions simply disappear.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/utils"
)

const redisKeyPrefix = "session:"

// RedisStore implements Store on top of a Redis client.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an already-connected Redis client. A
// non-positive TTL falls back to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create issues a new session and stores it with the TTL as the key
// expiry.
func (s *RedisStore) Create(ctx context.Context, userID int64) (model.Session, error) {
	now := time.Now()
	sess := model.Session{
		Token:     utils.NewSessionToken(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return model.Session{}, err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.Token, data, s.ttl).Err(); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// Get resolves a token. A key evicted by Redis (TTL elapsed) and a key
// that never existed both come back as ErrNotFound. ExpiresAt is still
// checked explicitly to guard against clock drift on the Redis side.
func (s *RedisStore) Get(ctx context.Context, token string) (model.Session, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Session{}, ErrNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.Session{}, ErrNotFound
	}
	if sess.Expired(time.Now()) {
		_ = s.client.Del(ctx, redisKeyPrefix+token).Err()
		return model.Session{}, ErrNotFound
	}
	return sess, nil
}

// Destroy deletes the token's key. DEL on a missing key is already a
// no-op in Redis, which gives the idempotency the contract requires.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}
