package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schoolbook/internal/cache"
	"schoolbook/internal/model"
)

const sessionKeyPrefix = "session:"

// SessionStore persists the denormalized account snapshot for the lifetime
// of one session, keyed by the session token ID.
type SessionStore interface {
	Save(ctx context.Context, tokenID string, acct *model.Account, ttl time.Duration) error
	Resolve(ctx context.Context, tokenID string) (*model.Account, error)
	Destroy(ctx context.Context, tokenID string) error
}

// RedisSessionStore keeps session snapshots in Redis.
type RedisSessionStore struct {
	cache *cache.Client
}

// Ensure RedisSessionStore implements SessionStore
var _ SessionStore = (*RedisSessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *RedisSessionStore {
	return &RedisSessionStore{cache: cache}
}

// Save stores the account snapshot with TTL.
func (s *RedisSessionStore) Save(ctx context.Context, tokenID string, acct *model.Account, ttl time.Duration) error {
	payload, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+tokenID, payload, ttl)
}

// Resolve reads the account snapshot; returns (nil, nil) when the session is
// absent or expired. It never contacts the primary store.
func (s *RedisSessionStore) Resolve(ctx context.Context, tokenID string) (*model.Account, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+tokenID)
	if err != nil || data == nil {
		return nil, err
	}
	var acct model.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("unmarshal session snapshot: %w", err)
	}
	return &acct, nil
}

// Destroy removes the session snapshot.
func (s *RedisSessionStore) Destroy(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+tokenID)
}
