package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/cache"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps session records in Redis as JSON with a TTL.
type RedisStore struct {
	cache *cache.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on top of the cache client.
func NewRedisStore(cache *cache.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

func (s *RedisStore) Load(ctx context.Context, id string) (Data, bool, error) {
	payload, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return Data{}, false, fmt.Errorf("get session: %w", err)
	}
	if payload == nil {
		return Data{}, false, nil
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return Data{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return data, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+id, payload, ttl); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Replace(ctx context.Context, id string, data Data, ttl time.Duration) (bool, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.cache.SetIfExists(ctx, sessionKeyPrefix+id, payload, ttl)
	if err != nil {
		return false, fmt.Errorf("replace session: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKeyPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
