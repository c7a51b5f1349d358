package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists audit entries in a capped Redis list per key.
// Entries are pushed to the head and the list is trimmed, so the newest
// maxLen entries are retained.
type RedisStore struct {
	client *redis.Client
	prefix string
	maxLen int64
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces the Redis keys used by the store.
// Default is "auditlog".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithMaxLen caps the number of entries retained per key.
// Default is DefaultCapacity.
func WithMaxLen(n int) RedisStoreOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxLen = int64(n)
		}
	}
}

// NewRedisStore creates a Redis-backed audit store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilRedisClient
	}

	s := &RedisStore{
		client: client,
		prefix: "auditlog",
		maxLen: DefaultCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *RedisStore) redisKey(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Append(ctx context.Context, key string, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrStoreAppend, err)
	}

	// Pipeline keeps push and trim in one round trip.
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.redisKey(key), payload)
	pipe.LTrim(ctx, s.redisKey(key), 0, s.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreAppend, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string, limit int) ([]Entry, error) {
	stop := int64(limit) - 1
	if limit <= 0 {
		stop = s.maxLen - 1
	}

	raw, err := s.client.LRange(ctx, s.redisKey(key), 0, stop).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreLoad, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Join(ErrStoreLoad, fmt.Errorf("malformed entry: %w", err))
		}
		entries = append(entries, e)
	}
	return entries, nil
}
