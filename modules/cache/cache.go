// Package cache holds the Redis plugin: a JSON cache-aside store with hit
// statistics and the shared client used by the login rate limiter.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a namespaced JSON cache on top of Redis.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
	sets   atomic.Uint64
	evicts atomic.Uint64
	errs   atomic.Uint64
}

// Stats is a point-in-time view of the store counters.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Evicts  uint64  `json:"evicts"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

// NewStore wraps client. Keys are stored as prefix+key with the given TTL.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get decodes the cached value for key into dest. It reports false on a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.misses.Add(1)
		return false, nil
	}
	if err != nil {
		s.errs.Add(1)
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.errs.Add(1)
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	s.hits.Add(1)
	return true, nil
}

// Set stores value under key with the default TTL.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.errs.Add(1)
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		s.errs.Add(1)
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	s.sets.Add(1)
	return nil
}

// Delete evicts the given keys.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	n, err := s.client.Del(ctx, full...).Result()
	if err != nil {
		s.errs.Add(1)
		return fmt.Errorf("cache delete: %w", err)
	}
	s.evicts.Add(uint64(n))
	return nil
}

// Stats returns the current counters.
func (s *Store) Stats() Stats {
	hits := s.hits.Load()
	misses := s.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    s.sets.Load(),
		Evicts:  s.evicts.Load(),
		Errors:  s.errs.Load(),
		HitRate: rate,
	}
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
