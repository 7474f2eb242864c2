package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store is a Redis-backed cache for rendered GET responses. A nil *Store is
// valid and disables caching, so callers never need to branch on whether
// Redis is available.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStore connects to Redis and returns a response cache with the given TTL.
func NewStore(redisURL, password string, ttl time.Duration, logger zerolog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client, ttl: ttl, logger: logger}, nil
}

// Get returns the cached body for the key, with a hit flag.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s == nil || s.client == nil {
		return nil, false
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the body under the key for the configured TTL.
func (s *Store) Set(ctx context.Context, key string, body []byte) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Set(ctx, key, body, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// InvalidatePrefix removes every key under the prefix. Used by mutation
// handlers so list/detail responses never outlive a write. Keys are walked
// with SCAN in batches so invalidation never blocks the Redis server the way
// KEYS would.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) {
	if s == nil || s.client == nil {
		return
	}

	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				s.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation delete failed")
				return
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation scan failed")
		return
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			s.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation delete failed")
		}
	}
}
