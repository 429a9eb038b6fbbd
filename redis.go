// FILE: bbconfig/redis.go
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Reserved keys addressing the Redis mirror, and their defaults.
const (
	KeyRedisHost     = "redis_server_ip"
	KeyRedisPort     = "redis_server_port"
	DefaultRedisHost = "localhost"
	DefaultRedisPort = "6379"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr        string        // Redis server address (host:port)
	Password    string        // Redis password (optional)
	DB          int           // Redis database number
	DialTimeout time.Duration // Connection timeout; DefaultDialTimeout when zero
	Timeout     time.Duration // Per-call timeout; DefaultMirrorTimeout when zero
}

// RedisStore is a Redis-backed SharedStore.
type RedisStore struct {
	client  *redis.Client
	logger  zerolog.Logger
	timeout time.Duration
}

// NewRedisStore creates a Redis-backed shared store. No connection is made until
// the first call; use Ping to probe availability.
func NewRedisStore(cfg RedisConfig, logger zerolog.Logger) *RedisStore {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultMirrorTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   -1,
	})

	return &RedisStore{
		client:  client,
		logger:  logger.With().Str("addr", cfg.Addr).Int("db", cfg.DB).Logger(),
		timeout: timeout,
	}
}

// Get fetches the snapshot stored under key. A missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q failed: %w", key, err)
	}
	return val, true, nil
}

// Set stores data under key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q failed: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("snapshot stored in redis")
	return nil
}

// Ping checks if Redis is available.
func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
