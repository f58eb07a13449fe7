// Package redis provides a Redis-backed key-value store for the box collection.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
)

// Config holds the connection settings for a Redis server.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store implements repositories.KeyValueStore with plain GET and SET.
// A SET replaces the whole value atomically on the server.
type Store struct {
	client *redis.Client
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return &Store{client: client}, nil
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ portsrepo.KeyValueStore = (*Store)(nil)
