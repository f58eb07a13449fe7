// Package memory provides an in-memory key-value store used for tests and
// ephemeral deployments. Values are copied on the way in and out.
package memory

import (
	"context"
	"sync"

	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
)

// Store is an in-memory implementation of repositories.KeyValueStore.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{values: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Compile-time check: ensure Store implements the KeyValueStore interface
var _ portsrepo.KeyValueStore = (*Store)(nil)
