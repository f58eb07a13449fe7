package repositories

import (
	"context"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
)

// KeyValueStore is the durable medium behind the box store.
// Set must be all-or-nothing: a failed Set leaves the previous value readable.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key in a single write.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the medium.
	Close() error
}

// BoxReader defines read operations for the persisted box collection
type BoxReader interface {
	// Load returns the persisted collection in stored order.
	// An absent collection loads as an empty slice. Failures are *apperrors.StoreError.
	Load(ctx context.Context) ([]domain.Box, error)
}

// BoxWriter defines write operations for the persisted box collection
type BoxWriter interface {
	// Save replaces the persisted collection with boxes in one atomic write.
	Save(ctx context.Context, boxes []domain.Box) error
}

// BoxRepositoryFacade combines all box-related repository interfaces
type BoxRepositoryFacade interface {
	BoxReader
	BoxWriter
}
