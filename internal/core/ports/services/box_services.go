package services

import (
	"context"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
)

// BoxReaderSvc defines read operations on the box ledger
type BoxReaderSvc interface {
	// GetAll returns a copy of the collection in insertion order.
	GetAll() []domain.Box

	// GetBox returns the box with the given id or apperrors.ErrNotFound.
	GetBox(boxID string) (*domain.Box, error)

	// IsLoaded reports whether the first load from storage has finished.
	IsLoaded() bool

	// Generation is incremented every time the collection is reloaded from storage.
	Generation() uint64

	// SyncStatus reports whether memory and storage may have diverged.
	SyncStatus() domain.SyncStatus
}

// BoxWriterSvc defines the operations that load or mutate the box ledger
type BoxWriterSvc interface {
	// Initialize loads the collection from storage. It never fails: a storage
	// failure is logged and leaves an empty, loaded collection.
	Initialize(ctx context.Context)

	// AddBox appends a new box and persists the collection. A returned
	// *apperrors.StoreError means the box is kept in memory but not persisted.
	AddBox(ctx context.Context, box domain.Box) error

	// EditBox replaces the box with the same id in place and persists the collection.
	// replaced is false when no box has that id; this is not an error.
	EditBox(ctx context.Context, box domain.Box) (replaced bool, err error)
}

// BoxLedgerSvcFacade combines all box ledger service interfaces
type BoxLedgerSvcFacade interface {
	BoxReaderSvc
	BoxWriterSvc
}
