package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotReady indicates that the ledger has not finished loading from storage yet.
var ErrNotReady = errors.New("ledger not loaded yet")

// ErrNoSelection indicates that an operation needed a selected box and none is selected.
var ErrNoSelection = errors.New("no box selected")

// ErrStore is matched by every StoreError.
var ErrStore = errors.New("storage failure")

// StoreError reports a read or write failure against durable storage.
// errors.Is(err, ErrStore) holds for any StoreError, and the medium error stays reachable.
type StoreError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

// NewStoreError wraps err as a StoreError for the given operation.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
