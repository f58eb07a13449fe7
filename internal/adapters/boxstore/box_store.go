// Package boxstore persists the box collection as a single serialized value
// under a fixed key of a key-value store.
package boxstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/class_fund_app/internal/apperrors"
	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
	"github.com/SscSPs/class_fund_app/internal/models"
	"github.com/SscSPs/class_fund_app/internal/utils/mapping"
)

// Store implements repositories.BoxRepositoryFacade over a KeyValueStore.
type Store struct {
	kv  portsrepo.KeyValueStore
	key string
}

// NewStore creates a box store writing the whole collection under key.
func NewStore(kv portsrepo.KeyValueStore, key string) *Store {
	return &Store{kv: kv, key: key}
}

var _ portsrepo.BoxRepositoryFacade = (*Store)(nil)

// Load reads and decodes the collection. A missing or empty value is an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Box, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, apperrors.NewStoreError("load", err)
	}
	if !found {
		return []domain.Box{}, nil
	}
	boxes, err := Decode(raw)
	if err != nil {
		return nil, apperrors.NewStoreError("load", err)
	}
	return boxes, nil
}

// Save encodes the full collection and writes it with a single Set.
// Encoding happens before the write, so a half-serialized value is never stored.
func (s *Store) Save(ctx context.Context, boxes []domain.Box) error {
	raw, err := Encode(boxes)
	if err != nil {
		return apperrors.NewStoreError("save", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return apperrors.NewStoreError("save", err)
	}
	return nil
}

// Encode serializes boxes as a UTF-8 JSON array of {"id","name","balance"} records.
// A nil slice encodes as [].
func Encode(boxes []domain.Box) ([]byte, error) {
	records := mapping.ToModelBoxSlice(boxes)
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode boxes: %w", err)
	}
	return raw, nil
}

// Decode parses a value written by Encode, or by older clients that stored
// numeric ids. Blank input decodes as an empty collection.
func Decode(raw []byte) ([]domain.Box, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Box{}, nil
	}
	var records []models.Box
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode boxes: %w", err)
	}
	boxes, err := mapping.ToDomainBoxSlice(records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode boxes: %w", err)
	}
	return boxes, nil
}
