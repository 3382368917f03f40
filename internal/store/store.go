// Package store keeps the active contract record for one browser profile
// (or one CLI profile) under a single well-known key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/albinolog/contracts/internal/model"
)

// ContractKey is the key the record lives under.
const ContractKey = "contractData"

var ErrMissing = errors.New("key not found")

// Backend is a flat key/value space, the server-side stand-in for the
// browser's local storage.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ContractRepository is the persistence bridge between the quote form and
// the pages that follow it.
type ContractRepository interface {
	Save(ctx context.Context, record model.ContractRecord) error
	// Load returns ok=false when nothing usable is stored. err is only set
	// when the backend itself fails.
	Load(ctx context.Context) (record model.ContractRecord, ok bool, err error)
	Clear(ctx context.Context) error
}

// Factory scopes the repository to a profile.
type Factory func(profileID string) ContractRepository

type ContractStore struct {
	backend Backend
	key     string
}

func NewContractStore(backend Backend, profileID string) *ContractStore {
	key := ContractKey
	if profileID != "" {
		key = profileID + ":" + ContractKey
	}
	return &ContractStore{backend: backend, key: key}
}

// NewFactory returns a Factory that scopes backend by profile.
func NewFactory(backend Backend) Factory {
	return func(profileID string) ContractRepository {
		return NewContractStore(backend, profileID)
	}
}

func (s *ContractStore) Save(ctx context.Context, record model.ContractRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode contract record: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("save contract record: %w", err)
	}
	return nil
}

func (s *ContractStore) Load(ctx context.Context) (model.ContractRecord, bool, error) {
	payload, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrMissing) {
		return model.ContractRecord{}, false, nil
	}
	if err != nil {
		return model.ContractRecord{}, false, fmt.Errorf("load contract record: %w", err)
	}

	var record model.ContractRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return model.ContractRecord{}, false, nil
	}
	if !record.Valid() {
		return model.ContractRecord{}, false, nil
	}
	return record, true, nil
}

func (s *ContractStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrMissing) {
		return fmt.Errorf("clear contract record: %w", err)
	}
	return nil
}
