// ABOUTME: Charm KV backend for the vector index
// ABOUTME: The whole collection lives under one key so every write replaces it in a single Set
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harper/vault-assistant/internal/charm"
	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
)

// KV is the subset of the Charm client the store needs
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// CharmStore keeps the index as a single JSON value in Charm KV
type CharmStore struct {
	kv     KV
	key    string
	mu     sync.Mutex
	logger *log.Logger
}

// NewCharmStore returns a store that keeps the named index in kv
func NewCharmStore(kv KV, name string) *CharmStore {
	return &CharmStore{
		kv:     kv,
		key:    charm.IndexKey(name),
		logger: logging.New("Storage"),
	}
}

// Key returns the KV key holding the index
func (s *CharmStore) Key() string {
	return s.key
}

// LoadAll reads the index value. A missing key is an empty index.
func (s *CharmStore) LoadAll(ctx context.Context) (models.VectorIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read()
}

// Append merges records onto the stored index and writes it back in one Set
func (s *CharmStore) Append(ctx context.Context, records []models.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}

	merged, err := merge(current, records)
	if err != nil {
		return err
	}

	data, err := encodeIndex(merged)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("%w: %w", models.ErrIO, err)
	}

	s.logger.Debug("appended records", "added", len(records), "total", len(merged), "key", s.key)
	return nil
}

// Replace stores records as the whole index in one Set
func (s *CharmStore) Replace(ctx context.Context, records []models.EmbeddingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idx, err := fresh(records)
	if err != nil {
		return err
	}
	data, err := encodeIndex(idx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("%w: %w", models.ErrIO, err)
	}
	s.logger.Info("index replaced", "total", len(idx), "key", s.key)
	return nil
}

// Reset deletes the index key
func (s *CharmStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(s.key); err != nil && !errors.Is(err, charm.ErrNotFound) {
		return fmt.Errorf("%w: %w", models.ErrIO, err)
	}
	s.logger.Info("index reset", "key", s.key)
	return nil
}

func (s *CharmStore) read() (models.VectorIndex, error) {
	data, err := s.kv.Get(s.key)
	if errors.Is(err, charm.ErrNotFound) || (err == nil && len(data) == 0) {
		return models.VectorIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrIO, s.key, err)
	}

	idx, err := decodeIndex(data)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", s.key, err)
	}
	return idx, nil
}
