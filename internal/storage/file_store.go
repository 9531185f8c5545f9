// ABOUTME: JSON file backend for the vector index
// ABOUTME: Writes go to a temp file in the same directory, fsynced and renamed over the index
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
)

// FileStore keeps the whole index in one JSON file
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *log.Logger
}

// NewFileStore returns a store backed by the file at path.
// The file and its directory are created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: index path is required", models.ErrConfiguration)
	}
	return &FileStore{
		path:   path,
		logger: logging.New("Storage"),
	}, nil
}

// Path returns the index file location
func (s *FileStore) Path() string {
	return s.path
}

// LoadAll reads the index file. A missing file is an empty index.
func (s *FileStore) LoadAll(ctx context.Context) (models.VectorIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read()
}

// Append merges records onto the stored index and replaces the file atomically
func (s *FileStore) Append(ctx context.Context, records []models.EmbeddingRecord) error {
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

	if err := s.write(merged); err != nil {
		return err
	}

	s.logger.Debug("appended records", "added", len(records), "total", len(merged), "path", s.path)
	return nil
}

// Replace writes records as the whole index, dropping what was stored before
func (s *FileStore) Replace(ctx context.Context, records []models.EmbeddingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idx, err := fresh(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(idx); err != nil {
		return err
	}
	s.logger.Info("index replaced", "total", len(idx), "path", s.path)
	return nil
}

// Reset replaces the index with an empty one
func (s *FileStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(models.VectorIndex{}); err != nil {
		return err
	}
	s.logger.Info("index reset", "path", s.path)
	return nil
}

func (s *FileStore) read() (models.VectorIndex, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.VectorIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read index %s: %w", models.ErrIO, s.path, err)
	}

	idx, err := decodeIndex(data)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", s.path, err)
	}
	return idx, nil
}

// write replaces the index file without ever exposing a partial one to readers
func (s *FileStore) write(idx models.VectorIndex) error {
	data, err := encodeIndex(idx)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create index directory: %w", models.ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", models.ErrIO, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %w", models.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: sync temp file: %w", models.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %w", models.ErrIO, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace index: %w", models.ErrIO, err)
	}
	return nil
}
