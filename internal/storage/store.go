// ABOUTME: VectorStore contract shared by the file and Charm KV index backends
// ABOUTME: Append merges onto durable state, Replace swaps it, LoadAll returns a whole snapshot
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/vault-assistant/internal/models"
)

// VectorStore persists the embedding index
type VectorStore interface {
	// Append adds records after the existing ones. Nothing is written if any record
	// would mix dimensions with the stored index.
	Append(ctx context.Context, records []models.EmbeddingRecord) error
	// LoadAll returns every stored record in append order. A missing index is empty.
	LoadAll(ctx context.Context) (models.VectorIndex, error)
	// Replace swaps the whole index for records in one write
	Replace(ctx context.Context, records []models.EmbeddingRecord) error
	// Reset discards all records
	Reset(ctx context.Context) error
}

// decodeIndex parses a persisted index and checks it holds a single dimension
func decodeIndex(data []byte) (models.VectorIndex, error) {
	var idx models.VectorIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrCorruptIndex, err)
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	if idx == nil {
		idx = models.VectorIndex{}
	}
	return idx, nil
}

// encodeIndex serializes the index as a JSON array
func encodeIndex(idx models.VectorIndex) ([]byte, error) {
	if idx == nil {
		idx = models.VectorIndex{}
	}
	data, err := json.Marshal(idx)
	if err != nil {
		return nil, fmt.Errorf("%w: encode index: %w", models.ErrIO, err)
	}
	return data, nil
}

// fresh validates records as a complete index on their own
func fresh(records []models.EmbeddingRecord) (models.VectorIndex, error) {
	if err := (models.VectorIndex{}).CheckCompatible(records); err != nil {
		return nil, err
	}
	return append(models.VectorIndex{}, records...), nil
}

// merge validates records against current and returns the combined index
func merge(current models.VectorIndex, records []models.EmbeddingRecord) (models.VectorIndex, error) {
	if err := current.CheckCompatible(records); err != nil {
		return nil, err
	}
	merged := make(models.VectorIndex, 0, len(current)+len(records))
	merged = append(merged, current...)
	merged = append(merged, records...)
	return merged, nil
}
