// ABOUTME: Test doubles for the orchestrators: a keyword embedder and an in-memory store
// ABOUTME: Shared by the indexer, retriever, and assistant tests
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/harper/vault-assistant/internal/models"
)

// keywordEmbedder maps text onto a fixed vocabulary, one dimension per word
type keywordEmbedder struct {
	vocab     []string
	failOn    string
	invalid   bool
	calls     atomic.Int32
	inFlight  atomic.Int32
	maxFlight atomic.Int32
	onCall    func()
}

func newKeywordEmbedder(vocab ...string) *keywordEmbedder {
	return &keywordEmbedder{vocab: vocab}
}

func (e *keywordEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	e.calls.Add(1)
	n := e.inFlight.Add(1)
	defer e.inFlight.Add(-1)
	for {
		m := e.maxFlight.Load()
		if n <= m || e.maxFlight.CompareAndSwap(m, n) {
			break
		}
	}

	if e.onCall != nil {
		e.onCall()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.failOn != "" && strings.Contains(text, e.failOn) {
		return nil, fmt.Errorf("%w: provider rejected chunk", models.ErrProvider)
	}

	lower := strings.ToLower(text)
	vec := make([]float64, len(e.vocab))
	for i, word := range e.vocab {
		vec[i] = float64(strings.Count(lower, word))
	}
	return vec, nil
}

func (e *keywordEmbedder) Validate() error {
	if e.invalid {
		return fmt.Errorf("%w: no api key", models.ErrConfiguration)
	}
	return nil
}

// memStore is an in-memory VectorStore
type memStore struct {
	mu        sync.Mutex
	records   models.VectorIndex
	appends   int
	replaces  int
	appendErr error
	loadErr   error
}

func (m *memStore) Append(_ context.Context, records []models.EmbeddingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	if len(records) == 0 {
		return nil
	}
	if err := m.records.CheckCompatible(records); err != nil {
		return err
	}
	m.appends++
	m.records = append(m.records, records...)
	return nil
}

func (m *memStore) LoadAll(_ context.Context) (models.VectorIndex, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append(models.VectorIndex{}, m.records...), nil
}

func (m *memStore) Replace(_ context.Context, records []models.EmbeddingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	if err := (models.VectorIndex{}).CheckCompatible(records); err != nil {
		return err
	}
	m.replaces++
	m.records = append(models.VectorIndex{}, records...)
	return nil
}

func (m *memStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

var errDiskFull = errors.New("disk full")
