// ABOUTME: Retrieval orchestrator answering similar-document and prompt-context queries
// ABOUTME: Loads the index from the store, embeds the query, and ranks by cosine similarity
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
	"github.com/harper/vault-assistant/internal/storage"
)

// DefaultContextSeparator joins chunk texts in an augmented context
const DefaultContextSeparator = "\n\n---\n\n"

// Retriever runs queries against a stored index
type Retriever struct {
	embedder  Embedder
	store     storage.VectorStore
	separator string
	logger    *log.Logger
}

// NewRetriever creates a retriever. An empty separator uses DefaultContextSeparator.
func NewRetriever(embedder Embedder, store storage.VectorStore, separator string) *Retriever {
	if separator == "" {
		separator = DefaultContextSeparator
	}
	return &Retriever{
		embedder:  embedder,
		store:     store,
		separator: separator,
		logger:    logging.New("Retriever"),
	}
}

// Search embeds queryText and ranks every stored record against it.
// An empty index fails with ErrEmptyIndex before the provider is called.
func (r *Retriever) Search(ctx context.Context, queryText string) ([]models.SimilarityResult, error) {
	idx, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: index has no records, run an index first", models.ErrEmptyIndex)
	}

	query, err := r.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, err
	}

	results, err := Rank(query, idx)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("search", "records", len(idx), "top", topScore(results))
	return results, nil
}

// FindSimilarDocuments returns one match per stored document, best first
func (r *Retriever) FindSimilarDocuments(ctx context.Context, queryText string) ([]models.DocumentMatch, error) {
	results, err := r.Search(ctx, queryText)
	if err != nil {
		return nil, err
	}
	return RankDocuments(results), nil
}

// BuildAugmentedContext joins the k most similar chunk texts with the separator.
// k of zero or less uses DefaultTopK.
func (r *Retriever) BuildAugmentedContext(ctx context.Context, queryText string, k int) (string, error) {
	results, err := r.Search(ctx, queryText)
	if err != nil {
		return "", err
	}
	return strings.Join(TopChunks(results, k), r.separator), nil
}

// Reset discards the stored index
func (r *Retriever) Reset(ctx context.Context) error {
	return r.store.Reset(ctx)
}

func topScore(results []models.SimilarityResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].Score
}
