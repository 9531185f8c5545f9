// ABOUTME: Indexing orchestrator that chunks documents, embeds chunks, and appends them to the store
// ABOUTME: Embedding runs on a bounded worker pool and the store sees a single append or replace per run
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
	"github.com/harper/vault-assistant/internal/storage"
)

// DefaultConcurrency is the number of embedding calls in flight during indexing
const DefaultConcurrency = 4

// Embedder turns text into an embedding vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
	Validate() error
}

// Indexer builds the vector index from documents
type Indexer struct {
	chunker     *Chunker
	embedder    Embedder
	store       storage.VectorStore
	concurrency int
	logger      *log.Logger
}

// NewIndexer creates an indexer. Concurrency below 1 uses DefaultConcurrency.
func NewIndexer(chunker *Chunker, embedder Embedder, store storage.VectorStore, concurrency int) *Indexer {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Indexer{
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		concurrency: concurrency,
		logger:      logging.New("Indexer"),
	}
}

// slot holds the outcome for one chunk so results keep supply order
type slot struct {
	chunk  models.Chunk
	vector []float64
	err    error
	done   bool
}

// IndexFolder embeds every chunk of docs and appends the successful records in one call.
// Chunks the provider rejects are listed in the report's Failed and do not stop the run.
// When the store rejects the append, or ctx is cancelled, the partial report is returned
// together with the error and nothing is written.
func (ix *Indexer) IndexFolder(ctx context.Context, docs []models.Document) (models.IndexingReport, error) {
	return ix.run(ctx, docs, false)
}

// ReindexFolder embeds docs like IndexFolder and then replaces the stored index with
// the new records in one write. Until that write the previous index stays untouched,
// so a configuration error, a cancellation or a store failure leaves it intact.
func (ix *Indexer) ReindexFolder(ctx context.Context, docs []models.Document) (models.IndexingReport, error) {
	return ix.run(ctx, docs, true)
}

func (ix *Indexer) run(ctx context.Context, docs []models.Document, replace bool) (models.IndexingReport, error) {
	report := models.IndexingReport{
		RunID:     uuid.New().String(),
		Documents: len(docs),
	}

	if err := ix.embedder.Validate(); err != nil {
		return report, err
	}

	var slots []*slot
	for _, doc := range docs {
		for _, chunk := range ix.chunker.Chunk(doc) {
			slots = append(slots, &slot{chunk: chunk})
		}
	}
	report.Chunks = len(slots)

	if len(slots) == 0 && !replace {
		ix.logger.Info("nothing to index", "run", report.RunID, "documents", len(docs))
		return report, nil
	}

	start := time.Now()
	ix.logger.Info("indexing started", "run", report.RunID, "documents", len(docs), "chunks", len(slots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.concurrency)

	for _, s := range slots {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			s.vector, s.err = ix.embedder.GenerateEmbedding(gctx, s.chunk.Text)
			s.done = true
			return nil
		})
	}
	_ = g.Wait()

	records := make([]models.EmbeddingRecord, 0, len(slots))
	for _, s := range slots {
		if !s.done {
			continue
		}
		if s.err != nil {
			if ctx.Err() != nil {
				continue
			}
			report.Failed = append(report.Failed, models.IndexFailure{
				DocID:      s.chunk.SourceDocID,
				ChunkIndex: s.chunk.Index,
				Reason:     s.err,
			})
			ix.logger.Warn("chunk failed", "run", report.RunID, "doc", s.chunk.SourceDocID,
				"chunk", s.chunk.Index, "kind", models.ErrorKind(s.err), "err", s.err)
			continue
		}
		records = append(records, models.EmbeddingRecord{
			Vector:         s.vector,
			ChunkText:      s.chunk.Text,
			SourceDocID:    s.chunk.SourceDocID,
			SourceDocLabel: s.chunk.SourceDocLabel,
		})
	}
	report.Succeeded = len(records)

	if err := ctx.Err(); err != nil {
		ix.logger.Warn("indexing cancelled", "run", report.RunID, "embedded", report.Succeeded, "chunks", report.Chunks)
		return report, fmt.Errorf("indexing cancelled before append: %w", err)
	}

	if replace {
		if err := ix.store.Replace(ctx, records); err != nil {
			ix.logger.Error("replace failed", "run", report.RunID, "records", len(records), "err", err)
			return report, fmt.Errorf("replace index with %d records: %w", len(records), err)
		}
		ix.logger.Info("reindexing finished", "run", report.RunID, "succeeded", report.Succeeded,
			"failed", len(report.Failed), "elapsed", time.Since(start).Round(time.Millisecond))
		return report, nil
	}

	if err := ix.store.Append(ctx, records); err != nil {
		ix.logger.Error("append failed", "run", report.RunID, "records", len(records), "err", err)
		return report, fmt.Errorf("append %d records: %w", len(records), err)
	}

	ix.logger.Info("indexing finished", "run", report.RunID, "succeeded", report.Succeeded,
		"failed", len(report.Failed), "elapsed", time.Since(start).Round(time.Millisecond))
	return report, nil
}
