// ABOUTME: Similarity search over embedding records using cosine similarity
// ABOUTME: Provides full ranking, top-K chunk selection, and per-document collapsing
package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/harper/vault-assistant/internal/models"
)

// DefaultTopK is the number of chunks used for prompt augmentation
const DefaultTopK = 10

// CosineSimilarity calculates cosine similarity between two vectors.
// A zero-magnitude vector has similarity 0 with everything.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: query has %d dimensions, candidate has %d", models.ErrDimensionMismatch, len(a), len(b))
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	// rounding can push identical vectors just past the bounds
	return math.Max(-1, math.Min(1, sim)), nil
}

// Rank scores every candidate against query and orders them by score, highest first.
// Equal scores keep their input order.
func Rank(query []float64, candidates []models.EmbeddingRecord) ([]models.SimilarityResult, error) {
	results := make([]models.SimilarityResult, 0, len(candidates))
	for i, rec := range candidates {
		score, err := CosineSimilarity(query, rec.Vector)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.SourceDocID, err)
		}
		results = append(results, models.SimilarityResult{
			Record:   rec,
			Position: i,
			Score:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// TopChunks returns the chunk texts of the k best results in rank order
func TopChunks(results []models.SimilarityResult, k int) []string {
	if k <= 0 {
		k = DefaultTopK
	}
	if k > len(results) {
		k = len(results)
	}

	texts := make([]string, 0, k)
	for _, r := range results[:k] {
		texts = append(texts, r.Record.ChunkText)
	}
	return texts
}

// RankDocuments collapses ranked chunk results to one entry per source document.
// Each document keeps its first, and therefore highest scoring, chunk.
func RankDocuments(results []models.SimilarityResult) []models.DocumentMatch {
	seen := make(map[string]bool)
	var matches []models.DocumentMatch

	for _, r := range results {
		if seen[r.Record.SourceDocID] {
			continue
		}
		seen[r.Record.SourceDocID] = true
		matches = append(matches, models.DocumentMatch{
			SourceDocID:    r.Record.SourceDocID,
			SourceDocLabel: r.Record.SourceDocLabel,
			Score:          r.Score,
			ChunkText:      r.Record.ChunkText,
		})
	}

	return matches
}
