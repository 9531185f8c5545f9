// ABOUTME: Search result types returned by the similarity engine
// ABOUTME: Results are ephemeral and recomputed for every query
package models

// SimilarityResult pairs a record with its cosine similarity to a query
type SimilarityResult struct {
	Record EmbeddingRecord
	// Position is the record's index in the candidate slice given to Rank
	Position int
	Score    float64
}

// DocumentMatch is one document in a document-level ranking,
// represented by its best-scoring chunk
type DocumentMatch struct {
	SourceDocID    string  `json:"note_path"`
	SourceDocLabel string  `json:"note_filename"`
	Score          float64 `json:"score"`
	ChunkText      string  `json:"chunk"`
}
