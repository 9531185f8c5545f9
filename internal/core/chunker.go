// ABOUTME: Chunker splits note text into fixed-size overlapping character windows
// ABOUTME: Chunks fully cover the note; sizes are counted in characters, not tokens
package core

import (
	"fmt"

	"github.com/harper/vault-assistant/internal/models"
)

// Default chunking parameters
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// Chunker produces overlapping windows over a document's text
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a Chunker. The window must advance on every step,
// so overlap has to be smaller than size.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", models.ErrConfiguration, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d", models.ErrConfiguration, size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the maximum chunk length
func (c *Chunker) Size() int { return c.size }

// Overlap returns the number of characters shared by neighbouring chunks
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits a document into ordered chunks. Empty text yields no chunks.
func (c *Chunker) Chunk(doc models.Document) []models.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	chunks := make([]models.Chunk, 0, len(runes)/step+1)

	for start := 0; start < len(runes); start += step {
		end := min(start+c.size, len(runes))
		chunks = append(chunks, models.Chunk{
			Text:           string(runes[start:end]),
			SourceDocID:    doc.ID,
			SourceDocLabel: doc.Label,
			Index:          len(chunks),
			Start:          start,
			End:            end,
		})
	}

	return chunks
}
