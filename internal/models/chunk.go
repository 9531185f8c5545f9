// ABOUTME: Chunk represents a bounded substring of a note used as the unit of embedding
// ABOUTME: Chunks are transient; only their embedded record form is persisted
package models

// Chunk is a contiguous piece of a source document
type Chunk struct {
	Text           string `json:"text"`
	SourceDocID    string `json:"source_doc_id"`
	SourceDocLabel string `json:"source_doc_label"`
	// Index is the chunk's position within its document
	Index int `json:"index"`
	// Start and End are character offsets into the document, End exclusive
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the chunk length in characters
func (c Chunk) Len() int {
	return c.End - c.Start
}
