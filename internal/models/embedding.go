// ABOUTME: EmbeddingRecord and VectorIndex, the persisted form of embedded chunks
// ABOUTME: JSON decoding is strict: missing fields or mixed dimensions mark the index corrupt
package models

import (
	"encoding/json"
	"fmt"
)

// EmbeddingRecord is one embedded chunk as stored in the index
type EmbeddingRecord struct {
	Vector         []float64
	ChunkText      string
	SourceDocID    string
	SourceDocLabel string
}

// embeddingRecordJSON is the on-disk shape. Pointers let decoding tell a missing
// field apart from an empty one.
type embeddingRecordJSON struct {
	Embedding    *[]float64 `json:"embedding"`
	Chunk        *string    `json:"chunk"`
	NotePath     *string    `json:"notePath"`
	NoteFilename *string    `json:"noteFilename"`
}

// MarshalJSON writes the record in the index file format
func (r EmbeddingRecord) MarshalJSON() ([]byte, error) {
	vector := r.Vector
	if vector == nil {
		vector = []float64{}
	}
	return json.Marshal(embeddingRecordJSON{
		Embedding:    &vector,
		Chunk:        &r.ChunkText,
		NotePath:     &r.SourceDocID,
		NoteFilename: &r.SourceDocLabel,
	})
}

// UnmarshalJSON reads a record and rejects missing or empty fields with ErrCorruptIndex.
// Keys outside the four record fields are ignored.
func (r *EmbeddingRecord) UnmarshalJSON(data []byte) error {
	var raw embeddingRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	switch {
	case raw.Embedding == nil:
		return fmt.Errorf("%w: record is missing field %q", ErrCorruptIndex, "embedding")
	case len(*raw.Embedding) == 0:
		return fmt.Errorf("%w: record has an empty embedding", ErrCorruptIndex)
	case raw.Chunk == nil:
		return fmt.Errorf("%w: record is missing field %q", ErrCorruptIndex, "chunk")
	case raw.NotePath == nil:
		return fmt.Errorf("%w: record is missing field %q", ErrCorruptIndex, "notePath")
	case raw.NoteFilename == nil:
		return fmt.Errorf("%w: record is missing field %q", ErrCorruptIndex, "noteFilename")
	}

	*r = EmbeddingRecord{
		Vector:         *raw.Embedding,
		ChunkText:      *raw.Chunk,
		SourceDocID:    *raw.NotePath,
		SourceDocLabel: *raw.NoteFilename,
	}
	return nil
}

// Dimension returns the vector length of the record
func (r EmbeddingRecord) Dimension() int {
	return len(r.Vector)
}

// VectorIndex is the ordered collection of records for one store
type VectorIndex []EmbeddingRecord

// Dimension returns the shared vector length, or 0 for an empty index
func (idx VectorIndex) Dimension() int {
	if len(idx) == 0 {
		return 0
	}
	return len(idx[0].Vector)
}

// Validate checks that every record has the same dimension
func (idx VectorIndex) Validate() error {
	dim := idx.Dimension()
	for i, rec := range idx {
		if len(rec.Vector) != dim {
			return fmt.Errorf("%w: record %d has dimension %d, index dimension is %d",
				ErrCorruptIndex, i, len(rec.Vector), dim)
		}
	}
	return nil
}

// CheckCompatible reports whether records can be appended to idx without mixing dimensions
func (idx VectorIndex) CheckCompatible(records []EmbeddingRecord) error {
	dim := idx.Dimension()
	for i, rec := range records {
		if len(rec.Vector) == 0 {
			return fmt.Errorf("%w: new record %d has an empty vector", ErrDimensionMismatch, i)
		}
		if dim == 0 {
			dim = len(rec.Vector)
			continue
		}
		if len(rec.Vector) != dim {
			return fmt.Errorf("%w: new record %d has dimension %d, index dimension is %d",
				ErrDimensionMismatch, i, len(rec.Vector), dim)
		}
	}
	return nil
}
