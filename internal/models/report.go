// ABOUTME: IndexingReport summarizes one folder indexing run
// ABOUTME: Per-chunk provider failures are collected here instead of aborting the run
package models

import "fmt"

// IndexFailure records a chunk that could not be embedded
type IndexFailure struct {
	DocID      string `json:"doc_id"`
	ChunkIndex int    `json:"chunk_index"`
	Reason     error  `json:"-"`
}

// Kind returns the error kind name of the failure reason
func (f IndexFailure) Kind() string {
	return ErrorKind(f.Reason)
}

func (f IndexFailure) String() string {
	return fmt.Sprintf("%s#%d: %v", f.DocID, f.ChunkIndex, f.Reason)
}

// IndexingReport is the outcome of an IndexFolder call
type IndexingReport struct {
	RunID     string         `json:"run_id"`
	Documents int            `json:"documents"`
	Chunks    int            `json:"chunks"`
	Succeeded int            `json:"succeeded"`
	Failed    []IndexFailure `json:"failed"`
}

// FailedDocs returns the distinct document IDs that had at least one failed chunk, in failure order
func (r IndexingReport) FailedDocs() []string {
	seen := make(map[string]bool)
	var docs []string
	for _, f := range r.Failed {
		if !seen[f.DocID] {
			seen[f.DocID] = true
			docs = append(docs, f.DocID)
		}
	}
	return docs
}
