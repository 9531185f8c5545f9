// ABOUTME: Document is a single note handed to the indexing pipeline
// ABOUTME: ID is the stable path of the note, Label its display name
package models

// Document is the full text of one note plus its identity
type Document struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"-"`
}
