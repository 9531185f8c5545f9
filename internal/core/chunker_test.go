// ABOUTME: Tests for the overlapping character chunker
// ABOUTME: Covers coverage, reconstruction, boundaries, and configuration errors
package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/harper/vault-assistant/internal/models"
)

// reassemble rebuilds the original text by dropping each chunk's overlap with what came before
func reassemble(chunks []models.Chunk) string {
	var out []rune
	for _, ch := range chunks {
		runes := []rune(ch.Text)
		skip := max(len(out)-ch.Start, 0)
		if skip < len(runes) {
			out = append(out, runes[skip:]...)
		}
	}
	return string(out)
}

func mustChunker(t *testing.T, size, overlap int) *Chunker {
	t.Helper()
	c, err := NewChunker(size, overlap)
	if err != nil {
		t.Fatalf("NewChunker(%d, %d) failed: %v", size, overlap, err)
	}
	return c
}

func TestNewChunker_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -10, 0},
		{"overlap equals size", 100, 100},
		{"overlap above size", 100, 150},
		{"negative overlap", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.size, tt.overlap)
			if !errors.Is(err, models.ErrConfiguration) {
				t.Errorf("NewChunker(%d, %d) = %v, want ErrConfiguration", tt.size, tt.overlap, err)
			}
		})
	}
}

func TestChunker_Boundaries1200(t *testing.T) {
	c := mustChunker(t, 500, 50)
	doc := models.Document{ID: "notes/long.md", Label: "long", Text: strings.Repeat("x", 1200)}

	chunks := c.Chunk(doc)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	want := [][2]int{{0, 500}, {450, 950}, {900, 1200}}
	for i, ch := range chunks {
		if ch.Start != want[i][0] || ch.End != want[i][1] {
			t.Errorf("chunk %d = [%d,%d), want [%d,%d)", i, ch.Start, ch.End, want[i][0], want[i][1])
		}
		if ch.Index != i {
			t.Errorf("chunk %d Index = %d", i, ch.Index)
		}
		if ch.SourceDocID != "notes/long.md" || ch.SourceDocLabel != "long" {
			t.Errorf("chunk %d source = %q/%q", i, ch.SourceDocID, ch.SourceDocLabel)
		}
		if len(ch.Text) != ch.Len() {
			t.Errorf("chunk %d text length %d != Len() %d", i, len(ch.Text), ch.Len())
		}
	}
}

func TestChunker_EmptyText(t *testing.T) {
	c := mustChunker(t, 500, 50)
	if chunks := c.Chunk(models.Document{ID: "empty.md"}); len(chunks) != 0 {
		t.Errorf("empty text produced %d chunks", len(chunks))
	}
}

func TestChunker_ShortText(t *testing.T) {
	c := mustChunker(t, 500, 50)
	chunks := c.Chunk(models.Document{ID: "a.md", Text: "short note"})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "short note" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
}

func TestChunker_CoverageAndReconstruction(t *testing.T) {
	texts := []string{
		"a",
		"hello world",
		strings.Repeat("abcdefghij", 57),
		strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40),
		strings.Repeat("héllo wörld ✓ ", 90),
	}
	configs := [][2]int{{500, 50}, {10, 3}, {7, 0}, {1, 0}, {100, 99}}

	for _, text := range texts {
		for _, cfg := range configs {
			c := mustChunker(t, cfg[0], cfg[1])
			chunks := c.Chunk(models.Document{ID: "doc", Text: text})

			total := 0
			for _, ch := range chunks {
				n := len([]rune(ch.Text))
				if n == 0 {
					t.Fatalf("size=%d overlap=%d produced an empty chunk", cfg[0], cfg[1])
				}
				if n > cfg[0] {
					t.Fatalf("size=%d overlap=%d produced chunk of %d chars", cfg[0], cfg[1], n)
				}
				total += n
			}
			if total < len([]rune(text)) {
				t.Errorf("size=%d overlap=%d: chunks cover %d chars, text has %d", cfg[0], cfg[1], total, len([]rune(text)))
			}
			if got := reassemble(chunks); got != text {
				t.Errorf("size=%d overlap=%d: reassembled text differs from original", cfg[0], cfg[1])
			}
		}
	}
}

func TestChunker_NoOverlapCoversOnce(t *testing.T) {
	c := mustChunker(t, 4, 0)
	chunks := c.Chunk(models.Document{ID: "d", Text: "abcdefghij"})

	var joined strings.Builder
	for i, ch := range chunks {
		if i > 0 && ch.Start != chunks[i-1].End {
			t.Errorf("chunk %d starts at %d, previous ended at %d", i, ch.Start, chunks[i-1].End)
		}
		joined.WriteString(ch.Text)
	}
	if joined.String() != "abcdefghij" {
		t.Errorf("concatenation = %q", joined.String())
	}
}

func TestChunker_MultibyteNeverSplit(t *testing.T) {
	c := mustChunker(t, 3, 1)
	text := "日本語のテキスト"
	for _, ch := range c.Chunk(models.Document{ID: "jp", Text: text}) {
		if !strings.Contains(text, ch.Text) {
			t.Errorf("chunk %q is not a substring of the source", ch.Text)
		}
	}
}
