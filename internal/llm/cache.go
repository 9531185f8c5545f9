// ABOUTME: Expiring LRU cache in front of an embedder
// ABOUTME: Repeated queries for the same text skip the provider round trip
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Embedder produces embedding vectors for text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
	Validate() error
	ModelName() string
}

// CachedEmbedder memoizes embeddings of an underlying Embedder
type CachedEmbedder struct {
	next  Embedder
	cache *expirable.LRU[string, []float64]
}

// NewCachedEmbedder wraps next with a cache of size entries that expire after ttl.
// A size of zero or less returns next unwrapped.
func NewCachedEmbedder(next Embedder, size int, ttl time.Duration) Embedder {
	if size <= 0 {
		return next
	}
	return &CachedEmbedder{
		next:  next,
		cache: expirable.NewLRU[string, []float64](size, nil, ttl),
	}
}

// GenerateEmbedding returns the cached vector for text or asks the wrapped embedder.
// Failures are not cached.
func (c *CachedEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	key := c.key(text)
	if v, ok := c.cache.Get(key); ok {
		return append([]float64(nil), v...), nil
	}

	v, err := c.next.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, append([]float64(nil), v...))
	return v, nil
}

// Validate delegates to the wrapped embedder
func (c *CachedEmbedder) Validate() error {
	return c.next.Validate()
}

// ModelName delegates to the wrapped embedder
func (c *CachedEmbedder) ModelName() string {
	return c.next.ModelName()
}

// Len returns the number of cached vectors
func (c *CachedEmbedder) Len() int {
	return c.cache.Len()
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.next.ModelName() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
