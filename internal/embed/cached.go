// internal/embed/cached.go
//
// Persistent cache wrapper, keyed by blake2b(model, text).

package embed

import (
	"context"
	"encoding/hex"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/spybot/internal/embedcache"
)

// Cached consults a persistent cache before calling the inner embedder.
// Cache failures are logged and never fail an embedding.
type Cached struct {
	inner Embedder
	cache embedcache.Cache
}

// NewCached wraps inner with cache.
func NewCached(inner Embedder, cache embedcache.Cache) *Cached {
	return &Cached{inner: inner, cache: cache}
}

func (c *Cached) Name() string { return c.inner.Name() }

func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(c.inner.Name(), text)
	if v, ok, err := c.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("embedding cache read")
	} else if ok {
		return v, nil
	}

	v, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("embedding cache write")
	}
	return v, nil
}

// CacheKey is the hex BLAKE2b-256 of the model name and text. Vectors from
// different models never share a key.
func CacheKey(model, text string) string {
	sum := blake2b.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
