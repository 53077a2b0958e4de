// internal/embed/hash.go
//
// Offline embedder used when EMBED_PROVIDER=hash (the default).

package embed

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// Hash is an offline bag-of-words embedder: each token is hashed into one of
// dim buckets and the result is L2-normalized. It has no notion of meaning,
// only of shared tokens, which makes it useful for development and tests.
type Hash struct {
	dim int
}

// NewHash returns a Hash embedder with dim buckets (minimum 8).
func NewHash(dim int) *Hash {
	if dim < 8 {
		dim = 8
	}
	return &Hash{dim: dim}
}

func (h *Hash) Name() string { return fmt.Sprintf("hash-%d", h.dim) }

// Embed never fails.
func (h *Hash) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?;:\"'")
		if tok == "" {
			continue
		}
		f := fnv.New32a()
		_, _ = f.Write([]byte(tok))
		vec[int(f.Sum32()%uint32(h.dim))] += 1
	}
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq > 0 {
		norm := float32(1 / math.Sqrt(sumSq))
		for i := range vec {
			vec[i] *= norm
		}
	}
	return vec, nil
}
