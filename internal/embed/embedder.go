// internal/embed/embedder.go
//
// Package embed turns words and short phrases into vectors for the guessing
// engine, and compares them with cosine similarity.
package embed

import (
	"context"
	"math"
)

// Embedder converts text into a fixed-length vector.
// Implementations must be deterministic: the same text yields the same vector.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine returns the cosine similarity of a and b in [-1, 1], where 1 means
// the same direction. Mismatched lengths compare the common prefix; a zero
// vector has similarity 0 with everything.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// clamp float drift
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
