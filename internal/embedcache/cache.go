// internal/embedcache/cache.go
//
// Persistent and in-process caches for embedding vectors.
// Backends:
//   - Memory: map guarded by RWMutex (lost on restart).
//   - SQLite: embeddings table on the server's SQLite database.
//   - Redis:  one string key per vector, optional TTL.
//
// Vectors are stored as little-endian float32 bytes.

package embedcache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrCorrupt is returned when a stored vector cannot be decoded.
var ErrCorrupt = errors.New("embedcache: corrupt vector")

// Cache stores vectors by key.
type Cache interface {
	// Get returns the vector for key; ok is false when it is absent.
	Get(ctx context.Context, key string) (vec []float32, ok bool, err error)

	// Set stores or replaces the vector for key.
	Set(ctx context.Context, key string, vec []float32) error
}

// Encode packs vec as little-endian float32s.
func Encode(vec []float32) []byte {
	out := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// Decode reverses Encode.
func Decode(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out, nil
}
