// internal/embedcache/memory.go
//
// In-process backend (EMBED_CACHE=memory). Get and Set copy vectors.

package embedcache

import (
	"context"
	"sync"
)

// memory is an in-process Cache.
type memory struct {
	mu   sync.RWMutex
	vecs map[string][]float32
}

// NewMemory constructs an in-memory Cache.
func NewMemory() Cache {
	return &memory{vecs: make(map[string][]float32)}
}

func (m *memory) Get(ctx context.Context, key string) ([]float32, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vecs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]float32(nil), v...), true, nil
}

func (m *memory) Set(ctx context.Context, key string, vec []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vecs[key] = append([]float32(nil), vec...)
	return nil
}
