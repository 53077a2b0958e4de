// internal/embed/memo.go
//
// Per-game memo in front of the shared embedder.
// Vectors are copied in and out, so callers may modify what they get back.

package embed

import (
	"context"
	"sync"
)

// Memo remembers every vector its inner embedder produced. Board words are
// stable within a game, so one Memo per session avoids re-embedding them on
// every turn.
type Memo struct {
	inner Embedder

	mu   sync.RWMutex
	vecs map[string][]float32
}

// NewMemo wraps inner with an in-process memo.
func NewMemo(inner Embedder) *Memo {
	return &Memo{inner: inner, vecs: make(map[string][]float32)}
}

func (m *Memo) Name() string { return m.inner.Name() }

// Embed returns a copy of the memoized vector, calling inner on a miss.
func (m *Memo) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.RLock()
	v, ok := m.vecs[text]
	m.mu.RUnlock()
	if ok {
		return append([]float32(nil), v...), nil
	}
	v, err := m.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.vecs[text] = append([]float32(nil), v...)
	m.mu.Unlock()
	return v, nil
}

// Len reports how many texts are memoized.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vecs)
}
