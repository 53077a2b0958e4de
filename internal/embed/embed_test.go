package embed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/spybot/internal/embedcache"
)

// countingEmbedder records how often each text is embedded.
type countingEmbedder struct {
	calls map[string]int
	err   error
}

func (c *countingEmbedder) Name() string { return "counting" }

func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[text]++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-3, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
}

func TestHashDeterministic(t *testing.T) {
	h := NewHash(64)
	a, err := h.Embed(context.Background(), "Hot Dog")
	require.NoError(t, err)
	b, err := h.Embed(context.Background(), "hot dog!")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	dog, _ := h.Embed(context.Background(), "dog")
	assert.InDelta(t, 1.0, Cosine(dog, dog), 1e-6)
	assert.Greater(t, Cosine(a, dog), 0.5)
}

func TestMemoEmbedsOnce(t *testing.T) {
	inner := &countingEmbedder{}
	m := NewMemo(inner)
	for i := 0; i < 3; i++ {
		_, err := m.Embed(context.Background(), "dog")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.calls["dog"])
	assert.Equal(t, 1, m.Len())
}

func TestMemoReturnsCopies(t *testing.T) {
	m := NewMemo(&countingEmbedder{})
	first, err := m.Embed(context.Background(), "dog")
	require.NoError(t, err)
	first[0] = -1

	again, err := m.Embed(context.Background(), "dog")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1}, again)

	again[1] = -1
	third, err := m.Embed(context.Background(), "dog")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1}, third)
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("down")}
	m := NewMemo(inner)
	_, err := m.Embed(context.Background(), "dog")
	require.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestCachedUsesCache(t *testing.T) {
	inner := &countingEmbedder{}
	cache := embedcache.NewMemory()
	c := NewCached(inner, cache)

	v1, err := c.Embed(context.Background(), "dog")
	require.NoError(t, err)
	v2, err := NewCached(inner, cache).Embed(context.Background(), "dog")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, inner.calls["dog"])
	assert.NotEqual(t, CacheKey("a", "dog"), CacheKey("b", "dog"))
	assert.Len(t, CacheKey("a", "dog"), 64)
}

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if req.Prompt == "boom" {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float64{0.5, -0.25}})
	}))
	defer srv.Close()

	e := NewOllama(srv.URL+"/", "test-model", srv.Client())
	assert.Equal(t, "ollama-test-model", e.Name())

	v, err := e.Embed(context.Background(), "dog")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, v)

	_, err = e.Embed(context.Background(), "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
