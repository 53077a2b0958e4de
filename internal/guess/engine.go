// internal/guess/engine.go
//
// Spybot's guessing engine.
// Given a hint and the remaining board words, it ranks every word by cosine
// similarity to the hint and returns the top k.
//
// Notes:
//   - The hint is embedded once per call; each candidate once per call (wrap
//     the embedder in embed.Memo to reuse word vectors across turns).
//   - Ranking is most-similar first; ties keep board scan order.
//   - Any embedding failure aborts the ranking; no partial result is returned.

package guess

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spybot/internal/board"
	"github.com/robalobadob/spybot/internal/embed"
)

// Guess is one ranked candidate.
type Guess struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

// Engine ranks board words against a hint.
type Engine struct {
	embedder embed.Embedder
}

// New returns an Engine using e.
func New(e embed.Embedder) *Engine {
	return &Engine{embedder: e}
}

// Rank returns the k words most similar to hint, in rank order.
// k is capped at len(words); k <= 0 yields an empty result.
func (e *Engine) Rank(ctx context.Context, hint string, words []string, k int) ([]Guess, error) {
	if k <= 0 || len(words) == 0 {
		return []Guess{}, nil
	}
	if k > len(words) {
		k = len(words)
	}

	hv, err := e.embedder.Embed(ctx, hint)
	if err != nil {
		return nil, fmt.Errorf("guess: embed hint %q: %w", hint, err)
	}

	scored := make([]Guess, 0, len(words))
	for _, w := range words {
		wv, err := e.embedder.Embed(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("guess: embed word %q: %w", w, err)
		}
		scored = append(scored, Guess{Word: w, Similarity: embed.Cosine(hv, wv)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	log.Debug().
		Str("hint", hint).
		Int("candidates", len(words)).
		Int("k", k).
		Str("top", scored[0].Word).
		Float64("topSimilarity", scored[0].Similarity).
		Msg("ranked guesses")

	return scored[:k], nil
}

// RankBoard ranks the words still on b.
func (e *Engine) RankBoard(ctx context.Context, hint string, b *board.Board, k int) ([]Guess, error) {
	return e.Rank(ctx, hint, b.Words(), k)
}

// Words strips similarities from a ranking.
func Words(gs []Guess) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Word
	}
	return out
}
