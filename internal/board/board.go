// internal/board/board.go
//
// Board model for a Spybot game.
// Responsibilities:
//   - Generate a deduplicated rows × cols grid of vocabulary words.
//   - Remove correctly guessed words (slots are emptied, never refilled).
//   - Report remaining words in row-major scan order and completion.
//   - Validate hints against the live board.
//
// Notes:
//   - An empty string marks a cleared slot.
//   - Words are stored lowercase; lookups are case-insensitive.

package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	// ErrInvalidCardCount is returned for counts that are not positive and nearly square.
	ErrInvalidCardCount = errors.New("board: card count must be a positive nearly-square number")
	// ErrVocabularyTooSmall is returned when the vocabulary cannot fill the board.
	ErrVocabularyTooSmall = errors.New("board: card count exceeds vocabulary size")
)

// Board is a rows × cols grid of distinct words.
type Board struct {
	rows  int
	cols  int
	cells [][]string
}

// Generate builds a board of count cards drawn without repeats from vocab.
// A nil rng uses a randomly seeded source.
func Generate(count int, vocab []string, rng *rand.Rand) (*Board, error) {
	if count <= 0 || !IsNearlySquare(count) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCardCount, count)
	}
	distinct := distinctWords(vocab)
	if count > len(distinct) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrVocabularyTooSmall, count, len(distinct))
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	placed := make(map[string]struct{}, count)
	picked := make([]string, 0, count)
	for len(picked) < count {
		w := distinct[rng.IntN(len(distinct))]
		if _, dup := placed[w]; dup {
			continue
		}
		placed[w] = struct{}{}
		picked = append(picked, w)
	}

	rows, cols := FactorPair(count)
	return FromWords(rows, cols, picked)
}

// FromWords lays out words row by row into a rows × cols board.
// It fails if the word count does not match or a word repeats.
func FromWords(rows, cols int, words []string) (*Board, error) {
	if rows <= 0 || cols <= 0 || rows*cols != len(words) {
		return nil, fmt.Errorf("board: %d words do not fill %dx%d", len(words), rows, cols)
	}
	seen := make(map[string]struct{}, len(words))
	cells := make([][]string, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			w := strings.ToLower(strings.TrimSpace(words[r*cols+c]))
			if w == "" {
				return nil, fmt.Errorf("board: empty word at %d,%d", r, c)
			}
			if _, dup := seen[w]; dup {
				return nil, fmt.Errorf("board: duplicate word %q", w)
			}
			seen[w] = struct{}{}
			cells[r][c] = w
		}
	}
	return &Board{rows: rows, cols: cols, cells: cells}, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Cells returns a copy of the grid. Cleared slots are "".
func (b *Board) Cells() [][]string {
	out := make([][]string, b.rows)
	for r := range b.cells {
		out[r] = append([]string(nil), b.cells[r]...)
	}
	return out
}

// Words returns the remaining words in row-major scan order.
func (b *Board) Words() []string {
	out := make([]string, 0, b.rows*b.cols)
	for _, row := range b.cells {
		for _, w := range row {
			if w != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

// Contains reports whether word is still on the board.
func (b *Board) Contains(word string) bool {
	_, _, ok := b.find(word)
	return ok
}

// Remove clears the slot holding word. It reports false if word is absent.
func (b *Board) Remove(word string) bool {
	r, c, ok := b.find(word)
	if !ok {
		return false
	}
	b.cells[r][c] = ""
	return true
}

// Remaining counts words still on the board.
func (b *Board) Remaining() int {
	n := 0
	for _, row := range b.cells {
		for _, w := range row {
			if w != "" {
				n++
			}
		}
	}
	return n
}

// Complete reports whether every row is empty.
func (b *Board) Complete() bool { return b.Remaining() == 0 }

// HintConflicts returns the whitespace-separated parts of hint that appear
// verbatim (case-insensitive) on the board, in hint order.
func (b *Board) HintConflicts(hint string) []string {
	var out []string
	for _, part := range strings.Fields(strings.ToLower(hint)) {
		if b.Contains(part) {
			out = append(out, part)
		}
	}
	return out
}

func (b *Board) find(word string) (int, int, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0, 0, false
	}
	for r, row := range b.cells {
		for c, w := range row {
			if w == word {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func distinctWords(vocab []string) []string {
	seen := make(map[string]struct{}, len(vocab))
	out := make([]string, 0, len(vocab))
	for _, w := range vocab {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
