// internal/words/words.go
//
// Vocabulary management for the board generator.
//
// Responsibilities:
//   - Load the vocabulary from an environment-provided file or fall back to the
//     embedded default list in assets/vocab.txt.
//   - Normalize entries (trim, lowercase, drop blanks, comments and duplicates)
//     while keeping first-occurrence order.
//   - Expose the process-wide vocabulary once loaded (read-only).
//
// Initialization behavior (Init):
//   1. If a path is given (VOCAB_FILE), load one word per line from that file.
//   2. Otherwise use the embedded default list.
//
// The vocabulary is immutable once Init has run.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/spybot/assets"
)

// ErrEmptyVocabulary is returned when a source yields no usable words.
var ErrEmptyVocabulary = errors.New("words: vocabulary is empty")

// Vocabulary is an ordered sequence of distinct lowercase words.
type Vocabulary []string

// Len returns the number of distinct words.
func (v Vocabulary) Len() int { return len(v) }

// Contains reports whether w (case-insensitive) is in the vocabulary.
func (v Vocabulary) Contains(w string) bool {
	w = strings.ToLower(strings.TrimSpace(w))
	for _, x := range v {
		if x == w {
			return true
		}
	}
	return false
}

var (
	initOnce   sync.Once
	vocab      Vocabulary
	initialErr error
)

// Init loads the process vocabulary exactly once, from path or, when path is
// empty, from the embedded list.
// Returns an error if the file cannot be read or the result is empty.
func Init(path string) error {
	initOnce.Do(func() {
		var v Vocabulary
		var err error
		if path != "" {
			v, err = Load(path)
		} else {
			v, err = Default()
		}
		if err != nil {
			initialErr = err
			return
		}
		vocab = v
	})
	return initialErr
}

// Current returns the loaded vocabulary (nil before Init succeeds).
func Current() Vocabulary { return vocab }

// Stats returns the number of loaded words.
func Stats() int { return len(vocab) }

// Default returns the embedded vocabulary.
func Default() (Vocabulary, error) {
	list, err := assets.VocabList()
	if err != nil {
		return nil, fmt.Errorf("words: read embedded vocabulary: %w", err)
	}
	v := normalize(list)
	if len(v) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return v, nil
}

// Load reads one word per line from path.
func Load(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	v, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return v, nil
}

// Read parses a vocabulary from r. Blank lines and '#' comments are skipped.
func Read(r io.Reader) (Vocabulary, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	v := normalize(lines)
	if len(v) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return v, nil
}

// Parse builds a vocabulary from a multiline string, ignoring read errors.
func Parse(s string) Vocabulary {
	v, _ := Read(strings.NewReader(s))
	return v
}

// normalize lowercases and trims entries, dropping blanks and repeats.
func normalize(list []string) Vocabulary {
	seen := make(map[string]struct{}, len(list))
	out := make(Vocabulary, 0, len(list))
	for _, w := range list {
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
