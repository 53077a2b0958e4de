package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizes(t *testing.T) {
	v := Parse("# header\nDog\n  cat \n\ndog\nFISH\n")
	assert.Equal(t, Vocabulary{"dog", "cat", "fish"}, v)
	assert.True(t, v.Contains("CAT"))
	assert.False(t, v.Contains("bird"))
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader("# nothing\n\n"))
	require.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple\nbanana\napple\n"), 0o644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestInitFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte("Violin\nharbor\n"), 0o644))

	require.NoError(t, Init(path))
	assert.Equal(t, Vocabulary{"violin", "harbor"}, Current())
	assert.Equal(t, 2, Stats())

	// later calls keep the first vocabulary
	require.NoError(t, Init(""))
	assert.Equal(t, 2, Stats())
}

func TestDefaultVocabularyIsDistinct(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)
	require.GreaterOrEqual(t, v.Len(), 100)

	seen := map[string]bool{}
	for _, w := range v {
		assert.False(t, seen[w], "duplicate %q", w)
		seen[w] = true
	}
}
