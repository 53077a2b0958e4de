// assets/embed.go
//
// Embedded default data shipped with the binary.
//   - vocab.txt: the default board vocabulary (one word per line, '#' comments).

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed vocab.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// VocabList returns the embedded default vocabulary, lowercased, in file order.
func VocabList() ([]string, error) {
	return readLines("vocab.txt")
}
