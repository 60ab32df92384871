// assets/embed.go
//
// Embedded default word pool used when WORDS_FILE is not set.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed wordlist.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of an embedded file, lowercased.
func ReadLines(name string) ([]string, error) {
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

// WordList returns the default Codenames word pool.
func WordList() ([]string, error) {
	return ReadLines("wordlist.txt")
}
