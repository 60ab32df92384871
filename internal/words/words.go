// internal/words/words.go
//
// Word pool management for board generation.
//
// Responsibilities:
//   - Load the Codenames word pool from a file or fall back to the embedded default.
//   - Supply RandomBoard for the simulate command and Stats for diagnostics.
//
// Initialization behavior (Init):
//  1. If path is non-empty, load one word per line from that file.
//  2. Otherwise use assets.WordList().
//
// Constraints:
//   • Words must be alphabetic; lists are normalized to lowercase and deduplicated.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"math/rand"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/robalobadob/codenames-referee/assets"
)

var (
	initOnce   sync.Once
	pool       []string
	initialErr error
)

// Init loads the word pool exactly once.
// Returns an error if the pool ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path != "" {
			list, err = readWordFile(path)
		} else {
			list, err = assets.WordList()
		}
		if err != nil {
			initialErr = err
			return
		}
		pool = normalize(list)
		if len(pool) == 0 {
			initialErr = errors.New("words: pool is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize lowercases, trims, drops non-alphabetic entries and duplicates.
func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, l := range list {
		w := strings.TrimSpace(strings.ToLower(l))
		if !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is a non-empty run of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// RandomBoard returns n distinct words from the pool (fewer if the pool is smaller).
func RandomBoard(n int, rng *rand.Rand) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Stats returns the number of loaded words.
func Stats() int {
	return len(pool)
}
