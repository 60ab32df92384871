// internal/game/stub.go
//
// Stub responses stand in for a live model. They read the board context out
// of the prompt, store a plausible response on the player and return its
// canonical rendering. They are test doubles, not part of validation.

package game

import (
	"errors"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var (
	teamWordsRe    = regexp.MustCompile(`team words are: (.*)\.`)
	allowedRe      = regexp.MustCompile(`up to ([0-9]+) words`)
	errNoBoard     = errors.New("stub: prompt has no board block")
	errNoAllowance = errors.New("stub: prompt has no guess allowance")
)

const stubClueLength = 6

// StubResponse fabricates a clue of six distinct random letters and up to
// two targets sampled from the team words named in prompt. A re-prompt
// without team words keeps the previous targets.
func (c *ClueGiver) StubResponse(prompt string, rng *rand.Rand) string {
	if m := teamWordsRe.FindStringSubmatch(prompt); m != nil {
		team := SplitWords(m[1])
		c.targets = sample(rng, team, 2)
	}
	letters := sample(rng, strings.Split("abcdefghijklmnopqrstuvwxyz", ""), stubClueLength)
	c.clue = strings.Join(letters, "")
	return c.RecoverUtterance()
}

// StubResponse samples as many board words as the prompt allows. The board
// is the second blank-line separated block of the prompt.
func (g *Guesser) StubResponse(prompt string, rng *rand.Rand) (string, error) {
	blocks := strings.Split(prompt, "\n\n")
	if len(blocks) < 2 {
		return "", errNoBoard
	}
	m := allowedRe.FindStringSubmatch(prompt)
	if m == nil {
		return "", errNoAllowance
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", err
	}
	picked := sample(rng, SplitWords(blocks[1]), n)
	for i, w := range picked {
		picked[i] = strings.Trim(w, ". ")
	}
	g.guesses = picked
	return g.RecoverUtterance(), nil
}

// sample draws min(n, len(pool)) distinct elements in random order.
func sample(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}
