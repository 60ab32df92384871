package lemma

// Checker reports board words that share a base form with a clue.
// It satisfies game.SimilarityChecker.
type Checker struct {
	lem Lemmatizer
}

// NewChecker injects the lemmatizer used for every comparison.
func NewChecker(l Lemmatizer) *Checker {
	return &Checker{lem: l}
}

// Similar returns the first candidate, in the given order, whose base form
// equals that of word. Candidates identical to word are skipped; an exact
// match is a clue-on-board violation, not a morphological one.
func (c *Checker) Similar(word string, candidates []string) (string, bool) {
	base := c.lem.Lemma(word)
	for _, cand := range candidates {
		if cand == word {
			continue
		}
		if c.lem.Lemma(cand) == base {
			return cand, true
		}
	}
	return "", false
}
