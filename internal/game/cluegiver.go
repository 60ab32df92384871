// internal/game/cluegiver.go
//
// ClueGiver validates and canonicalizes clue-giver utterances of the form
//
//	CLUE: <word>
//	TARGETS: <word1>, <word2>, ...
//
// Validation is fail-fast in a fixed stage order:
//  1. line count (rambling tolerated by IGNORE RAMBLING)
//  2. prefix discovery, anywhere in the lines
//  3. clue normalization (STRIP WORDS, IGNORE NUMBER OF TARGETS)
//  4. target normalization (STRIP WORDS, never an error)
//  5. single alphabetic word
//  6. morphological collision with a remaining word
//  7. clue is itself a remaining word
//  8. every target is a remaining word (IGNORE FALSE TARGETS OR GUESSES)

package game

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// ClueGiver holds the latest canonical clue and targets for one game.
type ClueGiver struct {
	clue    string
	targets []string

	lenient *Leniency
	similar SimilarityChecker
}

// NewClueGiver builds a clue-giver. A nil checker disables the morphological stage.
func NewClueGiver(flags Flags, checker SimilarityChecker, logger zerolog.Logger) *ClueGiver {
	if checker == nil {
		checker = noSimilarity{}
	}
	return &ClueGiver{
		clue:    "clue",
		targets: []string{"target", "word"},
		lenient: newLeniency(RoleClueGiver, flags, logger),
		similar: checker,
	}
}

// Role implements Player.
func (c *ClueGiver) Role() Role { return RoleClueGiver }

// Leniency exposes the flag set and counters.
func (c *ClueGiver) Leniency() *Leniency { return c.lenient }

// Engaged implements Player.
func (c *ClueGiver) Engaged() map[string]int { return c.lenient.Snapshot() }

// Parsed returns a copy of the stored clue and targets.
func (c *ClueGiver) Parsed() ParsedClue {
	return ParsedClue{Clue: c.clue, Targets: append([]string(nil), c.targets...)}
}

// ValidateResponse checks utterance against the protocol and the board.
// It returns nil or a *ValidationError describing the first violated rule.
func (c *ClueGiver) ValidateResponse(utterance string, remaining []string) error {
	lines := splitLines(utterance)
	if len(lines) < 1 {
		return newError(RoleClueGiver, KindTooFewText, utterance)
	}
	if len(lines) > 2 && !c.lenient.Tolerate(FlagIgnoreRambling) {
		return newError(RoleClueGiver, KindClueGiverRambling, utterance)
	}

	clueLine, ok := findLineStartingWith(CluePrefix, lines)
	if !ok {
		return newError(RoleClueGiver, KindMissingCluePrefix, utterance).withPrefix(CluePrefix)
	}
	targetLine, ok := findLineStartingWith(TargetsPrefix, lines)
	if !ok {
		return newError(RoleClueGiver, KindMissingTargetPrefix, utterance).withPrefix(TargetsPrefix)
	}

	clue := strings.ToLower(strings.TrimPrefix(clueLine, CluePrefix))
	if HasStripChars(clue) {
		if !c.lenient.Tolerate(FlagStripWords) {
			return newError(RoleClueGiver, KindClueNonAlphabetical, utterance).withToken(clue)
		}
		clue = StripWord(clue)
	}
	if HasNumberOfTargets(clue) {
		if !c.lenient.Tolerate(FlagIgnoreNumberOfTargets) {
			return newError(RoleClueGiver, KindClueContainsNumberOfTargets, utterance).withToken(clue)
		}
		clue = StripNumberOfTargets(clue)
	}

	// Targets are only counted and stripped when STRIP WORDS is on. With the
	// flag off they keep their characters and the membership stage decides.
	targets := SplitWords(strings.TrimPrefix(targetLine, TargetsPrefix))
	for i, t := range targets {
		if HasStripChars(t) && c.lenient.Tolerate(FlagStripWords) {
			targets[i] = StripWord(t)
		}
	}
	targets = Lower(targets)

	if strings.IndexFunc(clue, unicode.IsSpace) >= 0 {
		return newError(RoleClueGiver, KindClueContainsSpaces, utterance).withToken(clue)
	}
	if !isAlpha(clue) {
		return newError(RoleClueGiver, KindClueNonAlphabetical, utterance).withToken(clue)
	}

	if similar, ok := c.similar.Similar(clue, remaining); ok {
		return newError(RoleClueGiver, KindRelatedClue, utterance).
			withToken(clue).
			withWords([]string{similar})
	}
	board := wordSet(remaining)
	if _, ok := board[clue]; ok {
		return newError(RoleClueGiver, KindClueOnBoard, utterance).withToken(clue).withWords(remaining)
	}

	for _, t := range targets {
		if _, ok := board[t]; ok {
			continue
		}
		if !c.lenient.Tolerate(FlagIgnoreFalseTargetsOrGuesses) {
			return newError(RoleClueGiver, KindInvalidTarget, utterance).withToken(t).withWords(remaining)
		}
	}
	return nil
}

// ParseResponse stores the clue and targets of a validated utterance and
// returns the canonical rendering. Normalization is applied unconditionally.
func (c *ClueGiver) ParseResponse(utterance string) (string, error) {
	lines := strings.Split(utterance, "\n")
	clueLine, ok := findLineStartingWith(CluePrefix, lines)
	if !ok {
		return "", newError(RoleClueGiver, KindMissingCluePrefix, utterance).withPrefix(CluePrefix)
	}
	targetLine, ok := findLineStartingWith(TargetsPrefix, lines)
	if !ok {
		return "", newError(RoleClueGiver, KindMissingTargetPrefix, utterance).withPrefix(TargetsPrefix)
	}

	clue := strings.ToLower(strings.TrimPrefix(clueLine, CluePrefix))
	c.clue = StripNumberOfTargets(StripWord(clue))

	targets := SplitWords(strings.TrimPrefix(targetLine, TargetsPrefix))
	for i, t := range targets {
		targets[i] = strings.ToLower(StripWord(t))
	}
	c.targets = targets
	return c.RecoverUtterance(), nil
}

// RecoverUtterance renders the stored fields in protocol form.
func (c *ClueGiver) RecoverUtterance() string {
	return CluePrefix + c.clue + "\n" + TargetsPrefix + JoinWords(c.targets)
}
