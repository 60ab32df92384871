// internal/game/guesser.go
//
// Guesser validates and canonicalizes guesser utterances of the form
//
//	GUESS: <word1>, <word2>, ...
//
// Stage order: rambling, prefix, characters, count bound, board membership.
// Unlike the clue-giver, any newline counts as rambling because the protocol
// is a single line.

package game

import (
	"strings"

	"github.com/rs/zerolog"
)

// Guesser holds the latest canonical guesses for one game.
type Guesser struct {
	guesses []string
	lenient *Leniency
}

// NewGuesser builds a guesser with the given leniency flags.
func NewGuesser(flags Flags, logger zerolog.Logger) *Guesser {
	return &Guesser{
		guesses: []string{"guess", "word"},
		lenient: newLeniency(RoleGuesser, flags, logger),
	}
}

// Role implements Player.
func (g *Guesser) Role() Role { return RoleGuesser }

// Leniency exposes the flag set and counters.
func (g *Guesser) Leniency() *Leniency { return g.lenient }

// Engaged implements Player.
func (g *Guesser) Engaged() map[string]int { return g.lenient.Snapshot() }

// Parsed returns a copy of the stored guesses.
func (g *Guesser) Parsed() ParsedGuess {
	return ParsedGuess{Guesses: append([]string(nil), g.guesses...)}
}

// ValidateResponse checks utterance against the protocol, the board and the
// number of guesses allowed this turn.
func (g *Guesser) ValidateResponse(utterance string, remaining []string, allowed int) error {
	line := utterance
	if strings.Contains(utterance, "\n") {
		if !g.lenient.Tolerate(FlagIgnoreRambling) {
			return newError(RoleGuesser, KindGuesserRambling, utterance)
		}
		if found, ok := findLineStartingWith(GuessPrefix, strings.Split(utterance, "\n")); ok {
			line = found
		}
	}
	if !strings.HasPrefix(line, GuessPrefix) {
		return newError(RoleGuesser, KindMissingGuessPrefix, utterance).withPrefix(GuessPrefix)
	}

	guesses := SplitWords(strings.TrimPrefix(line, GuessPrefix))
	for i, w := range guesses {
		if !HasStripChars(w) {
			continue
		}
		if !g.lenient.Tolerate(FlagStripWords) {
			return newError(RoleGuesser, KindGuessInvalidCharacters, utterance).withToken(w)
		}
		guesses[i] = StripWord(w)
	}
	guesses = Lower(guesses)

	if len(guesses) == 0 || len(guesses) > allowed {
		err := newError(RoleGuesser, KindWrongNumberOfGuesses, utterance).withWords(guesses)
		err.Limit = allowed
		return err
	}

	board := wordSet(remaining)
	for _, w := range guesses {
		if _, ok := board[w]; ok {
			continue
		}
		if !g.lenient.Tolerate(FlagIgnoreFalseTargetsOrGuesses) {
			return newError(RoleGuesser, KindInvalidGuess, utterance).withToken(w).withWords(remaining)
		}
	}
	return nil
}

// ParseResponse stores the guesses of a validated utterance and returns the
// canonical rendering. With IGNORE RAMBLING the guess line is searched for.
func (g *Guesser) ParseResponse(utterance string) (string, error) {
	line := utterance
	if g.lenient.Flags().IgnoreRambling {
		found, ok := findLineStartingWith(GuessPrefix, strings.Split(utterance, "\n"))
		if !ok {
			return "", newError(RoleGuesser, KindMissingGuessPrefix, utterance).withPrefix(GuessPrefix)
		}
		line = found
	}
	if !strings.HasPrefix(line, GuessPrefix) {
		return "", newError(RoleGuesser, KindMissingGuessPrefix, utterance).withPrefix(GuessPrefix)
	}

	guesses := SplitWords(strings.TrimPrefix(line, GuessPrefix))
	for i, w := range guesses {
		guesses[i] = strings.ToLower(StripWord(w))
	}
	g.guesses = guesses
	return g.RecoverUtterance(), nil
}

// RecoverUtterance renders the stored guesses in protocol form.
func (g *Guesser) RecoverUtterance() string {
	return GuessPrefix + JoinWords(g.guesses)
}
