package game

import (
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindTooFewText                  Kind = "too few text"
	KindClueGiverRambling           Kind = "cluegiver rambling error"
	KindGuesserRambling             Kind = "guesser rambling error"
	KindMissingCluePrefix           Kind = "missing clue prefix"
	KindMissingTargetPrefix         Kind = "missing target prefix"
	KindMissingGuessPrefix          Kind = "missing guess prefix"
	KindClueNonAlphabetical         Kind = "clue contains non-alphabetical characters"
	KindClueContainsSpaces          Kind = "clue contains spaces"
	KindGuessInvalidCharacters      Kind = "guess contains invalid characters"
	KindWrongNumberOfGuesses        Kind = "wrong number of guesses"
	KindClueContainsNumberOfTargets Kind = "clue contains number of targets"
	KindRelatedClue                 Kind = "clue is morphologically related to word on the board"
	KindClueOnBoard                 Kind = "clue is word on board"
	KindInvalidTarget               Kind = "target is invalid"
	KindInvalidGuess                Kind = "invalid guess"
)

// Category groups kinds the way reports aggregate them.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryLexical    Category = "lexical"
	CategoryCount      Category = "count"
	CategorySemantic   Category = "semantic"
)

// Category returns the group k belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindTooFewText, KindClueGiverRambling, KindGuesserRambling,
		KindMissingCluePrefix, KindMissingTargetPrefix, KindMissingGuessPrefix:
		return CategoryStructural
	case KindClueNonAlphabetical, KindClueContainsSpaces, KindGuessInvalidCharacters:
		return CategoryLexical
	case KindWrongNumberOfGuesses, KindClueContainsNumberOfTargets:
		return CategoryCount
	default:
		return CategorySemantic
	}
}

// ValidationError is the single failure type returned by both validators.
// Only the fields relevant to Kind are populated.
type ValidationError struct {
	Kind      Kind     `json:"kind"`
	Role      Role     `json:"role"`
	Utterance string   `json:"utterance"`
	Token     string   `json:"token,omitempty"`  // offending clue, target or guess
	Words     []string `json:"words,omitempty"`  // board context or parsed guesses
	Prefix    string   `json:"prefix,omitempty"` // expected prefix for prefix errors
	Limit     int      `json:"limit,omitempty"`  // allowed guesses for count errors
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Role, e.Kind)
	switch {
	case e.Prefix != "":
		fmt.Fprintf(&b, " (expected %q)", e.Prefix)
	case e.Kind == KindWrongNumberOfGuesses:
		fmt.Fprintf(&b, " (%d given, at most %d allowed)", len(e.Words), e.Limit)
	case e.Token != "":
		fmt.Fprintf(&b, " (%q)", e.Token)
	}
	return b.String()
}

func newError(role Role, kind Kind, utterance string) *ValidationError {
	return &ValidationError{Kind: kind, Role: role, Utterance: utterance}
}

func (e *ValidationError) withToken(tok string) *ValidationError {
	e.Token = tok
	return e
}

func (e *ValidationError) withWords(words []string) *ValidationError {
	e.Words = append([]string(nil), words...)
	return e
}

func (e *ValidationError) withPrefix(p string) *ValidationError {
	e.Prefix = p
	return e
}
