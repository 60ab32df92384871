// internal/game/normalize.go
//
// Text normalization helpers shared by both roles. Pure functions; the
// decision whether a pattern is an error or a tolerated deviation stays with
// the caller and its Leniency.

package game

import (
	"regexp"
	"strings"
	"unicode"
)

// CharsToStrip are junk characters models wrap words in. Comma, space and
// digits are deliberately absent so the number-of-targets pattern survives.
const CharsToStrip = ".!?;:'\"*_()[]<>`"

// NumbersToStrip trims a trailing ", <digits>" from a clue.
const NumbersToStrip = " ,0123456789"

var numberOfTargets = regexp.MustCompile(`, [0-9]+`)

// HasStripChars reports whether w contains any character from CharsToStrip.
func HasStripChars(w string) bool {
	return strings.ContainsAny(w, CharsToStrip)
}

// StripWord trims leading and trailing junk characters.
func StripWord(w string) string {
	return strings.Trim(w, CharsToStrip)
}

// HasNumberOfTargets reports whether w carries a ", <digits>" pattern.
func HasNumberOfTargets(w string) bool {
	return numberOfTargets.MatchString(w)
}

// StripNumberOfTargets trims the numeric suffix (and any leading digits/commas).
func StripNumberOfTargets(w string) string {
	return strings.Trim(w, NumbersToStrip)
}

// SplitWords splits a multi-word field on the protocol delimiter.
func SplitWords(field string) []string {
	return strings.Split(field, WordDelimiter)
}

// JoinWords is the inverse of SplitWords.
func JoinWords(words []string) string {
	return strings.Join(words, WordDelimiter)
}

// Lower case-folds every word.
func Lower(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

// splitLines returns the utterance lines; a blank utterance has none.
func splitLines(utterance string) []string {
	if strings.TrimSpace(utterance) == "" {
		return nil
	}
	return strings.Split(utterance, "\n")
}

// findLineStartingWith returns the first line beginning with prefix.
func findLineStartingWith(prefix string, lines []string) (string, bool) {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return l, true
		}
	}
	return "", false
}

// isAlpha reports whether s is non-empty and made of letters only.
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

// wordSet builds a lookup set for membership checks.
func wordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
