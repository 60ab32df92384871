// internal/game/types.go
//
// Core type definitions for the Codenames response protocol.
// Defines:
//   - Role: which agent produced an utterance (clue-giver or guesser).
//   - ParsedClue / ParsedGuess: canonical, validated agent output.
//   - Player: the capability set both roles expose to the orchestrator.
//   - SimilarityChecker: morphological collision detection, injected into ClueGiver.

package game

// Role identifies the agent whose utterance is being validated.
type Role string

const (
	RoleClueGiver Role = "cluegiver"
	RoleGuesser   Role = "guesser"
)

// Protocol prefixes and delimiters.
const (
	CluePrefix    = "CLUE: "
	TargetsPrefix = "TARGETS: "
	GuessPrefix   = "GUESS: "
	WordDelimiter = ", "
)

// Collaborator constants. The validators never read these; they are exported
// for stub mode and the re-prompt loop.
const (
	Seed       = 42
	MaxRetries = 2
)

// ParsedClue is the canonical clue-giver response.
type ParsedClue struct {
	Clue    string   `json:"clue"`    // single lowercase alphabetic token
	Targets []string `json:"targets"` // lowercase tokens, at least one
}

// ParsedGuess is the canonical guesser response.
type ParsedGuess struct {
	Guesses []string `json:"guesses"` // lowercase tokens, in the order given
}

// Player is what the orchestrator needs from either role once an utterance
// has been validated. Validation itself is role specific because the guesser
// also needs the per-turn guess allowance.
type Player interface {
	Role() Role
	// ParseResponse re-derives and stores the fields of an already validated
	// utterance and returns the canonical rendering.
	ParseResponse(utterance string) (string, error)
	// RecoverUtterance renders the currently stored fields.
	RecoverUtterance() string
	// Engaged returns the leniency counters, keyed by flag name.
	Engaged() map[string]int
}

// SimilarityChecker reports a board word that shares a base form with word
// without being identical to it. The returned word is the board word exactly
// as given in candidates; identical strings are left to the on-board check.
type SimilarityChecker interface {
	Similar(word string, candidates []string) (string, bool)
}

// noSimilarity never reports a collision. Used when no checker is wired.
type noSimilarity struct{}

func (noSimilarity) Similar(string, []string) (string, bool) { return "", false }
