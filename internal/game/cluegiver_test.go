package game

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lemmaTable is a fixed base-form table; unknown words are their own lemma.
type lemmaTable map[string]string

func (t lemmaTable) lemma(w string) string {
	if l, ok := t[w]; ok {
		return l
	}
	return w
}

func (t lemmaTable) Similar(word string, candidates []string) (string, bool) {
	base := t.lemma(word)
	for _, c := range candidates {
		if c != word && t.lemma(c) == base {
			return c, true
		}
	}
	return "", false
}

var testLemmas = lemmaTable{"dogs": "dog", "running": "run", "ran": "run", "trees": "tree"}

func newTestClueGiver(flags Flags) *ClueGiver {
	return NewClueGiver(flags, testLemmas, zerolog.Nop())
}

func requireKind(t *testing.T, err error, want Kind) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	assert.Equal(t, want, verr.Kind)
	return verr
}

func TestClueGiverValidate_NumberOfTargetsTolerated(t *testing.T) {
	cg := newTestClueGiver(Flags{IgnoreNumberOfTargets: true})
	utt := "CLUE: forest, 2\nTARGETS: tree, plant"
	board := []string{"tree", "plant", "ocean"}

	require.NoError(t, cg.ValidateResponse(utt, board))
	assert.Equal(t, 1, cg.Leniency().Count(FlagIgnoreNumberOfTargets))

	canonical, err := cg.ParseResponse(utt)
	require.NoError(t, err)
	assert.Equal(t, ParsedClue{Clue: "forest", Targets: []string{"tree", "plant"}}, cg.Parsed())
	assert.Equal(t, "CLUE: forest\nTARGETS: tree, plant", canonical)
}

func TestClueGiverValidate_NumberOfTargetsRejected(t *testing.T) {
	cg := newTestClueGiver(Flags{})
	err := cg.ValidateResponse("CLUE: forest, 2\nTARGETS: tree", []string{"tree"})
	verr := requireKind(t, err, KindClueContainsNumberOfTargets)
	assert.Equal(t, "forest, 2", verr.Token)
	assert.Equal(t, CategoryCount, verr.Kind.Category())
}

func TestClueGiverValidate_Errors(t *testing.T) {
	board := []string{"dogs", "cat", "tree"}
	cases := []struct {
		name      string
		flags     Flags
		utterance string
		kind      Kind
	}{
		{"empty", Flags{}, "", KindTooFewText},
		{"blank", Flags{}, "  \n ", KindTooFewText},
		{"rambling", Flags{}, "CLUE: pet\nTARGETS: cat\nbecause cats are pets", KindClueGiverRambling},
		{"missing clue prefix", Flags{}, "HINT: pet\nTARGETS: cat", KindMissingCluePrefix},
		{"missing target prefix", Flags{}, "CLUE: pet\nWORDS: cat", KindMissingTargetPrefix},
		{"junk characters", Flags{}, "CLUE: pet!\nTARGETS: cat", KindClueNonAlphabetical},
		{"spaces", Flags{}, "CLUE: house pet\nTARGETS: cat", KindClueContainsSpaces},
		{"digits", Flags{}, "CLUE: pet2\nTARGETS: cat", KindClueNonAlphabetical},
		{"empty clue", Flags{}, "CLUE: \nTARGETS: cat", KindClueNonAlphabetical},
		{"related", Flags{}, "CLUE: dog\nTARGETS: cat", KindRelatedClue},
		{"on board", Flags{}, "CLUE: cat\nTARGETS: tree", KindClueOnBoard},
		{"invalid target", Flags{}, "CLUE: pet\nTARGETS: cat, lion", KindInvalidTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cg := newTestClueGiver(tc.flags)
			verr := requireKind(t, cg.ValidateResponse(tc.utterance, board), tc.kind)
			assert.Equal(t, RoleClueGiver, verr.Role)
			assert.Equal(t, tc.utterance, verr.Utterance)
		})
	}
}

func TestClueGiverValidate_RelatedSurfacesBoardWord(t *testing.T) {
	cg := newTestClueGiver(Flags{})
	err := cg.ValidateResponse("CLUE: dog\nTARGETS: cat", []string{"dogs", "cat"})
	verr := requireKind(t, err, KindRelatedClue)
	assert.Equal(t, "dog", verr.Token)
	assert.Equal(t, []string{"dogs"}, verr.Words)
}

func TestClueGiverValidate_CaseFoldedClueOnBoard(t *testing.T) {
	cg := newTestClueGiver(Flags{})
	err := cg.ValidateResponse("CLUE: DOG\nTARGETS: dog", []string{"dog"})
	requireKind(t, err, KindClueOnBoard)
}

func TestClueGiverValidate_PrefixLinesAnywhere(t *testing.T) {
	cg := newTestClueGiver(Flags{})
	require.NoError(t, cg.ValidateResponse("TARGETS: cat, tree\nCLUE: pet", []string{"cat", "tree"}))
}

func TestClueGiverValidate_RamblingTolerated(t *testing.T) {
	cg := newTestClueGiver(Flags{IgnoreRambling: true})
	utt := "Sure, here you go.\nCLUE: pet\nTARGETS: cat\nGood luck!"
	require.NoError(t, cg.ValidateResponse(utt, []string{"cat"}))
	assert.Equal(t, 1, cg.Leniency().Count(FlagIgnoreRambling))

	canonical, err := cg.ParseResponse(utt)
	require.NoError(t, err)
	assert.Equal(t, "CLUE: pet\nTARGETS: cat", canonical)
}

func TestClueGiverValidate_StripWords(t *testing.T) {
	cg := newTestClueGiver(Flags{StripWords: true})
	utt := "CLUE: **Pet**\nTARGETS: 'cat', tree."
	require.NoError(t, cg.ValidateResponse(utt, []string{"cat", "tree"}))
	// One for the clue, one per decorated target.
	assert.Equal(t, 3, cg.Leniency().Count(FlagStripWords))

	_, err := cg.ParseResponse(utt)
	require.NoError(t, err)
	assert.Equal(t, ParsedClue{Clue: "pet", Targets: []string{"cat", "tree"}}, cg.Parsed())
}

// With STRIP WORDS off, decorated targets are neither stripped nor counted;
// the membership stage then rejects them.
func TestClueGiverValidate_TargetStripCountsOnlyWhenEnabled(t *testing.T) {
	cg := newTestClueGiver(Flags{})
	err := cg.ValidateResponse("CLUE: pet\nTARGETS: cat.", []string{"cat"})
	verr := requireKind(t, err, KindInvalidTarget)
	assert.Equal(t, "cat.", verr.Token)
	assert.Equal(t, 0, cg.Leniency().Count(FlagStripWords))

	lenient := newTestClueGiver(Flags{IgnoreFalseTargetsOrGuesses: true})
	require.NoError(t, lenient.ValidateResponse("CLUE: pet\nTARGETS: cat.", []string{"cat"}))
	assert.Equal(t, 0, lenient.Leniency().Count(FlagStripWords))
	assert.Equal(t, 1, lenient.Leniency().Count(FlagIgnoreFalseTargetsOrGuesses))
}

func TestClueGiverValidate_FalseTargetsTolerated(t *testing.T) {
	cg := newTestClueGiver(Flags{IgnoreFalseTargetsOrGuesses: true})
	require.NoError(t, cg.ValidateResponse("CLUE: pet\nTARGETS: lion, cat, tiger", []string{"cat"}))
	assert.Equal(t, 2, cg.Leniency().Count(FlagIgnoreFalseTargetsOrGuesses))
}

func TestClueGiverValidate_CountersUntouchedOnCleanInput(t *testing.T) {
	all := Flags{IgnoreRambling: true, StripWords: true, IgnoreNumberOfTargets: true, IgnoreFalseTargetsOrGuesses: true}
	cg := newTestClueGiver(all)
	require.NoError(t, cg.ValidateResponse("CLUE: pet\nTARGETS: cat", []string{"cat"}))
	for _, f := range AllFlags() {
		assert.Zero(t, cg.Leniency().Count(f), f.String())
	}
}

func TestClueGiverValidate_EnablingFlagOnlyHelps(t *testing.T) {
	board := []string{"cat", "tree"}
	inputs := []string{
		"CLUE: pet\nTARGETS: cat\nextra",
		"CLUE: pet!\nTARGETS: cat",
		"CLUE: pet, 2\nTARGETS: cat",
		"CLUE: pet\nTARGETS: lion",
		"CLUE: pet\nTARGETS: cat!",
	}
	for _, f := range AllFlags() {
		for _, in := range inputs {
			strict := newTestClueGiver(Flags{})
			var on Flags
			switch f {
			case FlagIgnoreRambling:
				on.IgnoreRambling = true
			case FlagStripWords:
				on.StripWords = true
			case FlagIgnoreNumberOfTargets:
				on.IgnoreNumberOfTargets = true
			case FlagIgnoreFalseTargetsOrGuesses:
				on.IgnoreFalseTargetsOrGuesses = true
			}
			lenient := newTestClueGiver(on)
			if strict.ValidateResponse(in, board) == nil {
				assert.NoError(t, lenient.ValidateResponse(in, board), "%s / %q", f, in)
			}
		}
	}
}

func TestClueGiverRoundTrip(t *testing.T) {
	board := []string{"cat", "tree", "ocean"}
	flags := Flags{IgnoreRambling: true, StripWords: true, IgnoreNumberOfTargets: true}
	inputs := []string{
		"CLUE: Forest, 2\nTARGETS: Tree, Cat",
		"TARGETS: tree.\nCLUE: \"wood\"",
		"ok\nCLUE: sea\nTARGETS: ocean\nthanks",
	}
	for _, in := range inputs {
		cg := newTestClueGiver(flags)
		require.NoError(t, cg.ValidateResponse(in, board), in)
		canonical, err := cg.ParseResponse(in)
		require.NoError(t, err)
		first := cg.Parsed()
		assert.Equal(t, canonical, cg.RecoverUtterance())

		again := newTestClueGiver(flags)
		require.NoError(t, again.ValidateResponse(canonical, board))
		_, err = again.ParseResponse(canonical)
		require.NoError(t, err)
		assert.Equal(t, first, again.Parsed())
	}
}

func TestClueGiverParse_MissingPrefix(t *testing.T) {
	cg := newTestClueGiver(Flags{})
	_, err := cg.ParseResponse("TARGETS: cat")
	requireKind(t, err, KindMissingCluePrefix)
	assert.Equal(t, "CLUE: clue\nTARGETS: target, word", cg.RecoverUtterance())
}

func TestClueGiverWithoutChecker(t *testing.T) {
	cg := NewClueGiver(Flags{}, nil, zerolog.Nop())
	require.NoError(t, cg.ValidateResponse("CLUE: dog\nTARGETS: cat", []string{"dogs", "cat"}))
}
