package game

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuesserValidate_TooManyGuesses(t *testing.T) {
	g := NewGuesser(Flags{}, zerolog.Nop())
	err := g.ValidateResponse("GUESS: cat, dog, extra", []string{"cat", "dog", "extra"}, 2)
	verr := requireKind(t, err, KindWrongNumberOfGuesses)
	assert.Equal(t, 2, verr.Limit)
	assert.Equal(t, []string{"cat", "dog", "extra"}, verr.Words)
	assert.Contains(t, verr.Error(), "3 given, at most 2 allowed")
}

func TestGuesserValidate_StripWords(t *testing.T) {
	g := NewGuesser(Flags{StripWords: true}, zerolog.Nop())
	utt := "GUESS: CAT!, dog"
	require.NoError(t, g.ValidateResponse(utt, []string{"cat", "dog"}, 2))
	assert.GreaterOrEqual(t, g.Leniency().Count(FlagStripWords), 1)

	canonical, err := g.ParseResponse(utt)
	require.NoError(t, err)
	assert.Equal(t, ParsedGuess{Guesses: []string{"cat", "dog"}}, g.Parsed())
	assert.Equal(t, "GUESS: cat, dog", canonical)
}

func TestGuesserValidate_Errors(t *testing.T) {
	board := []string{"cat", "dog", "tree"}
	cases := []struct {
		name      string
		flags     Flags
		utterance string
		allowed   int
		kind      Kind
	}{
		{"rambling", Flags{}, "GUESS: cat\nI think cat.", 2, KindGuesserRambling},
		{"missing prefix", Flags{}, "cat, dog", 2, KindMissingGuessPrefix},
		{"lowercase prefix", Flags{}, "guess: cat", 2, KindMissingGuessPrefix},
		{"rambling without guess line", Flags{IgnoreRambling: true}, "hmm\nmaybe cat", 2, KindMissingGuessPrefix},
		{"invalid characters", Flags{}, "GUESS: cat.", 2, KindGuessInvalidCharacters},
		{"zero allowed", Flags{}, "GUESS: cat", 0, KindWrongNumberOfGuesses},
		{"invalid guess", Flags{}, "GUESS: cat, lion", 2, KindInvalidGuess},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGuesser(tc.flags, zerolog.Nop())
			verr := requireKind(t, g.ValidateResponse(tc.utterance, board, tc.allowed), tc.kind)
			assert.Equal(t, RoleGuesser, verr.Role)
			assert.Equal(t, tc.utterance, verr.Utterance)
		})
	}
}

func TestGuesserValidate_RamblingTolerated(t *testing.T) {
	g := NewGuesser(Flags{IgnoreRambling: true}, zerolog.Nop())
	utt := "Let me think.\nGUESS: tree, cat\nDone."
	require.NoError(t, g.ValidateResponse(utt, []string{"cat", "tree"}, 3))
	assert.Equal(t, 1, g.Leniency().Count(FlagIgnoreRambling))

	canonical, err := g.ParseResponse(utt)
	require.NoError(t, err)
	assert.Equal(t, "GUESS: tree, cat", canonical)
}

func TestGuesserValidate_FalseGuessesTolerated(t *testing.T) {
	g := NewGuesser(Flags{IgnoreFalseTargetsOrGuesses: true}, zerolog.Nop())
	require.NoError(t, g.ValidateResponse("GUESS: lion, cat", []string{"cat"}, 2))
	assert.Equal(t, 1, g.Leniency().Count(FlagIgnoreFalseTargetsOrGuesses))
	assert.Zero(t, g.Leniency().Count(FlagStripWords))
}

func TestGuesserValidate_StageOrder(t *testing.T) {
	// Invalid characters are reported before the count bound.
	g := NewGuesser(Flags{}, zerolog.Nop())
	requireKind(t, g.ValidateResponse("GUESS: a!, b, c", []string{"a"}, 1), KindGuessInvalidCharacters)

	// The count bound is reported before membership.
	requireKind(t, g.ValidateResponse("GUESS: x, y", []string{"a"}, 1), KindWrongNumberOfGuesses)
}

func TestGuesserRoundTrip(t *testing.T) {
	board := []string{"cat", "dog", "tree"}
	flags := Flags{IgnoreRambling: true, StripWords: true}
	for _, in := range []string{"GUESS: Cat, *dog*", "ok\nGUESS: tree.", "GUESS: dog"} {
		g := NewGuesser(flags, zerolog.Nop())
		require.NoError(t, g.ValidateResponse(in, board, 3), in)
		canonical, err := g.ParseResponse(in)
		require.NoError(t, err)
		first := g.Parsed()

		again := NewGuesser(flags, zerolog.Nop())
		require.NoError(t, again.ValidateResponse(canonical, board, 3))
		_, err = again.ParseResponse(canonical)
		require.NoError(t, err)
		assert.Equal(t, first, again.Parsed())
		assert.Equal(t, canonical, again.RecoverUtterance())
	}
}

func TestGuesserParse_MissingPrefix(t *testing.T) {
	g := NewGuesser(Flags{}, zerolog.Nop())
	_, err := g.ParseResponse("cat, dog")
	requireKind(t, err, KindMissingGuessPrefix)
	assert.Equal(t, "GUESS: guess, word", g.RecoverUtterance())
}

func TestPlayersSatisfyPlayer(t *testing.T) {
	players := []Player{
		NewClueGiver(Flags{}, nil, zerolog.Nop()),
		NewGuesser(Flags{}, zerolog.Nop()),
	}
	assert.Equal(t, RoleClueGiver, players[0].Role())
	assert.Equal(t, RoleGuesser, players[1].Role())
	for _, p := range players {
		assert.Len(t, p.Engaged(), len(AllFlags()))
	}
}
