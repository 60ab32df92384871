package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClueGiverStubResponse(t *testing.T) {
	cg := NewClueGiver(Flags{}, nil, zerolog.Nop())
	rng := rand.New(rand.NewSource(Seed))
	prompt := "Give a clue. Your team words are: apple, bank, crane."

	out := cg.StubResponse(prompt, rng)
	parsed := cg.Parsed()
	assert.Len(t, parsed.Clue, stubClueLength)
	assert.True(t, isAlpha(parsed.Clue))
	assert.Len(t, parsed.Targets, 2)
	assert.Subset(t, []string{"apple", "bank", "crane"}, parsed.Targets)
	assert.Equal(t, cg.RecoverUtterance(), out)

	board := []string{"apple", "bank", "crane", "delta"}
	require.NoError(t, cg.ValidateResponse(out, board))
}

func TestClueGiverStubResponse_RepromptKeepsTargets(t *testing.T) {
	cg := NewClueGiver(Flags{}, nil, zerolog.Nop())
	rng := rand.New(rand.NewSource(Seed))
	cg.StubResponse("Your team words are: apple.", rng)
	assert.Equal(t, []string{"apple"}, cg.Parsed().Targets)

	cg.StubResponse("That was invalid, try again.", rng)
	assert.Equal(t, []string{"apple"}, cg.Parsed().Targets)
}

func TestClueGiverStubResponse_Deterministic(t *testing.T) {
	prompt := "Your team words are: apple, bank, crane, delta."
	a := NewClueGiver(Flags{}, nil, zerolog.Nop()).StubResponse(prompt, rand.New(rand.NewSource(Seed)))
	b := NewClueGiver(Flags{}, nil, zerolog.Nop()).StubResponse(prompt, rand.New(rand.NewSource(Seed)))
	assert.Equal(t, a, b)
}

func TestGuesserStubResponse(t *testing.T) {
	g := NewGuesser(Flags{}, zerolog.Nop())
	prompt := "Here is the board:\n\napple, bank, crane, delta.\n\nYou may guess up to 2 words."

	out, err := g.StubResponse(prompt, rand.New(rand.NewSource(Seed)))
	require.NoError(t, err)
	assert.Len(t, g.Parsed().Guesses, 2)
	assert.Subset(t, []string{"apple", "bank", "crane", "delta"}, g.Parsed().Guesses)
	require.NoError(t, g.ValidateResponse(out, []string{"apple", "bank", "crane", "delta"}, 2))
}

func TestGuesserStubResponse_BadPrompt(t *testing.T) {
	g := NewGuesser(Flags{}, zerolog.Nop())
	rng := rand.New(rand.NewSource(Seed))

	_, err := g.StubResponse("no board here, up to 2 words", rng)
	assert.ErrorIs(t, err, errNoBoard)

	_, err = g.StubResponse("intro\n\napple, bank", rng)
	assert.ErrorIs(t, err, errNoAllowance)
}
