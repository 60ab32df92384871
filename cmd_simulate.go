package main

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/codenames-referee/internal/game"
	"github.com/robalobadob/codenames-referee/internal/words"
)

var (
	simTurns     int
	simBoardSize int
	simTeamSize  int
	simSeed      int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run stub agents through the validators on a random board",
	Long: `Builds a random board from the word pool and lets the stub clue-giver
and guesser play until the team words are revealed or the turn limit is
reached. Every response goes through validate and parse, with up to
MaxRetries re-prompts per turn.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simTurns, "turns", 10, "maximum number of turns")
	simulateCmd.Flags().IntVar(&simBoardSize, "board-size", 25, "number of words on the board")
	simulateCmd.Flags().IntVar(&simTeamSize, "team-size", 9, "number of team words")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (defaults to STUB_SEED)")
}

// simTurn is the canonical record of one turn.
type simTurn struct {
	Turn      int      `json:"turn"`
	Clue      string   `json:"clueUtterance"`
	Guesses   string   `json:"guessUtterance"`
	Revealed  []string `json:"revealed"`
	Reprompts int      `json:"reprompts"`
}

type simResult struct {
	Board     []string       `json:"board"`
	Team      []string       `json:"team"`
	Turns     []simTurn      `json:"turns"`
	Aborted   bool           `json:"aborted"`
	ClueGiver map[string]int `json:"cluegiverEngaged"`
	Guesser   map[string]int `json:"guesserEngaged"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := words.Init(cfg.WordsFile); err != nil {
		return err
	}
	flags, err := cfg.DefaultFlags()
	if err != nil {
		return err
	}
	checker, err := newChecker()
	if err != nil {
		return err
	}
	seed := simSeed
	if seed == 0 {
		seed = cfg.StubSeed
	}
	rng := rand.New(rand.NewSource(seed))
	board := words.RandomBoard(simBoardSize, rng)

	res := simulate(board, simTeamSize, simTurns, flags, checker, rng, log.Logger)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// simulate plays stub agents on board. The first teamSize words are the team's.
func simulate(board []string, teamSize, turns int, flags game.Flags, checker game.SimilarityChecker, rng *rand.Rand, logger zerolog.Logger) simResult {
	if teamSize > len(board) {
		teamSize = len(board)
	}
	cg := game.NewClueGiver(flags, checker, logger)
	g := game.NewGuesser(flags, logger)

	res := simResult{Board: board, Team: append([]string(nil), board[:teamSize]...)}
	remaining := append([]string(nil), board...)
	team := append([]string(nil), res.Team...)

	for turn := 1; turn <= turns && len(team) > 0; turn++ {
		rec := simTurn{Turn: turn}

		prompt := fmt.Sprintf("Give a one-word clue. Your team words are: %s.", game.JoinWords(team))
		utterance, ok := retry(logger, turn, game.RoleClueGiver, &rec.Reprompts, func() (string, error) {
			u := cg.StubResponse(prompt, rng)
			return u, cg.ValidateResponse(u, remaining)
		}, &prompt)
		if !ok {
			res.Aborted = true
			break
		}
		rec.Clue, _ = cg.ParseResponse(utterance)
		allowed := len(cg.Parsed().Targets)

		guessPrompt := fmt.Sprintf("The clue is %q. The board is:\n\n%s.\n\nYou may guess up to %d words.",
			cg.Parsed().Clue, game.JoinWords(remaining), allowed)
		utterance, ok = retry(logger, turn, game.RoleGuesser, &rec.Reprompts, func() (string, error) {
			u, err := g.StubResponse(guessPrompt, rng)
			if err != nil {
				return "", err
			}
			return u, g.ValidateResponse(u, remaining, allowed)
		}, nil)
		if !ok {
			res.Aborted = true
			break
		}
		rec.Guesses, _ = g.ParseResponse(utterance)

		for _, w := range g.Parsed().Guesses {
			remaining = without(remaining, w)
			team = without(team, w)
			rec.Revealed = append(rec.Revealed, w)
		}
		res.Turns = append(res.Turns, rec)
	}

	res.ClueGiver = cg.Engaged()
	res.Guesser = g.Engaged()
	return res
}

// retry calls attempt once plus up to game.MaxRetries re-prompts. When
// prompt is non-nil it is replaced by a re-prompt naming the error.
func retry(logger zerolog.Logger, turn int, role game.Role, reprompts *int, attempt func() (string, error), prompt *string) (string, bool) {
	for i := 0; i <= game.MaxRetries; i++ {
		u, err := attempt()
		if err == nil {
			return u, true
		}
		logger.Warn().Err(err).Int("turn", turn).Str("role", string(role)).Int("attempt", i+1).Msg("invalid response")
		if i < game.MaxRetries {
			*reprompts++
			if prompt != nil {
				*prompt = "Your answer was invalid: " + err.Error() + ". Try again."
			}
		}
	}
	logger.Error().Int("turn", turn).Str("role", string(role)).Msg("retry budget exhausted, aborting")
	return "", false
}

func without(list []string, w string) []string {
	out := list[:0:0]
	for _, x := range list {
		if x != w {
			out = append(out, x)
		}
	}
	return out
}
