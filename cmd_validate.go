package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/codenames-referee/internal/config"
	"github.com/robalobadob/codenames-referee/internal/game"
)

var (
	validateRole      string
	validateBoard     []string
	validateAllowed   int
	validateFlagsFile string
)

var errInvalidUtterance = errors.New("utterance failed validation")

var validateCmd = &cobra.Command{
	Use:   "validate [utterance]",
	Short: "Validate and parse one utterance",
	Long: `Validate one clue-giver or guesser utterance against a board and print
the result as JSON. The utterance is read from the argument, or from stdin
when no argument is given. Literal "\n" sequences in the argument are
treated as line breaks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateRole, "role", string(game.RoleClueGiver), "cluegiver or guesser")
	validateCmd.Flags().StringSliceVar(&validateBoard, "board", nil, "remaining board words (comma separated)")
	validateCmd.Flags().IntVar(&validateAllowed, "allowed", 1, "number of guesses allowed (guesser only)")
	validateCmd.Flags().StringVar(&validateFlagsFile, "flags", "", "YAML leniency flag file (defaults to FLAGS_FILE)")
}

type validateOutput struct {
	Valid     bool                  `json:"valid"`
	Error     *game.ValidationError `json:"error,omitempty"`
	Category  game.Category         `json:"category,omitempty"`
	Canonical string                `json:"canonical,omitempty"`
	Engaged   map[string]int        `json:"engaged"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	utterance, err := readUtterance(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	flags, err := resolveFlags(validateFlagsFile)
	if err != nil {
		return err
	}
	board := game.Lower(validateBoard)

	var player game.Player
	var verr error
	switch game.Role(validateRole) {
	case game.RoleClueGiver:
		checker, err := newChecker()
		if err != nil {
			return err
		}
		cg := game.NewClueGiver(flags, checker, log.Logger)
		verr = cg.ValidateResponse(utterance, board)
		player = cg
	case game.RoleGuesser:
		g := game.NewGuesser(flags, log.Logger)
		verr = g.ValidateResponse(utterance, board, validateAllowed)
		player = g
	default:
		return fmt.Errorf("unknown role %q", validateRole)
	}

	out := validateOutput{Valid: verr == nil}
	switch {
	case verr == nil:
		if out.Canonical, err = player.ParseResponse(utterance); err != nil {
			return err
		}
	case errors.As(verr, &out.Error):
		out.Category = out.Error.Kind.Category()
	default:
		return verr
	}
	out.Engaged = player.Engaged()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !out.Valid {
		return errInvalidUtterance
	}
	return nil
}

func readUtterance(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.ReplaceAll(args[0], `\n`, "\n"), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// resolveFlags prefers an explicit file over the configured default.
func resolveFlags(path string) (game.Flags, error) {
	if path != "" {
		return config.LoadFlags(path)
	}
	return cfg.DefaultFlags()
}
