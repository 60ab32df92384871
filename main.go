// Command referee validates and canonicalizes Codenames agent responses.
//
// Subcommands:
//
//	referee serve               HTTP API for orchestrators
//	referee validate            check one utterance from the command line
//	referee simulate            stub agents play a random board
//	referee client add <name>   register an orchestrator client
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/codenames-referee/internal/config"
	"github.com/robalobadob/codenames-referee/internal/game"
	"github.com/robalobadob/codenames-referee/internal/lemma"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "referee",
	Short:         "Validate and canonicalize Codenames agent responses",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		cfg.ApplyLogLevel()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, validateCmd, simulateCmd, clientCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("referee")
		os.Exit(1)
	}
}

// newChecker builds the configured morphological similarity checker.
func newChecker() (game.SimilarityChecker, error) {
	l, err := lemma.New(cfg.Lemmatizer, cfg.LemmaCacheSize)
	if err != nil {
		return nil, err
	}
	return lemma.NewChecker(l), nil
}
