package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/codenames-referee/internal/audit"
	"github.com/robalobadob/codenames-referee/internal/auth"
	"github.com/robalobadob/codenames-referee/internal/database"
	"github.com/robalobadob/codenames-referee/internal/httpserver"
	"github.com/robalobadob/codenames-referee/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the referee HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := database.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	checker, err := newChecker()
	if err != nil {
		return err
	}
	flags, err := cfg.DefaultFlags()
	if err != nil {
		return err
	}

	srv := httpserver.New(httpserver.Deps{
		Store:        store.NewMemoryStore(),
		Audit:        audit.NewStore(db),
		Auth:         auth.NewService(db, cfg.JWTSecret, cfg.JWTExpiresDays),
		Checker:      checker,
		DefaultFlags: flags,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().
		Str("port", cfg.Port).
		Str("lemmatizer", cfg.Lemmatizer).
		Str("db", cfg.DBPath).
		Msg("starting referee")
	return srv.Start(":" + cfg.Port)
}
