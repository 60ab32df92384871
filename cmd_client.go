package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/codenames-referee/internal/auth"
	"github.com/robalobadob/codenames-referee/internal/database"
)

var clientSecret string

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage orchestrator clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a client and print its id and secret",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientAdd,
}

func init() {
	clientAddCmd.Flags().StringVar(&clientSecret, "secret", "", "client secret (generated when empty)")
	clientCmd.AddCommand(clientAddCmd)
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	db, err := database.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	secret := clientSecret
	if secret == "" {
		secret = genSecret()
	}
	c, err := auth.NewService(db, cfg.JWTSecret, cfg.JWTExpiresDays).CreateClient(cmd.Context(), args[0], secret)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "id:     %s\nname:   %s\nsecret: %s\n", c.ID, c.Name, secret)
	return nil
}

// genSecret creates a 32-char URL-safe, crypto-random secret (no padding).
func genSecret() string {
	var b [24]byte
	_, _ = rand.Read(b[:])
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
}
