// internal/config/config.go
//
// Process configuration for the referee.
// Values come from the environment (optionally seeded from a `.env` file via
// godotenv) with development defaults. Leniency flag sets are read from YAML
// files keyed by the protocol flag names, e.g.
//
//	IGNORE RAMBLING: true
//	STRIP WORDS: true
//
// Environment variables:
//
//	PORT, LOG_LEVEL, DB_PATH, JWT_SECRET, JWT_EXPIRES_DAYS, CLIENT_ORIGIN,
//	LEMMATIZER, LEMMA_CACHE_SIZE, WORDS_FILE, FLAGS_FILE, STUB_SEED

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/codenames-referee/internal/game"
)

// Config is the resolved process configuration.
type Config struct {
	Port           string
	LogLevel       string
	DBPath         string
	JWTSecret      string
	JWTExpiresDays int
	ClientOrigin   string
	Lemmatizer     string
	LemmaCacheSize int
	WordsFile      string
	FlagsFile      string
	StubSeed       int64
}

// Load reads `.env` (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/referee.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Lemmatizer:   getEnv("LEMMATIZER", "dictionary"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		FlagsFile:    os.Getenv("FLAGS_FILE"),
	}

	var err error
	if cfg.JWTExpiresDays, err = envInt("JWT_EXPIRES_DAYS", 14); err != nil {
		return nil, err
	}
	if cfg.LemmaCacheSize, err = envInt("LEMMA_CACHE_SIZE", 4096); err != nil {
		return nil, err
	}
	seed, err := envInt("STUB_SEED", game.Seed)
	if err != nil {
		return nil, err
	}
	cfg.StubSeed = int64(seed)
	return cfg, nil
}

// ApplyLogLevel sets the global zerolog level; unknown levels are ignored.
func (c *Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// DefaultFlags returns the flag set from FlagsFile, or all flags off.
func (c *Config) DefaultFlags() (game.Flags, error) {
	if c.FlagsFile == "" {
		return game.Flags{}, nil
	}
	return LoadFlags(c.FlagsFile)
}

// LoadFlags reads a YAML flag set.
func LoadFlags(path string) (game.Flags, error) {
	var fs game.Flags
	b, err := os.ReadFile(path)
	if err != nil {
		return fs, fmt.Errorf("read flags %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &fs); err != nil {
		return fs, fmt.Errorf("parse flags %s: %w", path, err)
	}
	return fs, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
