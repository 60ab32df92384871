package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robalobadob/codenames-referee/internal/game"
)

// Action is the orchestrator call an attempt records.
type Action string

const (
	ActionValidate Action = "validate"
	ActionParse    Action = "parse"
)

// Attempt is one validate or parse call.
type Attempt struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"gameId"`
	Role      game.Role `json:"role"`
	Action    Action    `json:"action"`
	Utterance string    `json:"utterance"`
	Valid     bool      `json:"valid"`
	Kind      game.Kind `json:"kind,omitempty"`
	Token     string    `json:"token,omitempty"`
	Canonical string    `json:"canonical,omitempty"`
	CreatedAt string    `json:"createdAt"`
}

// KindCount is a row of the failure summary.
type KindCount struct {
	Role  game.Role `json:"role"`
	Kind  game.Kind `json:"kind"`
	Count int       `json:"count"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// CreateGame records a new session and its flags. clientID may be empty.
func (s *Store) CreateGame(ctx context.Context, id, clientID string, flags game.Flags) error {
	b, err := json.Marshal(flags)
	if err != nil {
		return err
	}
	var owner any
	if clientID != "" {
		owner = clientID
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games(id, client_id, flags, created_at) VALUES(?,?,?,?)`,
		id, owner, string(b), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// InsertAttempt appends one attempt row.
func (s *Store) InsertAttempt(ctx context.Context, a Attempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts(game_id, role, action, utterance, valid, kind, token, canonical)
VALUES(?,?,?,?,?,?,?,?)`,
		a.GameID, string(a.Role), string(a.Action), a.Utterance, a.Valid, string(a.Kind), a.Token, a.Canonical,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// Attempts returns the most recent attempts of a game, oldest first.
func (s *Store) Attempts(ctx context.Context, gameID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, role, action, utterance, valid, kind, token, canonical, created_at
FROM (SELECT * FROM attempts WHERE game_id=? ORDER BY id DESC LIMIT ?)
ORDER BY id ASC`, gameID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Attempt{}
	for rows.Next() {
		var a Attempt
		var role, action, kind string
		if err := rows.Scan(&a.ID, &a.GameID, &role, &action, &a.Utterance, &a.Valid, &kind, &a.Token, &a.Canonical, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Role, a.Action, a.Kind = game.Role(role), Action(action), game.Kind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

// KindSummary counts failed validations per role and kind, most frequent first.
func (s *Store) KindSummary(ctx context.Context, gameID string) ([]KindCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, kind, COUNT(1) AS n
FROM attempts
WHERE game_id=? AND valid=0 AND kind<>''
GROUP BY role, kind
ORDER BY n DESC, role ASC, kind ASC`, gameID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []KindCount{}
	for rows.Next() {
		var r KindCount
		var role, kind string
		if err := rows.Scan(&role, &kind, &r.Count); err != nil {
			return nil, err
		}
		r.Role, r.Kind = game.Role(role), game.Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
