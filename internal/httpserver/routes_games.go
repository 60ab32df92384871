// internal/httpserver/routes_games.go
//
// HTTP routes for referee sessions. Everything lives under /games:
//   - POST /games                         → create a session (body: leniency flags)
//   - POST /games/{id}/cluegiver/validate → validate a clue-giver utterance
//   - POST /games/{id}/cluegiver/parse    → canonicalize and store it
//   - GET  /games/{id}/cluegiver          → recover the stored clue
//   - POST /games/{id}/guesser/validate   → validate a guesser utterance
//   - POST /games/{id}/guesser/parse      → canonicalize and store it
//   - GET  /games/{id}/guesser            → recover the stored guesses
//   - GET  /games/{id}/flags              → leniency engagement counters
//   - GET  /games/{id}/attempts           → audit trail + failure summary
//   - DELETE /games/{id}                  → drop the in-memory session
//
// A session belongs to the client that created it; other clients get 404.
// Validation failures answer 422 with the classified error.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames-referee/internal/audit"
	"github.com/robalobadob/codenames-referee/internal/auth"
	"github.com/robalobadob/codenames-referee/internal/game"
	"github.com/robalobadob/codenames-referee/internal/store"
)

// mountGames registers all /games routes.
func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteGame)
			r.Post("/cluegiver/validate", s.handleClueValidate)
			r.Post("/cluegiver/parse", s.handleClueParse)
			r.Get("/cluegiver", s.handleClueGet)
			r.Post("/guesser/validate", s.handleGuessValidate)
			r.Post("/guesser/parse", s.handleGuessParse)
			r.Get("/guesser", s.handleGuessGet)
			r.Get("/flags", s.handleFlags)
			r.Get("/attempts", s.handleAttempts)
		})
	})
}

// -----------------------------------------------------------------------------
// payloads

type newGameReq struct {
	Flags *game.Flags `json:"flags"` // nil → server default flags
}

type newGameRes struct {
	GameID string     `json:"gameId"`
	Flags  game.Flags `json:"flags"`
}

type clueValidateReq struct {
	Utterance      string   `json:"utterance"`
	RemainingWords []string `json:"remainingWords"`
}

type guessValidateReq struct {
	Utterance              string   `json:"utterance"`
	RemainingWords         []string `json:"remainingWords"`
	NumberOfAllowedGuesses int      `json:"numberOfAllowedGuesses"`
}

type parseReq struct {
	Utterance string `json:"utterance"`
}

// errorBody is a ValidationError plus its category.
type errorBody struct {
	*game.ValidationError
	Category game.Category `json:"category"`
}

type validateRes struct {
	Valid bool       `json:"valid"`
	Error *errorBody `json:"error,omitempty"`
}

type clueRes struct {
	Utterance string `json:"utterance"`
	game.ParsedClue
}

type guessRes struct {
	Utterance string `json:"utterance"`
	game.ParsedGuess
}

type flagsRes struct {
	Flags     game.Flags     `json:"flags"`
	ClueGiver map[string]int `json:"cluegiver"`
	Guesser   map[string]int `json:"guesser"`
}

type attemptsRes struct {
	Attempts []audit.Attempt   `json:"attempts"`
	Summary  []audit.KindCount `json:"summary"`
}

// -----------------------------------------------------------------------------
// session lifecycle

// handleNewGame creates a session with a fresh clue-giver and guesser.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	flags := s.deps.DefaultFlags
	if req.Flags != nil {
		flags = *req.Flags
	}

	var clientID string
	if c := auth.CurrentClient(r.Context()); c != nil {
		clientID = c.ID
	}
	id := uuid.NewString()
	logger := log.With().Str("gameId", id).Logger()
	sess := &store.Session{
		ID:        id,
		ClientID:  clientID,
		Flags:     flags,
		ClueGiver: game.NewClueGiver(flags, s.deps.Checker, logger),
		Guesser:   game.NewGuesser(flags, logger),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.audit.CreateGame(r.Context(), id, clientID, flags); err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("insert game row")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}
	writeJSON(w, http.StatusCreated, newGameRes{GameID: id, Flags: flags})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = s.store.Delete(r.Context(), sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// session resolves {id} to a session owned by the current client.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil {
		if c := auth.CurrentClient(r.Context()); c == nil || c.ID == sess.ClientID {
			return sess, true
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Msg("load session")
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	return nil, false
}

// -----------------------------------------------------------------------------
// clue-giver

func (s *Server) handleClueValidate(w http.ResponseWriter, r *http.Request) {
	var req clueValidateReq
	if !decode(w, r, &req) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	err := sess.ClueGiver.ValidateResponse(req.Utterance, game.Lower(req.RemainingWords))
	sess.Unlock()
	s.respondValidation(w, r, sess.ID, game.RoleClueGiver, req.Utterance, err)
}

func (s *Server) handleClueParse(w http.ResponseWriter, r *http.Request) {
	var req parseReq
	if !decode(w, r, &req) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	canonical, err := sess.ClueGiver.ParseResponse(req.Utterance)
	parsed := sess.ClueGiver.Parsed()
	sess.Unlock()
	if !s.respondParse(w, r, sess.ID, game.RoleClueGiver, req.Utterance, canonical, err) {
		return
	}
	writeJSON(w, http.StatusOK, clueRes{Utterance: canonical, ParsedClue: parsed})
}

func (s *Server) handleClueGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	res := clueRes{Utterance: sess.ClueGiver.RecoverUtterance(), ParsedClue: sess.ClueGiver.Parsed()}
	sess.Unlock()
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// guesser

func (s *Server) handleGuessValidate(w http.ResponseWriter, r *http.Request) {
	var req guessValidateReq
	if !decode(w, r, &req) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	err := sess.Guesser.ValidateResponse(req.Utterance, game.Lower(req.RemainingWords), req.NumberOfAllowedGuesses)
	sess.Unlock()
	s.respondValidation(w, r, sess.ID, game.RoleGuesser, req.Utterance, err)
}

func (s *Server) handleGuessParse(w http.ResponseWriter, r *http.Request) {
	var req parseReq
	if !decode(w, r, &req) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	canonical, err := sess.Guesser.ParseResponse(req.Utterance)
	parsed := sess.Guesser.Parsed()
	sess.Unlock()
	if !s.respondParse(w, r, sess.ID, game.RoleGuesser, req.Utterance, canonical, err) {
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Utterance: canonical, ParsedGuess: parsed})
}

func (s *Server) handleGuessGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	res := guessRes{Utterance: sess.Guesser.RecoverUtterance(), ParsedGuess: sess.Guesser.Parsed()}
	sess.Unlock()
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// reporting

func (s *Server) handleFlags(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	res := flagsRes{Flags: sess.Flags, ClueGiver: sess.ClueGiver.Engaged(), Guesser: sess.Guesser.Engaged()}
	sess.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.audit.Attempts(r.Context(), sess.ID, limit)
	if err != nil {
		log.Error().Err(err).Msg("load attempts")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db_error"})
		return
	}
	summary, err := s.audit.KindSummary(r.Context(), sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("load summary")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db_error"})
		return
	}
	writeJSON(w, http.StatusOK, attemptsRes{Attempts: rows, Summary: summary})
}

// -----------------------------------------------------------------------------
// helpers

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return false
	}
	return true
}

// respondValidation records the outcome and writes 200 or 422.
func (s *Server) respondValidation(w http.ResponseWriter, r *http.Request, gameID string, role game.Role, utterance string, err error) {
	a := audit.Attempt{GameID: gameID, Role: role, Action: audit.ActionValidate, Utterance: utterance, Valid: err == nil}
	if err == nil {
		s.record(r.Context(), a)
		writeJSON(w, http.StatusOK, validateRes{Valid: true})
		return
	}
	var verr *game.ValidationError
	if !errors.As(err, &verr) {
		log.Error().Err(err).Msg("validate")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}
	a.Kind, a.Token = verr.Kind, verr.Token
	s.record(r.Context(), a)
	writeJSON(w, http.StatusUnprocessableEntity, validateRes{
		Error: &errorBody{ValidationError: verr, Category: verr.Kind.Category()},
	})
}

// respondParse records the outcome; on failure it writes the 422 and returns false.
func (s *Server) respondParse(w http.ResponseWriter, r *http.Request, gameID string, role game.Role, utterance, canonical string, err error) bool {
	a := audit.Attempt{GameID: gameID, Role: role, Action: audit.ActionParse, Utterance: utterance, Valid: err == nil, Canonical: canonical}
	var verr *game.ValidationError
	if errors.As(err, &verr) {
		a.Kind = verr.Kind
	}
	s.record(r.Context(), a)
	if err == nil {
		return true
	}
	if verr == nil {
		log.Error().Err(err).Msg("parse")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, validateRes{
		Error: &errorBody{ValidationError: verr, Category: verr.Kind.Category()},
	})
	return false
}

// record writes an audit row; failures are logged, never surfaced.
func (s *Server) record(ctx context.Context, a audit.Attempt) {
	if err := s.audit.InsertAttempt(ctx, a); err != nil {
		log.Warn().Err(err).Str("gameId", a.GameID).Msg("record attempt")
	}
}
