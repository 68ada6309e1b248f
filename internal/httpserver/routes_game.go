// internal/httpserver/routes_game.go
//
// Practice game routes, mounted under /game:
//   - POST /game/new             → start a game (random answer unless given)
//   - POST /game/guess           → apply a guess, return marks and state
//   - GET  /game/{id}/candidates → evidence derived from the guesses so far
//                                  and the words still consistent with it
//
// Games live only in the in-memory store and are evicted once finished,
// when the guess response reveals the answer.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/predicate"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/new", s.handleNewGame)
	r.Post("/guess", s.handleGuess)
	r.Get("/{id}/candidates", s.handleCandidates)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body starts a game with a random answer.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	g, err := game.New(req.Answer, nil)
	if err != nil {
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.gamesNew.Inc()
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Rows: g.Rows, Cols: g.Cols})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks  []game.Mark `json:"marks"`
	State  string      `json:"state"` // "playing" | "won" | "lost"
	Answer string      `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	marks, state, err := g.ApplyGuess(req.Guess)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, game.ErrFinished) {
			code = http.StatusConflict
		}
		writeError(w, code, err.Error())
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	// Re-read the state: a concurrent guess may have finished the game
	// after ours was applied.
	if g.State() != "playing" {
		if err := s.games.Delete(r.Context(), g.ID); err != nil {
			log.Warn().Err(err).Str("game", g.ID).Msg("evict game")
		}
	}
	s.metrics.guesses.WithLabelValues(state).Inc()

	res := guessRes{Marks: marks, State: state}
	if state != "playing" {
		res.Answer = g.Answer
	}
	_ = json.NewEncoder(w).Encode(res)
}

type candidatesRes struct {
	Evidence predicate.Evidence `json:"evidence"`
	Count    int                `json:"count"`
	Words    []string           `json:"words"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	ev := g.Evidence()
	matched, ok := s.eligible(w, r, ev)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(candidatesRes{Evidence: ev, Count: len(matched), Words: matched})
}
