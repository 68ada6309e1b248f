// internal/httpserver/routes_words.go
//
// HTTP routes over the loaded word list, mounted under /words:
//   - GET /words/random?count=N → N distinct random words (default 1)
//   - GET /words/daily          → today's deterministic seed word
//   - GET /words/eligible       → words consistent with the given evidence
//
// Evidence query parameters: correct, wrong, invalid. A parameter that is
// missing from the query is absent evidence; "?wrong=" is present but empty.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/history"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/predicate"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/words"
)

func (s *Server) mountWords(r chi.Router) {
	r.Get("/random", s.handleRandom)
	r.Get("/daily", s.handleDaily)
	r.Get("/eligible", s.handleEligible)
}

// -----------------------------------------------------------------------------
// /words/random

type randomRes struct {
	Words []string `json:"words"`
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	n := 1
	if v := r.URL.Query().Get("count"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		n = c
	}

	picked, err := words.Sample(words.All(), n, nil)
	if err != nil {
		if errors.Is(err, words.ErrSampleTooLarge) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.sampled.Add(float64(len(picked)))
	_ = json.NewEncoder(w).Encode(randomRes{Words: picked})
}

// -----------------------------------------------------------------------------
// /words/daily

type dailyRes struct {
	Date string `json:"date"`
	Word string `json:"word"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, word := daily.Word(s.now(), s.cfg.DailySalt, words.All())
	if word == "" {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Word: word})
}

// -----------------------------------------------------------------------------
// /words/eligible

type eligibleRes struct {
	Evidence predicate.Evidence `json:"evidence"`
	Count    int                `json:"count"`
	Words    []string           `json:"words"`
}

// evidenceFromQuery maps present query parameters to evidence.
func evidenceFromQuery(q url.Values) predicate.Evidence {
	var ev predicate.Evidence
	if q.Has("correct") {
		ev.Correct = predicate.Some(q.Get("correct"))
	}
	if q.Has("wrong") {
		ev.Wrong = predicate.Some(q.Get("wrong"))
	}
	if q.Has("invalid") {
		ev.Invalid = predicate.Some(q.Get("invalid"))
	}
	return ev
}

func (s *Server) handleEligible(w http.ResponseWriter, r *http.Request) {
	ev := evidenceFromQuery(r.URL.Query())
	matched, ok := s.eligible(w, r, ev)
	if !ok {
		return
	}
	s.record(r, ev, len(matched))
	_ = json.NewEncoder(w).Encode(eligibleRes{Evidence: ev, Count: len(matched), Words: matched})
}

// eligible filters the word list, writing an error response on failure.
// Evidence that cannot reject anything skips the filter.
func (s *Server) eligible(w http.ResponseWriter, r *http.Request, ev predicate.Evidence) ([]string, bool) {
	p := predicate.New(ev)
	if !p.Constrained() {
		matched := slices.Clone(words.All())
		s.metrics.observeEligible(len(matched))
		return matched, true
	}
	matched, err := p.FilterContext(r.Context(), words.All(), s.cfg.FilterWorkers)
	if err != nil {
		log.Warn().Err(err).Msg("eligible filter interrupted")
		writeError(w, http.StatusServiceUnavailable, "cancelled")
		return nil, false
	}
	s.metrics.observeEligible(len(matched))
	return matched, true
}

// record stores the query in history, best effort.
func (s *Server) record(r *http.Request, ev predicate.Evidence, matched int) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Record(r.Context(), history.NewEntry(subject(r.Context()), ev, matched)); err != nil {
		log.Warn().Err(err).Msg("record query")
	}
}
