// internal/httpserver/server.go
//
// HTTP server wiring for the wordle helper.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Word endpoints: mounted under /words (routes_words.go).
//   - Practice game endpoints: mounted under /game (routes_game.go).
//   - Query history (requires a bearer token): /history (routes_history.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled for a single configured origin.
//   - Optional auth decorates requests with the token subject when a valid
//     token is present; guests still get every route except /history.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/history"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/words"
)

// Server bundles router, in-memory game store and optional history store.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	games   store.Store
	history *history.Store // nil when history is disabled
	metrics *metrics
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// hist may be nil.
func New(cfg config.Config, games store.Store, hist *history.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		games:   games,
		history: hist,
		metrics: newMetrics(),
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS
	s.r.Use(s.withOptionalAuth)              // token subject, if any

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-helper","endpoints":["/health","/words/random","/words/daily","/words/eligible","POST /game/new","POST /game/guess","/game/{id}/candidates","/history","/metrics"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		total, distinct := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "words": total, "distinct": distinct})
	})
	s.r.Handle("/metrics", s.metrics.handler())

	s.r.Route("/words", s.mountWords)
	s.r.Route("/game", s.mountGame)
	s.r.With(s.requireAuth).Get("/history", s.handleHistory)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- small util --------------------------------

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
