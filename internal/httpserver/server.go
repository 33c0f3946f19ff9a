// internal/httpserver/server.go
//
// HTTP diagnostics sidecar for the jumble game server.
// Responsibilities:
//   - Router + middleware (JSON, request IDs, panic recovery, timeouts).
//   - Public endpoints: "/", "/health".
//   - Debug endpoint: "/debug/puzzles" (pool size + source).
//   - Stats endpoint: "/stats/recent" (recent finished rounds from history).
//
// Notes:
//   - Read-only surface; gameplay happens exclusively on the TCP protocol.
//   - No auth: this listener is meant for operators, bind it accordingly.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/OwenDdev/WNP-A02/internal/history"
	"github.com/OwenDdev/WNP-A02/internal/puzzle"
)

// Server bundles router, puzzle pool, and round history.
type Server struct {
	r    *chi.Mux
	pool *puzzle.Pool
	hist history.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(pool *puzzle.Pool, hist history.Store) *Server {
	s := &Server{r: chi.NewRouter(), pool: pool, hist: hist}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"jumble-go","endpoints":["/health","/debug/puzzles","/stats/recent"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: puzzle pool stats
	s.r.Get("/debug/puzzles", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"puzzles": s.pool.Size(),
			"source":  s.pool.Source(),
		})
	})

	// Stats: recent finished rounds
	s.r.Get("/stats/recent", s.handleRecent)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleRecent returns up to ?limit= recent rounds (default 20, max 100).
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	recs, err := s.hist.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("load recent rounds")
		http.Error(w, `{"error":"history_unavailable"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(recs)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
