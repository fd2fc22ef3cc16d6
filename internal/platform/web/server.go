// Package web serves a read-only JSON leaderboard over HTTP, so scores from
// SSH sessions can be shown on a web page or a matrix controller.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/flappy-homage/internal/registry"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server bundles the router and the score store.
type Server struct {
	r      *chi.Mux
	store  *storage.Store
	logger *log.Logger
}

// New builds the router. store may be nil, in which case score routes
// report 503.
func New(store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{r: chi.NewRouter(), store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.logRequests)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/games", s.handleGames)
	s.r.Route("/games/{id}", func(r chi.Router) {
		r.Use(s.requireGame)
		r.Get("/scores", s.handleScores((*storage.Store).TopScores))
		r.Get("/recent", s.handleScores((*storage.Store).RecentScores))
		r.Get("/stats", s.handleStats)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})

	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.r }

// scoreJSON is one leaderboard row.
type scoreJSON struct {
	Rank      int       `json:"rank"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Ticks     int       `json:"ticks"`
	CreatedAt time.Time `json:"created_at"`
}

// statsJSON mirrors storage.GameStats.
type statsJSON struct {
	GameID     string     `json:"game_id"`
	Runs       int        `json:"runs"`
	HighScore  int        `json:"high_score"`
	AvgScore   float64    `json:"avg_score"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

// scoreQuery lists up to limit runs of a game.
type scoreQuery func(st *storage.Store, gameID string, limit int) ([]storage.ScoreEntry, error)

func (s *Server) handleScores(query scoreQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "score storage unavailable")
			return
		}

		limit, err := parseLimit(r.URL.Query().Get("limit"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		entries, err := query(s.store, chi.URLParam(r, "id"), limit)
		if err != nil {
			s.logger.Error("list scores", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "cannot load scores")
			return
		}

		rows := make([]scoreJSON, len(entries))
		for i, e := range entries {
			rows[i] = scoreJSON{Rank: i + 1, Player: e.Player, Score: e.Score, Ticks: e.Ticks, CreatedAt: e.CreatedAt}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	stats, err := s.store.GameStats(chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error("game stats", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}

	out := statsJSON{
		GameID:    stats.GameID,
		Runs:      stats.GamesCount,
		HighScore: stats.HighScore,
		AvgScore:  stats.AvgScore,
	}
	if !stats.LastPlayed.IsZero() {
		out.LastPlayed = &stats.LastPlayed
	}
	writeJSON(w, http.StatusOK, out)
}

// parseLimit reads the limit query parameter, capped at maxLimit.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

// requireGame rejects unknown game IDs.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chi.URLParam(r, "id"); !registry.Exists(id) {
			writeError(w, http.StatusNotFound, "unknown game "+strconv.Quote(id))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests logs each request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
