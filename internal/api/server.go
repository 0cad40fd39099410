// Package api provides the HTTP API for querying a board.
// GET endpoints are public (read-only queries).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/watan/internal/board"
	"github.com/talgya/watan/internal/persistence"
)

// Server serves one board over HTTP.
type Server struct {
	Board    *board.Board
	DB       *persistence.DB // Optional. Nil disables /games and /snapshot.
	GameID   uuid.UUID       // Id the board is saved under; assigned on first snapshot
	Turn     board.Player
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// RequestsPerMinute caps GET requests per client IP. Zero uses the default.
	RequestsPerMinute int

	mu sync.RWMutex
}

const defaultRequestsPerMinute = 600

// Handler builds the routed handler with CORS and rate limiting applied.
func (s *Server) Handler() http.Handler {
	rate := s.RequestsPerMinute
	if rate <= 0 {
		rate = defaultRequestsPerMinute
	}
	limiter := NewRateLimiter(rate, time.Minute)
	get := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimitMiddleware(limiter, getOnly(h))
	}

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/board", get(s.handleBoard))
	mux.HandleFunc("/api/v1/tile/", get(s.handleTile))
	mux.HandleFunc("/api/v1/criterion/", get(s.handleCriterion))
	mux.HandleFunc("/api/v1/goal/", get(s.handleGoal))
	mux.HandleFunc("/api/v1/games", get(s.handleGames))

	// Admin endpoints.
	mux.HandleFunc("/api/v1/geese", s.adminOnly(s.handleGeese))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.Port)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "db", s.DB != nil)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("HTTP API shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a POST handler with bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no WATAN_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

type tileView struct {
	Index      int            `json:"index"`
	Resource   string         `json:"resource"`
	Value      int            `json:"value"`
	Pips       int            `json:"pips"`
	Coord      board.HexCoord `json:"coord"`
	Criterions [6]int         `json:"criterions"`
	Goals      [6]int         `json:"goals"`
	Geese      bool           `json:"geese"`
	Neighbors  []int          `json:"neighbors,omitempty"`
}

type objectiveView struct {
	Kind       string `json:"kind"`
	Number     int    `json:"number"`
	Owner      string `json:"owner"`
	Level      string `json:"level,omitempty"`
	Tiles      []int  `json:"tiles"`
	Criterions []int  `json:"adjacent_criterions"`
	Goals      []int  `json:"adjacent_goals"`
}

func (s *Server) tileView(t *board.Tile) tileView {
	return tileView{
		Index:      t.Index,
		Resource:   t.Resource.String(),
		Value:      t.Value,
		Pips:       t.Pips(),
		Coord:      t.Coord(),
		Criterions: t.CriterionSlots(),
		Goals:      t.GoalSlots(),
		Geese:      s.Board.Geese() == t.Index,
	}
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiles := s.Board.Tiles()
	views := make([]tileView, len(tiles))
	for i := range tiles {
		views[i] = s.tileView(&tiles[i])
	}

	writeJSON(w, map[string]any{
		"geese":      s.Board.Geese(),
		"turn":       s.Turn.String(),
		"criterions": board.NumCriterions,
		"goals":      board.NumGoals,
		"tiles":      views,
	})
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	n, ok := pathNumber(w, r, "/api/v1/tile/", "tile")
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.Board.TileAt(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view := s.tileView(t)
	view.Neighbors = board.NeighborTiles(n)
	writeJSON(w, view)
}

func (s *Server) handleCriterion(w http.ResponseWriter, r *http.Request) {
	n, ok := pathNumber(w, r, "/api/v1/criterion/", "criterion")
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.Board.CriterionAt(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	crits, _ := s.Board.AdjacentCriterions(n)
	goals, _ := s.Board.AdjacentGoalsToCriterion(n)

	writeJSON(w, objectiveView{
		Kind:       c.Kind.String(),
		Number:     c.Number,
		Owner:      c.Owner.String(),
		Level:      c.Level.String(),
		Tiles:      c.Tiles(),
		Criterions: crits,
		Goals:      goals,
	})
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	n, ok := pathNumber(w, r, "/api/v1/goal/", "goal")
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.Board.GoalAt(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	goals, _ := s.Board.AdjacentGoals(n)
	crits, _ := s.Board.AdjacentCriterionsToGoal(n)

	writeJSON(w, objectiveView{
		Kind:       g.Kind.String(),
		Number:     g.Number,
		Owner:      g.Owner.String(),
		Tiles:      g.Tiles(),
		Criterions: crits,
		Goals:      goals,
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	games, err := s.DB.ListGames(r.Context())
	if err != nil {
		slog.Error("list games failed", "error", err)
		http.Error(w, "list games failed", http.StatusInternalServerError)
		return
	}

	type gameView struct {
		persistence.GameSummary
		Created string `json:"created"`
	}
	out := make([]gameView, len(games))
	for i, g := range games {
		out[i] = gameView{GameSummary: g, Created: humanize.Time(g.CreatedAt)}
	}
	writeJSON(w, out)
}

func (s *Server) handleGeese(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tile *int `json:"tile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tile == nil {
		http.Error(w, "body must be {\"tile\": n}", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Board.MoveGeese(*req.Tile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Info("geese moved", "tile", *req.Tile)
	writeJSON(w, map[string]any{"geese": s.Board.Geese()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := &persistence.Game{ID: s.GameID, Turn: s.Turn, Board: s.Board}
	id, err := s.DB.SaveGame(r.Context(), g)
	if err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	s.GameID = id

	writeJSON(w, map[string]any{
		"id":      id,
		"message": "snapshot saved",
	})
}

// pathNumber parses the trailing number of a detail route, writing 400 on
// failure.
func pathNumber(w http.ResponseWriter, r *http.Request, prefix, what string) (int, bool) {
	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if raw == "" {
		http.Error(w, "missing "+what+" number", http.StatusBadRequest)
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "invalid "+what+" number", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
