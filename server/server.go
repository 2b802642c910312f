// Package server exposes a match over HTTP and websocket: start a game, poll
// or stream its state, submit the human player's moves, fetch legal-move
// hints.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/engine"
	"quoridor/game"
)

// Config selects the match shape and the automated opponent. All automated
// seats share the same agent kind.
type Config struct {
	Addr        string `json:"addr"`
	BoardSize   int    `json:"board_size"`
	Players     int    `json:"players"`
	HumanSeat   int    `json:"human_seat"`
	Depth       int    `json:"depth"`
	Goroutines  int    `json:"goroutines"`
	Opponent    string `json:"opponent"` // search | random | ollama
	OllamaURL   string `json:"ollama_url"`
	OllamaModel string `json:"ollama_model"`
}

// DefaultConfig mirrors the classic arrangement: bot opens as player 1, the
// human answers as player 2.
func DefaultConfig() Config {
	return Config{
		Addr:       ":25565",
		BoardSize:  game.DefaultBoardSize,
		Players:    2,
		HumanSeat:  2,
		Depth:      searchDepthDefault,
		Goroutines: 1,
		Opponent:   "search",
	}
}

const searchDepthDefault = 3

// Server owns at most one active match behind a mutex and a hub for pushing
// state updates.
type Server struct {
	mu    sync.Mutex
	cfg   Config
	match *engine.Match
	hub   *Hub
}

func New(cfg Config) *Server {
	return &Server{cfg: cfg, hub: NewHub()}
}

// Hub exposes the websocket hub so the binary can run its pump.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router wires the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/start", s.handleStart)
	r.Get("/api/state", s.handleState)
	r.Post("/api/move", s.handleMove)
	r.Get("/api/hints", s.handleHints)
	r.Get("/ws", s.hub.ServeWS)
	return r
}

type startRequest struct {
	BoardSize int    `json:"board_size,omitempty"`
	Players   int    `json:"players,omitempty"`
	Depth     int    `json:"depth,omitempty"`
	Opponent  string `json:"opponent,omitempty"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type moveResponse struct {
	Success bool          `json:"success"`
	Reason  string        `json:"reason,omitempty"`
	State   engine.Status `json:"game_state"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	cfg := s.cfg
	if req.BoardSize > 0 {
		cfg.BoardSize = req.BoardSize
	}
	if req.Players > 0 {
		cfg.Players = req.Players
	}
	if req.Depth > 0 {
		cfg.Depth = req.Depth
	}
	if req.Opponent != "" {
		cfg.Opponent = req.Opponent
	}

	options := []engine.Option{
		engine.WithPlayers(cfg.Players),
		engine.WithBoardSize(cfg.BoardSize),
	}
	for seat := 1; seat <= cfg.Players; seat++ {
		if seat == cfg.HumanSeat {
			continue
		}
		a, err := buildAgent(cfg, uint64(seat))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		options = append(options, engine.WithAgent(seat, a))
	}

	match, err := engine.NewMatch(options...)
	if err != nil {
		log.Error().Err(err).Msg("starting match")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.match = match
	status := match.Snapshot()
	s.mu.Unlock()

	s.hub.Broadcast(status)
	writeJSON(w, http.StatusOK, moveResponse{Success: true, State: status})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match == nil {
		writeError(w, http.StatusConflict, "no active game")
		return
	}
	writeJSON(w, http.StatusOK, s.match.Snapshot())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match == nil {
		writeError(w, http.StatusConflict, "no active game")
		return
	}

	mv, err := game.ParseMove(req.Move, s.match.State().BoardSize)
	if err != nil {
		writeJSON(w, http.StatusOK, moveResponse{
			Success: false,
			Reason:  game.ReasonCode(err),
			State:   s.match.Snapshot(),
		})
		return
	}

	if err := s.match.PlayHuman(s.cfg.HumanSeat, mv); err != nil {
		writeJSON(w, http.StatusOK, moveResponse{
			Success: false,
			Reason:  game.ReasonCode(err),
			State:   s.match.Snapshot(),
		})
		return
	}

	status := s.match.Snapshot()
	s.hub.Broadcast(status)
	writeJSON(w, http.StatusOK, moveResponse{Success: true, State: status})
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match == nil {
		writeError(w, http.StatusConflict, "no active game")
		return
	}
	status := s.match.Snapshot()
	if status.Hints == nil {
		status.Hints = &engine.Hints{Pawn: []string{}, Wall: []string{}}
	}
	writeJSON(w, http.StatusOK, status.Hints)
}

func buildAgent(cfg Config, seed uint64) (agent.Agent, error) {
	switch cfg.Opponent {
	case "", "search":
		return agent.NewSearch(cfg.Depth, cfg.Goroutines), nil
	case "random":
		return agent.NewRandom(seed), nil
	case "ollama":
		return agent.NewOllama(
			agent.WithOllamaURL(cfg.OllamaURL),
			agent.WithOllamaModel(cfg.OllamaModel),
		), nil
	}
	return nil, fmt.Errorf("unknown opponent kind %q", cfg.Opponent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
