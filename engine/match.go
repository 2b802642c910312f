// Package engine owns one game session: the authoritative GameState, the
// automated seats, and the move log. A Match is created per game, mutated
// only through validated moves, and discarded when a new game starts.
package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/game"
)

// ErrAutomatedSeat rejects human moves submitted for a seat driven by an
// agent.
var ErrAutomatedSeat = errors.New("seat is played by an agent")

// MaxTurns stops agent-vs-agent matches that cycle without a winner.
const MaxTurns = 1000

// Entry is one applied move in the match log.
type Entry struct {
	Turn   int    `json:"turn"`
	Player int    `json:"player"`
	Move   string `json:"move"`
	Bot    bool   `json:"bot"`
}

type config struct {
	players   int
	boardSize int
	agents    map[int]agent.Agent
}

type Option func(*config)

// WithPlayers sets the seat count (2 or 4).
func WithPlayers(players int) Option {
	return func(c *config) {
		if players > 0 {
			c.players = players
		}
	}
}

// WithBoardSize sets the board side length.
func WithBoardSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.boardSize = size
		}
	}
}

// WithAgent assigns an automated player to a seat. Seats without an agent
// are human.
func WithAgent(playerID int, a agent.Agent) Option {
	return func(c *config) {
		c.agents[playerID] = a
	}
}

// Match is a single game session. It is not safe for concurrent use; callers
// that share a Match serialize access (the HTTP layer holds it behind a
// mutex).
type Match struct {
	state  *game.GameState
	agents map[int]agent.Agent
	log    []Entry
}

// NewMatch sets up the canonical starting arrangement and, when automated
// seats open the game, immediately plays them up to the first human turn.
// A match with agents on every seat plays out to the end before returning.
func NewMatch(options ...Option) (*Match, error) {
	cfg := config{
		players:   2,
		boardSize: game.DefaultBoardSize,
		agents:    make(map[int]agent.Agent),
	}
	for _, option := range options {
		option(&cfg)
	}
	state, err := game.NewGameState(cfg.players, cfg.boardSize)
	if err != nil {
		return nil, err
	}
	m := &Match{
		state:  state,
		agents: cfg.agents,
	}
	log.Info().
		Int("players", cfg.players).
		Int("board_size", cfg.boardSize).
		Int("agents", len(cfg.agents)).
		Msg("match started")
	if err := m.runAgents(); err != nil {
		return nil, err
	}
	return m, nil
}

// State returns the authoritative state. Callers must treat it as read-only;
// every mutation goes through PlayHuman or the agents.
func (m *Match) State() *game.GameState {
	return m.state
}

// Log returns the applied-move log in order.
func (m *Match) Log() []Entry {
	return m.log
}

// IsBot reports whether the seat is driven by an agent.
func (m *Match) IsBot(playerID int) bool {
	_, ok := m.agents[playerID]
	return ok
}

// PlayHuman validates and applies a human move, then lets automated seats
// respond until a human is to act again or the game ends. A rejected move
// leaves the match untouched.
func (m *Match) PlayHuman(playerID int, mv game.Move) error {
	if m.IsBot(playerID) {
		return fmt.Errorf("%w: player %d", ErrAutomatedSeat, playerID)
	}
	next, err := m.state.Apply(playerID, mv)
	if err != nil {
		return err
	}
	m.commit(playerID, mv, next, false)
	return m.runAgents()
}

// runAgents plays automated seats in turn order. An agent failure or an
// agent proposing an illegal move aborts with an error instead of guessing a
// substitute move.
func (m *Match) runAgents() error {
	for {
		if over, _ := m.state.IsTerminal(); over {
			return nil
		}
		if m.state.Turn >= MaxTurns {
			log.Warn().Int("turns", m.state.Turn).Msg("turn limit reached without a winner")
			return nil
		}
		mover := m.state.CurrentPlayer().ID
		a, ok := m.agents[mover]
		if !ok {
			return nil
		}
		mv, err := a.FindMove(m.state)
		if err != nil {
			return fmt.Errorf("agent for player %d: %w", mover, err)
		}
		next, err := m.state.Apply(mover, mv)
		if err != nil {
			return fmt.Errorf("agent for player %d proposed illegal move %q: %w", mover, mv, err)
		}
		m.commit(mover, mv, next, true)
	}
}

func (m *Match) commit(playerID int, mv game.Move, next *game.GameState, bot bool) {
	m.state = next
	m.log = append(m.log, Entry{
		Turn:   next.Turn,
		Player: playerID,
		Move:   mv.String(),
		Bot:    bot,
	})
	evt := log.Info().Int("player", playerID).Bool("bot", bot).Stringer("move", mv)
	if over, winner := next.IsTerminal(); over {
		evt = evt.Int("winner", winner)
	}
	evt.Msg("move applied")
}
