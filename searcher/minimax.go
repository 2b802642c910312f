package searcher

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"quoridor/game"
)

// DefaultDepth is the ply budget used when the caller does not pick one.
const DefaultDepth = 3

// ErrNoMoves reports an empty candidate set. Under the no-full-block
// invariant a player always has at least a pawn step, so this is a
// precondition violation, never something to paper over with an arbitrary
// move.
var ErrNoMoves = errors.New("no legal moves for player to act")

type Option func(*Minimax)

// WithDepth sets the default ply budget.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines sets how many root branches are explored concurrently.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// Minimax explores the game tree with alpha-beta pruning to a fixed ply
// depth, scoring leaves and cutoffs with game.Evaluate from the searching
// player's perspective. Opponent plies minimize that score. A Minimax is
// stateless between searches and safe for reuse.
type Minimax struct {
	depth      int
	goroutines int
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{
		depth:      DefaultDepth,
		goroutines: 1,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindBestMove returns the best move for the player to act, searching depth
// plies (or the configured default when depth <= 0). Root branches run on
// independent state copies with a full alpha-beta window each, so the result
// is identical for any goroutine count; ties break to the first-enumerated
// move.
func (m *Minimax) FindBestMove(gs *game.GameState, playerID, depth int) (game.Move, error) {
	if depth <= 0 {
		depth = m.depth
	}
	if over, _ := gs.IsTerminal(); over {
		return nil, game.ErrGameOver
	}
	if gs.CurrentPlayer().ID != playerID {
		return nil, game.ErrNotPlayersTurn
	}
	moves := orderedMoves(gs, playerID)
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	start := time.Now()
	scores := make([]float64, len(moves))
	var nodes atomic.Int64

	workers := m.goroutines
	if workers > len(moves) {
		workers = len(moves)
	}
	var cursor atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(moves) {
					return
				}
				child, err := gs.Apply(playerID, moves[i])
				if err != nil {
					// Generated moves are pre-validated; a failure here is a
					// rules-engine bug, not a searchable branch.
					log.Error().Err(err).Stringer("move", moves[i]).Msg("generated move failed to apply")
					scores[i] = math.Inf(-1)
					continue
				}
				tt := make(table)
				scores[i] = m.search(child, playerID, depth-1, math.Inf(-1), math.Inf(1), tt, &nodes)
			}
		}()
	}
	wg.Wait()

	best := 0
	for i := 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	log.Debug().
		Int("player", playerID).
		Int("depth", depth).
		Int64("nodes", nodes.Load()).
		Float64("score", scores[best]).
		Stringer("move", moves[best]).
		Dur("elapsed", time.Since(start)).
		Msg("search complete")
	return moves[best], nil
}

// search runs alpha-beta below the root. perspective is the searching
// player; whoever is to move in gs maximizes when it is that player and
// minimizes otherwise, which also covers multi-opponent games.
func (m *Minimax) search(gs *game.GameState, perspective, depth int, alpha, beta float64, tt table, nodes *atomic.Int64) float64 {
	nodes.Add(1)
	if over, _ := gs.IsTerminal(); over || depth <= 0 {
		return game.Evaluate(gs, perspective)
	}
	key := tableKey{hash: gs.Hash(), depth: depth}
	if score, ok := tt[key]; ok {
		return score
	}

	mover := gs.CurrentPlayer().ID
	moves := orderedMoves(gs, mover)
	if len(moves) == 0 {
		return game.Evaluate(gs, perspective)
	}

	maximizing := mover == perspective
	cut := false
	var value float64
	if maximizing {
		value = math.Inf(-1)
		for _, mv := range moves {
			child, err := gs.Apply(mover, mv)
			if err != nil {
				continue
			}
			value = math.Max(value, m.search(child, perspective, depth-1, alpha, beta, tt, nodes))
			alpha = math.Max(alpha, value)
			if beta <= alpha {
				cut = true
				break
			}
		}
	} else {
		value = math.Inf(1)
		for _, mv := range moves {
			child, err := gs.Apply(mover, mv)
			if err != nil {
				continue
			}
			value = math.Min(value, m.search(child, perspective, depth-1, alpha, beta, tt, nodes))
			beta = math.Min(beta, value)
			if beta <= alpha {
				cut = true
				break
			}
		}
	}
	if !cut {
		tt[key] = value
	}
	return value
}
