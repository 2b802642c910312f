package agent

import (
	"quoridor/game"
	"quoridor/searcher"
)

// Search drives the minimax searcher at a fixed ply budget.
type Search struct {
	minimax *searcher.Minimax
	depth   int
}

// NewSearch creates a search agent. depth <= 0 means the searcher default;
// goroutines <= 0 means sequential root exploration.
func NewSearch(depth, goroutines int) *Search {
	options := []searcher.Option{}
	if depth > 0 {
		options = append(options, searcher.WithDepth(depth))
	}
	if goroutines > 0 {
		options = append(options, searcher.WithGoroutines(goroutines))
	}
	return &Search{
		minimax: searcher.NewMinimax(options...),
		depth:   depth,
	}
}

func (a *Search) FindMove(gs *game.GameState) (game.Move, error) {
	return a.minimax.FindBestMove(gs, gs.CurrentPlayer().ID, a.depth)
}
