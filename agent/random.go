package agent

import (
	"golang.org/x/exp/rand"

	"quoridor/game"
	"quoridor/searcher"
)

// Random plays a uniformly random legal move. It is the weakest opponent
// level and doubles as a playout driver for invariant tests.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) FindMove(gs *game.GameState) (game.Move, error) {
	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return nil, searcher.ErrNoMoves
	}
	return moves[a.rng.Intn(len(moves))], nil
}
