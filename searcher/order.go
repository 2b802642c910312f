package searcher

import (
	"sort"

	"quoridor/game"
)

// orderedMoves enumerates the player's candidate set in an order that helps
// pruning: pawn moves sorted by straight-line goal distance (advancing first),
// then wall placements sorted by proximity to the nearest opponent pawn.
// Ordering is stable over the rules engine's deterministic enumeration, so
// the search's first-enumerated tie-break is reproducible.
func orderedMoves(gs *game.GameState, playerID int) []game.Move {
	player, err := gs.PlayerByID(playerID)
	if err != nil {
		return nil
	}

	type scored struct {
		mv  game.Move
		key int
	}

	var pawns []scored
	for _, to := range gs.LegalPawnMoves(playerID) {
		pawns = append(pawns, scored{mv: game.PawnMove{To: to}, key: player.Goal.Distance(to)})
	}
	sort.SliceStable(pawns, func(i, j int) bool { return pawns[i].key < pawns[j].key })

	var walls []scored
	for _, w := range gs.LegalWallPlacements(playerID) {
		walls = append(walls, scored{mv: game.WallPlacement{Wall: w}, key: wallProximity(gs, playerID, w)})
	}
	sort.SliceStable(walls, func(i, j int) bool { return walls[i].key < walls[j].key })

	moves := make([]game.Move, 0, len(pawns)+len(walls))
	for _, s := range pawns {
		moves = append(moves, s.mv)
	}
	for _, s := range walls {
		moves = append(moves, s.mv)
	}
	return moves
}

// wallProximity is the Chebyshev distance from the wall anchor to the nearest
// opponent pawn. Walls near an opponent are more likely to lengthen its path.
func wallProximity(gs *game.GameState, playerID int, w game.Wall) int {
	best := gs.BoardSize * 2
	for i := range gs.Players {
		opp := &gs.Players[i]
		if opp.ID == playerID {
			continue
		}
		dr := w.Anchor.Row - opp.Pos.Row
		if dr < 0 {
			dr = -dr
		}
		dc := w.Anchor.Col - opp.Pos.Col
		if dc < 0 {
			dc = -dc
		}
		d := dr
		if dc > d {
			d = dc
		}
		if d < best {
			best = d
		}
	}
	return best
}
