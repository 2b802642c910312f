package game

import "math"

// Unreachable is the distance reported when no open path to the goal exists.
const Unreachable = math.MaxInt

// IsGoalReachable reports whether the player has at least one open path of
// cell-to-cell edges from its current position to its goal line. This backs
// the no-full-block invariant: a candidate wall is rejected unless it holds
// for every player.
func (gs *GameState) IsGoalReachable(playerID int) bool {
	return gs.ShortestDistanceToGoal(playerID) != Unreachable
}

// ShortestDistanceToGoal returns the exact number of pawn steps from the
// player's position to the nearest goal cell, ignoring pawns but respecting
// walls, or Unreachable. Breadth-first search over at most N^2 cells; this
// runs once per player per candidate wall placement, so it allocates a flat
// visited array and a reusable queue rather than maps.
func (gs *GameState) ShortestDistanceToGoal(playerID int) int {
	player, err := gs.PlayerByID(playerID)
	if err != nil {
		return Unreachable
	}
	size := gs.BoardSize
	if player.Goal.Contains(player.Pos) {
		return 0
	}

	visited := make([]bool, size*size)
	type entry struct {
		cell Cell
		dist int
	}
	queue := make([]entry, 0, size*size)
	queue = append(queue, entry{cell: player.Pos})
	visited[player.Pos.Row*size+player.Pos.Col] = true

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range directions {
			next := cur.cell.step(d)
			if !next.OnBoard(size) {
				continue
			}
			if visited[next.Row*size+next.Col] {
				continue
			}
			if gs.blockedBetween(cur.cell, next) {
				continue
			}
			if player.Goal.Contains(next) {
				return cur.dist + 1
			}
			visited[next.Row*size+next.Col] = true
			queue = append(queue, entry{cell: next, dist: cur.dist + 1})
		}
	}
	return Unreachable
}
