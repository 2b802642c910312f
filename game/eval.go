package game

import "math"

// Heuristic weights. The wall term is a weak tie-breaker; the proximity
// bonus rewards finishing over stalling when path differences are equal.
const (
	wallWeight     = 0.1
	proximityBonus = 50.0
)

// Evaluate scores the state from the given player's perspective; higher is
// better for that player. Decided positions score +/-Inf. Otherwise the score
// is the difference between the nearest opponent's shortest goal distance and
// the player's own, adjusted by the wall-stock difference and a bonus
// inversely proportional to the player's remaining distance. With more than
// one opponent, the most advanced opponent is the yardstick.
func Evaluate(gs *GameState, playerID int) float64 {
	player, err := gs.PlayerByID(playerID)
	if err != nil {
		return math.Inf(-1)
	}
	if gs.Winner == playerID {
		return math.Inf(1)
	}
	if gs.Winner != 0 {
		return math.Inf(-1)
	}

	myDist := gs.ShortestDistanceToGoal(playerID)
	if myDist == Unreachable {
		return math.Inf(-1)
	}

	oppDist := Unreachable
	oppWalls := 0
	for i := range gs.Players {
		opp := &gs.Players[i]
		if opp.ID == playerID {
			continue
		}
		d := gs.ShortestDistanceToGoal(opp.ID)
		if d < oppDist {
			oppDist = d
			oppWalls = opp.WallsLeft
		}
	}
	if oppDist == Unreachable {
		return math.Inf(1)
	}

	score := float64(oppDist - myDist)
	score += float64(player.WallsLeft-oppWalls) * wallWeight
	if myDist > 0 {
		score += proximityBonus / float64(myDist)
	}
	return score
}
