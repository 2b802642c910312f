package engine

import (
	"fmt"

	"quoridor/game"
)

// PlayerStatus is the wire view of one seat.
type PlayerStatus struct {
	ID        int    `json:"id"`
	Pos       string `json:"pos"`
	WallsLeft int    `json:"walls_left"`
	Goal      string `json:"goal"`
	Distance  int    `json:"distance"`
	Bot       bool   `json:"bot"`
}

// Hints lists the legal moves for the human player to act, in the textual
// move encoding. They reflect the exact rules Apply enforces.
type Hints struct {
	Pawn []string `json:"pawn"`
	Wall []string `json:"wall"`
}

// Status is the JSON-shaped snapshot of a match consumed by the HTTP layer
// and the websocket hub.
type Status struct {
	BoardSize     int            `json:"board_size"`
	Players       []PlayerStatus `json:"players"`
	PlacedWalls   []string       `json:"placed_walls"`
	CurrentPlayer int            `json:"current_player"`
	Winner        int            `json:"winner"`
	GameOver      bool           `json:"game_over"`
	Turn          int            `json:"turn"`
	History       []Entry        `json:"history"`
	Hints         *Hints         `json:"hints,omitempty"`
	Message       string         `json:"message"`
}

// Snapshot builds the current Status. Hints are included only when a human
// is to act, since enumerating legal walls runs the reachability check for
// every open slot.
func (m *Match) Snapshot() Status {
	gs := m.state
	st := Status{
		BoardSize:     gs.BoardSize,
		CurrentPlayer: gs.CurrentPlayer().ID,
		Turn:          gs.Turn,
		History:       m.log,
	}
	for i := range gs.Players {
		p := &gs.Players[i]
		dist := gs.ShortestDistanceToGoal(p.ID)
		if dist == game.Unreachable {
			dist = -1
		}
		st.Players = append(st.Players, PlayerStatus{
			ID:        p.ID,
			Pos:       p.Pos.Coord(),
			WallsLeft: p.WallsLeft,
			Goal:      goalLabel(p.Goal),
			Distance:  dist,
			Bot:       m.IsBot(p.ID),
		})
	}
	st.PlacedWalls = []string{}
	for _, w := range gs.PlacedWalls() {
		st.PlacedWalls = append(st.PlacedWalls, w.String())
	}

	over, winner := gs.IsTerminal()
	st.GameOver = over
	st.Winner = winner
	switch {
	case over:
		st.Message = fmt.Sprintf("Game over! Player %d wins", winner)
	case m.IsBot(st.CurrentPlayer):
		st.Message = fmt.Sprintf("Player %d (bot) is thinking", st.CurrentPlayer)
	default:
		st.Message = fmt.Sprintf("Player %d to move", st.CurrentPlayer)
		st.Hints = m.hintsFor(st.CurrentPlayer)
	}
	return st
}

func (m *Match) hintsFor(playerID int) *Hints {
	h := &Hints{Pawn: []string{}, Wall: []string{}}
	for _, to := range m.state.LegalPawnMoves(playerID) {
		h.Pawn = append(h.Pawn, game.PawnMove{To: to}.String())
	}
	for _, w := range m.state.LegalWallPlacements(playerID) {
		h.Wall = append(h.Wall, w.String())
	}
	return h
}

func goalLabel(g game.Goal) string {
	if g.Axis == game.Rows {
		return fmt.Sprintf("row %d", g.Line+1)
	}
	return fmt.Sprintf("column %c", 'A'+rune(g.Line))
}
