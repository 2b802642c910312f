package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quoridor/game"
)

func newState(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(2, game.DefaultBoardSize)
	require.NoError(t, err)
	return gs
}

// advance applies a sequence of moves in notation, alternating turns.
func advance(t *testing.T, gs *game.GameState, moves ...string) *game.GameState {
	t.Helper()
	for _, encoded := range moves {
		mv, err := game.ParseMove(encoded, gs.BoardSize)
		require.NoError(t, err)
		next, err := gs.Apply(gs.CurrentPlayer().ID, mv)
		require.NoError(t, err)
		gs = next
	}
	return gs
}

func TestFindBestMoveTakesTheWin(t *testing.T) {
	gs := newState(t)
	gs.Players[0].Pos = game.Cell{Row: 7, Col: 3}

	m := NewMinimax()
	mv, err := m.FindBestMove(gs, 1, 1)
	require.NoError(t, err)
	require.Equal(t, game.PawnMove{To: game.Cell{Row: 8, Col: 3}}, mv, "the goal is one step away")
}

func TestFindBestMoveBlocksTheLoss(t *testing.T) {
	gs := newState(t)
	gs.Players[0].Pos = game.Cell{Row: 4, Col: 4}
	gs.Players[1].Pos = game.Cell{Row: 1, Col: 4}

	m := NewMinimax(WithDepth(2))
	mv, err := m.FindBestMove(gs, 1, 0)
	require.NoError(t, err)

	// Only a horizontal wall under the opponent stops the win on reply.
	wall, ok := mv.(game.WallPlacement)
	require.True(t, ok, "expected a wall placement, got %s", mv)
	require.Equal(t, game.Horizontal, wall.Wall.Orientation)
	require.Zero(t, wall.Wall.Anchor.Row)
	require.Contains(t, []int{3, 4}, wall.Wall.Anchor.Col)
}

func TestFindBestMoveIndependentOfGoroutines(t *testing.T) {
	gs := advance(t, newState(t), "MOVE E2", "MOVE E8", "WALL H C3")

	serial := NewMinimax(WithDepth(2), WithGoroutines(1))
	parallel := NewMinimax(WithDepth(2), WithGoroutines(4))

	want, err := serial.FindBestMove(gs, 2, 0)
	require.NoError(t, err)
	got, err := parallel.FindBestMove(gs, 2, 0)
	require.NoError(t, err)
	require.Equal(t, want, got, "root branches use independent full windows")
}

func TestFindBestMoveIsDeterministic(t *testing.T) {
	gs := advance(t, newState(t), "MOVE E2", "MOVE E8")

	m := NewMinimax(WithDepth(2), WithGoroutines(4))
	first, err := m.FindBestMove(gs, 1, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := m.FindBestMove(gs, 1, 0)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFindBestMoveRejectsFinishedGame(t *testing.T) {
	gs := newState(t)
	gs.Players[0].Pos = game.Cell{Row: 7, Col: 3}
	gs = advance(t, gs, "MOVE D9")

	m := NewMinimax()
	_, err := m.FindBestMove(gs, 2, 1)
	require.ErrorIs(t, err, game.ErrGameOver)
}

func TestFindBestMoveRejectsWrongPlayer(t *testing.T) {
	gs := newState(t)
	m := NewMinimax()
	_, err := m.FindBestMove(gs, 2, 1)
	require.ErrorIs(t, err, game.ErrNotPlayersTurn)
}

func TestOrderedMovesAdvancesPawnFirst(t *testing.T) {
	gs := newState(t)
	moves := orderedMoves(gs, 1)
	require.NotEmpty(t, moves)
	require.Equal(t, game.PawnMove{To: game.Cell{Row: 1, Col: 4}}, moves[0],
		"the forward step shortens the goal distance most")

	wallsStarted := false
	for _, mv := range moves {
		if _, ok := mv.(game.WallPlacement); ok {
			wallsStarted = true
			continue
		}
		require.False(t, wallsStarted, "pawn moves come before walls")
	}
}
