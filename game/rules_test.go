package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestApplyPawnStep(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)

	mv, err := ParseMove("MOVE E2", gs.BoardSize)
	require.NoError(t, err)

	next, err := gs.Apply(1, mv)
	require.NoError(t, err)
	require.Equal(t, Cell{1, 4}, next.Players[0].Pos)
	require.Equal(t, 2, next.CurrentPlayer().ID, "turn passes to player 2")
	require.Equal(t, 1, next.Turn)

	// The receiver is never modified.
	require.Equal(t, Cell{0, 4}, gs.Players[0].Pos)
	require.Zero(t, gs.Turn)
}

func TestApplyRejectsOutOfTurn(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	_, err := gs.Apply(2, PawnMove{To: Cell{7, 4}})
	require.ErrorIs(t, err, ErrNotPlayersTurn)
	_, err = gs.Apply(9, PawnMove{To: Cell{1, 4}})
	require.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestApplyWallPlacement(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)

	mv, err := ParseMove("WALL H E5", gs.BoardSize)
	require.NoError(t, err)

	next, err := gs.Apply(1, mv)
	require.NoError(t, err)
	require.Equal(t, 9, next.Players[0].WallsLeft)
	require.True(t, next.HasWall(Wall{Horizontal, Cell{4, 4}}))
	require.Equal(t, 2, next.CurrentPlayer().ID)
	require.Equal(t, 1, next.Turn)

	require.Zero(t, gs.WallCount(), "the receiver is never modified")
}

func TestWallOverlapRejections(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	place(gs, Horizontal, 4, 4)

	cases := []struct {
		name string
		wall Wall
	}{
		{"same wall twice", Wall{Horizontal, Cell{4, 4}}},
		{"crossing at the same anchor", Wall{Vertical, Cell{4, 4}}},
		{"parallel sharing the right segment", Wall{Horizontal, Cell{4, 5}}},
		{"parallel sharing the left segment", Wall{Horizontal, Cell{4, 3}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gs.Apply(1, WallPlacement{Wall: tc.wall})
			require.ErrorIs(t, err, ErrWallOverlap)
		})
	}

	// Two anchors away is clear of both segments.
	_, err := gs.Apply(1, WallPlacement{Wall: Wall{Horizontal, Cell{4, 6}}})
	require.NoError(t, err)
}

func TestWallRequiresStock(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].WallsLeft = 0

	_, err := gs.Apply(1, WallPlacement{Wall: Wall{Horizontal, Cell{4, 4}}})
	require.ErrorIs(t, err, ErrNoWallsRemaining)
	require.Nil(t, gs.LegalWallPlacements(1))
}

func TestWallCannotSeverPath(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	// Box player 1 in on both sides; the horizontal lid would finish the trap.
	place(gs, Vertical, 0, 3)
	place(gs, Vertical, 0, 5)

	mv, err := ParseMove("WALL H E1", gs.BoardSize)
	require.NoError(t, err)

	_, err = gs.Apply(1, mv)
	require.ErrorIs(t, err, ErrWallSeversPath)

	// The tentative placement must not stick.
	require.False(t, gs.HasWall(Wall{Horizontal, Cell{0, 4}}))
	require.Equal(t, 10, gs.Players[0].WallsLeft)
	require.True(t, gs.IsGoalReachable(1))
}

func TestLegalWallPlacementsOpenBoard(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	// 8x8 anchors, two orientations each, nothing blocked yet.
	require.Len(t, gs.LegalWallPlacements(1), 128)
}

func TestStraightJump(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].Pos = Cell{4, 4}
	gs.Players[1].Pos = Cell{5, 4}

	moves := gs.LegalPawnMoves(1)
	require.Contains(t, moves, Cell{6, 4}, "jump lands on the far cell")
	require.NotContains(t, moves, Cell{5, 4}, "the occupied cell itself is never a destination")
	require.Contains(t, moves, Cell{3, 4})
	require.Contains(t, moves, Cell{4, 3})
	require.Contains(t, moves, Cell{4, 5})
}

func TestDiagonalJumpWhenFarCellBlocked(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].Pos = Cell{4, 4}
	gs.Players[1].Pos = Cell{5, 4}
	// Wall behind player 2 blocks the straight jump.
	place(gs, Horizontal, 5, 4)

	moves := gs.LegalPawnMoves(1)
	require.NotContains(t, moves, Cell{6, 4})
	require.Contains(t, moves, Cell{5, 3})
	require.Contains(t, moves, Cell{5, 5})
}

func TestDiagonalJumpAtBoardEdge(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].Pos = Cell{7, 4}
	// Player 2 sits on its start cell (8, 4); the far cell is off-board.

	moves := gs.LegalPawnMoves(1)
	require.Contains(t, moves, Cell{8, 3})
	require.Contains(t, moves, Cell{8, 5})
}

func TestDiagonalJumpRespectsWalls(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].Pos = Cell{4, 4}
	gs.Players[1].Pos = Cell{5, 4}
	place(gs, Horizontal, 5, 4)
	// Blocks the segment from the occupied cell to its right neighbour.
	place(gs, Vertical, 4, 4)

	moves := gs.LegalPawnMoves(1)
	require.Contains(t, moves, Cell{5, 3})
	require.NotContains(t, moves, Cell{5, 5})
}

func TestJumpRequiresClearApproach(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].Pos = Cell{4, 4}
	gs.Players[1].Pos = Cell{5, 4}
	// Wall between the two pawns: no step, no jump in that direction.
	place(gs, Horizontal, 4, 4)

	moves := gs.LegalPawnMoves(1)
	require.NotContains(t, moves, Cell{6, 4})
	require.NotContains(t, moves, Cell{5, 3})
	require.NotContains(t, moves, Cell{5, 5})
}

func TestPawnRejectionReasons(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[1].Pos = Cell{0, 5}

	_, err := gs.Apply(1, PawnMove{To: Cell{0, 5}})
	require.ErrorIs(t, err, ErrDestinationBlocked, "occupied cell")

	_, err = gs.Apply(1, PawnMove{To: Cell{-1, 4}})
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = gs.Apply(1, PawnMove{To: Cell{2, 4}})
	require.ErrorIs(t, err, ErrIllegalJump, "two cells away with no pawn between")

	place(gs, Horizontal, 0, 4)
	_, err = gs.Apply(1, PawnMove{To: Cell{1, 4}})
	require.ErrorIs(t, err, ErrDestinationBlocked, "adjacent but wall-blocked")
}

func TestReachingGoalEndsGame(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	gs.Players[0].Pos = Cell{7, 3}

	next, err := gs.Apply(1, PawnMove{To: Cell{8, 3}})
	require.NoError(t, err)

	over, winner := next.IsTerminal()
	require.True(t, over)
	require.Equal(t, 1, winner)
	require.Nil(t, next.LegalMoves())
	require.Nil(t, next.LegalPawnMoves(2))

	_, err = next.Apply(2, PawnMove{To: Cell{7, 4}})
	require.ErrorIs(t, err, ErrGameOver)
}

func TestApplyRejectsMalformedMoves(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	_, err := gs.Apply(1, nil)
	require.ErrorIs(t, err, ErrMalformedMove)
}

func TestLegalMovesOrdersPawnsFirst(t *testing.T) {
	gs := mustState(t, 2, DefaultBoardSize)
	moves := gs.LegalMoves()
	require.NotEmpty(t, moves)

	pawnDone := false
	for _, mv := range moves {
		if _, ok := mv.(WallPlacement); ok {
			pawnDone = true
			continue
		}
		require.False(t, pawnDone, "pawn moves precede wall placements")
	}
}

// Random playouts exercise the rule set end to end: every applied move must
// leave all players with a path to their goal.
func TestRandomPlayoutPreservesReachability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gs := mustState(t, 2, DefaultBoardSize)

	for step := 0; step < 200; step++ {
		if over, winner := gs.IsTerminal(); over {
			require.NotZero(t, winner)
			break
		}
		moves := gs.LegalMoves()
		require.NotEmpty(t, moves, "a live game always has at least one legal move")

		next, err := gs.Apply(gs.CurrentPlayer().ID, moves[rng.Intn(len(moves))])
		require.NoError(t, err)
		gs = next

		for i := range gs.Players {
			require.True(t, gs.IsGoalReachable(gs.Players[i].ID),
				"step %d left player %d without a path", step, gs.Players[i].ID)
		}
	}
}
