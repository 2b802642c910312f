package game

import "fmt"

// Pawn movement rules, including jumps:
//
//   - A pawn steps to an orthogonally adjacent open cell unless a wall blocks
//     the boundary between the two cells.
//   - If the adjacent cell holds another pawn and no wall separates the mover
//     from it, the mover may jump straight over to the far cell when that
//     cell is on-board, open and not wall-blocked.
//   - When the straight jump is unavailable (far cell off-board, wall-blocked
//     or occupied by a third pawn), both perpendicular diagonal jumps from
//     the occupied cell become legal instead, each subject to the same
//     on-board / open / not-wall-blocked conditions.

// LegalPawnMoves returns every destination the player's pawn may move to,
// in deterministic enumeration order. Empty once the game is over.
func (gs *GameState) LegalPawnMoves(playerID int) []Cell {
	player, err := gs.PlayerByID(playerID)
	if err != nil || gs.Winner != 0 {
		return nil
	}
	return gs.legalPawnMovesFor(player)
}

func (gs *GameState) legalPawnMovesFor(player *Player) []Cell {
	var moves []Cell
	start := player.Pos
	for _, d := range directions {
		target := start.step(d)
		if !target.OnBoard(gs.BoardSize) || gs.blockedBetween(start, target) {
			continue
		}
		if gs.occupantAt(target) == 0 {
			moves = append(moves, target)
			continue
		}
		// Jump over the pawn on target.
		far := target.step(d)
		if far.OnBoard(gs.BoardSize) && !gs.blockedBetween(target, far) && gs.occupantAt(far) == 0 {
			moves = append(moves, far)
			continue
		}
		for _, p := range perpendicular(d) {
			diag := target.step(p)
			if diag == start || !diag.OnBoard(gs.BoardSize) {
				continue
			}
			if gs.blockedBetween(target, diag) || gs.occupantAt(diag) != 0 {
				continue
			}
			moves = append(moves, diag)
		}
	}
	return moves
}

// LegalWallPlacements returns every wall the player may place, in
// deterministic anchor order. Each candidate passes the exact same checks as
// Apply, including the no-full-block invariant.
func (gs *GameState) LegalWallPlacements(playerID int) []Wall {
	player, err := gs.PlayerByID(playerID)
	if err != nil || gs.Winner != 0 || player.WallsLeft <= 0 {
		return nil
	}
	var walls []Wall
	for row := 0; row < gs.BoardSize-1; row++ {
		for col := 0; col < gs.BoardSize-1; col++ {
			for _, o := range [2]Orientation{Horizontal, Vertical} {
				w := Wall{Orientation: o, Anchor: Cell{row, col}}
				if gs.validateWall(player, w) == nil {
					walls = append(walls, w)
				}
			}
		}
	}
	return walls
}

// LegalMoves returns the combined candidate set for the player to move: pawn
// moves first, then wall placements.
func (gs *GameState) LegalMoves() []Move {
	if gs.Winner != 0 {
		return nil
	}
	player := gs.CurrentPlayer()
	var moves []Move
	for _, to := range gs.legalPawnMovesFor(player) {
		moves = append(moves, PawnMove{To: to})
	}
	for _, w := range gs.LegalWallPlacements(player.ID) {
		moves = append(moves, WallPlacement{Wall: w})
	}
	return moves
}

// Apply validates the move for the given player and, on success, returns the
// resulting state: pawn repositioned or wall placed, turn advanced to the
// next player in order, turn counter incremented and the terminal condition
// re-evaluated. The receiver is never modified; on rejection the returned
// error is one of the sentinel reasons in errors.go.
func (gs *GameState) Apply(playerID int, mv Move) (*GameState, error) {
	if gs.Winner != 0 {
		return nil, ErrGameOver
	}
	player, err := gs.PlayerByID(playerID)
	if err != nil {
		return nil, err
	}
	if gs.CurrentPlayer().ID != playerID {
		return nil, ErrNotPlayersTurn
	}

	switch m := mv.(type) {
	case PawnMove:
		if err := gs.validatePawn(player, m.To); err != nil {
			return nil, err
		}
		next := gs.Copy()
		mover, _ := next.PlayerByID(playerID)
		mover.Pos = m.To
		next.Turn++
		if mover.Goal.Contains(m.To) {
			next.Winner = playerID
		} else {
			next.Current = (next.Current + 1) % len(next.Players)
		}
		return next, nil
	case WallPlacement:
		if err := gs.validateWall(player, m.Wall); err != nil {
			return nil, err
		}
		next := gs.Copy()
		placer, _ := next.PlayerByID(playerID)
		placer.WallsLeft--
		next.walls[m.Wall] = struct{}{}
		next.Turn++
		next.Current = (next.Current + 1) % len(next.Players)
		return next, nil
	case nil:
		return nil, fmt.Errorf("%w: nil move", ErrMalformedMove)
	default:
		return nil, fmt.Errorf("%w: unsupported move type %T", ErrMalformedMove, mv)
	}
}

// validatePawn checks the destination against the legal pawn move set and,
// on failure, derives the most specific rejection reason.
func (gs *GameState) validatePawn(player *Player, to Cell) error {
	if !to.OnBoard(gs.BoardSize) {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, to.Coord())
	}
	for _, legal := range gs.legalPawnMovesFor(player) {
		if legal == to {
			return nil
		}
	}
	if gs.occupantAt(to) != 0 {
		return fmt.Errorf("%w: %s", ErrDestinationBlocked, to.Coord())
	}
	dr, dc := to.Row-player.Pos.Row, to.Col-player.Pos.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	if dr+dc == 1 {
		// Adjacent, unoccupied, yet not legal: a wall blocks the segment.
		return fmt.Errorf("%w: %s", ErrDestinationBlocked, to.Coord())
	}
	return fmt.Errorf("%w: %s to %s", ErrIllegalJump, player.Pos.Coord(), to.Coord())
}

// validateWall checks a candidate wall: stock, anchor range, overlap and
// crossing, then the no-full-block invariant via a tentative placement. The
// tentative wall is always removed before returning, so the receiver is
// observably unchanged.
func (gs *GameState) validateWall(player *Player, w Wall) error {
	if player.WallsLeft <= 0 {
		return ErrNoWallsRemaining
	}
	if !w.anchorOnBoard(gs.BoardSize) {
		return fmt.Errorf("%w: wall anchor %s", ErrInvalidCoordinate, w.Anchor.Coord())
	}
	if gs.HasWall(w) {
		return fmt.Errorf("%w: %s", ErrWallOverlap, w)
	}
	if gs.wallConflicts(w) {
		return fmt.Errorf("%w: %s", ErrWallOverlap, w)
	}

	gs.walls[w] = struct{}{}
	defer delete(gs.walls, w)
	for i := range gs.Players {
		if !gs.IsGoalReachable(gs.Players[i].ID) {
			return fmt.Errorf("%w: %s traps player %d", ErrWallSeversPath, w, gs.Players[i].ID)
		}
	}
	return nil
}

// wallConflicts reports whether w crosses a perpendicular wall at the same
// anchor or shares a boundary segment with a parallel neighbour.
func (gs *GameState) wallConflicts(w Wall) bool {
	r, c := w.Anchor.Row, w.Anchor.Col
	if w.Orientation == Horizontal {
		return gs.hasWallAt(Vertical, r, c) ||
			gs.hasWallAt(Horizontal, r, c-1) ||
			gs.hasWallAt(Horizontal, r, c+1)
	}
	return gs.hasWallAt(Horizontal, r, c) ||
		gs.hasWallAt(Vertical, r-1, c) ||
		gs.hasWallAt(Vertical, r+1, c)
}
