package game

import (
	"fmt"
	"strings"
)

// Move is the structured form of a player's action: either a pawn move to a
// destination cell or a wall placement. It is constructed once at the
// boundary; free-form text never reaches the rules engine.
type Move interface {
	fmt.Stringer
	isMove()
}

// PawnMove moves the acting player's pawn to the destination cell.
type PawnMove struct {
	To Cell
}

func (PawnMove) isMove() {}

func (m PawnMove) String() string {
	return "MOVE " + m.To.Coord()
}

// WallPlacement places a wall from the acting player's allotment.
type WallPlacement struct {
	Wall Wall
}

func (WallPlacement) isMove() {}

func (m WallPlacement) String() string {
	return m.Wall.String()
}

// ParseMove parses the textual move encoding for a size x size board:
//
//	MOVE <cell>          e.g. "MOVE E2"
//	WALL <H|V> <cell>    e.g. "WALL H E5"
//
// Encoding a parsed move with String yields the canonical form back.
func ParseMove(s string, size int) (Move, error) {
	parts := strings.Fields(strings.ToUpper(strings.TrimSpace(s)))
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedMove)
	}
	switch parts[0] {
	case "MOVE":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedMove, s)
		}
		to, err := ParseCell(parts[1], size)
		if err != nil {
			return nil, err
		}
		return PawnMove{To: to}, nil
	case "WALL":
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedMove, s)
		}
		orient, err := ParseOrientation(parts[1])
		if err != nil {
			return nil, err
		}
		// Wall anchors range over [0, size-2]; parse against size-1 so that
		// e.g. "WALL H E9" on a 9-board is an invalid coordinate.
		anchor, err := ParseCell(parts[2], size-1)
		if err != nil {
			return nil, err
		}
		return WallPlacement{Wall: Wall{Orientation: orient, Anchor: anchor}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMalformedMove, s)
}
