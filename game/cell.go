package game

import (
	"fmt"
	"strconv"
)

// Cell is a 0-indexed board coordinate. Row 0 is rank 1 in board notation,
// column 0 is file A.
type Cell struct {
	Row int
	Col int
}

// OnBoard reports whether the cell lies on a size x size board.
func (c Cell) OnBoard(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Coord renders the cell in board notation, e.g. {1,4} -> "E2".
func (c Cell) Coord() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// ParseCell parses board notation ("E2") into a Cell on a size x size board.
func ParseCell(s string, size int) (Cell, error) {
	if len(s) < 2 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	file := s[0]
	if file >= 'a' && file <= 'z' {
		file -= 'a' - 'A'
	}
	if file < 'A' || int(file-'A') >= size {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 || rank > size {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return Cell{Row: rank - 1, Col: int(file - 'A')}, nil
}

type direction struct {
	dr, dc int
}

// Enumeration order is fixed so that move generation is deterministic.
var directions = [4]direction{
	{1, 0},  // towards higher rows
	{-1, 0}, // towards lower rows
	{0, 1},  // towards higher columns
	{0, -1}, // towards lower columns
}

func (c Cell) step(d direction) Cell {
	return Cell{Row: c.Row + d.dr, Col: c.Col + d.dc}
}

// perpendicular returns the two directions orthogonal to d, in fixed order.
func perpendicular(d direction) [2]direction {
	if d.dc == 0 {
		return [2]direction{{0, 1}, {0, -1}}
	}
	return [2]direction{{1, 0}, {-1, 0}}
}
