package game

import "fmt"

// Orientation of a wall.
type Orientation uint8

const (
	// Horizontal walls lie between row Anchor.Row and Anchor.Row+1, covering
	// columns Anchor.Col and Anchor.Col+1.
	Horizontal Orientation = iota
	// Vertical walls lie between column Anchor.Col and Anchor.Col+1, covering
	// rows Anchor.Row and Anchor.Row+1.
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "H"
	}
	return "V"
}

// ParseOrientation parses "H" or "V" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "H", "h":
		return Horizontal, nil
	case "V", "v":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: orientation %q", ErrMalformedMove, s)
}

// Wall is a placed or candidate wall. The anchor identifies the intersection
// the wall occupies; valid anchors range over [0, size-2] in both coordinates.
// Walls are placed for the lifetime of a game, never moved or removed.
type Wall struct {
	Orientation Orientation
	Anchor      Cell
}

func (w Wall) String() string {
	return fmt.Sprintf("WALL %s %s", w.Orientation, w.Anchor.Coord())
}

// anchorOnBoard reports whether the wall's anchor is a valid intersection on a
// size x size board.
func (w Wall) anchorOnBoard(size int) bool {
	return w.Anchor.Row >= 0 && w.Anchor.Row < size-1 &&
		w.Anchor.Col >= 0 && w.Anchor.Col < size-1
}

// less orders walls for deterministic listings: by row, column, orientation.
func (w Wall) less(o Wall) bool {
	if w.Anchor.Row != o.Anchor.Row {
		return w.Anchor.Row < o.Anchor.Row
	}
	if w.Anchor.Col != o.Anchor.Col {
		return w.Anchor.Col < o.Anchor.Col
	}
	return w.Orientation < o.Orientation
}
