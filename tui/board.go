// Package tui renders a Quoridor match in the terminal with tview widgets:
// a board canvas with a movable cursor, a wall-aiming mode and a status
// panel.
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"quoridor/game"
)

const (
	cellW = 4
	cellH = 2
)

// Board draws the grid, pawns, walls, cursor and pawn-move hints. Rank 1 is
// at the bottom of the screen. The widget holds no game logic; the app
// updates its state snapshot after every applied move.
type Board struct {
	*tview.Box

	gs        *game.GameState
	cursor    game.Cell
	wallMode  bool
	orient    game.Orientation
	hints     map[game.Cell]bool
	showHints bool
}

func NewBoard(gs *game.GameState, showHints bool) *Board {
	b := &Board{
		Box:       tview.NewBox(),
		gs:        gs,
		cursor:    gs.CurrentPlayer().Pos,
		showHints: showHints,
	}
	b.Box.SetDrawFunc(b.draw)
	return b
}

// SetState swaps in a new state snapshot and refreshes the hint set.
func (b *Board) SetState(gs *game.GameState, humanSeat int) {
	b.gs = gs
	b.hints = make(map[game.Cell]bool)
	if b.showHints {
		for _, c := range gs.LegalPawnMoves(humanSeat) {
			b.hints[c] = true
		}
	}
	b.clampCursor()
}

// MoveCursor shifts the selection, clamped to the board (or to the wall
// anchor grid in wall mode).
func (b *Board) MoveCursor(dRow, dCol int) {
	b.cursor.Row += dRow
	b.cursor.Col += dCol
	b.clampCursor()
}

func (b *Board) clampCursor() {
	limit := b.gs.BoardSize
	if b.wallMode {
		limit = b.gs.BoardSize - 1
	}
	if b.cursor.Row < 0 {
		b.cursor.Row = 0
	}
	if b.cursor.Row >= limit {
		b.cursor.Row = limit - 1
	}
	if b.cursor.Col < 0 {
		b.cursor.Col = 0
	}
	if b.cursor.Col >= limit {
		b.cursor.Col = limit - 1
	}
}

// ToggleWallMode enters wall mode, or flips orientation when already there.
func (b *Board) ToggleWallMode() {
	if !b.wallMode {
		b.wallMode = true
		b.orient = game.Horizontal
	} else if b.orient == game.Horizontal {
		b.orient = game.Vertical
	} else {
		b.orient = game.Horizontal
	}
	b.clampCursor()
}

// ExitWallMode returns to pawn selection.
func (b *Board) ExitWallMode() {
	b.wallMode = false
}

// Selection is the move the current cursor denotes.
func (b *Board) Selection() game.Move {
	if b.wallMode {
		return game.WallPlacement{Wall: game.Wall{Orientation: b.orient, Anchor: b.cursor}}
	}
	return game.PawnMove{To: b.cursor}
}

func (b *Board) screenPos(x0, y0 int, c game.Cell) (int, int) {
	size := b.gs.BoardSize
	return x0 + c.Col*cellW, y0 + (size-1-c.Row)*cellH
}

func (b *Board) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := b.gs.BoardSize
	x0, y0 := x+4, y+1

	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	gridStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorOrange)
	hintStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	pawnStyles := map[int]tcell.Style{
		1: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		2: tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
		3: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		4: tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true),
	}

	// Rank and file labels.
	for row := 0; row < size; row++ {
		sx, sy := b.screenPos(x0, y0, game.Cell{Row: row, Col: 0})
		label := []rune{' ', ' '}
		rank := row + 1
		if rank >= 10 {
			label = []rune{rune('0' + rank/10), rune('0' + rank%10)}
		} else {
			label[1] = rune('0' + rank)
		}
		screen.SetContent(sx-4, sy, label[0], nil, labelStyle)
		screen.SetContent(sx-3, sy, label[1], nil, labelStyle)
	}
	for col := 0; col < size; col++ {
		sx, sy := b.screenPos(x0, y0, game.Cell{Row: 0, Col: col})
		screen.SetContent(sx, sy+1, rune('A'+col), nil, labelStyle)
	}

	// Cells, hints and pawns.
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := game.Cell{Row: row, Col: col}
			sx, sy := b.screenPos(x0, y0, c)
			r := '·'
			style := gridStyle
			if b.hints[c] {
				r = '•'
				style = hintStyle
			}
			if id := b.occupant(c); id != 0 {
				r = rune('0' + id)
				style = pawnStyles[id]
			}
			if !b.wallMode && c == b.cursor {
				style = style.Reverse(true)
			}
			screen.SetContent(sx, sy, r, nil, style)
		}
	}

	// Placed walls.
	for _, w := range b.gs.PlacedWalls() {
		b.drawWall(screen, x0, y0, w, wallStyle)
	}
	// Ghost wall under the cursor in wall mode.
	if b.wallMode {
		ghost := game.Wall{Orientation: b.orient, Anchor: b.cursor}
		b.drawWall(screen, x0, y0, ghost, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))
	}

	return x, y, width, height
}

func (b *Board) drawWall(screen tcell.Screen, x0, y0 int, w game.Wall, style tcell.Style) {
	sx, sy := b.screenPos(x0, y0, w.Anchor)
	if w.Orientation == game.Horizontal {
		// Between rows Anchor.Row and Anchor.Row+1, spanning two columns.
		for dx := 0; dx <= cellW+1; dx++ {
			screen.SetContent(sx-1+dx, sy-1, '━', nil, style)
		}
	} else {
		// Between columns Anchor.Col and Anchor.Col+1, spanning two rows.
		for dy := 0; dy <= cellH; dy++ {
			screen.SetContent(sx+cellW/2, sy-dy, '┃', nil, style)
		}
	}
}

func (b *Board) occupant(c game.Cell) int {
	for i := range b.gs.Players {
		if b.gs.Players[i].Pos == c {
			return b.gs.Players[i].ID
		}
	}
	return 0
}
