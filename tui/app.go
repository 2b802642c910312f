package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"quoridor/engine"
	"quoridor/game"
)

// App wires the board widget, a status line and an info panel around one
// match. The human plays with the keyboard; agent turns run on a background
// goroutine so the UI stays responsive while the searcher thinks.
type App struct {
	cfg          Config
	matchOptions []engine.Option

	app    *tview.Application
	board  *Board
	status *tview.TextView
	info   *tview.TextView

	mu       sync.Mutex
	match    *engine.Match
	thinking bool
}

// Run starts the terminal client. matchOptions configure the automated
// seats; board shape options are derived from cfg.
func Run(cfg Config, matchOptions ...engine.Option) error {
	a := &App{
		cfg:          cfg,
		matchOptions: matchOptions,
		app:          tview.NewApplication(),
	}
	if err := a.newMatch(); err != nil {
		return err
	}

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetBorder(true).SetTitle(" status ")
	a.info = tview.NewTextView().SetDynamicColors(true)
	a.info.SetBorder(true).SetTitle(" match ")

	a.board = NewBoard(a.match.State(), cfg.ShowHints)
	a.board.SetState(a.match.State(), cfg.HumanSeat)
	a.board.SetBorder(true).SetTitle(" quoridor ")
	a.board.SetInputCapture(a.handleKey)

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.info, 0, 3, false).
		AddItem(a.status, 0, 1, false)
	root := tview.NewFlex().
		AddItem(a.board, 0, 2, true).
		AddItem(side, 0, 1, false)

	a.refresh("arrows move, w aims a wall (press again to rotate), enter plays, n new game, q quits")
	return a.app.SetRoot(root, true).SetFocus(a.board).Run()
}

func (a *App) newMatch() error {
	options := append([]engine.Option{
		engine.WithPlayers(a.cfg.Players),
		engine.WithBoardSize(a.cfg.BoardSize),
	}, a.matchOptions...)
	match, err := engine.NewMatch(options...)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.match = match
	a.mu.Unlock()
	return nil
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		a.board.MoveCursor(1, 0)
	case tcell.KeyDown:
		a.board.MoveCursor(-1, 0)
	case tcell.KeyLeft:
		a.board.MoveCursor(0, -1)
	case tcell.KeyRight:
		a.board.MoveCursor(0, 1)
	case tcell.KeyEscape:
		a.board.ExitWallMode()
	case tcell.KeyEnter:
		a.submit()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			a.board.MoveCursor(1, 0)
		case 'j':
			a.board.MoveCursor(-1, 0)
		case 'h':
			a.board.MoveCursor(0, -1)
		case 'l':
			a.board.MoveCursor(0, 1)
		case 'w':
			a.board.ToggleWallMode()
		case 'n':
			a.restart()
		case 'q':
			a.app.Stop()
			return nil
		}
	}
	a.refresh("")
	return nil
}

func (a *App) submit() {
	a.mu.Lock()
	if a.thinking {
		a.mu.Unlock()
		return
	}
	if over, winner := a.match.State().IsTerminal(); over {
		a.mu.Unlock()
		a.refresh(fmt.Sprintf("game over, player %d won. press n for a new game", winner))
		return
	}
	mv := a.board.Selection()
	a.thinking = true
	a.mu.Unlock()

	a.refresh("thinking…")
	go func() {
		a.mu.Lock()
		err := a.match.PlayHuman(a.cfg.HumanSeat, mv)
		a.thinking = false
		a.mu.Unlock()

		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.refresh(fmt.Sprintf("rejected: %s", game.ReasonCode(err)))
				return
			}
			a.board.ExitWallMode()
			a.refresh("")
		})
	}()
}

func (a *App) restart() {
	if err := a.newMatch(); err != nil {
		a.refresh(fmt.Sprintf("new game failed: %v", err))
		return
	}
	a.board.ExitWallMode()
	a.refresh("new game")
}

// refresh redraws the board snapshot and panels; msg overrides the default
// status line when non-empty.
func (a *App) refresh(msg string) {
	a.mu.Lock()
	st := a.match.Snapshot()
	a.board.SetState(a.match.State(), a.cfg.HumanSeat)
	a.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "turn %d\n\n", st.Turn)
	for _, p := range st.Players {
		seat := "you"
		if p.Bot {
			seat = "bot"
		}
		fmt.Fprintf(&b, "P%d (%s)  %s\n  walls %d  goal %s  dist %d\n",
			p.ID, seat, p.Pos, p.WallsLeft, p.Goal, p.Distance)
	}
	if n := len(st.History); n > 0 {
		b.WriteString("\nlast moves:\n")
		start := n - 6
		if start < 0 {
			start = 0
		}
		for _, e := range st.History[start:] {
			fmt.Fprintf(&b, "  P%d %s\n", e.Player, e.Move)
		}
	}
	a.info.SetText(b.String())

	if msg == "" {
		msg = st.Message
	}
	a.status.SetText(msg)
}
