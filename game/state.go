package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

const (
	// DefaultBoardSize is the standard Quoridor board side length.
	DefaultBoardSize = 9
	// TotalWalls is the wall pool shared evenly between the players: 10 each
	// for two players, 5 each for four.
	TotalWalls = 20

	// MinBoardSize keeps jump geometry meaningful; MaxBoardSize keeps board
	// notation within A..Z.
	MinBoardSize = 3
	MaxBoardSize = 26
)

// Axis distinguishes goal lines that are rows from goal lines that are
// columns.
type Axis uint8

const (
	Rows Axis = iota
	Columns
)

// Goal is the set of cells a player must reach to win: all cells on one row
// or one column.
type Goal struct {
	Axis Axis
	Line int
}

// Contains reports whether c is a winning cell for this goal.
func (g Goal) Contains(c Cell) bool {
	if g.Axis == Rows {
		return c.Row == g.Line
	}
	return c.Col == g.Line
}

// Distance is the straight-line distance from c to the goal line, ignoring
// walls and pawns. Useful for move ordering; never a substitute for the
// wall-aware ShortestDistanceToGoal.
func (g Goal) Distance(c Cell) int {
	var d int
	if g.Axis == Rows {
		d = g.Line - c.Row
	} else {
		d = g.Line - c.Col
	}
	if d < 0 {
		return -d
	}
	return d
}

// Player is one seat in the game: identity, pawn position, wall stock and
// assigned goal line.
type Player struct {
	ID        int
	Pos       Cell
	WallsLeft int
	Goal      Goal
}

// GameState is the dynamic state of a Quoridor game. Turn order is the
// Players slice order, wrapping. A GameState is mutated only through Apply,
// which returns a fresh copy; explored search branches therefore never share
// a mutable board.
type GameState struct {
	BoardSize int
	Players   []Player
	Current   int // index into Players of the player to move
	Turn      int // number of applied moves
	Winner    int // winning player's ID, 0 while the game is running

	walls map[Wall]struct{}
}

// NewGameState creates the canonical starting arrangement for 2 or 4 players
// on a boardSize x boardSize board: pawns centered on their home edges, goal
// on the opposite edge, wall pool split evenly.
func NewGameState(numPlayers, boardSize int) (*GameState, error) {
	if boardSize < MinBoardSize || boardSize > MaxBoardSize {
		return nil, fmt.Errorf("board size %d out of range [%d, %d]", boardSize, MinBoardSize, MaxBoardSize)
	}
	if numPlayers != 2 && numPlayers != 4 {
		return nil, fmt.Errorf("unsupported player count %d (want 2 or 4)", numPlayers)
	}
	mid := boardSize / 2
	edge := boardSize - 1
	starts := []Player{
		{ID: 1, Pos: Cell{0, mid}, Goal: Goal{Rows, edge}},
		{ID: 2, Pos: Cell{edge, mid}, Goal: Goal{Rows, 0}},
		{ID: 3, Pos: Cell{mid, 0}, Goal: Goal{Columns, edge}},
		{ID: 4, Pos: Cell{mid, edge}, Goal: Goal{Columns, 0}},
	}
	players := make([]Player, numPlayers)
	copy(players, starts[:numPlayers])
	for i := range players {
		players[i].WallsLeft = TotalWalls / numPlayers
	}
	return &GameState{
		BoardSize: boardSize,
		Players:   players,
		walls:     make(map[Wall]struct{}),
	}, nil
}

// Copy returns a deep copy sharing nothing mutable with the receiver.
func (gs *GameState) Copy() *GameState {
	players := make([]Player, len(gs.Players))
	copy(players, gs.Players)
	walls := make(map[Wall]struct{}, len(gs.walls))
	for w := range gs.walls {
		walls[w] = struct{}{}
	}
	return &GameState{
		BoardSize: gs.BoardSize,
		Players:   players,
		Current:   gs.Current,
		Turn:      gs.Turn,
		Winner:    gs.Winner,
		walls:     walls,
	}
}

// CurrentPlayer returns the player to move.
func (gs *GameState) CurrentPlayer() *Player {
	return &gs.Players[gs.Current]
}

// PlayerByID returns the player with the given identity.
func (gs *GameState) PlayerByID(id int) (*Player, error) {
	for i := range gs.Players {
		if gs.Players[i].ID == id {
			return &gs.Players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
}

// IsTerminal reports whether the game is over and, if so, the winner's ID.
func (gs *GameState) IsTerminal() (bool, int) {
	return gs.Winner != 0, gs.Winner
}

// WallCount returns the number of placed walls.
func (gs *GameState) WallCount() int {
	return len(gs.walls)
}

// PlacedWalls lists all placed walls in deterministic order.
func (gs *GameState) PlacedWalls() []Wall {
	walls := make([]Wall, 0, len(gs.walls))
	for w := range gs.walls {
		walls = append(walls, w)
	}
	sort.Slice(walls, func(i, j int) bool { return walls[i].less(walls[j]) })
	return walls
}

// HasWall reports whether the exact wall (anchor + orientation) is placed.
func (gs *GameState) HasWall(w Wall) bool {
	_, ok := gs.walls[w]
	return ok
}

// occupantAt returns the ID of the pawn on c, or 0 if the cell is free.
func (gs *GameState) occupantAt(c Cell) int {
	for i := range gs.Players {
		if gs.Players[i].Pos == c {
			return gs.Players[i].ID
		}
	}
	return 0
}

// blockedBetween reports whether a placed wall blocks movement between the
// orthogonally adjacent cells a and b.
func (gs *GameState) blockedBetween(a, b Cell) bool {
	switch {
	case b.Row > a.Row: // down
		return gs.hasWallAt(Horizontal, a.Row, a.Col) || gs.hasWallAt(Horizontal, a.Row, a.Col-1)
	case a.Row > b.Row: // up
		return gs.hasWallAt(Horizontal, b.Row, a.Col) || gs.hasWallAt(Horizontal, b.Row, a.Col-1)
	case b.Col > a.Col: // right
		return gs.hasWallAt(Vertical, a.Row, a.Col) || gs.hasWallAt(Vertical, a.Row-1, a.Col)
	case a.Col > b.Col: // left
		return gs.hasWallAt(Vertical, a.Row, b.Col) || gs.hasWallAt(Vertical, a.Row-1, b.Col)
	}
	return false
}

func (gs *GameState) hasWallAt(o Orientation, row, col int) bool {
	_, ok := gs.walls[Wall{Orientation: o, Anchor: Cell{row, col}}]
	return ok
}

// StateHash is a 64-bit fingerprint of a GameState, used to key search
// tables. Collisions are possible but rare enough for that purpose.
type StateHash uint64

// Hash fingerprints the position: board size, player to move, every pawn
// position and wall stock, and the placed wall set. The turn counter is
// excluded so transpositions collapse.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int64(gs.BoardSize))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Winner))
	for _, p := range gs.Players {
		binary.Write(hasher, binary.LittleEndian, int64(p.Pos.Row))
		binary.Write(hasher, binary.LittleEndian, int64(p.Pos.Col))
		binary.Write(hasher, binary.LittleEndian, int64(p.WallsLeft))
	}
	for _, w := range gs.PlacedWalls() {
		binary.Write(hasher, binary.LittleEndian, int64(w.Orientation))
		binary.Write(hasher, binary.LittleEndian, int64(w.Anchor.Row))
		binary.Write(hasher, binary.LittleEndian, int64(w.Anchor.Col))
	}
	return StateHash(hasher.Sum64())
}
