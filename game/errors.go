package game

import "errors"

// Rejection reasons for proposed moves. Each is a distinct sentinel so that
// callers can branch with errors.Is and render a specific message. A rejected
// move never mutates the state it was proposed against.
var (
	ErrMalformedMove      = errors.New("malformed move")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrNotPlayersTurn     = errors.New("not this player's turn")
	ErrDestinationBlocked = errors.New("destination occupied or blocked by a wall")
	ErrIllegalJump        = errors.New("illegal jump geometry")
	ErrWallOverlap        = errors.New("wall overlaps or crosses an existing wall")
	ErrNoWallsRemaining   = errors.New("no walls remaining")
	ErrWallSeversPath     = errors.New("wall would sever a player's path to goal")
	ErrGameOver           = errors.New("game is already over")
	ErrUnknownPlayer      = errors.New("unknown player")
)

// ReasonCode maps a rejection to a short stable identifier for wire formats
// and logs.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrMalformedMove):
		return "MalformedMove"
	case errors.Is(err, ErrInvalidCoordinate):
		return "InvalidCoordinate"
	case errors.Is(err, ErrNotPlayersTurn):
		return "NotPlayersTurn"
	case errors.Is(err, ErrDestinationBlocked):
		return "DestinationOccupiedOrBlocked"
	case errors.Is(err, ErrIllegalJump):
		return "IllegalJumpGeometry"
	case errors.Is(err, ErrWallOverlap):
		return "WallOverlap"
	case errors.Is(err, ErrNoWallsRemaining):
		return "NoWallsRemaining"
	case errors.Is(err, ErrWallSeversPath):
		return "WallWouldSeverPath"
	case errors.Is(err, ErrGameOver):
		return "GameAlreadyTerminal"
	case errors.Is(err, ErrUnknownPlayer):
		return "UnknownPlayer"
	case err == nil:
		return ""
	default:
		return "InternalError"
	}
}
