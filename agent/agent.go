// Package agent provides automated players: a minimax searcher, a uniform
// random baseline and an LLM-backed opponent speaking to a local Ollama
// endpoint.
package agent

import "quoridor/game"

// Agent picks a move for the player to act in the given state. The state is
// read-only for the agent; the caller applies the returned move through the
// rules engine.
type Agent interface {
	FindMove(gs *game.GameState) (game.Move, error)
}
