package searcher

import "quoridor/game"

// tableKey identifies a searched subtree: the position fingerprint plus the
// remaining depth. The player to move is part of the state hash.
type tableKey struct {
	hash  game.StateHash
	depth int
}

// table caches exact subtree scores within a single root branch. Each root
// move gets its own table, so search results do not depend on how branches
// are distributed across goroutines. Only scores obtained without a cutoff
// are stored; bound values from pruned nodes would poison later lookups.
type table map[tableKey]float64
