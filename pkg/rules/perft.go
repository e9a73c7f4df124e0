package rules

import "github.com/gmkornilov/chess-play-backend/pkg/board"

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(p)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(Apply(p, m), depth-1)
	}
	return nodes
}

// Divide runs Perft below each root move.
func Divide(p board.Position, depth int) map[board.Move]uint64 {
	out := make(map[board.Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range LegalMoves(p) {
		out[m] = Perft(Apply(p, m), depth-1)
	}
	return out
}
