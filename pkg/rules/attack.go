// Package rules implements move generation, move application and game
// termination for standard chess. Every function is pure and safe to call
// concurrently on independent positions.
package rules

import "github.com/gmkornilov/chess-play-backend/pkg/board"

var (
	knightOffsets   = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	promotionChoice = []board.Kind{board.Queen, board.Rook, board.Bishop, board.Knight}
)

// IsInCheck reports whether the king of colour c is attacked.
// A position without that king is never in check.
func IsInCheck(p board.Position, c board.Color) bool {
	return inCheck(&p, c)
}

func inCheck(p *board.Position, c board.Color) bool {
	ks, ok := p.KingSquare(c)
	if !ok {
		return false
	}
	return isAttacked(p, ks, c.Other())
}

// IsSquareAttacked reports whether any piece of colour by attacks sq.
func IsSquareAttacked(p board.Position, sq board.Square, by board.Color) bool {
	return isAttacked(&p, sq, by)
}

// isAttacked looks outward from sq for each capture pattern. Kings are
// matched by adjacency only, so it never recurses into move generation.
func isAttacked(p *board.Position, sq board.Square, by board.Color) bool {
	// A white pawn attacks upward, so it sits one rank below the target.
	pawnRank := -1
	if by == board.Black {
		pawnRank = 1
	}
	pawn := board.Piece{Color: by, Kind: board.Pawn}
	for _, df := range []int{-1, 1} {
		if from, ok := sq.Offset(df, pawnRank); ok && p.Board[from] == pawn {
			return true
		}
	}

	if hitsAny(p, sq, knightOffsets, board.Piece{Color: by, Kind: board.Knight}) {
		return true
	}
	if hitsAny(p, sq, kingOffsets, board.Piece{Color: by, Kind: board.King}) {
		return true
	}

	queen := board.Piece{Color: by, Kind: board.Queen}
	if slidesTo(p, sq, diagonalDirs, board.Piece{Color: by, Kind: board.Bishop}, queen) {
		return true
	}
	return slidesTo(p, sq, orthogonalDirs, board.Piece{Color: by, Kind: board.Rook}, queen)
}

func hitsAny(p *board.Position, sq board.Square, offsets [][2]int, attacker board.Piece) bool {
	for _, o := range offsets {
		if from, ok := sq.Offset(o[0], o[1]); ok && p.Board[from] == attacker {
			return true
		}
	}
	return false
}

// slidesTo walks each ray from sq and stops at the first occupied square.
func slidesTo(p *board.Position, sq board.Square, dirs [][2]int, slider, queen board.Piece) bool {
	for _, d := range dirs {
		cur, ok := sq.Offset(d[0], d[1])
		for ok {
			pc := p.Board[cur]
			if !pc.IsEmpty() {
				if pc == slider || pc == queen {
					return true
				}
				break
			}
			cur, ok = cur.Offset(d[0], d[1])
		}
	}
	return false
}
