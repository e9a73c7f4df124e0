package rules

import "github.com/gmkornilov/chess-play-backend/pkg/board"

// LegalMoves returns every legal move for the side to move. The order carries
// no meaning; callers treat the result as a set.
func LegalMoves(p board.Position) []board.Move {
	pseudo := pseudoLegalMoves(&p)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if leavesKingSafe(&p, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move can make any move at all.
func HasLegalMoves(p board.Position) bool {
	for _, m := range pseudoLegalMoves(&p) {
		if leavesKingSafe(&p, m) {
			return true
		}
	}
	return false
}

// IsLegal reports whether m is in LegalMoves(p). It never mutates p.
func IsLegal(p board.Position, m board.Move) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	if m.Promotion != board.NoKind && !m.Promotion.IsPromotion() {
		return false
	}
	pc := p.Board[m.From]
	if pc.IsEmpty() || pc.Color != p.SideToMove {
		return false
	}
	for _, candidate := range pieceMoves(&p, m.From, pc) {
		if candidate == m {
			return leavesKingSafe(&p, m)
		}
	}
	return false
}

// leavesKingSafe plays m on a scratch copy and checks the mover's king.
func leavesKingSafe(p *board.Position, m board.Move) bool {
	next := Apply(*p, m)
	return !inCheck(&next, p.SideToMove)
}

func pseudoLegalMoves(p *board.Position) []board.Move {
	moves := make([]board.Move, 0, 48)
	for sq := board.Square(0); sq < 64; sq++ {
		pc := p.Board[sq]
		if pc.IsEmpty() || pc.Color != p.SideToMove {
			continue
		}
		moves = append(moves, pieceMoves(p, sq, pc)...)
	}
	return moves
}

func pieceMoves(p *board.Position, from board.Square, pc board.Piece) []board.Move {
	switch pc.Kind {
	case board.Pawn:
		return pawnMoves(p, from, pc.Color)
	case board.Knight:
		return stepMoves(p, from, pc.Color, knightOffsets)
	case board.Bishop:
		return slideMoves(p, from, pc.Color, diagonalDirs)
	case board.Rook:
		return slideMoves(p, from, pc.Color, orthogonalDirs)
	case board.Queen:
		return append(slideMoves(p, from, pc.Color, diagonalDirs), slideMoves(p, from, pc.Color, orthogonalDirs)...)
	case board.King:
		return append(stepMoves(p, from, pc.Color, kingOffsets), castlingMoves(p, from, pc.Color)...)
	}
	return nil
}

func pawnMoves(p *board.Position, from board.Square, c board.Color) []board.Move {
	dir, startRank, lastRank := 1, 1, 7
	if c == board.Black {
		dir, startRank, lastRank = -1, 6, 0
	}

	var moves []board.Move
	add := func(to board.Square) {
		if to.Rank() == lastRank {
			for _, k := range promotionChoice {
				moves = append(moves, board.Move{From: from, To: to, Promotion: k})
			}
			return
		}
		moves = append(moves, board.Move{From: from, To: to})
	}

	if one, ok := from.Offset(0, dir); ok && p.Board[one].IsEmpty() {
		add(one)
		if from.Rank() == startRank {
			if two, ok := from.Offset(0, 2*dir); ok && p.Board[two].IsEmpty() {
				add(two)
			}
		}
	}

	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		target := p.Board[to]
		if !target.IsEmpty() && target.Color != c {
			add(to)
		} else if to == p.EnPassant && target.IsEmpty() {
			victim, _ := to.Offset(0, -dir)
			if p.Board[victim] == (board.Piece{Color: c.Other(), Kind: board.Pawn}) {
				add(to)
			}
		}
	}
	return moves
}

func stepMoves(p *board.Position, from board.Square, c board.Color, offsets [][2]int) []board.Move {
	var moves []board.Move
	for _, o := range offsets {
		to, ok := from.Offset(o[0], o[1])
		if !ok {
			continue
		}
		if target := p.Board[to]; target.IsEmpty() || target.Color != c {
			moves = append(moves, board.Move{From: from, To: to})
		}
	}
	return moves
}

func slideMoves(p *board.Position, from board.Square, c board.Color, dirs [][2]int) []board.Move {
	var moves []board.Move
	for _, d := range dirs {
		to, ok := from.Offset(d[0], d[1])
		for ok {
			target := p.Board[to]
			if !target.IsEmpty() {
				if target.Color != c {
					moves = append(moves, board.Move{From: from, To: to})
				}
				break
			}
			moves = append(moves, board.Move{From: from, To: to})
			to, ok = to.Offset(d[0], d[1])
		}
	}
	return moves
}

type castle struct {
	right      board.CastlingRights
	king, rook board.Square
	kingTo     board.Square
	empty      []board.Square
	safe       []board.Square
}

var castles = map[board.Color][]castle{
	board.White: {
		{board.WhiteKingside, board.E1, board.H1, board.G1,
			[]board.Square{board.F1, board.G1}, []board.Square{board.E1, board.F1, board.G1}},
		{board.WhiteQueenside, board.E1, board.A1, board.C1,
			[]board.Square{board.D1, board.C1, board.NewSquare(1, 0)}, []board.Square{board.E1, board.D1, board.C1}},
	},
	board.Black: {
		{board.BlackKingside, board.E8, board.H8, board.G8,
			[]board.Square{board.F8, board.G8}, []board.Square{board.E8, board.F8, board.G8}},
		{board.BlackQueenside, board.E8, board.A8, board.C8,
			[]board.Square{board.D8, board.C8, board.NewSquare(1, 7)}, []board.Square{board.E8, board.D8, board.C8}},
	},
}

// castlingMoves requires the right, both pieces on their origin squares, an
// empty path, and no attack on the king's start, transit or landing square.
func castlingMoves(p *board.Position, from board.Square, c board.Color) []board.Move {
	var moves []board.Move
	for _, cs := range castles[c] {
		if !p.Castling.Has(cs.right) || from != cs.king {
			continue
		}
		if p.Board[cs.rook] != (board.Piece{Color: c, Kind: board.Rook}) {
			continue
		}
		if !allEmpty(p, cs.empty) || anyAttacked(p, cs.safe, c.Other()) {
			continue
		}
		moves = append(moves, board.Move{From: cs.king, To: cs.kingTo})
	}
	return moves
}

func allEmpty(p *board.Position, squares []board.Square) bool {
	for _, sq := range squares {
		if !p.Board[sq].IsEmpty() {
			return false
		}
	}
	return true
}

func anyAttacked(p *board.Position, squares []board.Square, by board.Color) bool {
	for _, sq := range squares {
		if isAttacked(p, sq, by) {
			return true
		}
	}
	return false
}
