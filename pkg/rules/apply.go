package rules

import "github.com/gmkornilov/chess-play-backend/pkg/board"

// rightsLostAt lists the castling rights that vanish once anything moves from,
// or is captured on, the given square.
var rightsLostAt = map[board.Square]board.CastlingRights{
	board.E1: board.WhiteKingside | board.WhiteQueenside,
	board.H1: board.WhiteKingside,
	board.A1: board.WhiteQueenside,
	board.E8: board.BlackKingside | board.BlackQueenside,
	board.H8: board.BlackKingside,
	board.A8: board.BlackQueenside,
}

// Apply returns the position after m. The caller must have checked
// IsLegal(p, m); an illegal move yields an unspecified position.
func Apply(p board.Position, m board.Move) board.Position {
	next := p
	pc := next.Board[m.From]
	captured := Captured(p, m)
	isPawn := pc.Kind == board.Pawn

	next.Board[m.From] = board.NoPiece

	if isPawn && m.To == p.EnPassant && p.Board[m.To].IsEmpty() && m.From.File() != m.To.File() {
		next.Board[board.NewSquare(m.To.File(), m.From.Rank())] = board.NoPiece
	}

	if pc.Kind == board.King && abs(m.To.File()-m.From.File()) == 2 {
		rookFrom, rookTo := board.NewSquare(7, m.From.Rank()), board.NewSquare(5, m.From.Rank())
		if m.To.File() < m.From.File() {
			rookFrom, rookTo = board.NewSquare(0, m.From.Rank()), board.NewSquare(3, m.From.Rank())
		}
		next.Board[rookTo] = next.Board[rookFrom]
		next.Board[rookFrom] = board.NoPiece
	}

	if m.Promotion != board.NoKind {
		pc.Kind = m.Promotion
	}
	next.Board[m.To] = pc

	next.Castling = next.Castling.Without(rightsLostAt[m.From] | rightsLostAt[m.To])

	next.EnPassant = board.NoSquare
	if isPawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		next.EnPassant = board.NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if isPawn || !captured.IsEmpty() {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if p.SideToMove == board.Black {
		next.FullmoveNumber++
	}
	next.SideToMove = p.SideToMove.Other()
	return next
}

// Captured returns the piece m removes from the board, or NoPiece.
func Captured(p board.Position, m board.Move) board.Piece {
	if pc := p.Board[m.To]; !pc.IsEmpty() {
		return pc
	}
	if p.Board[m.From].Kind == board.Pawn && m.To == p.EnPassant && m.From.File() != m.To.File() {
		return p.Board[board.NewSquare(m.To.File(), m.From.Rank())]
	}
	return board.NoPiece
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
