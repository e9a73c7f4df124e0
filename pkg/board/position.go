package board

// Position is the full state of a game at one moment. It is a value: copying it
// copies the board, so the move applier can derive successors without aliasing.
type Position struct {
	Board          [64]Piece
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int
}

// EmptyPosition returns a position with no pieces, White to move.
func EmptyPosition() Position {
	return Position{
		SideToMove:     White,
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
	}
}

// StartingPosition returns the standard initial array.
func StartingPosition() Position {
	p := EmptyPosition()
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range backRank {
		p.Set(NewSquare(file, 0), Piece{White, kind})
		p.Set(NewSquare(file, 1), Piece{White, Pawn})
		p.Set(NewSquare(file, 6), Piece{Black, Pawn})
		p.Set(NewSquare(file, 7), Piece{Black, kind})
	}
	p.Castling = AllCastling
	return p
}

// At returns the piece on sq.
func (p *Position) At(sq Square) Piece {
	return p.Board[sq]
}

// Set places pc on sq. Setting NoPiece clears the square.
func (p *Position) Set(sq Square, pc Piece) {
	if pc.IsEmpty() {
		pc = NoPiece
	}
	p.Board[sq] = pc
}

// KingSquare finds the king of colour c.
func (p *Position) KingSquare(c Color) (Square, bool) {
	king := Piece{c, King}
	for sq := Square(0); sq < 64; sq++ {
		if p.Board[sq] == king {
			return sq, true
		}
	}
	return NoSquare, false
}
