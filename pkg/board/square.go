package board

// Square is a board coordinate, rank*8 + file, a1 = 0 and h8 = 63.
// Integer order is the canonical iteration order.
type Square int8

// NoSquare marks an absent square, e.g. no en-passant target.
const NoSquare Square = -1

// Named squares used by castling.
const (
	A1 Square = 0
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// NewSquare builds a square from zero-based file and rank.
// It returns NoSquare when either coordinate is off the board.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// File returns the zero-based file, 0 for the a-file.
func (s Square) File() int {
	return int(s) % 8
}

// Rank returns the zero-based rank, 0 for the first rank.
func (s Square) Rank() int {
	return int(s) / 8
}

// Valid reports whether s lies on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < 64
}

// Offset returns the square df files and dr ranks away, and false when it falls off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	sq := NewSquare(s.File()+df, s.Rank()+dr)
	return sq, sq != NoSquare
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}
