package board

// Move is a from/to square pair with an optional promotion kind.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
}

var promotionLetters = map[Kind]string{
	Knight: "n",
	Bishop: "b",
	Rook:   "r",
	Queen:  "q",
}

// String returns square-pair notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	return m.From.String() + m.To.String() + promotionLetters[m.Promotion]
}
