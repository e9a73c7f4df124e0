package notation

import (
	"strings"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
)

// ParseSquare parses a file letter followed by a rank digit, e.g. "e2".
func ParseSquare(text string) (board.Square, error) {
	if len(text) != 2 {
		return board.NoSquare, malformed("square %q", text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return board.NoSquare, malformed("square %q", text)
	}
	return board.NewSquare(int(file-'a'), int(rank-'1')), nil
}

// ParsePromotion parses a promotion letter, case-insensitive. An empty letter
// means no promotion; defaulting to a queen is up to the caller.
func ParsePromotion(letter string) (board.Kind, error) {
	switch strings.ToLower(letter) {
	case "":
		return board.NoKind, nil
	case "n":
		return board.Knight, nil
	case "b":
		return board.Bishop, nil
	case "r":
		return board.Rook, nil
	case "q":
		return board.Queen, nil
	}
	return board.NoKind, malformed("promotion %q", letter)
}

// PairToMove builds a move from its square texts and optional promotion letter.
func PairToMove(from, to, promotion string) (board.Move, error) {
	f, err := ParseSquare(from)
	if err != nil {
		return board.Move{}, err
	}
	t, err := ParseSquare(to)
	if err != nil {
		return board.Move{}, err
	}
	k, err := ParsePromotion(promotion)
	if err != nil {
		return board.Move{}, err
	}
	return board.Move{From: f, To: t, Promotion: k}, nil
}

// MoveToPair splits m into its square texts and promotion letter ("" if none).
func MoveToPair(m board.Move) (from, to, promotion string) {
	from, to = m.From.String(), m.To.String()
	return from, to, m.String()[len(from)+len(to):]
}

// ParseMove parses concatenated square-pair text such as "e2e4" or "a7a8q",
// the form UCI engines reply with.
func ParseMove(text string) (board.Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return board.Move{}, malformed("move %q", text)
	}
	return PairToMove(text[0:2], text[2:4], text[4:])
}
