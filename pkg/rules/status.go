package rules

import "github.com/gmkornilov/chess-play-backend/pkg/board"

// Termination is the reason a game ended, or Ongoing.
type Termination int

const (
	Ongoing Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoveRule
	FivefoldRepetition
	FiftyMoveRule
	ThreefoldRepetition
)

func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient_material"
	case SeventyFiveMoveRule:
		return "seventyfive_moves"
	case FivefoldRepetition:
		return "fivefold_repetition"
	case FiftyMoveRule:
		return "fifty_moves"
	case ThreefoldRepetition:
		return "threefold_repetition"
	}
	return "ongoing"
}

// IsDraw reports whether t ends the game without a winner.
func (t Termination) IsDraw() bool {
	return t != Ongoing && t != Checkmate
}

// DrawRules selects which draw conditions end a game beyond mate and stalemate.
// Automatic covers insufficient material, the 75-move rule and fivefold
// repetition. Claim adds the 50-move rule and threefold repetition, applied
// as if a player always claimed them.
type DrawRules struct {
	Automatic bool
	Claim     bool
}

// Status reports checkmate or stalemate for the side to move, else Ongoing.
func Status(p board.Position) Termination {
	if HasLegalMoves(p) {
		return Ongoing
	}
	if IsInCheck(p, p.SideToMove) {
		return Checkmate
	}
	return Stalemate
}

// Evaluate extends Status with the enabled draw rules. repetitions is how many
// times p has occurred in the game, counting this occurrence.
func Evaluate(p board.Position, repetitions int, dr DrawRules) Termination {
	status := Status(p)
	if status != Ongoing {
		return status
	}
	if dr.Automatic {
		if HasInsufficientMaterial(p) {
			return InsufficientMaterial
		}
		if p.HalfmoveClock >= 150 {
			return SeventyFiveMoveRule
		}
		if repetitions >= 5 {
			return FivefoldRepetition
		}
	}
	if dr.Claim {
		if p.HalfmoveClock >= 100 {
			return FiftyMoveRule
		}
		if repetitions >= 3 {
			return ThreefoldRepetition
		}
	}
	return Ongoing
}

// HasInsufficientMaterial reports whether neither side can ever mate:
// K v K, K+B v K, K+N v K, and K+B v K+B with bishops on one square colour.
func HasInsufficientMaterial(p board.Position) bool {
	var minors [2][]board.Kind
	var bishopLight [2]bool

	for sq := board.Square(0); sq < 64; sq++ {
		pc := p.Board[sq]
		switch pc.Kind {
		case board.NoKind, board.King:
			continue
		case board.Pawn, board.Rook, board.Queen:
			return false
		}
		minors[pc.Color] = append(minors[pc.Color], pc.Kind)
		if pc.Kind == board.Bishop {
			bishopLight[pc.Color] = (sq.File()+sq.Rank())%2 == 1
		}
	}

	white, black := minors[board.White], minors[board.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1, len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		return white[0] == board.Bishop && black[0] == board.Bishop &&
			bishopLight[board.White] == bishopLight[board.Black]
	}
	return false
}

// Winner returns the side that delivered mate. ok is false for any other termination.
func Winner(p board.Position, t Termination) (c board.Color, ok bool) {
	if t != Checkmate {
		return board.White, false
	}
	return p.SideToMove.Other(), true
}
