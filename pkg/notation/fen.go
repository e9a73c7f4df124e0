// Package notation converts positions to and from FEN and moves to and from
// square-pair text. It checks syntax only; legality belongs to package rules.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrMalformedNotation is wrapped by every parse failure in this package.
var ErrMalformedNotation = errors.New("malformed notation")

var kindLetters = map[board.Kind]byte{
	board.Pawn:   'p',
	board.Knight: 'n',
	board.Bishop: 'b',
	board.Rook:   'r',
	board.Queen:  'q',
	board.King:   'k',
}

var letterKinds = map[byte]board.Kind{
	'p': board.Pawn,
	'n': board.Knight,
	'b': board.Bishop,
	'r': board.Rook,
	'q': board.Queen,
	'k': board.King,
}

var castlingLetters = []struct {
	letter byte
	right  board.CastlingRights
}{
	{'K', board.WhiteKingside},
	{'Q', board.WhiteQueenside},
	{'k', board.BlackKingside},
	{'q', board.BlackQueenside},
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrMalformedNotation)
}

// Encode renders p as a six-field FEN string.
func Encode(p board.Position) string {
	var sb strings.Builder
	writePlacement(&sb, &p)
	sb.WriteByte(' ')
	writeState(&sb, &p)
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}

// RepetitionKey returns the FEN fields that identify a position for
// repetition counting: placement, side, castling and en passant.
func RepetitionKey(p board.Position) string {
	var sb strings.Builder
	writePlacement(&sb, &p)
	sb.WriteByte(' ')
	writeState(&sb, &p)
	return sb.String()
}

func writePlacement(sb *strings.Builder, p *board.Position) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.Board[board.NewSquare(file, rank)]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := kindLetters[pc.Kind]
			if pc.Color == board.White {
				letter = byte(unicode.ToUpper(rune(letter)))
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

func writeState(sb *strings.Builder, p *board.Position) {
	if p.SideToMove == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	if p.Castling == board.NoCastling {
		sb.WriteByte('-')
	}
	for _, cl := range castlingLetters {
		if p.Castling.Has(cl.right) {
			sb.WriteByte(cl.letter)
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
}

// Decode parses a FEN string. The two clock fields may be omitted and then
// default to "0 1".
func Decode(fen string) (board.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 4 && len(parts) != 6 {
		return board.Position{}, malformed("fen %q: want 4 or 6 fields, got %d", fen, len(parts))
	}

	p := board.EmptyPosition()
	if err := parsePlacement(&p, parts[0]); err != nil {
		return board.Position{}, err
	}

	switch parts[1] {
	case "w":
		p.SideToMove = board.White
	case "b":
		p.SideToMove = board.Black
	default:
		return board.Position{}, malformed("side to move %q", parts[1])
	}

	castling, err := parseCastling(parts[2])
	if err != nil {
		return board.Position{}, err
	}
	p.Castling = castling

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return board.Position{}, err
		}
		wantRank := 5
		if p.SideToMove == board.Black {
			wantRank = 2
		}
		if sq.Rank() != wantRank {
			return board.Position{}, malformed("en passant square %s with %s to move", sq, p.SideToMove)
		}
		p.EnPassant = sq
	}

	if len(parts) == 6 {
		if p.HalfmoveClock, err = strconv.Atoi(parts[4]); err != nil || p.HalfmoveClock < 0 {
			return board.Position{}, malformed("halfmove clock %q", parts[4])
		}
		if p.FullmoveNumber, err = strconv.Atoi(parts[5]); err != nil || p.FullmoveNumber < 1 {
			return board.Position{}, malformed("fullmove number %q", parts[5])
		}
	}
	return p, nil
}

func parsePlacement(p *board.Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return malformed("placement %q: want 8 ranks, got %d", field, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind, ok := letterKinds[byte(unicode.ToLower(rune(c)))]
			if !ok {
				return malformed("placement %q: piece letter %q", field, c)
			}
			if file > 7 {
				return malformed("placement %q: rank %d overflows", field, rank+1)
			}
			color := board.Black
			if unicode.IsUpper(rune(c)) {
				color = board.White
			}
			p.Set(board.NewSquare(file, rank), board.Piece{Color: color, Kind: kind})
			file++
		}
		if file != 8 {
			return malformed("placement %q: rank %d covers %d files", field, rank+1, file)
		}
	}
	return nil
}

func parseCastling(field string) (board.CastlingRights, error) {
	if field == "-" {
		return board.NoCastling, nil
	}
	rights := board.NoCastling
	for i := 0; i < len(field); i++ {
		found := false
		for _, cl := range castlingLetters {
			if field[i] == cl.letter && !rights.Has(cl.right) {
				rights |= cl.right
				found = true
				break
			}
		}
		if !found {
			return board.NoCastling, malformed("castling rights %q", field)
		}
	}
	return rights, nil
}
