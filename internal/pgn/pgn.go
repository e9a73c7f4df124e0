// Package pgn renders a session's move history as a PGN document.
package pgn

import (
	"fmt"
	"strings"
	"time"

	"github.com/notnil/chess"
)

const (
	DateLayout = "2006.01.02"

	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultOngoing   = "*"
)

// Game is the input to Export. Moves are square-pair strings ("e2e4", "e7e8q")
// played from the standard starting position.
type Game struct {
	Event  string
	Site   string
	Date   time.Time
	Round  string
	White  string
	Black  string
	Result string
	Moves  []string
}

// Export replays the moves and writes the seven-tag roster followed by SAN movetext.
func Export(g Game) (string, error) {
	sans, err := toSAN(g.Moves)
	if err != nil {
		return "", err
	}

	result := g.Result
	if result == "" {
		result = ResultOngoing
	}
	date := "????.??.??"
	if !g.Date.IsZero() {
		date = g.Date.Format(DateLayout)
	}

	var sb strings.Builder
	writeTag(&sb, "Event", orUnknown(g.Event))
	writeTag(&sb, "Site", orUnknown(g.Site))
	writeTag(&sb, "Date", date)
	writeTag(&sb, "Round", orUnknown(g.Round))
	writeTag(&sb, "White", orUnknown(g.White))
	writeTag(&sb, "Black", orUnknown(g.Black))
	writeTag(&sb, "Result", result)
	sb.WriteByte('\n')

	tokens := make([]string, 0, len(sans)*3/2+1)
	for i, san := range sans {
		if i%2 == 0 {
			tokens = append(tokens, fmt.Sprintf("%d.", i/2+1))
		}
		tokens = append(tokens, san)
	}
	tokens = append(tokens, result)
	writeWrapped(&sb, tokens, 80)
	return sb.String(), nil
}

// toSAN decodes each move against the running position, the way the puzzle
// generator turned engine lines into readable notation.
func toSAN(moves []string) ([]string, error) {
	game := chess.NewGame()
	sans := make([]string, 0, len(moves))
	for i, text := range moves {
		pos := game.Position()
		move, err := chess.UCINotation{}.Decode(pos, text)
		if err != nil {
			return nil, fmt.Errorf("ply %d %q: %w", i+1, text, err)
		}
		if err := game.Move(move); err != nil {
			return nil, fmt.Errorf("ply %d %q: %w", i+1, text, err)
		}
		sans = append(sans, chess.AlgebraicNotation{}.Encode(pos, move))
	}
	return sans, nil
}

func writeTag(sb *strings.Builder, key, value string) {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	fmt.Fprintf(sb, "[%s \"%s\"]\n", key, value)
}

func writeWrapped(sb *strings.Builder, tokens []string, width int) {
	line := 0
	for _, tok := range tokens {
		if line > 0 && line+1+len(tok) > width {
			sb.WriteByte('\n')
			line = 0
		}
		if line > 0 {
			sb.WriteByte(' ')
			line++
		}
		sb.WriteString(tok)
		line += len(tok)
	}
	sb.WriteByte('\n')
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
