package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

// match is one game from the starting position. Reset and SetMode swap in a
// fresh match instead of clearing this one.
type match struct {
	id       uuid.UUID
	started  time.Time
	position board.Position
	history  []board.Move
	seen     map[string]int
	state    State
	reason   rules.Termination
}

func newMatch() *match {
	start := board.StartingPosition()
	return &match{
		id:       uuid.New(),
		started:  time.Now(),
		position: start,
		history:  make([]board.Move, 0, 64),
		seen:     map[string]int{notation.RepetitionKey(start): 1},
		state:    AwaitingMove,
	}
}

// play commits a legal move and re-evaluates termination.
func (g *match) play(m board.Move, dr rules.DrawRules) {
	g.position = rules.Apply(g.position, m)
	g.history = append(g.history, m)

	key := notation.RepetitionKey(g.position)
	g.seen[key]++

	g.reason = rules.Evaluate(g.position, g.seen[key], dr)
	if g.reason != rules.Ongoing {
		g.state = GameOver
	} else {
		g.state = AwaitingMove
	}
}

func (g *match) historyText() []string {
	out := make([]string, len(g.history))
	for i, m := range g.history {
		out[i] = m.String()
	}
	return out
}
