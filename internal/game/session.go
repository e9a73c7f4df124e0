// Package game holds the single active chess session: the authoritative
// position, the move history, the play mode and the turn state machine.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/gmkornilov/chess-play-backend/internal/pgn"
	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

// agentColor is the side the supplier plays in VsAgent mode.
const agentColor = board.Black

// MoveSupplier proposes a move for a position. The time budget is carried by
// the context deadline. Any returned move must be legal in pos.
type MoveSupplier interface {
	Suggest(ctx context.Context, pos board.Position) (board.Move, error)
}

// Options configures a Session.
type Options struct {
	Mode Mode
	// AgentTimeout bounds each supplier call; zero means no extra bound.
	AgentTimeout time.Duration
	// AgentDelay is waited before asking the supplier, to pace replies.
	AgentDelay time.Duration
	DrawRules  rules.DrawRules
	Logger     *log.Logger
}

// Session serialises all access to the active game. Callers construct one per
// process and share the pointer.
type Session struct {
	mu       sync.Mutex
	supplier MoveSupplier
	opts     Options
	mode     Mode
	match    *match
	log      *log.Logger
}

// New creates a session at the starting position. supplier may be nil when
// the session is only ever used in Human mode.
func New(supplier MoveSupplier, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		supplier: supplier,
		opts:     opts,
		mode:     opts.Mode,
		match:    newMatch(),
		log:      logger,
	}
}

// Snapshot returns the current game view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Reset starts a new game and keeps the mode.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = newMatch()
	s.log.Printf("game %s started, mode %s", s.match.id, s.mode)
}

// SetMode starts a new game in the given mode.
func (s *Session) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = newMatch()
	s.mode = mode
	s.log.Printf("game %s started, mode %s", s.match.id, s.mode)
}

// ProposeMove validates and plays a move given as square texts plus an optional
// promotion letter. An omitted promotion on a pawn reaching the last rank
// becomes a queen. In VsAgent mode the supplier's reply is played before
// returning. Nothing is changed when the move is rejected.
func (s *Session) ProposeMove(ctx context.Context, from, to, promotion string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.match
	switch g.state {
	case GameOver:
		return s.resultLocked(Over, ""), ErrGameOver
	case AwaitingAgentReply:
		return s.resultLocked(Illegal, ""), ErrAgentPending
	}

	m, err := notation.PairToMove(from, to, promotion)
	if err != nil {
		return s.resultLocked(Illegal, ""), err
	}
	m = withDefaultPromotion(g.position, m)
	if !rules.IsLegal(g.position, m) {
		return s.resultLocked(Illegal, ""), fmt.Errorf("%s in %q: %w", m, notation.Encode(g.position), ErrIllegalMove)
	}

	g.play(m, s.opts.DrawRules)
	if g.state == GameOver {
		s.log.Printf("game %s over after %s: %s\n%s", g.id, m, g.reason, s.snapshotLocked())
		return s.resultLocked(Over, ""), nil
	}

	if s.mode != VsAgent || g.position.SideToMove != agentColor {
		return s.resultLocked(Applied, ""), nil
	}

	g.state = AwaitingAgentReply
	reply, err := s.agentTurnLocked(ctx)
	if err != nil {
		return s.resultLocked(Applied, ""), err
	}
	if g.state == GameOver {
		return s.resultLocked(Over, reply), nil
	}
	return s.resultLocked(Applied, reply), nil
}

// RequestAgentMove retries a pending agent turn after a supplier failure.
func (s *Session) RequestAgentMove(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match.state != AwaitingAgentReply {
		return s.resultLocked(Illegal, ""), ErrNoAgentTurn
	}
	reply, err := s.agentTurnLocked(ctx)
	if err != nil {
		return s.resultLocked(Illegal, ""), err
	}
	if s.match.state == GameOver {
		return s.resultLocked(Over, reply), nil
	}
	return s.resultLocked(Applied, reply), nil
}

// agentTurnLocked asks the supplier for a move and plays it. On any failure the
// match is left untouched in AwaitingAgentReply.
func (s *Session) agentTurnLocked(ctx context.Context) (string, error) {
	g := s.match
	if s.supplier == nil {
		return "", fmt.Errorf("no supplier configured: %w", ErrSupplierFailed)
	}

	if s.opts.AgentDelay > 0 {
		timer := time.NewTimer(s.opts.AgentDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %v", ErrSupplierFailed, ctx.Err())
		}
	}

	actx := ctx
	if s.opts.AgentTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, s.opts.AgentTimeout)
		defer cancel()
	}

	pos := g.position
	m, err := s.supplier.Suggest(actx, pos)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(actx.Err(), context.DeadlineExceeded) {
			s.log.Printf("game %s: supplier timed out after %s", g.id, s.opts.AgentTimeout)
			return "", fmt.Errorf("%w: %v", ErrSupplierTimeout, err)
		}
		s.log.Printf("game %s: supplier error: %v", g.id, err)
		return "", fmt.Errorf("%w: %v", ErrSupplierFailed, err)
	}

	if !rules.IsLegal(pos, m) {
		violation := &ContractViolationError{Move: m, FEN: notation.Encode(pos)}
		s.log.Printf("DEFECT game %s: %v", g.id, violation)
		return "", violation
	}

	g.play(m, s.opts.DrawRules)
	if g.state == GameOver {
		s.log.Printf("game %s over after agent %s: %s\n%s", g.id, m, g.reason, s.snapshotLocked())
	}
	return m.String(), nil
}

// LegalMoves lists the current legal moves in square-pair notation, sorted.
func (s *Session) LegalMoves() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match.state == GameOver {
		return []string{}
	}
	moves := rules.LegalMoves(s.match.position)
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// PGN exports the current game.
func (s *Session) PGN() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.match
	black := "Human"
	if s.mode == VsAgent {
		black = "Agent"
	}
	return pgn.Export(pgn.Game{
		Event:  "Casual game",
		Site:   g.id.String(),
		Date:   g.started,
		Round:  "-",
		White:  "Human",
		Black:  black,
		Result: s.resultTokenLocked(),
		Moves:  g.historyText(),
	})
}

func (s *Session) resultTokenLocked() string {
	g := s.match
	if g.state != GameOver {
		return pgn.ResultOngoing
	}
	if winner, ok := rules.Winner(g.position, g.reason); ok {
		if winner == board.White {
			return pgn.ResultWhiteWins
		}
		return pgn.ResultBlackWins
	}
	return pgn.ResultDraw
}

func (s *Session) resultLocked(o Outcome, agentMove string) Result {
	return Result{Outcome: o, AgentMove: agentMove, Snapshot: s.snapshotLocked()}
}

func (s *Session) snapshotLocked() Snapshot {
	g := s.match
	snap := Snapshot{
		ID:      g.id.String(),
		FEN:     notation.Encode(g.position),
		History: g.historyText(),
		Mode:    s.mode.String(),
		State:   g.state.String(),
		Turn:    g.position.SideToMove.String(),
		InCheck: rules.IsInCheck(g.position, g.position.SideToMove),
	}
	if g.state == GameOver {
		snap.Reason = g.reason.String()
		if winner, ok := rules.Winner(g.position, g.reason); ok {
			snap.Winner = winner.String()
		}
	}
	return snap
}

// withDefaultPromotion fills in a queen when a pawn reaches the last rank
// without a promotion letter.
func withDefaultPromotion(p board.Position, m board.Move) board.Move {
	if m.Promotion != board.NoKind {
		return m
	}
	if p.Board[m.From].Kind == board.Pawn && (m.To.Rank() == 0 || m.To.Rank() == 7) {
		m.Promotion = board.Queen
	}
	return m
}
