// Package agent provides move suppliers for the agent side of a session: a UCI
// engine process, a uniform random mover, and a fallback chain of the two.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/freeeve/uci"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
)

// ErrNoMove is returned when a supplier has nothing to play.
var ErrNoMove = errors.New("no move available")

// Supplier mirrors the session's supplier contract.
type Supplier interface {
	Suggest(ctx context.Context, pos board.Position) (board.Move, error)
}

// EngineOptions configures the engine process.
type EngineOptions struct {
	Path  string
	Args  []string
	Depth int
	Hash  int
}

// Engine asks a UCI engine such as Stockfish for its best move.
type Engine struct {
	mu     sync.Mutex
	engine *uci.Engine
	depth  int
}

// NewEngine starts the engine process and configures it for single-line search.
func NewEngine(opts EngineOptions) (*Engine, error) {
	e, err := uci.NewEngine(opts.Path, opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("start engine %s: %w", opts.Path, err)
	}

	err = e.SetOptions(uci.Options{
		MultiPV: 1,
		Hash:    opts.Hash,
		Ponder:  false,
		OwnBook: true,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("configure engine: %w", err)
	}

	depth := opts.Depth
	if depth <= 0 {
		depth = 10
	}
	return &Engine{engine: e, depth: depth}, nil
}

// Suggest searches pos to the configured depth. The search itself cannot be
// interrupted, so on deadline the caller gets ctx.Err() and the late answer is
// dropped; the next search waits for the engine to go idle.
func (e *Engine) Suggest(ctx context.Context, pos board.Position) (board.Move, error) {
	type reply struct {
		move board.Move
		err  error
	}
	done := make(chan reply, 1)
	fen := notation.Encode(pos)

	go func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		m, err := e.bestMove(fen)
		done <- reply{m, err}
	}()

	select {
	case r := <-done:
		return r.move, r.err
	case <-ctx.Done():
		return board.Move{}, ctx.Err()
	}
}

func (e *Engine) bestMove(fen string) (board.Move, error) {
	if err := e.engine.SetFEN(fen); err != nil {
		return board.Move{}, fmt.Errorf("set position: %w", err)
	}
	results, err := e.engine.GoDepth(e.depth)
	if err != nil {
		return board.Move{}, fmt.Errorf("search: %w", err)
	}

	best := results.BestMove
	if best == "" && len(results.Results) > 0 && len(results.Results[0].BestMoves) > 0 {
		best = results.Results[0].BestMoves[0]
	}
	if best == "" || best == "(none)" {
		return board.Move{}, ErrNoMove
	}
	return notation.ParseMove(best)
}

// Close stops the engine process.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engine.Close()
}
