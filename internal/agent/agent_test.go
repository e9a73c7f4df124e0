package agent

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

type fixedSupplier struct {
	move  board.Move
	err   error
	calls int
}

func (f *fixedSupplier) Suggest(ctx context.Context, pos board.Position) (board.Move, error) {
	f.calls++
	return f.move, f.err
}

func TestRandomReturnsLegalMoves(t *testing.T) {
	r := NewRandom(1)
	p := board.StartingPosition()
	for i := 0; i < 60; i++ {
		m, err := r.Suggest(context.Background(), p)
		if errors.Is(err, ErrNoMove) {
			break
		}
		if err != nil {
			t.Fatalf("Suggest error: %v", err)
		}
		if !rules.IsLegal(p, m) {
			t.Fatalf("Random suggested illegal %s in %s", m, notation.Encode(p))
		}
		p = rules.Apply(p, m)
	}
}

func TestRandomIsDeterministicForSeed(t *testing.T) {
	a, b := NewRandom(99), NewRandom(99)
	p := board.StartingPosition()
	for i := 0; i < 10; i++ {
		ma, _ := a.Suggest(context.Background(), p)
		mb, _ := b.Suggest(context.Background(), p)
		if ma != mb {
			t.Fatalf("same seed diverged at ply %d: %s vs %s", i, ma, mb)
		}
		p = rules.Apply(p, ma)
	}
}

func TestRandomNoMoves(t *testing.T) {
	p, err := notation.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRandom(1).Suggest(context.Background(), p); !errors.Is(err, ErrNoMove) {
		t.Errorf("Suggest in stalemate error = %v, want ErrNoMove", err)
	}
}

func TestRandomHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRandom(1).Suggest(ctx, board.StartingPosition()); !errors.Is(err, context.Canceled) {
		t.Errorf("Suggest error = %v, want context.Canceled", err)
	}
}

func TestFallback(t *testing.T) {
	e2e4, _ := notation.ParseMove("e2e4")
	d2d4, _ := notation.ParseMove("d2d4")

	t.Run("primary succeeds", func(t *testing.T) {
		primary := &fixedSupplier{move: e2e4}
		secondary := &fixedSupplier{move: d2d4}
		f := &Fallback{Primary: primary, Secondary: secondary}
		m, err := f.Suggest(context.Background(), board.StartingPosition())
		if err != nil || m != e2e4 {
			t.Errorf("Suggest = %v, %v; want e2e4", m, err)
		}
		if secondary.calls != 0 {
			t.Error("secondary called although primary succeeded")
		}
	})

	t.Run("primary fails", func(t *testing.T) {
		primary := &fixedSupplier{err: errors.New("engine crashed")}
		secondary := &fixedSupplier{move: d2d4}
		f := &Fallback{Primary: primary, Secondary: secondary}
		m, err := f.Suggest(context.Background(), board.StartingPosition())
		if err != nil || m != d2d4 {
			t.Errorf("Suggest = %v, %v; want d2d4", m, err)
		}
	})

	t.Run("expired context is not retried", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()
		primary := &fixedSupplier{err: ctx.Err()}
		secondary := &fixedSupplier{move: d2d4}
		f := &Fallback{Primary: primary, Secondary: secondary}
		if _, err := f.Suggest(ctx, board.StartingPosition()); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Suggest error = %v, want DeadlineExceeded", err)
		}
		if secondary.calls != 0 {
			t.Error("secondary called after the deadline")
		}
	})
}

// Runs only when a UCI engine is available, e.g. STOCKFISH_PATH=/usr/bin/stockfish.
func TestEngineSuggestsLegalMove(t *testing.T) {
	path := os.Getenv("STOCKFISH_PATH")
	if path == "" {
		t.Skip("STOCKFISH_PATH not set")
	}
	e, err := NewEngine(EngineOptions{Path: path, Depth: 6, Hash: 16})
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := board.StartingPosition()
	m, err := e.Suggest(ctx, p)
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	if !rules.IsLegal(p, m) {
		t.Errorf("engine suggested illegal move %s", m)
	}
}
