package agent

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

// Random picks uniformly among the legal moves.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom seeds the generator; seed 0 uses the clock.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Suggest(ctx context.Context, pos board.Position) (board.Move, error) {
	if err := ctx.Err(); err != nil {
		return board.Move{}, err
	}
	moves := rules.LegalMoves(pos)
	if len(moves) == 0 {
		return board.Move{}, ErrNoMove
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return moves[r.rng.Intn(len(moves))], nil
}

// Fallback tries Primary and, when it fails while the context is still live,
// asks Secondary.
type Fallback struct {
	Primary   Supplier
	Secondary Supplier
	Logger    *log.Logger
}

func (f *Fallback) Suggest(ctx context.Context, pos board.Position) (board.Move, error) {
	m, err := f.Primary.Suggest(ctx, pos)
	if err == nil {
		return m, nil
	}
	if ctx.Err() != nil {
		return board.Move{}, err
	}
	if f.Logger != nil {
		f.Logger.Printf("primary supplier failed, falling back: %v", err)
	}
	return f.Secondary.Suggest(ctx, pos)
}
