package rules

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
)

// Cross-checks the generator against an independent bitboard implementation
// on every position of a set of random games.
func TestLegalMovesMatchDragontooth(t *testing.T) {
	starts := []string{
		notation.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	rng := rand.New(rand.NewSource(2024))

	for _, fen := range starts {
		for game := 0; game < 10; game++ {
			p := mustDecode(t, fen)
			for ply := 0; ply < 100; ply++ {
				ours := LegalMoves(p)
				compareWithOracle(t, p, ours)
				if len(ours) == 0 {
					break
				}
				p = Apply(p, ours[rng.Intn(len(ours))])
			}
		}
	}
}

func compareWithOracle(t *testing.T, p board.Position, ours []board.Move) {
	t.Helper()
	fen := notation.Encode(p)

	got := make([]string, 0, len(ours))
	for _, m := range ours {
		got = append(got, m.String())
	}
	slices.Sort(got)

	oracle := dragontoothmg.ParseFen(fen)
	theirs := oracle.GenerateLegalMoves()
	want := make([]string, 0, len(theirs))
	for _, m := range theirs {
		want = append(want, m.String())
	}
	slices.Sort(want)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legal moves differ in %s (-oracle +ours):\n%s", fen, diff)
	}
}
