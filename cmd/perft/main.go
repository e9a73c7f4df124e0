package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slices"

	"github.com/gmkornilov/chess-play-backend/pkg/notation"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

func main() {
	fen := flag.String("fen", notation.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := notation.Decode(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode FEN: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := rules.Divide(pos, *depth)
		counts := make(map[string]uint64, len(div))
		keys := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			counts[m.String()] = n
			keys = append(keys, m.String())
			sum += n
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := rules.Perft(pos, *depth)
	elapsed := time.Since(start)

	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("depth %d: %d nodes in %s (%.0f nps)\n", *depth, nodes, elapsed.Round(time.Millisecond), nps)
}
