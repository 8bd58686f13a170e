// Command corvid-perft runs the move generator's perft counter from the
// command line, for cross-checking against published perft tables and for
// steady-state node-rate timing.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/arnoldlazare/corvidchess/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to the starting position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-root-move node counts instead of a single total")
	repeat := flag.Int("repeat", 1, "repeat perft N times and report aggregate timing")
	label := flag.String("label", "", "optional label prefix for the one-line timing output")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b := board.NewBoard()
	if err := b.LoadFEN(*fen); err != nil {
		fmt.Fprintf(os.Stderr, "LoadFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := b.PerftDivide(*depth)
		type kv struct {
			move string
			n    uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].move < arr[j].move })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.move, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += b.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}
