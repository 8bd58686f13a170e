package search_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arnoldlazare/corvidchess/board"
	"github.com/arnoldlazare/corvidchess/search"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	b := board.StartingBoard()
	if got := search.Evaluate(b); got != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0 (material and PST are symmetric)", got)
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b := board.NewBoard()
	// White has an extra queen.
	if err := b.LoadFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if got := search.Evaluate(b); got <= 0 {
		t.Errorf("Evaluate() = %d, want > 0 with an extra queen", got)
	}
}

func TestFindBestMoveCapturesHangingQueen(t *testing.T) {
	b := board.NewBoard()
	if err := b.LoadFEN("rnb1kbnr/pppppppp/8/3q4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	e := search.NewEngine()
	move, _, _ := e.FindBestMoveByDepth(b, 2)
	want, err := b.ParseMove("e4d5")
	if err != nil {
		t.Fatalf("ParseMove(e4d5): %v", err)
	}
	if move != want {
		t.Errorf("FindBestMoveByDepth(2) = %s, want %s (e4xd5)", move, want)
	}
}

func TestFindBestMoveRespectsTimeLimit(t *testing.T) {
	b := board.StartingBoard()
	e := search.NewEngine()
	start := time.Now()
	move, _, depth := e.FindBestMoveByTime(b, 150*time.Millisecond)
	elapsed := time.Since(start)
	if move == board.NoMove {
		t.Fatalf("expected a move within the time budget")
	}
	if depth < 1 {
		t.Errorf("expected at least one completed iteration, got depth %d", depth)
	}
	if elapsed > 2*time.Second {
		t.Errorf("search overran its time budget by an unreasonable margin: %s", elapsed)
	}
}

func TestAnalyzeReturnsPrincipalVariation(t *testing.T) {
	b := board.StartingBoard()
	e := search.NewEngine()
	result := e.Analyze(b, 3)
	if result.BestMove == board.NoMove {
		t.Fatalf("expected a best move from the starting position")
	}
	if len(result.PV) == 0 {
		t.Errorf("expected a non-empty principal variation")
	}
}

func TestGetRankedMovesOrdersCapturesFirst(t *testing.T) {
	b := board.NewBoard()
	if err := b.LoadFEN("rnb1kbnr/pppppppp/8/3q4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	e := search.NewEngine()
	ranked := e.GetRankedMoves(b)
	if len(ranked) == 0 {
		t.Fatalf("expected legal moves")
	}
	top := ranked[0].Move
	if !top.IsTactical() {
		t.Errorf("expected the capture e4xd5 to rank first, got %s", top)
	}
}

func TestTranspositionTableMateScoreRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(1)
	const hash = uint64(0xABCDEF)
	tt.Store(hash, search.Checkmate-3, 5, search.BoundExact, board.NoMove)
	entry, ok := tt.Probe(hash, 5)
	if !ok {
		t.Fatalf("expected a hit after Store")
	}
	want := search.TTEntry{
		Key:   hash,
		Score: search.Checkmate - 3,
		Depth: 5,
		Bound: search.BoundExact,
		Move:  board.NoMove,
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("Probe() mismatch (-want +got):\n%s", diff)
	}
}
