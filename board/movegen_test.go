package board_test

import (
	"testing"

	"github.com/arnoldlazare/corvidchess/board"
)

func TestPerftInitialPosition(t *testing.T) {
	b := board.StartingBoard()
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("Perft(%d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	b := board.NewBoard()
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := b.LoadFEN(fen); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if got := b.Perft(1); got != 48 {
		t.Fatalf("Perft(1) = %d, want 48", got)
	}
	if got := b.Perft(2); got != 2039 {
		t.Fatalf("Perft(2) = %d, want 2039", got)
	}
	if got := b.Perft(3); got != 97862 {
		t.Fatalf("Perft(3) = %d, want 97862", got)
	}
}

func TestPerftPosition3(t *testing.T) {
	b := board.NewBoard()
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	if err := b.LoadFEN(fen); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, c := range cases {
		if got := b.Perft(c.depth); got != c.want {
			t.Errorf("Perft(%d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftDividePartitionsTotal(t *testing.T) {
	b := board.StartingBoard()
	total := b.Perft(3)
	divide := b.PerftDivide(3)
	var sum uint64
	for _, n := range divide {
		sum += n
	}
	if sum != total {
		t.Errorf("PerftDivide(3) sums to %d, Perft(3) = %d", sum, total)
	}
	if len(divide) != 20 {
		t.Errorf("PerftDivide(3) has %d root moves, want 20", len(divide))
	}
}

func TestUndoMoveRestoresExactPosition(t *testing.T) {
	b := board.StartingBoard()
	before := b.FEN()
	var moves board.MoveList
	b.GenerateLegalMoves(&moves)
	for _, m := range moves.Slice() {
		if err := b.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", m, err)
		}
		if err := b.UndoMove(); err != nil {
			t.Fatalf("UndoMove after %s: %v", m, err)
		}
		if got := b.FEN(); got != before {
			t.Fatalf("after make/undo %s: FEN = %q, want %q", m, got, before)
		}
		if !b.Validate() {
			t.Fatalf("after make/undo %s: Validate() failed", m)
		}
	}
}

func TestHashMatchesFromScratchAfterEachMove(t *testing.T) {
	b := board.StartingBoard()
	var moves board.MoveList
	b.GenerateLegalMoves(&moves)
	for i, m := range moves.Slice() {
		if i > 8 {
			break
		}
		if err := b.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", m, err)
		}
		if b.Hash() != b.ComputeZobrist() {
			t.Errorf("after %s: incremental hash %x != recomputed hash %x", m, b.Hash(), b.ComputeZobrist())
		}
		if err := b.UndoMove(); err != nil {
			t.Fatalf("UndoMove: %v", err)
		}
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	b := board.NewBoard()
	// White rook on h1 can capture Black's rook on h8 down an open file,
	// which should strip Black's kingside right even though no Black move
	// touched the king or that rook directly.
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	if err := b.LoadFEN(fen); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	m, err := b.ParseMove("h1h8")
	if err != nil {
		t.Fatalf("ParseMove(h1h8): %v", err)
	}
	if err := b.MakeMove(m); err != nil {
		t.Fatalf("MakeMove(h1h8): %v", err)
	}
	if b.CastleRights()&board.CastleBlackK != 0 {
		t.Errorf("CastleBlackK should be lost after the h8 rook is captured")
	}
	if b.CastleRights()&board.CastleWhiteQ == 0 {
		t.Errorf("CastleWhiteQ should be unaffected by a kingside rook capture")
	}
}

func TestInCheckmateAndStalemate(t *testing.T) {
	b := board.NewBoard()
	// Fool's mate final position: Black delivers checkmate.
	if err := b.LoadFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if !b.InCheckmate() {
		t.Errorf("expected checkmate position to be InCheckmate()")
	}

	sb := board.NewBoard()
	// Classic stalemate: Black king on a8 has no legal move and is not in check.
	if err := sb.LoadFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if !sb.InStalemate() {
		t.Errorf("expected stalemate position to be InStalemate()")
	}
}

func TestDiagonalRayStopsAtNearestBlocker(t *testing.T) {
	// White king e5, own pawn f4 blocking the e5-h2 diagonal, Black bishop
	// behind it on h2. The pawn must shield the king: a ray walk that
	// truncates at the wrong end of this diagonal would see through it.
	b := board.NewBoard()
	if err := b.LoadFEN("k7/8/8/4K3/5P2/8/7b/8 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if b.InCheck() {
		t.Errorf("king should be shielded by the pawn on f4, got InCheck() = true")
	}

	// Remove the blocker: now the bishop does attack the king down the
	// same diagonal.
	b2 := board.NewBoard()
	if err := b2.LoadFEN("k7/8/8/4K3/8/8/7b/8 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if !b2.InCheck() {
		t.Errorf("expected the bishop on h2 to check the king on e5 with no blocker")
	}
}

func TestGameResult(t *testing.T) {
	mate := board.NewBoard()
	if err := mate.LoadFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if !mate.IsGameOver() {
		t.Errorf("expected checkmate position to report IsGameOver()")
	}
	result, ok := mate.GameResult()
	if !ok || result != 0.0 {
		t.Errorf("GameResult() = (%v, %v), want (0.0, true) for White checkmated", result, ok)
	}

	stalemate := board.NewBoard()
	if err := stalemate.LoadFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if !stalemate.IsDraw() {
		t.Errorf("expected stalemate position to report IsDraw()")
	}
	result, ok = stalemate.GameResult()
	if !ok || result != 0.5 {
		t.Errorf("GameResult() = (%v, %v), want (0.5, true) for stalemate", result, ok)
	}

	ongoing := board.StartingBoard()
	if ongoing.IsGameOver() {
		t.Errorf("starting position should not be IsGameOver()")
	}
	if _, ok := ongoing.GameResult(); ok {
		t.Errorf("expected GameResult() to report not-terminal for the starting position")
	}
}

func TestCanCastleReflectsRawRights(t *testing.T) {
	b := board.NewBoard()
	if err := b.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w Qk - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if b.CanCastleKingside(board.White) {
		t.Errorf("White kingside right was dropped from the FEN, want false")
	}
	if !b.CanCastleQueenside(board.White) {
		t.Errorf("White queenside right is present in the FEN, want true")
	}
	if !b.CanCastleKingside(board.Black) {
		t.Errorf("Black kingside right is present in the FEN, want true")
	}
	if b.CanCastleQueenside(board.Black) {
		t.Errorf("Black queenside right was dropped from the FEN, want false")
	}
}

func TestEnPassantCaptureAndUndo(t *testing.T) {
	b := board.NewBoard()
	if err := b.LoadFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	m, err := b.ParseMove("e5d6")
	if err != nil {
		t.Fatalf("ParseMove(e5d6): %v", err)
	}
	if !m.IsEnPassant() {
		t.Fatalf("expected e5d6 to be flagged as en passant")
	}
	before := b.FEN()
	if err := b.MakeMove(m); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if b.PieceAt(board.Square(27)) != board.NoPiece { // d5
		t.Errorf("captured pawn still present on d5 after en passant")
	}
	if err := b.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if got := b.FEN(); got != before {
		t.Errorf("after en passant make/undo: FEN = %q, want %q", got, before)
	}
}
