package search

import (
	"math/bits"

	"github.com/arnoldlazare/corvidchess/board"
)

// Phase weights per non-pawn piece type, summed over both colors and
// clamped to 24 before scaling to the [0,256] interpolation range used by
// pstValue. 24 is the material weight of a full board: 4 knights + 4
// bishops + 4 rooks*2 + 2 queens*4 = 4+4+8+8 = 24.
const (
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	maxPhase    = 24
)

// GamePhase computes the interpolation phase for pos: 256 when at least as
// much non-pawn material remains as a full starting position, scaling down
// toward 0 as pieces come off the board.
func GamePhase(pos *board.Board) int {
	phase := 0
	phase += bits.OnesCount64(pos.PieceBB(board.White, board.Knight)|pos.PieceBB(board.Black, board.Knight)) * knightPhase
	phase += bits.OnesCount64(pos.PieceBB(board.White, board.Bishop)|pos.PieceBB(board.Black, board.Bishop)) * bishopPhase
	phase += bits.OnesCount64(pos.PieceBB(board.White, board.Rook)|pos.PieceBB(board.Black, board.Rook)) * rookPhase
	phase += bits.OnesCount64(pos.PieceBB(board.White, board.Queen)|pos.PieceBB(board.Black, board.Queen)) * queenPhase
	if phase > maxPhase {
		phase = maxPhase
	}
	return phase * 256 / maxPhase
}

// Evaluate returns a static score for pos from the side-to-move's
// perspective: positive favors the mover. It does not special-case
// checkmate or stalemate — callers (negamax/quiescence) override those at
// the search level where ply is known, per the mate-score convention.
func Evaluate(pos *board.Board) int {
	phase := GamePhase(pos)
	white := materialAndPST(pos, board.White, phase)
	black := materialAndPST(pos, board.Black, phase)
	score := white - black
	if pos.SideToMove() == board.Black {
		return -score
	}
	return score
}

func materialAndPST(pos *board.Board, c board.Color, phase int) int {
	total := 0
	for pt := board.Pawn; pt <= board.King; pt++ {
		bb := pos.PieceBB(c, pt)
		total += bits.OnesCount64(bb) * pieceValue[pt]
		for bb != 0 {
			sq := board.Square(bits.TrailingZeros64(bb))
			bb &= bb - 1
			total += pstValue(pt, c, sq, phase)
		}
	}
	return total
}
