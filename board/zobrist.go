package board

import "math/rand"

// Zobrist keys are generated once from a fixed seed, so identical positions
// hash identically across runs and processes — handy when debugging a
// transposition table dump, though nothing in the spec requires it.
const zobristSeed = 0xC0FFEE15A5EED

var (
	zobristPiece  [15][64]uint64 // indexed by Piece (0..14; rows 0, 7 and 8 are filled but never used)
	zobristCastle [16]uint64
	zobristEPFile [8]uint64
	zobristSide   uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for p := Piece(0); p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = r.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = r.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEPFile[f] = r.Uint64()
	}
	zobristSide = r.Uint64()
}

// computeHash recomputes the Zobrist hash from scratch: piece/square keys
// for every occupied square, the castling-rights key for the full 4-bit
// mask, the en-passant file key (file only, never rank — required so that
// two positions differing only in which rank the mover started from still
// transpose), and the side-to-move key when Black is to move.
func (b *Board) computeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.pos.pieces[sq]; p != NoPiece {
			h ^= zobristPiece[p][sq]
		}
	}
	h ^= zobristCastle[b.pos.castleRights]
	if b.pos.enPassant != NoSquare {
		h ^= zobristEPFile[b.pos.enPassant.File()]
	}
	if b.pos.sideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// ComputeZobrist exposes the from-scratch hash computation for tests and
// callers that want to cross-check the incremental hash carried on Board.
func (b *Board) ComputeZobrist() uint64 { return b.computeHash() }
