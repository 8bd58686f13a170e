package board

import "math/bits"

// Precomputed attack tables, built once at package init from the same
// ray-walk primitives used to answer attack queries at runtime. Knight and
// king jumps and pawn attacks are small enough to tabulate outright; sliding
// pieces are handled by walking rays against the live occupancy instead of
// a magic-bitboard table, since a position's blockers change every move.
var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	pawnAttacks   [2][64]uint64

	// Each ray is ordered from the square outward; the first set bit hit by
	// a pointwise occupancy scan is the first blocker along that ray.
	rookRays   [64][4]uint64
	bishopRays [64][4]uint64
)

func init() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8

		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				knightAttacks[sq] |= sqBit(Square(nr*8 + nf))
			}
		}
		for _, d := range kingDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				kingAttacks[sq] |= sqBit(Square(nr*8 + nf))
			}
		}
		if f > 0 && r < 7 {
			pawnAttacks[White][sq] |= sqBit(Square((r+1)*8 + f - 1))
		}
		if f < 7 && r < 7 {
			pawnAttacks[White][sq] |= sqBit(Square((r+1)*8 + f + 1))
		}
		if f > 0 && r > 0 {
			pawnAttacks[Black][sq] |= sqBit(Square((r-1)*8 + f - 1))
		}
		if f < 7 && r > 0 {
			pawnAttacks[Black][sq] |= sqBit(Square((r-1)*8 + f + 1))
		}

		rookRays[sq] = buildRay(f, r, [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}})
		bishopRays[sq] = buildRay(f, r, [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}})
	}
}

func buildRay(f, r int, dirs [4][2]int) [4]uint64 {
	var rays [4]uint64
	for i, d := range dirs {
		nf, nr := f+d[0], r+d[1]
		for nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			rays[i] |= sqBit(Square(nr*8 + nf))
			nf += d[0]
			nr += d[1]
		}
	}
	return rays
}

// rookAttacks returns rook attacks from sq against occ by walking each of
// the four orthogonal rays and truncating at the first blocker.
func rookAttacks(sq Square, occ uint64) uint64 {
	return rayAttacks(sq, occ, rookRays, [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}})
}

// bishopAttacks returns bishop attacks from sq against occ.
func bishopAttacks(sq Square, occ uint64) uint64 {
	return rayAttacks(sq, occ, bishopRays, [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}})
}

// rayAttacks walks each of the four rays from sq outward and, where the ray
// hits at least one occupied square, keeps only the portion up to and
// including the nearest blocker (the slider can capture it but not see
// past it). Square index is rank*8+file, so rank is the dominant axis: a
// ray increases the square index whenever it moves to a higher rank
// (d[1] > 0), or stays on the same rank while moving to a higher file
// (d[1] == 0 && d[0] > 0) — e.g. the south-east diagonal {1,-1} decreases
// the index despite d[0]>0, since the rank step dominates. For an
// increasing-index ray the nearest blocker is the lowest set bit of the
// ray∩occ intersection; for a decreasing one it is the highest set bit.
func rayAttacks(sq Square, occ uint64, rays [64][4]uint64, dirs [4][2]int) uint64 {
	var attacks uint64
	for i, d := range dirs {
		ray := rays[sq][i]
		blockers := ray & occ
		if blockers == 0 {
			attacks |= ray
			continue
		}
		if d[1] > 0 || (d[1] == 0 && d[0] > 0) {
			first := bits.TrailingZeros64(blockers)
			attacks |= ray &^ (^uint64(0) << uint(first+1))
		} else {
			first := 63 - bits.LeadingZeros64(blockers)
			attacks |= ray &^ ((uint64(1) << uint(first)) - 1)
		}
	}
	return attacks
}

func queenAttacks(sq Square, occ uint64) uint64 {
	return rookAttacks(sq, occ) | bishopAttacks(sq, occ)
}

// IsSquareAttackedBy reports whether any piece of color `by` attacks sq
// given the current board occupancy.
func (b *Board) IsSquareAttackedBy(sq Square, by Color) bool {
	occ := b.Occupancy()
	if knightAttacks[sq]&b.pos.pieceBB[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.pos.pieceBB[by][King] != 0 {
		return true
	}
	// A pawn of `by` attacks sq if sq is one of the squares that an enemy
	// pawn sitting on sq would attack going the other direction.
	if pawnAttacks[by.Other()][sq]&b.pos.pieceBB[by][Pawn] != 0 {
		return true
	}
	rq := b.pos.pieceBB[by][Rook] | b.pos.pieceBB[by][Queen]
	if rookAttacks(sq, occ)&rq != 0 {
		return true
	}
	bq := b.pos.pieceBB[by][Bishop] | b.pos.pieceBB[by][Queen]
	if bishopAttacks(sq, occ)&bq != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck() bool {
	ks := b.KingSquare(b.pos.sideToMove)
	if ks == NoSquare {
		return false
	}
	return b.IsSquareAttackedBy(ks, b.pos.sideToMove.Other())
}

// GeneratePseudoMoves fills list with every pseudo-legal move for the side
// to move: legality with respect to leaving one's own king in check is not
// checked here; IsLegalMove / MakeMove filter that out.
func (b *Board) GeneratePseudoMoves(list *MoveList) {
	us := b.pos.sideToMove
	them := us.Other()
	occ := b.Occupancy()
	ownOcc := b.pos.occupancy[us]
	enemyOcc := b.pos.occupancy[them]

	b.generatePawnMoves(list, us, occ, enemyOcc)

	for bb := b.pos.pieceBB[us][Knight]; bb != 0; {
		from := Square(popLSB(&bb))
		targets := knightAttacks[from] &^ ownOcc
		b.addPieceMoves(list, from, targets, WhiteKnight.Type(), us)
	}
	for bb := b.pos.pieceBB[us][Bishop]; bb != 0; {
		from := Square(popLSB(&bb))
		targets := bishopAttacks(from, occ) &^ ownOcc
		b.addPieceMoves(list, from, targets, Bishop, us)
	}
	for bb := b.pos.pieceBB[us][Rook]; bb != 0; {
		from := Square(popLSB(&bb))
		targets := rookAttacks(from, occ) &^ ownOcc
		b.addPieceMoves(list, from, targets, Rook, us)
	}
	for bb := b.pos.pieceBB[us][Queen]; bb != 0; {
		from := Square(popLSB(&bb))
		targets := queenAttacks(from, occ) &^ ownOcc
		b.addPieceMoves(list, from, targets, Queen, us)
	}
	for bb := b.pos.pieceBB[us][King]; bb != 0; {
		from := Square(popLSB(&bb))
		targets := kingAttacks[from] &^ ownOcc
		b.addPieceMoves(list, from, targets, King, us)
	}

	b.generateCastlingMoves(list, us, occ)
}

func (b *Board) addPieceMoves(list *MoveList, from Square, targets uint64, pt PieceType, us Color) {
	piece := MakePiece(us, pt)
	for targets != 0 {
		to := Square(popLSB(&targets))
		captured := b.pos.pieces[to]
		flag := FlagNormal
		if captured != NoPiece {
			flag = FlagCapture
		}
		list.Add(NewMove(from, to, piece, captured, NoPiece, flag))
	}
}

func (b *Board) generatePawnMoves(list *MoveList, us Color, occ, enemyOcc uint64) {
	piece := MakePiece(us, Pawn)
	var startRank, promoRank, dir int
	if us == White {
		startRank, promoRank, dir = 1, 7, 1
	} else {
		startRank, promoRank, dir = 6, 0, -1
	}

	addPawnMove := func(from, to Square, captured Piece, flag MoveFlag) {
		if to.Rank() == promoRank {
			for _, promo := range []PieceType{Queen, Rook, Bishop, Knight} {
				list.Add(NewMove(from, to, piece, captured, MakePiece(us, promo), FlagPromotion))
			}
			return
		}
		list.Add(NewMove(from, to, piece, captured, NoPiece, flag))
	}

	for bb := b.pos.pieceBB[us][Pawn]; bb != 0; {
		from := Square(popLSB(&bb))
		f, r := from.File(), from.Rank()

		oneStep := Square(int(from) + dir*8)
		if oneStep >= 0 && oneStep < 64 && occ&sqBit(oneStep) == 0 {
			addPawnMove(from, oneStep, NoPiece, FlagNormal)
			if r == startRank {
				twoStep := Square(int(from) + dir*16)
				if occ&sqBit(twoStep) == 0 {
					list.Add(NewMove(from, twoStep, piece, NoPiece, NoPiece, FlagNormal))
				}
			}
		}

		for _, df := range []int{-1, 1} {
			nf := f + df
			if nf < 0 || nf > 7 {
				continue
			}
			to := Square(int(from) + dir*8 + df)
			if to < 0 || to >= 64 {
				continue
			}
			if enemyOcc&sqBit(to) != 0 {
				addPawnMove(from, to, b.pos.pieces[to], FlagCapture)
			} else if to == b.pos.enPassant {
				list.Add(NewMove(from, to, piece, MakePiece(us.Other(), Pawn), NoPiece, FlagEnPassant))
			}
		}
	}
}

func (b *Board) generateCastlingMoves(list *MoveList, us Color, occ uint64) {
	them := us.Other()
	if us == White {
		if b.pos.castleRights&CastleWhiteK != 0 &&
			occ&(sqBit(5)|sqBit(6)) == 0 &&
			!b.IsSquareAttackedBy(4, them) && !b.IsSquareAttackedBy(5, them) && !b.IsSquareAttackedBy(6, them) {
			list.Add(NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		if b.pos.castleRights&CastleWhiteQ != 0 &&
			occ&(sqBit(1)|sqBit(2)|sqBit(3)) == 0 &&
			!b.IsSquareAttackedBy(4, them) && !b.IsSquareAttackedBy(3, them) && !b.IsSquareAttackedBy(2, them) {
			list.Add(NewMove(4, 2, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		return
	}
	if b.pos.castleRights&CastleBlackK != 0 &&
		occ&(sqBit(61)|sqBit(62)) == 0 &&
		!b.IsSquareAttackedBy(60, them) && !b.IsSquareAttackedBy(61, them) && !b.IsSquareAttackedBy(62, them) {
		list.Add(NewMove(60, 62, BlackKing, NoPiece, NoPiece, FlagCastle))
	}
	if b.pos.castleRights&CastleBlackQ != 0 &&
		occ&(sqBit(57)|sqBit(58)|sqBit(59)) == 0 &&
		!b.IsSquareAttackedBy(60, them) && !b.IsSquareAttackedBy(59, them) && !b.IsSquareAttackedBy(58, them) {
		list.Add(NewMove(60, 58, BlackKing, NoPiece, NoPiece, FlagCastle))
	}
}

// GenerateCaptures fills list with pseudo-legal tactical moves only
// (captures, en passant, and capturing promotions), for use by quiescence
// search. Promotions that capture nothing are not included.
func (b *Board) GenerateCaptures(list *MoveList) {
	var all MoveList
	b.GeneratePseudoMoves(&all)
	for _, m := range all.Slice() {
		if m.IsTactical() {
			list.Add(m)
		}
	}
}

// GenerateLegalMoves fills list with every legal move for the side to move:
// pseudo-legal generation proposes, then each candidate is screened by
// making it, testing whether the mover's own king is attacked, and
// unmaking — rather than computing pins and checks up front.
func (b *Board) GenerateLegalMoves(list *MoveList) {
	var pseudo MoveList
	b.GeneratePseudoMoves(&pseudo)
	for _, m := range pseudo.Slice() {
		if b.IsLegalMove(m) {
			list.Add(m)
		}
	}
}

// IsLegalMove reports whether a pseudo-legal move keeps the mover's own
// king safe. It applies the move, tests, and always unwinds before
// returning.
func (b *Board) IsLegalMove(m Move) bool {
	mover := b.pos.sideToMove
	if !b.tryMove(m) {
		return false
	}
	inCheck := b.IsSquareAttackedBy(b.KingSquare(mover), mover.Other())
	b.UndoMove()
	return !inCheck
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, short-circuiting the first one found.
func (b *Board) HasLegalMoves() bool {
	var pseudo MoveList
	b.GeneratePseudoMoves(&pseudo)
	for _, m := range pseudo.Slice() {
		if b.IsLegalMove(m) {
			return true
		}
	}
	return false
}

// InCheckmate reports check with no legal reply.
func (b *Board) InCheckmate() bool { return b.InCheck() && !b.HasLegalMoves() }

// InStalemate reports no check and no legal reply.
func (b *Board) InStalemate() bool { return !b.InCheck() && !b.HasLegalMoves() }

// IsDraw reports stalemate, the 50-move rule, or threefold repetition —
// every drawing condition except insufficient material, which this engine
// does not detect.
func (b *Board) IsDraw() bool {
	return b.InStalemate() || b.IsDrawBy50() || b.IsDrawByRepetition()
}

// IsGameOver reports whether the position is terminal: checkmate or any
// drawing condition.
func (b *Board) IsGameOver() bool {
	return b.InCheckmate() || b.IsDraw()
}

// GameResult reports the terminal score from White's perspective: 1.0 if
// Black is checkmated, 0.0 if White is checkmated, 0.5 on any draw. The
// second return is false when the position is not yet terminal.
func (b *Board) GameResult() (float64, bool) {
	if b.InCheckmate() {
		if b.SideToMove() == White {
			return 0.0, true
		}
		return 1.0, true
	}
	if b.IsDraw() {
		return 0.5, true
	}
	return 0, false
}

// Perft counts leaf nodes reachable in exactly depth legal plies from the
// current position. Depth 0 counts the current position itself as one node.
func (b *Board) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var moves MoveList
	b.GeneratePseudoMoves(&moves)
	var nodes uint64
	for _, m := range moves.Slice() {
		if !b.tryMove(m) {
			continue
		}
		mover := b.pos.sideToMove.Other()
		if !b.IsSquareAttackedBy(b.KingSquare(mover), b.pos.sideToMove) {
			nodes += b.Perft(depth - 1)
		}
		b.UndoMove()
	}
	return nodes
}

// PerftDivide returns, for depth >= 1, the per-root-move leaf counts below
// that move at depth-1, keyed by UCI notation.
func (b *Board) PerftDivide(depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth < 1 {
		return result
	}
	var moves MoveList
	b.GeneratePseudoMoves(&moves)
	for _, m := range moves.Slice() {
		if !b.tryMove(m) {
			continue
		}
		mover := b.pos.sideToMove.Other()
		if !b.IsSquareAttackedBy(b.KingSquare(mover), b.pos.sideToMove) {
			result[m.String()] = b.Perft(depth - 1)
		}
		b.UndoMove()
	}
	return result
}
