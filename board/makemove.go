package board

// tryMove applies a pseudo-legal move unconditionally: it does not check
// whether the mover's own king ends up attacked. Callers that need legality
// (IsLegalMove, GenerateLegalMoves, Perft) test king safety themselves and
// call UndoMove when a move turns out illegal. It always succeeds for any
// move drawn from GeneratePseudoMoves.
func (b *Board) tryMove(m Move) bool {
	from, to := m.From(), m.To()
	piece := m.Piece()
	us := piece.Color()

	st := MoveUndo{
		move:           m,
		castleRights:   b.pos.castleRights,
		enPassant:      b.pos.enPassant,
		halfmoveClock:  b.pos.halfmoveClock,
		fullmoveNumber: b.pos.fullmoveNumber,
		hash:           b.pos.hash,
		rookFrom:       NoSquare,
		rookTo:         NoSquare,
	}

	b.pos.hash ^= zobristCastle[b.pos.castleRights]
	if b.pos.enPassant != NoSquare {
		b.pos.hash ^= zobristEPFile[b.pos.enPassant.File()]
	}

	switch m.Flag() {
	case FlagEnPassant:
		capSq := Square(int(to) - pawnForward(us))
		st.captured = b.removePiece(capSq)
		b.removePiece(from)
		b.addPiece(to, piece)
	case FlagCastle:
		b.removePiece(from)
		b.addPiece(to, piece)
		rookFrom, rookTo := castleRookSquares(to)
		st.rookFrom, st.rookTo = rookFrom, rookTo
		rook := b.removePiece(rookFrom)
		b.addPiece(rookTo, rook)
	case FlagPromotion:
		if captured := b.pos.pieces[to]; captured != NoPiece {
			st.captured = b.removePiece(to)
		}
		b.removePiece(from)
		b.addPiece(to, m.Promotion())
	default:
		if captured := b.pos.pieces[to]; captured != NoPiece {
			st.captured = b.removePiece(to)
		}
		b.removePiece(from)
		b.addPiece(to, piece)
	}

	b.pos.castleRights &^= castleRightsLost(from) | castleRightsLost(to)
	b.pos.hash ^= zobristCastle[b.pos.castleRights]

	b.pos.enPassant = NoSquare
	if piece.Type() == Pawn {
		delta := int(to) - int(from)
		if delta == 16 || delta == -16 {
			ep := Square(int(from) + pawnForward(us))
			if pawnAttacks[us][ep]&b.pos.pieceBB[us.Other()][Pawn] != 0 {
				b.pos.enPassant = ep
			}
		}
	}
	if b.pos.enPassant != NoSquare {
		b.pos.hash ^= zobristEPFile[b.pos.enPassant.File()]
	}

	if piece.Type() == Pawn || st.captured != NoPiece {
		b.pos.halfmoveClock = 0
	} else {
		b.pos.halfmoveClock++
	}
	if us == Black {
		b.pos.fullmoveNumber++
	}

	b.pos.sideToMove = us.Other()
	b.pos.hash ^= zobristSide

	b.undo = append(b.undo, st)
	return true
}

// pawnForward returns +8 for White (toward rank 8) and -8 for Black.
func pawnForward(c Color) int {
	if c == White {
		return 8
	}
	return -8
}

// castleRookSquares returns the rook's from/to squares for a castling move
// whose king destination is `to`.
func castleRookSquares(to Square) (Square, Square) {
	switch to {
	case 6:
		return 7, 5
	case 2:
		return 0, 3
	case 62:
		return 63, 61
	case 58:
		return 56, 59
	}
	return NoSquare, NoSquare
}

// castleRightsLost reports which castling rights are permanently revoked by
// a piece leaving or arriving on sq (king start squares, rook start
// squares, captured-rook squares all qualify).
func castleRightsLost(sq Square) CastleRights {
	switch sq {
	case 4:
		return CastleWhiteK | CastleWhiteQ
	case 0:
		return CastleWhiteQ
	case 7:
		return CastleWhiteK
	case 60:
		return CastleBlackK | CastleBlackQ
	case 56:
		return CastleBlackQ
	case 63:
		return CastleBlackK
	}
	return 0
}

// MakeMove applies m unless doing so would leave the mover's own king
// attacked; in that case it unmakes m, leaving the Board untouched, and
// returns *IllegalMoveError. It does not check that m is one of the
// position's pseudo-legal moves: any other move value is applied as given.
func (b *Board) MakeMove(m Move) error {
	mover := b.pos.sideToMove
	if !b.tryMove(m) {
		return &IllegalMoveError{Move: m}
	}
	if b.IsSquareAttackedBy(b.KingSquare(mover), mover.Other()) {
		b.UndoMove()
		return &IllegalMoveError{Move: m}
	}
	return nil
}

// UndoMove reverses the most recent MakeMove/tryMove, restoring the
// position bit-for-bit from the incrementally-saved Zobrist hash rather
// than recomputing it.
func (b *Board) UndoMove() error {
	n := len(b.undo)
	if n == 0 {
		return &NoMoveToUndoError{}
	}
	st := b.undo[n-1]
	b.undo = b.undo[:n-1]
	m := st.move

	b.pos.sideToMove = b.pos.sideToMove.Other()
	us := b.pos.sideToMove
	from, to := m.From(), m.To()

	switch m.Flag() {
	case FlagEnPassant:
		b.removePiece(to)
		b.addPiece(from, m.Piece())
		capSq := Square(int(to) - pawnForward(us))
		b.addPiece(capSq, st.captured)
	case FlagCastle:
		b.removePiece(to)
		b.addPiece(from, m.Piece())
		rook := b.removePiece(st.rookTo)
		b.addPiece(st.rookFrom, rook)
	case FlagPromotion:
		b.removePiece(to)
		b.addPiece(from, m.Piece())
		if st.captured != NoPiece {
			b.addPiece(to, st.captured)
		}
	default:
		b.removePiece(to)
		b.addPiece(from, m.Piece())
		if st.captured != NoPiece {
			b.addPiece(to, st.captured)
		}
	}

	b.pos.castleRights = st.castleRights
	b.pos.enPassant = st.enPassant
	b.pos.halfmoveClock = st.halfmoveClock
	b.pos.fullmoveNumber = st.fullmoveNumber
	b.pos.hash = st.hash
	return nil
}

// IsDrawBy50 reports the 50-move (100-halfmove) rule.
func (b *Board) IsDrawBy50() bool { return b.pos.halfmoveClock >= 100 }

// IsDrawByRepetition reports whether the current position's hash has
// occurred at least twice before in the undo history since the last
// irreversible move (capture, pawn move, or castling-rights change),
// making this occurrence the third — threefold repetition.
func (b *Board) IsDrawByRepetition() bool {
	count := 1
	target := b.pos.hash
	for i := len(b.undo) - 1; i >= 0; i-- {
		if b.undo[i].hash == target {
			count++
			if count >= 3 {
				return true
			}
		}
		if b.undo[i].halfmoveClock == 0 {
			break
		}
	}
	return false
}
