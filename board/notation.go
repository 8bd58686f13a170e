package board

import "fmt"

// ParseMove resolves a UCI move string (e.g. "e2e4", "e7e8q") against the
// side to move's pseudo-legal moves, returning the fully-packed Move that
// matches it. It does not itself check legality; pass the result to
// MakeMove to get that check.
func (b *Board) ParseMove(uci string) (Move, error) {
	if len(uci) < 4 || len(uci) > 5 {
		return NoMove, fmt.Errorf("board: invalid UCI move %q", uci)
	}
	from, err := ParseSquare(uci[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid UCI move %q: %w", uci, err)
	}
	to, err := ParseSquare(uci[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid UCI move %q: %w", uci, err)
	}
	var promo PieceType
	if len(uci) == 5 {
		switch uci[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NoMove, fmt.Errorf("board: invalid promotion piece %q", uci)
		}
	}

	var list MoveList
	b.GeneratePseudoMoves(&list)
	for _, m := range list.Slice() {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion().Type() != promo {
			continue
		}
		if !m.IsPromotion() && promo != NoPieceType {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("board: %q is not a pseudo-legal move in this position", uci)
}
