package search

import (
	"sort"

	"github.com/arnoldlazare/corvidchess/board"
)

const (
	scoreTTMove       = 1_000_000
	scoreCaptureBase  = 500_000
	scoreKiller       = 90_000
	mvvLvaVictimScale = 10
)

// moveScore implements spec's move_score: the TT move first, then captures
// by MVV/LVA, then killers, then history — in that descending order of
// priority. The TT, capture and killer tiers never overlap; history scores
// are not capped and can grow past the killer score.
func moveScore(m board.Move, ttMove board.Move, ply int, killers *killerTable, history *historyTable) int {
	if m == ttMove {
		return scoreTTMove
	}
	if m.IsTactical() {
		victim := pieceValue[m.Captured().Type()]
		attacker := pieceValue[m.Piece().Type()]
		return scoreCaptureBase + mvvLvaVictimScale*victim - attacker
	}
	if killers.IsKiller(ply, m) {
		return scoreKiller
	}
	return history.Score(m.From(), m.To())
}

// orderMoves sorts list's live prefix in place, descending by moveScore.
func orderMoves(list *board.MoveList, ttMove board.Move, ply int, killers *killerTable, history *historyTable) {
	moves := list.Slice()
	sort.SliceStable(moves, func(i, j int) bool {
		return moveScore(moves[i], ttMove, ply, killers, history) > moveScore(moves[j], ttMove, ply, killers, history)
	})
}

// orderCaptures sorts a captures-only list by MVV/LVA for quiescence.
func orderCaptures(list *board.MoveList) {
	moves := list.Slice()
	sort.SliceStable(moves, func(i, j int) bool {
		vi := pieceValue[moves[i].Captured().Type()]*mvvLvaVictimScale - pieceValue[moves[i].Piece().Type()]
		vj := pieceValue[moves[j].Captured().Type()]*mvvLvaVictimScale - pieceValue[moves[j].Piece().Type()]
		return vi > vj
	})
}
