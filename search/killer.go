package search

import "github.com/arnoldlazare/corvidchess/board"

// maxPly bounds the killer-move table; no reasonable iterative-deepening
// budget reaches this many plies in one line.
const maxPly = 128

// killerTable holds, per ply, the two most recent quiet moves that caused
// a beta cutoff — move-ordering hints that usually recur in sibling nodes.
type killerTable struct {
	moves [maxPly][2]board.Move
}

func newKillerTable() *killerTable { return &killerTable{} }

// Insert records m as the newest killer at ply, shifting the previous
// newest into the second slot. Inserting the move already in the newest
// slot is a no-op; inserting the one in the second slot swaps the two.
func (k *killerTable) Insert(ply int, m board.Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// IsKiller reports whether m is one of the two killers recorded at ply.
func (k *killerTable) IsKiller(ply int, m board.Move) bool {
	if ply < 0 || ply >= maxPly {
		return false
	}
	return k.moves[ply][0] == m || k.moves[ply][1] == m
}

func (k *killerTable) Clear() {
	for i := range k.moves {
		k.moves[i] = [2]board.Move{}
	}
}

// historyTable accumulates depth² per (from,to) quiet-move cutoff,
// biasing move ordering toward moves that have historically worked well
// regardless of the current position.
type historyTable struct {
	scores [64][64]int
}

func newHistoryTable() *historyTable { return &historyTable{} }

func (h *historyTable) Add(from, to board.Square, depth int) {
	h.scores[from][to] += depth * depth
}

func (h *historyTable) Score(from, to board.Square) int { return h.scores[from][to] }

func (h *historyTable) Clear() {
	for i := range h.scores {
		for j := range h.scores[i] {
			h.scores[i][j] = 0
		}
	}
}
