package search

import (
	"time"

	"github.com/arnoldlazare/corvidchess/board"
)

// Checkmate is the score magnitude returned for a forced mate; negamax
// subtracts the current ply so shorter mates always score strictly higher
// than longer ones.
const Checkmate = 1_000_000

const (
	lmrMinDepth1 = 3
	lmrMinDepth2 = 6
)

// Limits bounds one search: a depth budget, a time budget, or both. A zero
// MaxDepth searches up to depth 64; a zero TimeLimit sets no clock.
type Limits struct {
	MaxDepth  int
	TimeLimit time.Duration
}

// ProgressCallback is invoked after each completed iterative-deepening
// iteration, mirroring spec §6's on_iteration_complete hook.
type ProgressCallback func(info ProgressInfo)

// ProgressInfo summarizes one completed iteration for progress reporting.
type ProgressInfo struct {
	Depth int
	Score int
	Nodes uint64
	PV    []board.Move
}

// Searcher owns the transposition table, killer/history tables, and the
// cooperative stop flag for a single engine instance. It is not safe for
// concurrent use from multiple goroutines, matching the single-threaded
// concurrency model.
type Searcher struct {
	tt      *TranspositionTable
	killers *killerTable
	history *historyTable

	stop       bool
	deadline   time.Time
	hasClock   bool
	nodes      uint64
	onProgress ProgressCallback
}

// NewSearcher builds a Searcher with a default-sized transposition table.
func NewSearcher() *Searcher {
	return &Searcher{
		tt:      NewTranspositionTable(64),
		killers: newKillerTable(),
		history: newHistoryTable(),
	}
}

// SetTTSize resizes the transposition table to approximately mb megabytes.
func (s *Searcher) SetTTSize(mb int) { s.tt.Resize(mb) }

// ClearCache wipes the transposition table, killers, and history.
func (s *Searcher) ClearCache() {
	s.tt.Clear()
	s.killers.Clear()
	s.history.Clear()
}

// SetProgressCallback installs a callback invoked after each iterative
// deepening iteration completes.
func (s *Searcher) SetProgressCallback(cb ProgressCallback) { s.onProgress = cb }

// StopSearch requests the in-flight search unwind at the next poll point.
func (s *Searcher) StopSearch() { s.stop = true }

func (s *Searcher) timeUp() bool {
	return s.hasClock && time.Now().After(s.deadline)
}

// FindBestMove runs iterative deepening under the given limits and returns
// the best move found, its score from the side-to-move's perspective, and
// the deepest depth completed.
func (s *Searcher) FindBestMove(b *board.Board, limits Limits) (board.Move, int, int) {
	s.stop = false
	s.nodes = 0
	if limits.TimeLimit > 0 {
		s.hasClock = true
		s.deadline = time.Now().Add(limits.TimeLimit)
	} else {
		s.hasClock = false
	}
	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	var bestMove board.Move
	bestScore := 0
	completedDepth := 0

	for depth := 1; depth <= maxDepth; depth++ {
		score, move := s.rootSearch(b, depth)
		if s.stop && depth > 1 {
			break
		}
		bestScore = score
		if move != board.NoMove {
			bestMove = move
		}
		completedDepth = depth
		if s.onProgress != nil {
			s.onProgress(ProgressInfo{Depth: depth, Score: score, Nodes: s.nodes, PV: s.GetPrincipalVariation(b, depth)})
		}
		if s.timeUp() {
			break
		}
	}
	return bestMove, bestScore, completedDepth
}

func (s *Searcher) rootSearch(b *board.Board, depth int) (int, board.Move) {
	var moves board.MoveList
	b.GenerateLegalMoves(&moves)
	if moves.Len() == 0 {
		return 0, board.NoMove
	}

	ttMove := s.tt.ProbeMove(b.Hash())
	orderMoves(&moves, ttMove, 0, s.killers, s.history)

	alpha, beta := -Checkmate*2, Checkmate*2
	var best board.Move
	bestScore := alpha

	for i, m := range moves.Slice() {
		if err := b.MakeMove(m); err != nil {
			continue
		}
		var score int
		if i == 0 {
			score = -s.negamax(b, depth-1, 1, -beta, -alpha)
		} else {
			score = -s.negamax(b, depth-1, 1, -alpha-1, -alpha)
			if score > alpha && !s.stop {
				score = -s.negamax(b, depth-1, 1, -beta, -alpha)
			}
		}
		b.UndoMove()

		if score > bestScore || best == board.NoMove {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if s.stop {
			break
		}
	}
	if !s.stop && best != board.NoMove {
		s.tt.Store(b.Hash(), bestScore, depth, BoundExact, best)
	}
	return bestScore, best
}

// negamax implements spec §4.8: TT probe, terminal checks, check extension,
// horizon quiescence handoff, PVS with late-move reduction, and TT store.
func (s *Searcher) negamax(b *board.Board, depth, ply, alpha, beta int) int {
	s.nodes++
	if s.stop || (s.nodes&2047 == 0 && s.timeUp()) {
		s.stop = true
		return 0
	}

	originalAlpha := alpha
	hash := b.Hash()
	var ttMove board.Move
	if entry, ok := s.tt.Probe(hash, depth); ok {
		ttMove = entry.Move
		switch entry.Bound {
		case BoundExact:
			return entry.Score
		case BoundLower:
			if entry.Score > alpha {
				alpha = entry.Score
			}
		case BoundUpper:
			if entry.Score < beta {
				beta = entry.Score
			}
		}
		if alpha >= beta {
			return entry.Score
		}
	} else {
		ttMove = s.tt.ProbeMove(hash)
	}

	if b.InCheckmate() {
		return -Checkmate + ply
	}
	if b.InStalemate() || b.IsDrawBy50() || b.IsDrawByRepetition() {
		return 0
	}

	inCheck := b.InCheck()
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return s.quiescence(b, ply, alpha, beta)
	}

	var moves board.MoveList
	b.GenerateLegalMoves(&moves)
	orderMoves(&moves, ttMove, ply, s.killers, s.history)

	var best board.Move
	bestScore := -Checkmate * 2

	for i, m := range moves.Slice() {
		if err := b.MakeMove(m); err != nil {
			continue
		}

		reduction := 0
		if i > 0 && depth >= lmrMinDepth1 && m.IsQuiet() && !b.InCheck() {
			reduction = 1
			if depth >= lmrMinDepth2 {
				reduction = 2
			}
		}

		var score int
		if i == 0 {
			score = -s.negamax(b, depth-1, ply+1, -beta, -alpha)
		} else {
			score = -s.negamax(b, depth-1-reduction, ply+1, -alpha-1, -alpha)
			if score > alpha && !s.stop {
				score = -s.negamax(b, depth-1, ply+1, -beta, -alpha)
			}
		}
		b.UndoMove()

		if s.stop {
			return 0
		}

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if m.IsQuiet() {
				s.killers.Insert(ply, m)
				s.history.Add(m.From(), m.To(), depth)
			}
			break
		}
	}

	var bound Bound
	switch {
	case bestScore <= originalAlpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	default:
		bound = BoundExact
	}
	s.tt.Store(hash, bestScore, depth, bound, best)
	return bestScore
}

// quiescence searches only tactical moves until the position is quiet,
// defusing the horizon effect at leaf nodes of the main search.
func (s *Searcher) quiescence(b *board.Board, ply, alpha, beta int) int {
	s.nodes++
	if s.stop || (s.nodes&2047 == 0 && s.timeUp()) {
		s.stop = true
		return 0
	}

	if b.InCheckmate() {
		return -Checkmate + ply
	}
	if b.InStalemate() || b.IsDrawBy50() || b.IsDrawByRepetition() {
		return 0
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var captures board.MoveList
	b.GenerateCaptures(&captures)
	orderCaptures(&captures)

	for _, m := range captures.Slice() {
		if err := b.MakeMove(m); err != nil {
			continue
		}
		score := -s.quiescence(b, ply+1, -beta, -alpha)
		b.UndoMove()

		if s.stop {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// GetPrincipalVariation replays the stored TT best moves from b's current
// position up to depth plies, stopping at the first TT miss.
func (s *Searcher) GetPrincipalVariation(b *board.Board, depth int) []board.Move {
	var pv []board.Move
	undoCount := 0
	defer func() {
		for i := 0; i < undoCount; i++ {
			b.UndoMove()
		}
	}()
	for i := 0; i < depth; i++ {
		m := s.tt.ProbeMove(b.Hash())
		if m == board.NoMove {
			break
		}
		if err := b.MakeMove(m); err != nil {
			break
		}
		pv = append(pv, m)
		undoCount++
	}
	return pv
}
