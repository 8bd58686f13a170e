package search

import (
	"sort"
	"time"

	"github.com/arnoldlazare/corvidchess/board"
)

// Config holds the tunable knobs exposed through SetConfig, mirroring the
// teacher's package-level tunables (LMRDepthLimit, NullMoveMinDepth, etc.)
// as fields on a value the caller owns instead of global state.
type Config struct {
	TTSizeMB int
}

// Engine is the concept-level API of spec §6, wrapping a Searcher with the
// higher-level operations (analyze, evaluate, ranked moves) that a driver
// calls instead of reaching into negamax directly.
type Engine struct {
	searcher *Searcher
}

// NewEngine builds an Engine with default configuration.
func NewEngine() *Engine {
	return &Engine{searcher: NewSearcher()}
}

// FindBestMoveByTime runs iterative deepening until timeLimit elapses.
func (e *Engine) FindBestMoveByTime(b *board.Board, timeLimit time.Duration) (board.Move, int, int) {
	return e.searcher.FindBestMove(b, Limits{TimeLimit: timeLimit})
}

// FindBestMoveByDepth runs iterative deepening through maxDepth.
func (e *Engine) FindBestMoveByDepth(b *board.Board, maxDepth int) (board.Move, int, int) {
	return e.searcher.FindBestMove(b, Limits{MaxDepth: maxDepth})
}

// FindBestMove runs iterative deepening bounded by both maxDepth and
// timeLimit, stopping on whichever is hit first.
func (e *Engine) FindBestMove(b *board.Board, maxDepth int, timeLimit time.Duration) (board.Move, int, int) {
	return e.searcher.FindBestMove(b, Limits{MaxDepth: maxDepth, TimeLimit: timeLimit})
}

// AnalysisResult is the return value of Analyze: the recommended move, its
// evaluation, the principal variation behind it, and the depth reached.
type AnalysisResult struct {
	BestMove board.Move
	Score    int
	Depth    int
	PV       []board.Move
}

// Analyze searches to a fixed depth and reports the best move, score, PV,
// and depth reached.
func (e *Engine) Analyze(b *board.Board, depth int) AnalysisResult {
	move, score, reached := e.searcher.FindBestMove(b, Limits{MaxDepth: depth})
	pv := e.searcher.GetPrincipalVariation(b, reached)
	return AnalysisResult{BestMove: move, Score: score, Depth: reached, PV: pv}
}

// Evaluate returns the static, side-to-move-relative evaluation of b
// without searching.
func (e *Engine) Evaluate(b *board.Board) int { return Evaluate(b) }

// GetPrincipalVariation exposes the TT-walk PV extraction for an
// already-searched position.
func (e *Engine) GetPrincipalVariation(b *board.Board, depth int) []board.Move {
	return e.searcher.GetPrincipalVariation(b, depth)
}

// RankedMove pairs a legal move with its move-ordering score, for callers
// that want to inspect ordering without running a search.
type RankedMove struct {
	Move  board.Move
	Score int
}

// GetRankedMoves returns every legal move in b's current position ordered
// the same way the search would order them at the root.
func (e *Engine) GetRankedMoves(b *board.Board) []RankedMove {
	var moves board.MoveList
	b.GenerateLegalMoves(&moves)
	ttMove := e.searcher.tt.ProbeMove(b.Hash())

	ranked := make([]RankedMove, 0, moves.Len())
	for _, m := range moves.Slice() {
		ranked = append(ranked, RankedMove{
			Move:  m,
			Score: moveScore(m, ttMove, 0, e.searcher.killers, e.searcher.history),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// SetTTSize resizes the transposition table to approximately mb megabytes.
func (e *Engine) SetTTSize(mb int) { e.searcher.SetTTSize(mb) }

// ClearCache wipes the transposition table, killers, and history.
func (e *Engine) ClearCache() { e.searcher.ClearCache() }

// SetConfig applies tuning knobs. Currently only TTSizeMB is wired; future
// knobs (LMR thresholds, null-move minimum depth) have a home here without
// changing the call signature.
func (e *Engine) SetConfig(cfg Config) {
	if cfg.TTSizeMB > 0 {
		e.searcher.SetTTSize(cfg.TTSizeMB)
	}
}

// SetProgressCallback installs a callback invoked after each completed
// iterative-deepening iteration.
func (e *Engine) SetProgressCallback(cb ProgressCallback) { e.searcher.SetProgressCallback(cb) }

// StopSearch requests the in-flight search unwind at the next poll point.
func (e *Engine) StopSearch() { e.searcher.StopSearch() }
