package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/scorefour/internal/board"
)

// FallbackColumn is returned when the board has no playable column.
var FallbackColumn = board.Column{X: 0, Y: 0}

// Default search limits, kept below the external 3s CPU limit of the host.
const (
	DefaultMoveTime = 2400 * time.Millisecond
	DefaultMaxDepth = 8
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	Move     board.Column
	Partial  bool // The budget ran out during this depth
	HashFull int  // Permille of hash table used
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = DefaultMaxDepth)
	MoveTime time.Duration // Soft time budget (0 = no limit)
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() SearchLimits {
	return SearchLimits{Depth: DefaultMaxDepth, MoveTime: DefaultMoveTime}
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply, 200ms
	Medium                   // 4 ply, 1s
	Hard                     // full strength
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2, MoveTime: 200 * time.Millisecond},
	Medium: {Depth: 4, MoveTime: time.Second},
	Hard:   {Depth: DefaultMaxDepth, MoveTime: DefaultMoveTime},
}

// ParseDifficulty maps "easy", "medium" and "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Hard, false
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	default:
		return "hard"
	}
}

// Result describes one decision.
type Result struct {
	Move     board.Column
	Score    int
	Depth    int // Deepest iteration that produced Move, 0 without search
	Nodes    uint64
	Elapsed  time.Duration
	Tactic   Tactic // Set when the move was forced without search
	Fallback bool   // No search result: first legal column or FallbackColumn
}

// Engine picks moves for Score Four positions.
// An Engine is not safe for concurrent use; Stop may be called from any goroutine.
type Engine struct {
	searcher *Searcher
	tt       *TranspositionTable
	tm       *TimeManager
	limits   SearchLimits
	stopFlag atomic.Bool

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the given transposition table size in MB.
func NewEngine(ttSizeMB int) *Engine {
	e := &Engine{
		tt:     NewTranspositionTable(ttSizeMB),
		tm:     NewTimeManager(),
		limits: DefaultLimits(),
	}
	e.searcher = NewSearcher(e.tt, e.tm, &e.stopFlag)
	log.Debug().Int("size-mb", ttSizeMB).Uint64("entries", e.tt.Size()).Msg("transposition table")
	return e
}

// SetLimits sets the limits used by Decide and DecideMove.
func (e *Engine) SetLimits(l SearchLimits) {
	e.limits = l
}

// Limits returns the configured limits.
func (e *Engine) Limits() SearchLimits {
	return e.limits
}

// SetDifficulty sets the limits from a difficulty level.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.limits = DifficultySettings[d]
}

// SetClock replaces the engine's time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.tm.SetClock(now)
}

// DecideMove returns the column to play for the side to move on b.
// b is not modified.
func (e *Engine) DecideMove(b *board.Board) board.Column {
	return e.Decide(b).Move
}

// Decide runs a decision with the configured limits.
func (e *Engine) Decide(b *board.Board) Result {
	return e.DecideWithLimits(b, e.limits)
}

// DecideWithLimits picks a move for the side to move on b: a forced win or
// block if there is one, otherwise the best move of the deepest iteration
// that scored a root move within the budget. It always returns a playable
// column, or FallbackColumn when the board is full.
func (e *Engine) DecideWithLimits(b *board.Board, limits SearchLimits) Result {
	e.stopFlag.Store(false)
	e.tt.NewSearch()
	e.tm.Init(limits.MoveTime)

	pos := b.Copy()
	me := pos.SideToMove()

	maxDepth := DefaultMaxDepth
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}
	if maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	legal := pos.LegalColumns()
	if len(legal) == 0 {
		res := Result{Move: FallbackColumn, Fallback: true}
		e.logResult(res, me)
		return res
	}

	if move, tactic, ok := PickTactical(pos, me); ok {
		res := Result{Move: move, Tactic: tactic, Elapsed: e.tm.Elapsed()}
		if tactic == TacticWin {
			res.Score = WinScore
		}
		e.logResult(res, me)
		return res
	}

	// The evaluator rates a bottom corner (7 lines) above an inner column
	// (4 lines at z=0), so the first stone is placed without search.
	if pos.Occupied() == 0 {
		res := Result{Move: legal[0], Tactic: TacticCenter, Elapsed: e.tm.Elapsed()}
		e.logResult(res, me)
		return res
	}

	res := Result{Move: board.NoColumn}
	e.searcher.InitSearch(pos, me)

	// Iterative deepening
	for depth := 1; depth <= maxDepth; depth++ {
		// Check time before starting new iteration
		if e.stopFlag.Load() || e.tm.ShouldStop() {
			break
		}

		move, score, ok := e.searcher.SearchDepth(depth)
		partial := e.searcher.TimedOut()

		// A deeper iteration overrides a shallower one, even a partial one
		// as long as it scored a root move.
		if ok {
			res.Move = move
			res.Score = score
			res.Depth = depth
		}

		log.Debug().
			Int("depth", depth).
			Int("score", score).
			Str("move", move.String()).
			Uint64("nodes", e.searcher.Nodes()).
			Bool("partial", partial).
			Dur("elapsed", e.tm.Elapsed()).
			Msg("iteration")

		if e.OnInfo != nil && ok {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.searcher.Nodes(),
				Time:     e.tm.Elapsed(),
				Move:     move,
				Partial:  partial,
				HashFull: e.tt.HashFull(),
			})
		}

		if partial {
			break
		}

		// Early termination: the outcome is decided within the horizon
		if score >= WinScore || score <= -WinScore {
			break
		}
	}

	if !res.Move.Valid() {
		res.Move = legal[0]
		res.Fallback = true
	}
	res.Nodes = e.searcher.Nodes()
	res.Elapsed = e.tm.Elapsed()
	e.logResult(res, me)
	return res
}

func (e *Engine) logResult(res Result, side board.Cell) {
	log.Info().
		Str("side", side.String()).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Str("tactic", res.Tactic.String()).
		Bool("fallback", res.Fallback).
		Dur("elapsed", res.Elapsed).
		Float64("tt-hit-rate", e.tt.HitRate()).
		Msg("decision")
}

// Stop asks a running decision to return as soon as possible.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// Clear clears the transposition table.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// Evaluate returns the static evaluation of b for the side to move.
func (e *Engine) Evaluate(b *board.Board) int {
	return Evaluate(b, b.SideToMove())
}
