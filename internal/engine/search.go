package engine

import (
	"sync/atomic"

	"github.com/hailam/scorefour/internal/board"
)

// Search constants
const (
	Infinity = 1_000_000_000_000 // Full-window bound, beyond any score
	MaxPly   = board.NumSquares  // A game never lasts longer
)

// Searcher is the search context of one decision: the board being searched,
// the transposition table, the clock and the best root move of the iteration
// in progress. Nothing is captured implicitly; every recursive call goes
// through the Searcher.
type Searcher struct {
	pos      *board.Board
	tt       *TranspositionTable
	tm       *TimeManager
	stopFlag *atomic.Bool

	rootSide board.Cell
	depth    int // Depth of the current iteration

	// Best root move of the current iteration
	best      board.Column
	bestScore int
	hasBest   bool

	nodes    uint64
	timedOut bool

	moveBuf [MaxPly][board.NumColumns]scoredMove
}

// NewSearcher creates a searcher sharing the engine's table, clock and stop flag.
func NewSearcher(tt *TranspositionTable, tm *TimeManager, stopFlag *atomic.Bool) *Searcher {
	return &Searcher{tt: tt, tm: tm, stopFlag: stopFlag}
}

// InitSearch prepares a decision for root side on pos. The searcher mutates
// pos in place and restores it on every return path.
func (s *Searcher) InitSearch(pos *board.Board, root board.Cell) {
	s.pos = pos
	s.rootSide = root
	s.nodes = 0
	s.timedOut = false
	s.hasBest = false
}

// Nodes returns the number of nodes visited in this decision.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// TimedOut reports whether the budget ran out or a stop was requested.
func (s *Searcher) TimedOut() bool {
	return s.timedOut
}

// SearchDepth runs one iteration at the given depth with a full window.
// ok is false when no root move was scored before time ran out.
func (s *Searcher) SearchDepth(depth int) (move board.Column, score int, ok bool) {
	s.depth = depth
	s.best = board.NoColumn
	s.bestScore = -Infinity
	s.hasBest = false

	s.negamax(depth, 0, -Infinity, Infinity, s.rootSide, board.NoSquare)

	return s.best, s.bestScore, s.hasBest
}

// stopped polls the clock and the stop flag. Once true it stays true.
func (s *Searcher) stopped() bool {
	if s.timedOut {
		return true
	}
	if s.stopFlag.Load() || s.tm.ShouldStop() {
		s.timedOut = true
	}
	return s.timedOut
}

// negamax returns the value of the position for side. last is the square of
// the move that led here, NoSquare at the root.
func (s *Searcher) negamax(depth, ply int, alpha, beta int, side board.Cell, last board.Square) int {
	s.nodes++

	// Out of time: fall back to the static value, nothing below gets expanded.
	if s.stopped() {
		return Evaluate(s.pos, side)
	}

	hash := s.pos.HashFor(side)
	key := s.pos.Key(side)
	ttMove := board.NoColumn
	if entry, found := s.tt.Probe(hash, key); found {
		if entry.Move >= 0 {
			ttMove = board.ColumnFromIndex(int(entry.Move))
		}
		if int(entry.Depth) >= depth {
			val := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return val
			case TTLowerBound:
				if val > alpha {
					alpha = val
				}
			case TTUpperBound:
				if val < beta {
					beta = val
				}
			}
			if alpha >= beta {
				return val
			}
		}
	}

	// The previous move ended the game.
	if depth == 0 || (last != board.NoSquare && s.pos.WinsAt(last, side.Other())) {
		return Evaluate(s.pos, side)
	}

	moves := orderMoves(s.pos, side, ttMove, s.moveBuf[ply][:0])
	if len(moves) == 0 {
		return Evaluate(s.pos, side)
	}

	alphaOrig := alpha
	val := -Infinity
	bestCol := board.NoColumn
	for _, m := range moves {
		sq := s.pos.MakeMove(m.col, side)
		v := -s.negamax(depth-1, ply+1, -beta, -alpha, side.Other(), sq)
		s.pos.UnmakeMove(sq)

		if v > val {
			val = v
			bestCol = m.col
			if ply == 0 {
				s.best = m.col
				s.bestScore = v
				s.hasBest = true
			}
		}
		if val > alpha {
			alpha = val
		}
		if alpha >= beta {
			break
		}
	}

	// Results computed after time ran out are partial; keep them out of the table.
	if s.timedOut {
		return val
	}

	flag := TTExact
	if val <= alphaOrig {
		flag = TTUpperBound
	} else if val >= beta {
		flag = TTLowerBound
	}
	s.tt.Store(hash, key, depth, val, flag, bestCol)
	return val
}
