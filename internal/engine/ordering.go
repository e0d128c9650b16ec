package engine

import (
	"github.com/hailam/scorefour/internal/board"
)

// Move ordering priorities
const (
	WinMoveScore     = 10000000 // Move completes a line
	TTMoveScore      = 5000000  // Best move stored in the transposition table
	CenterMoveWeight = 5        // Per unit of doubled center distance
)

// scoredMove pairs a column with its ordering score.
type scoredMove struct {
	col   board.Column
	score int
}

// orderMoves scores the legal columns of side and sorts them, best first.
// Immediate wins come first, then the TT move, then columns closer to the
// center. The sort is stable, so equal scores keep center-first scan order.
func orderMoves(b *board.Board, side board.Cell, ttMove board.Column, dst []scoredMove) []scoredMove {
	var buf [board.NumColumns]board.Column
	for _, c := range b.AppendLegalColumns(buf[:0]) {
		score := -c.CenterDistance() * CenterMoveWeight
		if b.IsWinningMove(c, side) {
			score += WinMoveScore
		}
		if c == ttMove {
			score += TTMoveScore
		}
		dst = append(dst, scoredMove{col: c, score: score})
	}
	sortMoves(dst)
	return dst
}

// sortMoves sorts by score (descending). Insertion sort: at most 16 moves
// and it keeps equal scores in place.
func sortMoves(moves []scoredMove) {
	for i := 1; i < len(moves); i++ {
		m := moves[i]
		j := i - 1
		for j >= 0 && moves[j].score < m.score {
			moves[j+1] = moves[j]
			j--
		}
		moves[j+1] = m
	}
}
