// Package engine implements the Score Four search engine.
package engine

import (
	"github.com/hailam/scorefour/internal/board"
)

// WinScore is returned by Evaluate when a side has completed a line.
// It dominates any sum of line weights.
const WinScore = 1_000_000_000

// lineWeight[k] is the value of an open line holding k stones of one side.
var lineWeight = [board.Size + 1]int{0, 1, 4, 32, 10000}

// Evaluate returns the static score of the position from me's point of view.
// A completed line scores +/-WinScore. Otherwise every line holding stones of
// a single side adds lineWeight[k] plus one point per empty square of the line
// that a stone could land on now or later (its column is not already above it);
// lines of the opponent subtract the same amount. Lines holding both sides'
// stones are dead and score nothing.
//
// Evaluate(b, s) == -Evaluate(b, s.Other()) for any legal position.
func Evaluate(b *board.Board, me board.Cell) int {
	opp := me.Other()
	mine, theirs := b.Stones(me), b.Stones(opp)

	if board.HasLine(mine) {
		return WinScore
	}
	if board.HasLine(theirs) {
		return -WinScore
	}

	occupied := mine | theirs
	score := 0
	lines := board.Lines()
	for i := range lines {
		l := &lines[i]
		cm := (mine & l.Mask).Count()
		co := (theirs & l.Mask).Count()
		if cm > 0 && co > 0 {
			continue
		}
		if cm == 0 && co == 0 {
			continue
		}

		feas := 0
		for _, sq := range l.Squares {
			if !occupied.Has(sq) && b.HeightAt(sq.ColumnIndex()) <= sq.Z() {
				feas++
			}
		}

		if cm > 0 {
			score += lineWeight[cm] + feas
		} else {
			score -= lineWeight[co] + feas
		}
	}
	return score
}
