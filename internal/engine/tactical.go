package engine

import (
	"github.com/hailam/scorefour/internal/board"
)

// Tactic tells why a move was chosen without searching.
type Tactic uint8

const (
	TacticNone   Tactic = iota
	TacticWin           // the move completes a line
	TacticBlock         // the move occupies the opponent's winning square
	TacticCenter        // the board is empty: first center-first column
)

// String returns the tactic name.
func (t Tactic) String() string {
	switch t {
	case TacticWin:
		return "win"
	case TacticBlock:
		return "block"
	case TacticCenter:
		return "center"
	default:
		return "none"
	}
}

// PickTactical looks one ply ahead for a forced move. The first center-first
// column that wins for me is returned; failing that, the first column where
// the opponent would win. ok is false when neither exists.
func PickTactical(b *board.Board, me board.Cell) (move board.Column, tactic Tactic, ok bool) {
	var buf [board.NumColumns]board.Column
	moves := b.AppendLegalColumns(buf[:0])

	for _, c := range moves {
		if b.IsWinningMove(c, me) {
			return c, TacticWin, true
		}
	}
	opp := me.Other()
	for _, c := range moves {
		if b.IsWinningMove(c, opp) {
			return c, TacticBlock, true
		}
	}
	return board.NoColumn, TacticNone, false
}
