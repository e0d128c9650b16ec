package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/scorefour/internal/board"
)

func TestPickTacticalWin(t *testing.T) {
	// Side1: (0,0,0) (1,0,0) (2,0,0). Side2 scattered. Side1 to move.
	b := mustParse(t, "XXX.O..O.....O.."+
		"................................................")
	move, tactic, ok := PickTactical(b, board.Side1)
	require.True(t, ok)
	assert.Equal(t, TacticWin, tactic)
	assert.Equal(t, board.Column{X: 3, Y: 0}, move)
}

func TestPickTacticalWinBeforeBlock(t *testing.T) {
	// Both sides have an open three on the bottom layer; Side1 to move.
	b := mustParse(t, "XXX.........OO.O"+
		"................................................")
	move, tactic, ok := PickTactical(b, board.Side1)
	require.True(t, ok)
	assert.Equal(t, TacticWin, tactic)
	assert.Equal(t, board.Column{X: 3, Y: 0}, move)

	// Seen from Side2 the roles swap.
	move, tactic, ok = PickTactical(b, board.Side2)
	require.True(t, ok)
	assert.Equal(t, TacticWin, tactic)
	assert.Equal(t, board.Column{X: 2, Y: 3}, move)
}

func TestPickTacticalBlock(t *testing.T) {
	// Side1 has three stacked in column (2,2); Side2 to move must cap it.
	b := board.NewBoard()
	b.MakeMove(board.Column{X: 2, Y: 2}, board.Side1)
	b.MakeMove(board.Column{X: 0, Y: 3}, board.Side2)
	b.MakeMove(board.Column{X: 2, Y: 2}, board.Side1)
	b.MakeMove(board.Column{X: 3, Y: 0}, board.Side2)
	b.MakeMove(board.Column{X: 2, Y: 2}, board.Side1)
	require.Equal(t, board.Side2, b.SideToMove())

	move, tactic, ok := PickTactical(b, board.Side2)
	require.True(t, ok)
	assert.Equal(t, TacticBlock, tactic)
	assert.Equal(t, board.Column{X: 2, Y: 2}, move)
}

func TestPickTacticalUnreachableCell(t *testing.T) {
	// Side1 holds (0..2,0,1) on top of Side2's (0..2,0,0). The square that
	// completes Side1's line floats over an empty cell, so it is not a win;
	// Side2's bottom three is, and must be blocked.
	b := mustParse(t, "OOO............."+"XXX............."+
		"................................")
	require.Equal(t, board.Side1, b.SideToMove())

	move, tactic, ok := PickTactical(b, board.Side1)
	require.True(t, ok)
	assert.Equal(t, TacticBlock, tactic)
	assert.Equal(t, board.Column{X: 3, Y: 0}, move)
}

func TestPickTacticalNone(t *testing.T) {
	b := board.NewBoard()
	_, tactic, ok := PickTactical(b, board.Side1)
	assert.False(t, ok)
	assert.Equal(t, TacticNone, tactic)

	b.MakeMove(board.Column{X: 1, Y: 1}, board.Side1)
	b.MakeMove(board.Column{X: 2, Y: 2}, board.Side2)
	_, _, ok = PickTactical(b, board.Side1)
	assert.False(t, ok)
}

func TestPickTacticalNeverMisses(t *testing.T) {
	for _, b := range randomBoards(2, 60) {
		if b.GameOver() {
			continue
		}
		before := *b
		for _, side := range []board.Cell{board.Side1, board.Side2} {
			var wins, losses []board.Column
			for _, c := range b.LegalColumns() {
				if b.IsWinningMove(c, side) {
					wins = append(wins, c)
				}
				if b.IsWinningMove(c, side.Other()) {
					losses = append(losses, c)
				}
			}

			move, tactic, ok := PickTactical(b, side)
			switch {
			case len(wins) > 0:
				require.True(t, ok)
				require.Equal(t, TacticWin, tactic)
				require.Equal(t, wins[0], move)
			case len(losses) > 0:
				require.True(t, ok)
				require.Equal(t, TacticBlock, tactic)
				require.Equal(t, losses[0], move)
			default:
				require.False(t, ok)
			}
		}
		require.Equal(t, before, *b, "PickTactical modified the board")
	}
}
