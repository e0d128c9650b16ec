package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadNotation is returned for strings that do not describe a board or move.
	ErrBadNotation = errors.New("bad notation")
	// ErrFloatingStone is returned for boards with a stone above an empty square.
	ErrFloatingStone = errors.New("floating stone")
)

// EmptyNotation is the notation of the empty board.
var EmptyNotation = strings.Repeat(".", NumSquares)

// ParseBoard parses a 64-character board string in square order (z-major,
// then y, then x). Empty: '.', '0', '-'. Side1: 'X', 'x', '1'. Side2: 'O', 'o', '2'.
// Whitespace and '/' separators are ignored.
func ParseBoard(s string) (*Board, error) {
	var grid [Size][Size][Size]Cell
	n := 0
	for _, r := range s {
		var c Cell
		switch r {
		case ' ', '\t', '\n', '/':
			continue
		case '.', '0', '-':
			c = Empty
		case 'X', 'x', '1':
			c = Side1
		case 'O', 'o', '2':
			c = Side2
		default:
			return nil, fmt.Errorf("parse board: unexpected %q: %w", r, ErrBadNotation)
		}
		if n >= NumSquares {
			return nil, fmt.Errorf("parse board: more than %d cells: %w", NumSquares, ErrBadNotation)
		}
		sq := Square(n)
		grid[sq.Z()][sq.Y()][sq.X()] = c
		n++
	}
	if n != NumSquares {
		return nil, fmt.Errorf("parse board: got %d cells, want %d: %w", n, NumSquares, ErrBadNotation)
	}

	for sq := Square(NumColumns); sq < NoSquare; sq++ {
		below := sq - NumColumns
		if grid[sq.Z()][sq.Y()][sq.X()] != Empty && grid[below.Z()][below.Y()][below.X()] == Empty {
			return nil, fmt.Errorf("parse board: %s: %w", sq, ErrFloatingStone)
		}
	}
	return FromGrid(grid), nil
}

// Notation returns the 64-character board string accepted by ParseBoard.
func (b *Board) Notation() string {
	buf := make([]byte, NumSquares)
	for sq := Square(0); sq < NoSquare; sq++ {
		buf[sq] = b.cells[sq].Char()
	}
	return string(buf)
}

// Validate checks the physical invariants of the board: no floating stones
// and a stone count consistent with alternating play.
func (b *Board) Validate() error {
	for sq := Square(NumColumns); sq < NoSquare; sq++ {
		if b.cells[sq] != Empty && b.cells[sq-NumColumns] == Empty {
			return fmt.Errorf("validate: %s: %w", sq, ErrFloatingStone)
		}
	}
	c1, c2 := b.CountStones()
	if c1 != c2 && c1 != c2+1 {
		return fmt.Errorf("validate: %d Side1 stones vs %d Side2 stones: %w", c1, c2, ErrBadNotation)
	}
	return nil
}
