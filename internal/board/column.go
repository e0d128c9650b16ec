package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrOutOfRange is returned for coordinates outside the 4x4 footprint.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrColumnFull is returned when dropping a stone into a full column.
	ErrColumnFull = errors.New("column is full")
)

// Column identifies a vertical stack of four squares by its (x, y) footprint.
// A move is a column: the stone falls to the lowest empty square.
type Column struct {
	X, Y int
}

// NoColumn is returned where no move is available.
var NoColumn = Column{X: -1, Y: -1}

// ColumnFromIndex returns the column with index y*4 + x.
func ColumnFromIndex(idx int) Column {
	return Column{X: idx & 3, Y: idx >> 2}
}

// Index returns y*4 + x.
func (c Column) Index() int {
	return c.Y*Size + c.X
}

// Valid reports whether the column lies on the board.
func (c Column) Valid() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size
}

// Square returns the square of the column at height z.
func (c Column) Square(z int) Square {
	return NewSquare(c.X, c.Y, z)
}

// CenterDistance returns twice the Manhattan distance of the column to the
// board center (1.5, 1.5), so that it stays an integer: 2 for the four inner
// columns, 4 for edges, 6 for corners.
func (c Column) CenterDistance() int {
	return abs(2*c.X-3) + abs(2*c.Y-3)
}

// String returns the column as "x,y".
func (c Column) String() string {
	if !c.Valid() {
		return "none"
	}
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// ParseColumn parses "x,y" (a space or a colon may replace the comma).
func ParseColumn(s string) (Column, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ", :")
	if sep < 0 {
		return NoColumn, fmt.Errorf("parse column %q: %w", s, ErrBadNotation)
	}
	x, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return NoColumn, fmt.Errorf("parse column %q: %w", s, ErrBadNotation)
	}
	y, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return NoColumn, fmt.Errorf("parse column %q: %w", s, ErrBadNotation)
	}
	c := Column{X: x, Y: y}
	if !c.Valid() {
		return NoColumn, fmt.Errorf("parse column %q: %w", s, ErrOutOfRange)
	}
	return c, nil
}

// centerOrder holds all 16 columns sorted by center distance, ties in scan
// order (y-major, then x).
var centerOrder [NumColumns]Column

func initCenterOrder() {
	n := 0
	for _, dist := range []int{2, 4, 6} {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				c := Column{X: x, Y: y}
				if c.CenterDistance() == dist {
					centerOrder[n] = c
					n++
				}
			}
		}
	}
}

// CenterOrder returns all columns in center-first order.
func CenterOrder() [NumColumns]Column {
	return centerOrder
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
