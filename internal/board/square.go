// Package board implements the 4x4x4 Score Four board using bitboards.
package board

import "fmt"

// Board dimensions.
const (
	Size       = 4
	NumSquares = Size * Size * Size
	NumColumns = Size * Size
)

// Square represents a cell of the cube (0-63).
// Layout is z-major: sq = z*16 + y*4 + x, so one z-layer occupies 16 consecutive bits.
type Square uint8

// NoSquare marks an invalid or missing square.
const NoSquare Square = NumSquares

// NewSquare returns the square at (x, y, z).
func NewSquare(x, y, z int) Square {
	return Square(z*NumColumns + y*Size + x)
}

// X returns the x coordinate (0-3).
func (sq Square) X() int {
	return int(sq) & 3
}

// Y returns the y coordinate (0-3).
func (sq Square) Y() int {
	return (int(sq) >> 2) & 3
}

// Z returns the height of the square (0-3), 0 being the bottom layer.
func (sq Square) Z() int {
	return int(sq) >> 4
}

// ColumnIndex returns the index (0-15) of the column holding the square.
func (sq Square) ColumnIndex() int {
	return int(sq) & 15
}

// Column returns the column holding the square.
func (sq Square) Column() Column {
	return Column{X: sq.X(), Y: sq.Y()}
}

// String returns the square as "(x,y,z)".
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("(%d,%d,%d)", sq.X(), sq.Y(), sq.Z())
}

// InBounds reports whether (x, y, z) lies inside the cube.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && z >= 0 && z < Size
}
