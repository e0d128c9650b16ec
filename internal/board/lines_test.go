package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineCount(t *testing.T) {
	require.Len(t, BuildLines(), NumLines)
	require.Len(t, Lines(), NumLines)
}

func TestLinesAreDistinct(t *testing.T) {
	seen := make(map[Bitboard]bool)
	for _, l := range Lines() {
		assert.False(t, seen[l.Mask], "duplicate line %v", l.Squares)
		seen[l.Mask] = true
		assert.Equal(t, Size, l.Mask.Count(), "line %v has repeated squares", l.Squares)
	}
}

func TestLinesAreColinearUnitSpaced(t *testing.T) {
	for _, l := range Lines() {
		d := l.Dir
		assert.True(t, abs(d.DX) <= 1 && abs(d.DY) <= 1 && abs(d.DZ) <= 1)
		for i := 1; i < Size; i++ {
			prev, cur := l.Squares[i-1], l.Squares[i]
			if cur.X()-prev.X() != d.DX || cur.Y()-prev.Y() != d.DY || cur.Z()-prev.Z() != d.DZ {
				t.Errorf("line %v: step %d is not %v", l.Squares, i, d)
			}
		}
	}
}

func TestLinesByFamily(t *testing.T) {
	axis, face, space := 0, 0, 0
	for _, l := range Lines() {
		nonZero := 0
		for _, v := range []int{l.Dir.DX, l.Dir.DY, l.Dir.DZ} {
			if v != 0 {
				nonZero++
			}
		}
		switch nonZero {
		case 1:
			axis++
		case 2:
			face++
		case 3:
			space++
		}
	}
	assert.Equal(t, 48, axis)
	assert.Equal(t, 24, face)
	assert.Equal(t, 4, space)
}

func TestLinesThrough(t *testing.T) {
	total := 0
	for sq := Square(0); sq < NoSquare; sq++ {
		for _, i := range LinesThrough(sq) {
			if !Lines()[i].Mask.Has(sq) {
				t.Errorf("line %d listed for %s does not contain it", i, sq)
			}
		}
		total += len(LinesThrough(sq))
	}
	assert.Equal(t, NumLines*Size, total)

	// Corners and the 8 inner cells lie on 7 lines, every other cell on 4.
	assert.Len(t, LinesThrough(NewSquare(0, 0, 0)), 7)
	assert.Len(t, LinesThrough(NewSquare(1, 1, 1)), 7)
	assert.Len(t, LinesThrough(NewSquare(1, 0, 0)), 4)
}

func TestHasLine(t *testing.T) {
	for _, l := range Lines() {
		assert.True(t, HasLine(l.Mask))
		assert.True(t, HasLineThrough(l.Mask, l.Squares[2]))
		partial := l.Mask &^ SquareBB(l.Squares[3])
		assert.False(t, HasLineThrough(partial, l.Squares[0]))
	}
	assert.False(t, HasLine(0))
}
