package board

// Direction is a unit step through the cube.
type Direction struct {
	DX, DY, DZ int
}

// Directions lists the 13 line directions of the cube, one per unordered
// pair {d, -d}: 3 axes, 6 face diagonals and 4 space diagonals.
var Directions = [13]Direction{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 0}, {1, -1, 0}, {1, 0, 1}, {1, 0, -1}, {0, 1, 1}, {0, 1, -1},
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {-1, 1, 1},
}

// NumLines is the number of winning lines in a 4x4x4 cube.
const NumLines = 76

// Line is one way to win: four colinear, unit-spaced squares.
type Line struct {
	Squares [Size]Square
	Mask    Bitboard
	Dir     Direction
}

// Precomputed line tables, filled by init and never written afterwards.
var (
	lines        []Line
	linesThrough [NumSquares][]uint8
)

func init() {
	initCenterOrder()
	lines = BuildLines()
	for i, l := range lines {
		for _, sq := range l.Squares {
			linesThrough[sq] = append(linesThrough[sq], uint8(i))
		}
	}
	initZobrist()
}

// BuildLines enumerates every line of the cube. Only one direction of each
// opposite pair is walked, so every physical line is produced exactly once.
func BuildLines() []Line {
	out := make([]Line, 0, NumLines)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				for _, d := range Directions {
					ex, ey, ez := x+d.DX*(Size-1), y+d.DY*(Size-1), z+d.DZ*(Size-1)
					if !InBounds(ex, ey, ez) {
						continue
					}
					var l Line
					l.Dir = d
					for i := 0; i < Size; i++ {
						sq := NewSquare(x+d.DX*i, y+d.DY*i, z+d.DZ*i)
						l.Squares[i] = sq
						l.Mask |= SquareBB(sq)
					}
					out = append(out, l)
				}
			}
		}
	}
	return out
}

// Lines returns the shared line catalog. Callers must not modify it.
func Lines() []Line {
	return lines
}

// LinesThrough returns the indices into Lines() of the lines containing sq.
func LinesThrough(sq Square) []uint8 {
	return linesThrough[sq]
}

// HasLine reports whether the stones complete any line.
func HasLine(stones Bitboard) bool {
	for i := range lines {
		if stones&lines[i].Mask == lines[i].Mask {
			return true
		}
	}
	return false
}

// HasLineThrough reports whether the stones complete a line containing sq.
func HasLineThrough(stones Bitboard, sq Square) bool {
	for _, i := range linesThrough[sq] {
		m := lines[i].Mask
		if stones&m == m {
			return true
		}
	}
	return false
}
