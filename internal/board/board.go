package board

import (
	"strings"
)

// Board represents a Score Four position.
// Cells, per-side bitboards, column heights and the Zobrist hash are kept in
// sync by MakeMove/UnmakeMove; a Board is a plain value and copies cheaply.
type Board struct {
	cells   [NumSquares]Cell
	stones  [2]Bitboard
	heights [NumColumns]uint8

	// Zobrist hash of the stones (side to move not included)
	Hash uint64
}

// Key is the canonical encoding of a position together with the side to move.
// It is comparable and is stored verbatim in the transposition table, so two
// different positions never share an entry.
type Key struct {
	Stones [2]Bitboard
	Side   Cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// FromGrid builds a board from a [z][y][x] grid of cells. Stones are taken as
// given; the grid is assumed to have no floating stones.
func FromGrid(grid [Size][Size][Size]Cell) *Board {
	b := NewBoard()
	for z := 0; z < Size; z++ {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				if c := grid[z][y][x]; c.IsSide() {
					b.put(NewSquare(x, y, z), c)
				}
			}
		}
	}
	return b
}

// Grid returns the board as a [z][y][x] grid.
func (b *Board) Grid() [Size][Size][Size]Cell {
	var g [Size][Size][Size]Cell
	for sq := Square(0); sq < NoSquare; sq++ {
		g[sq.Z()][sq.Y()][sq.X()] = b.cells[sq]
	}
	return g
}

// Copy returns a copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// At returns the cell at (x, y, z).
func (b *Board) At(x, y, z int) Cell {
	return b.cells[NewSquare(x, y, z)]
}

// CellAt returns the cell at sq.
func (b *Board) CellAt(sq Square) Cell {
	return b.cells[sq]
}

// Stones returns the bitboard of the side's stones.
func (b *Board) Stones(side Cell) Bitboard {
	return b.stones[side.index()]
}

// Occupied returns all stones.
func (b *Board) Occupied() Bitboard {
	return b.stones[0] | b.stones[1]
}

// Height returns the fill height (0-4) of the column.
func (b *Board) Height(c Column) int {
	return int(b.heights[c.Index()])
}

// HeightAt returns the fill height of the column with the given index.
func (b *Board) HeightAt(idx int) int {
	return int(b.heights[idx])
}

// CountStones returns the number of stones of each side.
func (b *Board) CountStones() (side1, side2 int) {
	return b.stones[0].Count(), b.stones[1].Count()
}

// SideToMove infers the side to move from stone parity: Side1 moves first,
// so equal counts mean Side1 is next.
func (b *Board) SideToMove() Cell {
	c1, c2 := b.CountStones()
	if c1 == c2 {
		return Side1
	}
	return Side2
}

// DropHeight returns the z a stone dropped into c would land on.
// ok is false when the column is full.
func (b *Board) DropHeight(c Column) (z int, ok bool) {
	h := int(b.heights[c.Index()])
	if h >= Size {
		return 0, false
	}
	return h, true
}

// CanPlay reports whether the column has room for another stone.
func (b *Board) CanPlay(c Column) bool {
	return c.Valid() && b.heights[c.Index()] < Size
}

// IsFull reports whether every column is full.
func (b *Board) IsFull() bool {
	return b.Occupied() == Universe
}

// LegalColumns returns the playable columns in center-first order.
func (b *Board) LegalColumns() []Column {
	return b.AppendLegalColumns(make([]Column, 0, NumColumns))
}

// AppendLegalColumns appends the playable columns in center-first order to dst.
func (b *Board) AppendLegalColumns(dst []Column) []Column {
	for _, c := range centerOrder {
		if b.heights[c.Index()] < Size {
			dst = append(dst, c)
		}
	}
	return dst
}

// MakeMove drops a stone of side into c and returns the square it landed on.
// The column must not be full.
func (b *Board) MakeMove(c Column, side Cell) Square {
	sq := c.Square(int(b.heights[c.Index()]))
	b.put(sq, side)
	return sq
}

// UnmakeMove removes the stone on sq, which must be the top stone of its column.
func (b *Board) UnmakeMove(sq Square) {
	side := b.cells[sq]
	if !side.IsSide() {
		return
	}
	b.cells[sq] = Empty
	b.stones[side.index()] &^= SquareBB(sq)
	b.heights[sq.ColumnIndex()]--
	b.Hash ^= zobristStone[side.index()][sq]
}

// Play drops a stone of the side to move into c.
// Unlike MakeMove it validates the column.
func (b *Board) Play(c Column) (Square, error) {
	if !c.Valid() {
		return NoSquare, ErrOutOfRange
	}
	if !b.CanPlay(c) {
		return NoSquare, ErrColumnFull
	}
	return b.MakeMove(c, b.SideToMove()), nil
}

func (b *Board) put(sq Square, side Cell) {
	b.cells[sq] = side
	b.stones[side.index()] |= SquareBB(sq)
	b.heights[sq.ColumnIndex()]++
	b.Hash ^= zobristStone[side.index()][sq]
}

// HasWin reports whether side has a completed line anywhere on the board.
func (b *Board) HasWin(side Cell) bool {
	return HasLine(b.stones[side.index()])
}

// WinsAt reports whether side has a completed line through sq.
func (b *Board) WinsAt(sq Square, side Cell) bool {
	return HasLineThrough(b.stones[side.index()], sq)
}

// IsWinningMove reports whether dropping a stone of side into c completes a line.
// The board is left unchanged.
func (b *Board) IsWinningMove(c Column, side Cell) bool {
	if !b.CanPlay(c) {
		return false
	}
	sq := b.MakeMove(c, side)
	win := b.WinsAt(sq, side)
	b.UnmakeMove(sq)
	return win
}

// Winner returns the side with a completed line, or Empty.
// Side1 is reported first if both have one.
func (b *Board) Winner() Cell {
	if b.HasWin(Side1) {
		return Side1
	}
	if b.HasWin(Side2) {
		return Side2
	}
	return Empty
}

// GameOver reports whether a side has won or the board is full.
func (b *Board) GameOver() bool {
	return b.IsFull() || b.Winner() != Empty
}

// Key returns the canonical search key of the position with side to move.
func (b *Board) Key(side Cell) Key {
	return Key{Stones: b.stones, Side: side}
}

// HashFor returns the Zobrist hash of the position with side to move.
func (b *Board) HashFor(side Cell) uint64 {
	if side == Side2 {
		return b.Hash ^ zobristSideToMove
	}
	return b.Hash
}

// String renders the board as four layers, top layer first, y=3 at the top
// of each layer.
func (b *Board) String() string {
	var sb strings.Builder
	for z := Size - 1; z >= 0; z-- {
		sb.WriteString("z=")
		sb.WriteByte(byte('0' + z))
		sb.WriteByte('\n')
		for y := Size - 1; y >= 0; y-- {
			sb.WriteByte(byte('0' + y))
			sb.WriteByte(' ')
			for x := 0; x < Size; x++ {
				sb.WriteByte(b.At(x, y, z).Char())
			}
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("  0123\n")
	return sb.String()
}
