package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a set of squares, bit i corresponding to Square(i).
type Bitboard uint64

// Layer masks (z = 0 is the bottom layer).
const (
	Layer0 Bitboard = 0x000000000000FFFF
	Layer1 Bitboard = Layer0 << 16
	Layer2 Bitboard = Layer0 << 32
	Layer3 Bitboard = Layer0 << 48

	Universe Bitboard = 0xFFFFFFFFFFFFFFFF
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return Bitboard(1) << sq
}

// Has reports whether the square is set.
func (b Bitboard) Has(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Count returns the number of set squares.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, or NoSquare for an empty bitboard.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// String renders the bitboard as four 4x4 layers, top layer first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for z := Size - 1; z >= 0; z-- {
		for y := Size - 1; y >= 0; y-- {
			for x := 0; x < Size; x++ {
				if b.Has(NewSquare(x, y, z)) {
					sb.WriteByte('1')
				} else {
					sb.WriteByte('.')
				}
			}
			sb.WriteByte('\n')
		}
		if z > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
