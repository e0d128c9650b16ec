package board

// Cell is the content of a square: empty or a stone of one of the two sides.
// The side values double as player identifiers; Side1 always moves first.
type Cell uint8

const (
	Empty Cell = iota
	Side1
	Side2
)

// Other returns the opposing side. Empty maps to Empty.
func (c Cell) Other() Cell {
	switch c {
	case Side1:
		return Side2
	case Side2:
		return Side1
	default:
		return Empty
	}
}

// IsSide reports whether c is one of the two playing sides.
func (c Cell) IsSide() bool {
	return c == Side1 || c == Side2
}

// index returns 0 for Side1 and 1 for Side2. Only valid for sides.
func (c Cell) index() int {
	return int(c) - 1
}

// Char returns the notation character of the cell.
func (c Cell) Char() byte {
	switch c {
	case Side1:
		return 'X'
	case Side2:
		return 'O'
	default:
		return '.'
	}
}

// String returns a human-readable name.
func (c Cell) String() string {
	switch c {
	case Side1:
		return "Side1"
	case Side2:
		return "Side2"
	default:
		return "Empty"
	}
}
