package board

import "testing"

// perft counts the leaf nodes of the move tree at the given depth.
// Wins do not end the game here: it only exercises drop and undo.
func perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	side := b.SideToMove()
	moves := b.LegalColumns()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, c := range moves {
		sq := b.MakeMove(c, side)
		nodes += perft(b, depth-1)
		b.UnmakeMove(sq)
	}
	return nodes
}

// TestPerftEmptyBoard checks drop/undo against counts derived by hand: every
// column stays open for the first four plies, and at ply five only the 16
// sequences that stacked one column have 15 replies.
func TestPerftEmptyBoard(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 16},
		{2, 256},
		{3, 4096},
		{4, 65536},
		{5, 1048560},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(b, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}

	if *b != (Board{}) {
		t.Error("perft left stones on the board")
	}
}

// TestPerftPreservesHash checks that make/unmake restores the Zobrist hash.
func TestPerftPreservesHash(t *testing.T) {
	b, err := ParseBoard("XOXO.XO........./O....X........../................/................")
	if err != nil {
		t.Fatalf("Failed to parse board: %v", err)
	}
	before := *b
	perft(b, 3)
	if *b != before {
		t.Errorf("board changed after perft:\n%s", b)
	}
}
