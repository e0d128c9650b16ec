package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/scorefour/internal/board"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

// randomBoards plays random games from the empty board and returns the
// positions met on the way. A game stops before the board holds two winners.
func randomBoards(seed int64, games int) []*board.Board {
	rng := rand.New(rand.NewSource(seed))
	var out []*board.Board
	for g := 0; g < games; g++ {
		b := board.NewBoard()
		for !b.GameOver() {
			legal := b.LegalColumns()
			b.MakeMove(legal[rng.Intn(len(legal))], b.SideToMove())
			out = append(out, b.Copy())
		}
	}
	return out
}

// frozenEngine returns an engine whose clock never advances, so searches are
// bounded by depth only.
func frozenEngine(depth int) *Engine {
	e := NewEngine(1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.SetClock(func() time.Time { return now })
	e.SetLimits(SearchLimits{Depth: depth, MoveTime: time.Second})
	return e
}

func mustParse(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := board.ParseBoard(s)
	if err != nil {
		t.Fatalf("Failed to parse board: %v", err)
	}
	return b
}
