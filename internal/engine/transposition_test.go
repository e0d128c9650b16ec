package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/scorefour/internal/board"
)

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	require.Greater(t, tt.Size(), uint64(0))
	assert.Zero(t, tt.Size()&(tt.Size()-1), "size must be a power of 2")

	b := board.NewBoard()
	b.MakeMove(board.Column{X: 1, Y: 2}, board.Side1)
	key := b.Key(board.Side2)
	hash := b.HashFor(board.Side2)

	_, found := tt.Probe(hash, key)
	assert.False(t, found, "expected miss on first probe")

	tt.Store(hash, key, 3, -42, TTUpperBound, board.Column{X: 0, Y: 1})
	entry, found := tt.Probe(hash, key)
	require.True(t, found)
	assert.Equal(t, int32(-42), entry.Score)
	assert.Equal(t, int8(3), entry.Depth)
	assert.Equal(t, TTUpperBound, entry.Flag)
	assert.Equal(t, int8(4), entry.Move)

	// Same slot, other side to move: the key differs, so no hit.
	_, found = tt.Probe(hash, b.Key(board.Side1))
	assert.False(t, found)
}

func TestTranspositionDepthPreferred(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := board.NewBoard().Key(board.Side1)

	tt.Store(7, key, 5, 10, TTExact, board.NoColumn)
	tt.Store(7, key, 2, 99, TTExact, board.NoColumn)
	entry, found := tt.Probe(7, key)
	require.True(t, found)
	assert.Equal(t, int32(10), entry.Score)
	assert.Equal(t, int8(-1), entry.Move)

	tt.Store(7, key, 6, 11, TTLowerBound, board.NoColumn)
	entry, _ = tt.Probe(7, key)
	assert.Equal(t, int32(11), entry.Score)
	assert.Equal(t, TTLowerBound, entry.Flag)
}

func TestTranspositionNewSearchHidesEntries(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := board.NewBoard().Key(board.Side1)
	tt.Store(1, key, 4, 5, TTExact, board.NoColumn)
	assert.Greater(t, tt.HashFull(), -1)

	tt.NewSearch()
	_, found := tt.Probe(1, key)
	assert.False(t, found, "entries of an earlier decision must not be visible")

	// A shallow store in the new generation replaces the stale deep entry.
	tt.Store(1, key, 1, 6, TTExact, board.NoColumn)
	entry, found := tt.Probe(1, key)
	require.True(t, found)
	assert.Equal(t, int32(6), entry.Score)

	tt.Clear()
	_, found = tt.Probe(1, key)
	assert.False(t, found)
	assert.Zero(t, tt.HitRate())
}
