package protocol

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/scorefour/internal/board"
	"github.com/hailam/scorefour/internal/engine"
	"github.com/hailam/scorefour/internal/storage"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

const dots48 = "................................................"

func newEngine() *engine.Engine {
	e := engine.NewEngine(1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.SetClock(func() time.Time { return now })
	e.SetLimits(engine.SearchLimits{Depth: 3, MoveTime: time.Second})
	return e
}

// run feeds script to a fresh protocol and returns the output lines.
func run(t *testing.T, store *storage.Storage, script ...string) ([]string, *Protocol) {
	t.Helper()
	var out bytes.Buffer
	p := New(newEngine(), store, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, p.Run())
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n"), p
}

func last(lines []string) string {
	return lines[len(lines)-1]
}

func TestHandshake(t *testing.T) {
	lines, _ := run(t, nil, "hello", "isready", "quit", "isready")
	assert.Equal(t, []string{"id name scorefour", "hellook", "readyok"}, lines)
}

func TestGoEmptyBoard(t *testing.T) {
	lines, _ := run(t, nil, "position empty", "go")
	assert.Equal(t, []string{"info string center", "bestmove 1,1"}, lines)
}

func TestGoTacticalWin(t *testing.T) {
	lines, _ := run(t, nil, "position board XXX.........OO.O"+dots48, "go depth 4")
	assert.Equal(t, "bestmove 3,0", last(lines))
	assert.Contains(t, lines, "info string win")
}

func TestGoSearchReportsIterations(t *testing.T) {
	lines, _ := run(t, nil, "position empty moves 0,0 1,1", "go depth 2 movetime 500")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "info depth 1 score "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "info depth 2 score "), lines[1])
	assert.True(t, strings.HasPrefix(last(lines), "bestmove "))
}

func TestPositionAndPlay(t *testing.T) {
	_, p := run(t, nil, "position empty moves 1,1 2,2 1,1", "play 2,2")
	b := p.Board()
	assert.Equal(t, 2, b.Height(board.Column{X: 1, Y: 1}))
	assert.Equal(t, 2, b.Height(board.Column{X: 2, Y: 2}))
	assert.Equal(t, board.Side1, b.SideToMove())

	_, p = run(t, nil, "position board XOXO/OXOX/..../..../"+dots48, "newgame")
	assert.Equal(t, board.EmptyNotation, p.Board().Notation())
}

func TestPlayReportsWinner(t *testing.T) {
	lines, _ := run(t, nil, "position empty moves 0,0 0,1 1,0 1,1 2,0 2,1", "play 3,0")
	assert.Equal(t, []string{"info string Side1 wins"}, lines)
}

func TestLegal(t *testing.T) {
	lines, _ := run(t, nil, "position empty moves 0,0 0,0 0,0 0,0", "legal")
	require.Len(t, lines, 1)
	cols := strings.Fields(lines[0])[1:]
	assert.Len(t, cols, 15)
	assert.NotContains(t, cols, "0,0")
	assert.Equal(t, "1,1", cols[0])
}

func TestErrorsKeepRunning(t *testing.T) {
	lines, p := run(t, nil,
		"position empty moves 1,1",
		"position board XX",
		"position empty moves 0,0 0,0 0,0 0,0 0,0",
		"play 4,4",
		"go depth x",
		"jump",
		"isready",
	)
	require.Len(t, lines, 6)
	for _, l := range lines[:5] {
		assert.True(t, strings.HasPrefix(l, "info string "), l)
	}
	assert.Equal(t, "readyok", lines[5])
	// Failed commands leave the board alone.
	assert.Equal(t, 1, p.Board().Height(board.Column{X: 1, Y: 1}))
}

func TestParseGoOptions(t *testing.T) {
	opts, err := parseGoOptions([]string{"movetime", "1500", "depth", "5"})
	require.NoError(t, err)
	assert.Equal(t, GoOptions{Depth: 5, MoveTime: 1500 * time.Millisecond}, opts)

	for _, args := range [][]string{{"depth"}, {"depth", "-1"}, {"nodes", "10"}} {
		_, err := parseGoOptions(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestStatsAndLevel(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	lines, p := run(t, store,
		"stats",
		"level medium",
		"position empty",
		"go",
		"position board XXX.........OO.O"+dots48,
		"go",
		"stats",
	)
	assert.Equal(t, "stats decisions 0 wins 0 blocks 0 openings 0 fallbacks 0 searched 0 avgdepth 0.0 avgtime 0", lines[0])
	assert.Equal(t, "stats decisions 2 wins 1 blocks 0 openings 1 fallbacks 0 searched 0 avgdepth 0.0 avgtime 0", last(lines))
	assert.Equal(t, engine.DifficultySettings[engine.Medium], p.engine.Limits())

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "medium", settings.Difficulty)

	logged, err := store.Decisions(board.EmptyNotation)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "1,1", logged[0].Move)
}

func TestStatsWithoutStore(t *testing.T) {
	lines, _ := run(t, nil, "stats")
	assert.Equal(t, []string{"info string stats: storage disabled"}, lines)
}

func TestPositionRejectsImpossibleBoards(t *testing.T) {
	tests := []struct {
		name  string
		cells string
	}{
		{"two extra stones", "XX.............." + dots48},
		{"second side ahead", "O..............." + dots48},
		{"floating stone", "X...O..........." + "...X............" + "................................"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, p := run(t, nil, "position empty moves 2,2", "position board "+tt.cells)
			require.Len(t, lines, 1)
			assert.True(t, strings.HasPrefix(lines[0], "info string invalid board: "), lines[0])
			assert.Equal(t, 1, p.Board().Height(board.Column{X: 2, Y: 2}))
		})
	}
}
