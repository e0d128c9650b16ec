// Package protocol drives the engine over a line-based text protocol.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/scorefour/internal/board"
	"github.com/hailam/scorefour/internal/engine"
	"github.com/hailam/scorefour/internal/storage"
)

// Protocol reads commands from in and writes responses to out.
// Commands are handled one at a time; a search blocks the loop until it returns.
type Protocol struct {
	engine *engine.Engine
	store  *storage.Storage // nil disables settings and the decision log
	board  *board.Board

	in  io.Reader
	out io.Writer
}

// New creates a protocol handler. store may be nil.
func New(eng *engine.Engine, store *storage.Storage, in io.Reader, out io.Writer) *Protocol {
	return &Protocol{
		engine: eng,
		store:  store,
		board:  board.NewBoard(),
		in:     in,
		out:    out,
	}
}

// Board returns the current board.
func (p *Protocol) Board() *board.Board {
	return p.board
}

// Run processes commands until "quit" or the end of input.
func (p *Protocol) Run() error {
	scanner := bufio.NewScanner(p.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		log.Debug().Str("cmd", cmd).Strs("args", args).Msg("command")

		switch cmd {
		case "hello":
			p.println("id name scorefour")
			p.println("hellook")
		case "isready":
			p.println("readyok")
		case "newgame":
			p.handleNewGame()
		case "position":
			p.handlePosition(args)
		case "go":
			p.handleGo(args)
		case "play":
			p.handlePlay(args)
		case "legal":
			p.handleLegal()
		case "level":
			p.handleLevel(args)
		case "d":
			p.printf("%s", p.board.String())
		case "eval":
			p.printf("eval %d\n", p.engine.Evaluate(p.board))
		case "stats":
			p.handleStats()
		case "quit":
			return nil
		default:
			p.errorf("unknown command %q", cmd)
		}
	}
	return scanner.Err()
}

func (p *Protocol) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *Protocol) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Protocol) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warn().Msg(msg)
	fmt.Fprintf(p.out, "info string %s\n", msg)
}

// handleNewGame resets the board and the engine.
func (p *Protocol) handleNewGame() {
	p.engine.Clear()
	p.board = board.NewBoard()
}

// handlePosition sets up a board.
// Formats:
//   - position empty
//   - position empty moves 1,1 2,2
//   - position board <64 cells>
//   - position board <64 cells> moves 1,1
//
// The current board is kept when any part fails to parse.
func (p *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		p.errorf("position: missing board")
		return
	}

	movesAt := lo.IndexOf(args, "moves")
	boardArgs, moveArgs := args, []string(nil)
	if movesAt >= 0 {
		boardArgs, moveArgs = args[:movesAt], args[movesAt+1:]
	}

	var b *board.Board
	switch boardArgs[0] {
	case "empty":
		b = board.NewBoard()
	case "board":
		var err error
		b, err = board.ParseBoard(strings.Join(boardArgs[1:], ""))
		if err == nil {
			err = b.Validate()
		}
		if err != nil {
			p.errorf("invalid board: %v", err)
			return
		}
	default:
		p.errorf("position: unknown board %q", boardArgs[0])
		return
	}

	for _, s := range moveArgs {
		if err := play(b, s); err != nil {
			p.errorf("invalid move %s: %v", s, err)
			return
		}
	}
	p.board = b
}

func play(b *board.Board, s string) error {
	c, err := board.ParseColumn(s)
	if err != nil {
		return err
	}
	_, err = b.Play(c)
	return err
}

// handlePlay applies one move for the side to move.
func (p *Protocol) handlePlay(args []string) {
	if len(args) != 1 {
		p.errorf("play: want one column x,y")
		return
	}
	if err := play(p.board, args[0]); err != nil {
		p.errorf("invalid move %s: %v", args[0], err)
		return
	}
	if w := p.board.Winner(); w != board.Empty {
		p.printf("info string %s wins\n", w)
	}
}

func (p *Protocol) handleLegal() {
	cols := lo.Map(p.board.LegalColumns(), func(c board.Column, _ int) string {
		return c.String()
	})
	p.printf("legal %s\n", strings.Join(cols, " "))
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth    int
	MoveTime time.Duration
}

// parseGoOptions parses "go" command arguments.
func parseGoOptions(args []string) (GoOptions, error) {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			return opts, fmt.Errorf("go: %s needs a value", args[i])
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil || n <= 0 {
			return opts, fmt.Errorf("go: bad %s %q", args[i], args[i+1])
		}
		switch args[i] {
		case "depth":
			opts.Depth = n
		case "movetime":
			opts.MoveTime = time.Duration(n) * time.Millisecond
		default:
			return opts, fmt.Errorf("go: unknown option %q", args[i])
		}
		i++
	}
	return opts, nil
}

// limits merges go options into the configured limits.
func (p *Protocol) limits(opts GoOptions) engine.SearchLimits {
	limits := p.engine.Limits()
	if opts.Depth > 0 {
		limits.Depth = opts.Depth
	}
	if opts.MoveTime > 0 {
		limits.MoveTime = opts.MoveTime
	}
	return limits
}

// handleGo runs a decision on the current board and prints the answer.
func (p *Protocol) handleGo(args []string) {
	opts, err := parseGoOptions(args)
	if err != nil {
		p.errorf("%v", err)
		return
	}

	p.engine.OnInfo = p.sendInfo
	defer func() { p.engine.OnInfo = nil }()

	res := p.engine.DecideWithLimits(p.board, p.limits(opts))
	if res.Tactic != engine.TacticNone {
		p.printf("info string %s\n", res.Tactic)
	}
	p.printf("bestmove %s\n", res.Move)

	if p.store != nil {
		if err := p.store.RecordDecision(storage.NewDecision(p.board, res)); err != nil {
			log.Error().Err(err).Msg("record decision")
		}
	}
}

// sendInfo outputs one completed iteration.
func (p *Protocol) sendInfo(info engine.SearchInfo) {
	parts := []string{fmt.Sprintf("depth %d", info.Depth)}

	switch {
	case info.Score >= engine.WinScore:
		parts = append(parts, "score win")
	case info.Score <= -engine.WinScore:
		parts = append(parts, "score loss")
	default:
		parts = append(parts, fmt.Sprintf("score %d", info.Score))
	}

	parts = append(parts,
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
		fmt.Sprintf("move %s", info.Move),
	)
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}
	if info.Partial {
		parts = append(parts, "partial")
	}

	p.printf("info %s\n", strings.Join(parts, " "))
}

// handleLevel sets the difficulty and persists it.
func (p *Protocol) handleLevel(args []string) {
	if len(args) != 1 {
		p.errorf("level: want easy, medium or hard")
		return
	}
	d, ok := engine.ParseDifficulty(args[0])
	if !ok {
		p.errorf("level: unknown difficulty %q", args[0])
		return
	}
	p.engine.SetDifficulty(d)

	if p.store == nil {
		return
	}
	limits := p.engine.Limits()
	settings := &storage.Settings{MoveTime: limits.MoveTime, MaxDepth: limits.Depth, Difficulty: d.String()}
	if err := p.store.SaveSettings(settings); err != nil {
		p.errorf("%v", err)
	}
}

func (p *Protocol) handleStats() {
	if p.store == nil {
		p.errorf("stats: storage disabled")
		return
	}
	stats, err := p.store.LoadStats()
	if err != nil {
		p.errorf("%v", err)
		return
	}

	p.printf("stats decisions %d wins %d blocks %d openings %d fallbacks %d searched %d avgdepth %.1f avgtime %d\n",
		stats.Decisions, stats.TacticalWins, stats.TacticalBlocks, stats.Openings,
		stats.Fallbacks, stats.Searched, stats.AverageDepth(), stats.AverageTime().Milliseconds())

	if len(stats.DepthHistogram) > 0 {
		depths := lo.Map(stats.Depths(), func(d int, _ int) string {
			return fmt.Sprintf("%d:%d", d, stats.DepthHistogram[d])
		})
		p.printf("stats depths %s\n", strings.Join(depths, " "))
	}
}
