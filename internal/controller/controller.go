// Package controller runs a game of Amazons from text commands: it asks
// the player on move for a command, executes it against the board and
// reports moves, wins and errors.
package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/hailam/amazons/internal/board"
	"github.com/hailam/amazons/internal/engine"
	"github.com/hailam/amazons/internal/player"
	"github.com/hailam/amazons/internal/storage"
)

// ErrBadCommand is returned for input that is not a known command.
var ErrBadCommand = errors.New("bad command")

// Recorder receives the result of every decided game.
type Recorder interface {
	RecordGame(result storage.GameResult) error
}

// Config configures a Controller. A nil In is an empty input, a nil Out
// discards reports, and a nil Engine searches to the heuristic depth.
// Prompt, Log and Recorder are optional.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Prompt   io.Writer
	Log      io.Writer
	White    player.Kind
	Black    player.Kind
	Seed     uint64
	Engine   *engine.Engine
	Recorder Recorder
}

// Controller drives one session, possibly spanning several games.
type Controller struct {
	b        *board.Board
	out      io.Writer
	cmdLog   io.Writer
	eng      *engine.Engine
	rng      *rand.Rand
	recorder Recorder

	// manual reads the shared input; it also serves as the non-player
	// consulted once a game is decided.
	manual  *player.Manual
	kinds   [2]player.Kind
	players [2]player.Player

	gameID  string
	winner  board.Piece
	playing bool
	started time.Time
}

// New creates a controller for a fresh game.
func New(cfg Config) *Controller {
	in := cfg.In
	if in == nil {
		in = strings.NewReader("")
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	eng := cfg.Engine
	if eng == nil {
		eng = engine.NewEngine()
	}

	c := &Controller{
		b:        board.NewBoard(),
		out:      out,
		cmdLog:   cfg.Log,
		eng:      eng,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		recorder: cfg.Recorder,
		manual:   player.NewManual(bufio.NewScanner(in), cfg.Prompt),
	}
	c.startGame()
	c.setPlayer(board.White, cfg.White)
	c.setPlayer(board.Black, cfg.Black)
	return c
}

// Board returns the board being played. Callers must not modify it.
func (c *Controller) Board() *board.Board {
	return c.b
}

// Kind returns how side is currently played.
func (c *Controller) Kind(s board.Piece) player.Kind {
	return c.kinds[side(s)]
}

// GameID returns the identifier of the current game. Each "new" command
// starts a game with a fresh identifier.
func (c *Controller) GameID() string {
	return c.gameID
}

// Winner returns the side that won the current game, or board.Empty.
func (c *Controller) Winner() board.Piece {
	return c.winner
}

// Run plays until a quit command, the end of input or cancellation of
// ctx. Bad commands are reported and skipped; Run fails only if a player
// cannot produce a command for another reason.
func (c *Controller) Run(ctx context.Context) error {
	c.playing = true
	for c.playing {
		p := player.Player(c.manual)
		if c.winner == board.Empty {
			p = c.players[side(c.b.Turn())]
		}

		cmd, err := p.Command(ctx)
		switch {
		case errors.Is(err, io.EOF):
			cmd, err = "quit", nil
		case errors.Is(err, context.Canceled):
			log.Info().Str("game", c.gameID).Msg("interrupted")
			cmd, err = "quit", nil
		}
		if err != nil {
			return err
		}

		if err := c.Execute(cmd); err != nil {
			fmt.Fprintf(c.out, "Error: %s\n", err)
		}
	}
	return nil
}

// Execute runs a single command line.
func (c *Controller) Execute(line string) error {
	if c.cmdLog != nil {
		fmt.Fprintln(c.cmdLog, line)
	}

	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return nil
	}
	log.Debug().Str("cmd", line).Str("turn", c.b.Turn().Name()).Msg("command")

	if board.IsMoveText(line) {
		return c.handleMove(line)
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch {
	case cmd == "quit" && len(args) == 0:
		c.playing = false
	case cmd == "new" && len(args) == 0:
		c.handleNew()
	case cmd == "dump" && len(args) == 0:
		fmt.Fprintf(c.out, "===\n%s===\n", c.b)
	case cmd == "undo" && len(args) == 0:
		c.handleUndo()
	case cmd == "seed" && len(args) == 1:
		return c.handleSeed(args[0])
	case cmd == "eval" && len(args) == 0:
		fmt.Fprintf(c.out, "Eval: %s\n", engine.ScoreToString(c.eng.Evaluate(c.b)))
	case cmd == "perft" && len(args) == 1:
		return c.handlePerft(args[0])
	case len(args) == 1 && isKind(cmd):
		return c.handleKind(cmd, args[0])
	default:
		return fmt.Errorf("%w: %s", ErrBadCommand, line)
	}
	return nil
}

func (c *Controller) handleMove(text string) error {
	m, err := board.ParseMove(text)
	if err != nil {
		return err
	}
	if err := c.b.MakeMove(m); err != nil {
		return err
	}

	if w := c.b.Winner(); w != board.Empty {
		c.winner = w
		fmt.Fprintf(c.out, "%s wins.\n", w.Name())
		c.record()
	}
	return nil
}

func (c *Controller) record() {
	result := storage.GameResult{
		ID:       c.gameID,
		Winner:   c.winner,
		Plies:    c.b.NumMoves(),
		Duration: time.Since(c.started),
	}
	log.Info().Str("game", result.ID).Str("winner", result.Winner.Name()).Int("plies", result.Plies).Dur("duration", result.Duration).Msg("game over")
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordGame(result); err != nil {
		log.Warn().Err(err).Msg("could not record game")
	}
}

func (c *Controller) handleNew() {
	c.b.Init()
	c.startGame()
}

func (c *Controller) startGame() {
	c.gameID = uuid.NewString()
	c.winner = board.Empty
	c.started = time.Now()
	log.Debug().Str("game", c.gameID).Msg("new game")
}

// handleUndo retracts the last two plies: a move and the reply to it.
func (c *Controller) handleUndo() {
	c.b.Undo()
	c.b.Undo()
	c.winner = c.b.Winner()
}

func (c *Controller) handleSeed(arg string) error {
	seed, err := strconv.ParseUint(arg, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return errors.New("number too large")
	}
	if err != nil {
		return fmt.Errorf("%w: seed %s", ErrBadCommand, arg)
	}
	c.rng.Seed(seed)
	return nil
}

func (c *Controller) handlePerft(arg string) error {
	depth, err := strconv.Atoi(arg)
	if err != nil || depth < 0 {
		return fmt.Errorf("%w: perft %s", ErrBadCommand, arg)
	}

	start := time.Now()
	nodes := c.b.Perft(depth)
	elapsed := time.Since(start)

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	log.Debug().Int("depth", depth).Uint64("nodes", nodes).Dur("elapsed", elapsed).Msg("perft")
	return nil
}

func (c *Controller) handleKind(cmd, arg string) error {
	kind, err := player.ParseKind(cmd)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadCommand, cmd)
	}
	s, ok := board.ParseSide(arg)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrBadCommand, cmd, arg)
	}
	c.setPlayer(s, kind)
	return nil
}

func (c *Controller) setPlayer(s board.Piece, kind player.Kind) {
	var p player.Player
	switch kind {
	case player.KindAuto:
		p = player.NewAI(c.eng, c.b, s, c.reportMove)
	case player.KindRandom:
		p = player.NewRandom(c.rng, c.b, s, c.reportMove)
	default:
		kind = player.KindManual
		p = c.manual
	}
	c.kinds[side(s)] = kind
	c.players[side(s)] = p
	log.Debug().Str("side", s.Name()).Stringer("kind", kind).Msg("player set")
}

// reportMove announces a move chosen by an automated player.
func (c *Controller) reportMove(_ board.Piece, m board.Move) {
	fmt.Fprintf(c.out, "* %s\n", m)
}

func isKind(cmd string) bool {
	_, err := player.ParseKind(cmd)
	return err == nil
}

func side(p board.Piece) int {
	if p == board.Black {
		return 1
	}
	return 0
}
