// Package player supplies the sources of commands for a game: a human at a
// terminal, the search engine, or a uniformly random mover.
package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/hailam/amazons/internal/board"
	"github.com/hailam/amazons/internal/engine"
)

// Player produces the next command line for the controller. Automated
// players return a move in "from to spear" form.
type Player interface {
	Command(ctx context.Context) (string, error)
}

// Kind selects how a side is played.
type Kind int

const (
	KindManual Kind = iota
	KindAuto
	KindRandom
)

var kindNames = [...]string{"manual", "auto", "random"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses "manual", "auto" or "random", ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return KindManual, fmt.Errorf("unknown player kind %q", s)
}

// Manual reads commands line by line, writing a prompt before each read.
// Reads happen on a separate goroutine so that a blocked read can be
// abandoned when the context is cancelled.
type Manual struct {
	in     *bufio.Scanner
	prompt io.Writer

	// pending receives the result of the read in flight, if any. A read
	// abandoned by a cancelled Command is picked up by the next call.
	pending chan scanResult
}

type scanResult struct {
	text string
	err  error
}

// NewManual returns a player reading from in. The "> " prompt goes to
// prompt unless it is nil.
func NewManual(in *bufio.Scanner, prompt io.Writer) *Manual {
	return &Manual{in: in, prompt: prompt}
}

// Command returns the next trimmed input line, io.EOF once the input is
// exhausted, or the context error if ctx is done first.
func (p *Manual) Command(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.pending == nil {
		if p.prompt != nil {
			fmt.Fprint(p.prompt, "> ")
		}
		p.pending = make(chan scanResult, 1)
		go p.scan(p.pending)
	}

	select {
	case r := <-p.pending:
		p.pending = nil
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *Manual) scan(out chan<- scanResult) {
	if !p.in.Scan() {
		err := p.in.Err()
		if err == nil {
			err = io.EOF
		}
		out <- scanResult{err: err}
		return
	}
	out <- scanResult{text: strings.TrimSpace(p.in.Text())}
}

// MoveFunc is notified of every move an automated player chooses.
type MoveFunc func(side board.Piece, m board.Move)

// AI plays side on b using the search engine.
type AI struct {
	eng    *engine.Engine
	b      *board.Board
	side   board.Piece
	onMove MoveFunc
}

// NewAI returns an engine-driven player for side. onMove may be nil.
func NewAI(eng *engine.Engine, b *board.Board, side board.Piece, onMove MoveFunc) *AI {
	return &AI{eng: eng, b: b, side: side, onMove: onMove}
}

// Command searches the current position and returns the chosen move.
func (p *AI) Command(ctx context.Context) (string, error) {
	m, err := p.eng.ChooseMove(ctx, p.b, p.side == board.White)
	if err != nil {
		return "", fmt.Errorf("%s engine: %w", p.side.Name(), err)
	}
	if p.onMove != nil {
		p.onMove(p.side, m)
	}
	return m.Text(), nil
}

// Random plays a uniformly chosen legal move for side.
type Random struct {
	rng    *rand.Rand
	b      *board.Board
	side   board.Piece
	onMove MoveFunc
}

// NewRandom returns a random player drawing from rng. onMove may be nil.
func NewRandom(rng *rand.Rand, b *board.Board, side board.Piece, onMove MoveFunc) *Random {
	return &Random{rng: rng, b: b, side: side, onMove: onMove}
}

// Command picks one of the legal moves of side at random.
func (p *Random) Command(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	moves := p.b.Moves(p.side)
	if len(moves) == 0 {
		return "", fmt.Errorf("%w: %s cannot move", engine.ErrNoLegalMoves, p.side.Name())
	}
	m := moves[p.rng.Intn(len(moves))]
	log.Debug().Str("side", p.side.Name()).Int("choices", len(moves)).Str("move", m.String()).Msg("random move")
	if p.onMove != nil {
		p.onMove(p.side, m)
	}
	return m.Text(), nil
}
