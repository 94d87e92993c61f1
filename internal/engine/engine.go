// Package engine implements move search for the Game of the Amazons:
// a static mobility evaluator and a fixed-depth alpha-beta minimax.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/amazons/internal/board"
)

// SearchInfo contains information about a completed search.
type SearchInfo struct {
	Depth   int
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	Move    board.Move
	Workers int
}

// Option configures an Engine.
type Option func(e *Engine)

// WithDepth fixes the search depth instead of using DepthHeuristic.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

// WithMaxDepth caps the depth chosen by DepthHeuristic.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithWorkers splits the root moves over n goroutines, each searching its
// own copy of the board.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithInfo registers a callback invoked after every search.
func WithInfo(fn func(SearchInfo)) Option {
	return func(e *Engine) {
		e.onInfo = fn
	}
}

// Engine is the Amazons AI engine.
type Engine struct {
	depth    int
	maxDepth int
	workers  int
	onInfo   func(SearchInfo)
}

// NewEngine creates an engine. By default it searches sequentially to the
// depth given by DepthHeuristic.
func NewEngine(options ...Option) *Engine {
	e := &Engine{workers: 1}
	for _, option := range options {
		option(e)
	}
	return e
}

// SearchDepth returns the depth the engine would search b to.
func (e *Engine) SearchDepth(b *board.Board) int {
	if e.depth > 0 {
		return e.depth
	}
	d := DepthHeuristic(b)
	if e.maxDepth > 0 && d > e.maxDepth {
		d = e.maxDepth
	}
	return max(d, 1)
}

// ChooseMove returns the best move for the side to move in b: the move of
// maximal value when maximizing (White), minimal otherwise. b is left in
// its original state. It fails with ErrNoLegalMoves on a decided position.
func (e *Engine) ChooseMove(ctx context.Context, b *board.Board, maximizing bool) (board.Move, error) {
	sense := Minimizing
	if maximizing {
		sense = Maximizing
	}
	depth := e.SearchDepth(b)
	start := time.Now()

	var (
		move  board.Move
		score int
		nodes uint64
		err   error
	)
	if e.workers > 1 {
		move, score, nodes, err = e.searchParallel(ctx, b, depth, sense)
	} else {
		s := NewSearcher()
		move, score, err = s.Search(ctx, b, depth, sense)
		nodes = s.Nodes()
	}
	if err != nil {
		log.Warn().Err(err).Int("depth", depth).Str("side", sense.Side().Name()).Msg("search failed")
		return board.NoMove, err
	}

	info := SearchInfo{
		Depth:   depth,
		Score:   score,
		Nodes:   nodes,
		Elapsed: time.Since(start),
		Move:    move,
		Workers: e.workers,
	}
	log.Debug().
		Int("depth", info.Depth).
		Int("score", info.Score).
		Uint64("nodes", info.Nodes).
		Dur("elapsed", info.Elapsed).
		Int("workers", info.Workers).
		Str("move", move.String()).
		Msg("search complete")
	if e.onInfo != nil {
		e.onInfo(info)
	}
	return move, nil
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(b *board.Board) int {
	return Evaluate(b)
}
