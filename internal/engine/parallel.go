package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/amazons/internal/board"
)

// searchParallel scores every root move with a full window, spreading the
// moves over e.workers goroutines that each own a copy of b. The result is
// the first move in generation order with the extremal value, which is the
// move the sequential search picks.
func (e *Engine) searchParallel(ctx context.Context, b *board.Board, depth int, sense Sense) (board.Move, int, uint64, error) {
	if b.Winner() != board.Empty {
		return board.NoMove, 0, 0, fmt.Errorf("%w: %s has already won", ErrNoLegalMoves, b.Winner().Name())
	}
	if b.Turn() != sense.Side() {
		return board.NoMove, 0, 0, fmt.Errorf("%w: %s to move", ErrWrongSide, b.Turn().Name())
	}

	moves := b.Moves(sense.Side())
	if len(moves) == 0 {
		return board.NoMove, 0, 0, fmt.Errorf("%w: %s cannot move", ErrNoLegalMoves, sense.Side().Name())
	}
	if depth < 1 {
		depth = 1
	}

	workers := min(e.workers, len(moves))
	values := make([]int, len(moves))
	var nodes atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			local := b.Copy()
			s := NewSearcher()
			defer func() { nodes.Add(s.Nodes()) }()

			for i := w; i < len(moves); i += workers {
				if err := local.MakeMove(moves[i]); err != nil {
					return err
				}
				v, err := s.search(gctx, local, depth-1, false, -sense, -Infinity, Infinity)
				local.Undo()
				if err != nil {
					return err
				}
				values[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return board.NoMove, 0, nodes.Load(), err
	}

	best := 0
	for i, v := range values {
		if i == 0 || sense.better(v, values[best]) {
			best = i
		}
	}
	// Count the root itself, as the sequential search does.
	return moves[best], values[best], nodes.Load() + 1, nil
}
