package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hailam/amazons/internal/board"
)

var (
	// ErrNoLegalMoves is returned when a search is started on a position
	// where the searching side cannot move.
	ErrNoLegalMoves = errors.New("no legal moves at root")

	// ErrWrongSide is returned when the requested sense does not match the
	// side to move.
	ErrWrongSide = errors.New("searching side is not on move")
)

// Sense selects whose options a ply enumerates: +1 for White (maximizing),
// -1 for Black (minimizing).
type Sense int

const (
	Maximizing Sense = 1
	Minimizing Sense = -1
)

// SenseFor returns the sense that searches side's moves.
func SenseFor(side board.Piece) Sense {
	if side == board.Black {
		return Minimizing
	}
	return Maximizing
}

// Side returns the side whose moves are enumerated under s.
func (s Sense) Side() board.Piece {
	if s == Minimizing {
		return board.Black
	}
	return board.White
}

// better reports whether v improves on best for this sense.
func (s Sense) better(v, best int) bool {
	if s == Maximizing {
		return v > best
	}
	return v < best
}

// Searcher performs a fixed-depth alpha-beta search.
// A Searcher and the board it searches belong to one goroutine.
type Searcher struct {
	nodes    uint64
	bestMove board.Move
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{bestMove: board.NoMove}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search runs alpha-beta to depth plies from b for the side given by sense
// and returns the best root move with its value. b is restored before
// returning, also on error.
func (s *Searcher) Search(ctx context.Context, b *board.Board, depth int, sense Sense) (board.Move, int, error) {
	s.nodes = 0
	s.bestMove = board.NoMove

	if b.Winner() != board.Empty {
		return board.NoMove, 0, fmt.Errorf("%w: %s has already won", ErrNoLegalMoves, b.Winner().Name())
	}
	if b.Turn() != sense.Side() {
		return board.NoMove, 0, fmt.Errorf("%w: %s to move", ErrWrongSide, b.Turn().Name())
	}
	if depth < 1 {
		depth = 1
	}

	score, err := s.search(ctx, b, depth, true, sense, -Infinity, Infinity)
	if err != nil {
		return board.NoMove, 0, err
	}
	if s.bestMove.IsNone() {
		return board.NoMove, 0, fmt.Errorf("%w: %s cannot move", ErrNoLegalMoves, sense.Side().Name())
	}
	return s.bestMove, score, nil
}

// search returns the alpha-beta value of b, recording the chosen move in
// s.bestMove iff saveMove. Depth 0 and decided positions return the
// static value without recording a move.
func (s *Searcher) search(ctx context.Context, b *board.Board, depth int, saveMove bool, sense Sense, alpha, beta int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes++

	if depth == 0 || b.Winner() != board.Empty {
		return Evaluate(b), nil
	}

	best := 0
	found := false
	it := b.LegalMoves(sense.Side())
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		if err := b.MakeMove(m); err != nil {
			return 0, err
		}
		v, err := s.search(ctx, b, depth-1, false, -sense, alpha, beta)
		b.Undo()
		if err != nil {
			return 0, err
		}

		if !found || sense.better(v, best) {
			best = v
			found = true
			if saveMove {
				s.bestMove = m
			}
		}

		if sense == Maximizing {
			alpha = max(alpha, v)
		} else {
			beta = min(beta, v)
		}
		if beta <= alpha {
			break
		}
	}

	if !found {
		return Evaluate(b), nil
	}
	return best, nil
}
