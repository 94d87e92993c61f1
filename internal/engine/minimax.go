package engine

import "github.com/hailam/amazons/internal/board"

// Minimax searches b to depth plies without pruning and returns the first
// root move with the extremal value. It visits every node, so it is only
// practical at shallow depth; it serves as a reference for Searcher.
func Minimax(b *board.Board, depth int, sense Sense) (board.Move, int) {
	if depth == 0 || b.Winner() != board.Empty {
		return board.NoMove, Evaluate(b)
	}

	bestMove := board.NoMove
	best := 0
	for _, m := range b.Moves(sense.Side()) {
		if err := b.MakeMove(m); err != nil {
			continue
		}
		_, v := Minimax(b, depth-1, -sense)
		b.Undo()

		if bestMove.IsNone() || sense.better(v, best) {
			best = v
			bestMove = m
		}
	}

	if bestMove.IsNone() {
		return board.NoMove, Evaluate(b)
	}
	return bestMove, best
}
