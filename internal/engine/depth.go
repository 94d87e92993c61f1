package engine

import "github.com/hailam/amazons/internal/board"

// Move-count thresholds for the depth heuristic. The branching factor
// shrinks as spears fill the board, so later positions afford deeper search.
const (
	depthStep1 = 20
	depthStep2 = 55
	depthStep3 = 75
)

// DepthHeuristic returns a search depth for b based on the number of moves
// played and the number of queens on the board.
func DepthHeuristic(b *board.Board) int {
	queens := len(b.Queens(board.White)) + len(b.Queens(board.Black))
	return depthFor(b.NumMoves(), queens)
}

func depthFor(n, queens int) int {
	switch {
	case n < depthStep1:
		return 1
	case n < depthStep2:
		return 2
	case n < depthStep3:
		return 3 + (board.Size-queens)/(depthStep1*board.Size/n)
	default:
		return n / 15
	}
}
