package engine

import (
	"strconv"

	"github.com/hailam/amazons/internal/board"
)

// Score constants
const (
	// WinningValue is the magnitude of a decided position, positive when
	// White has won. No undecided position can reach it.
	WinningValue = 1 << 24

	// Infinity bounds every score, including WinningValue.
	Infinity = WinningValue + 1

	// TrapValue is charged for each queen with no empty neighbour.
	TrapValue = 65
)

// Evaluate returns the static value of b; positive favours White.
//
// A decided position scores ±WinningValue. Otherwise each queen counts
// the square of its empty neighbours (mobility), minus TrapValue when it
// has none; Black's terms are subtracted.
func Evaluate(b *board.Board) int {
	switch b.Winner() {
	case board.White:
		return WinningValue
	case board.Black:
		return -WinningValue
	}

	score := 0
	for _, q := range b.Queens(board.White) {
		free := b.Free(q)
		score += free * free
		if free == 0 {
			score -= TrapValue
		}
	}
	for _, q := range b.Queens(board.Black) {
		free := b.Free(q)
		score -= free * free
		if free == 0 {
			score += TrapValue
		}
	}
	return score
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case score >= WinningValue:
		return "White wins"
	case score <= -WinningValue:
		return "Black wins"
	case score > 0:
		return "+" + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}
