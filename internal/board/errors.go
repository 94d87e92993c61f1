package board

import "errors"

var (
	// ErrInvalidSquare is returned for out-of-range coordinates or malformed square text.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove is returned for malformed move text.
	ErrInvalidMove = errors.New("invalid move notation")

	// ErrIllegalMove is returned when a move fails the legality check.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned when a move is attempted on a decided position.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidLayout is returned by ParseBoard for a malformed grid.
	ErrInvalidLayout = errors.New("invalid board layout")
)
