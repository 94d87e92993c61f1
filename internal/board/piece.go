package board

import "strings"

// Piece is the content of a board cell.
type Piece uint8

const (
	Empty Piece = iota
	White
	Black
	Spear
)

// Opponent returns the other side. Empty and Spear have no opponent and
// are returned unchanged.
func (p Piece) Opponent() Piece {
	switch p {
	case White:
		return Black
	case Black:
		return White
	default:
		return p
	}
}

// IsQueen returns true for White and Black.
func (p Piece) IsQueen() bool {
	return p == White || p == Black
}

// String returns the one-letter grid symbol of the piece.
func (p Piece) String() string {
	switch p {
	case White:
		return "W"
	case Black:
		return "B"
	case Spear:
		return "S"
	default:
		return "-"
	}
}

// Name returns the capitalized side name ("White", "Black").
func (p Piece) Name() string {
	switch p {
	case White:
		return "White"
	case Black:
		return "Black"
	case Spear:
		return "Spear"
	default:
		return "Empty"
	}
}

// pieceFromSymbol converts a grid symbol back to a Piece.
func pieceFromSymbol(s string) (Piece, bool) {
	switch s {
	case "-":
		return Empty, true
	case "W":
		return White, true
	case "B":
		return Black, true
	case "S":
		return Spear, true
	}
	return Empty, false
}

// ParseSide parses a full side name, "white" or "black", ignoring case.
func ParseSide(s string) (Piece, bool) {
	switch strings.ToLower(s) {
	case "white":
		return White, true
	case "black":
		return Black, true
	}
	return Empty, false
}

// sideIndex maps White/Black to 0/1 for per-side arrays.
func sideIndex(p Piece) int {
	if p == Black {
		return 1
	}
	return 0
}
