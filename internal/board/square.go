// Package board implements the Game of the Amazons rules: square geometry,
// board state, legality checks and lazy legal-move enumeration.
package board

import (
	"fmt"
	"strconv"
)

// Size is the number of squares on a side of the board.
const Size = 10

// NumSquares is the number of cells on the board.
const NumSquares = Size * Size

// Square identifies one of the 100 board cells (0-99).
// Uses rank-file mapping: a1=0, j1=9, a10=90, j10=99.
// Squares are plain values, so equal indices are the same square.
type Square int8

// NoSquare is the sentinel for "no such square".
const NoSquare Square = -1

// Direction is one of the 8 compass octants used to parametrize queen moves.
type Direction int

// Directions, clockwise from north.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections
)

// dirDelta[d] = (dcol, drow): one step in direction d from (col, row)
// lands on (col+dcol, row+drow).
var dirDelta = [NumDirections][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

var dirNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// String returns the compass abbreviation of the direction.
func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return "?"
	}
	return dirNames[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) % NumDirections
}

// squareNames caches the text form of every square.
var squareNames [NumSquares]string

func init() {
	for i := 0; i < NumSquares; i++ {
		sq := Square(i)
		squareNames[i] = string(rune('a'+sq.Col())) + strconv.Itoa(sq.Row()+1)
	}
}

// Exists reports whether (col, row) lies on the board.
func Exists(col, row int) bool {
	return col >= 0 && row >= 0 && col < Size && row < Size
}

// NewSquare returns the square at column col and row row (both 0-indexed).
func NewSquare(col, row int) (Square, error) {
	if !Exists(col, row) {
		return NoSquare, fmt.Errorf("%w: column %d, row %d out of range", ErrInvalidSquare, col, row)
	}
	return Square(row*Size + col), nil
}

// SquareAt returns the square with the given index.
func SquareAt(index int) (Square, error) {
	if index < 0 || index >= NumSquares {
		return NoSquare, fmt.Errorf("%w: index %d out of range", ErrInvalidSquare, index)
	}
	return Square(index), nil
}

// ParseSquare parses the standard text form of a square (e.g. "a4", "j10").
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 || len(s) > 3 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	col := int(s[0] - 'a')
	if s[0] < 'a' || col >= Size {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	// Reject leading zeros and signs, which Atoi would accept.
	if s[1] < '1' || s[1] > '9' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 || rank > Size {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square((rank-1)*Size + col), nil
}

// MustSquare is like ParseSquare but panics on malformed input.
// Intended for constants and tests.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// Index returns the linear index of the square (0-99).
func (sq Square) Index() int {
	return int(sq)
}

// Col returns the column of the square (0-9, where 0=a).
func (sq Square) Col() int {
	return int(sq) % Size
}

// Row returns the row of the square (0-9, where 0 is rank 1).
func (sq Square) Row() int {
	return int(sq) / Size
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq >= 0 && int(sq) < NumSquares
}

// String returns the text form of the square (e.g. "d10").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return squareNames[sq]
}

// QueenMove returns the square steps cells away in direction dir, or
// NoSquare if that lies off the board or dir is not a direction.
func (sq Square) QueenMove(dir Direction, steps int) Square {
	if dir < 0 || dir >= NumDirections || !sq.IsValid() {
		return NoSquare
	}
	col := sq.Col() + dirDelta[dir][0]*steps
	row := sq.Row() + dirDelta[dir][1]*steps
	if !Exists(col, row) {
		return NoSquare
	}
	return Square(row*Size + col)
}

// IsQueenMove reports whether sq-to lies on a common rank, file or
// diagonal and to is a different square.
func (sq Square) IsQueenMove(to Square) bool {
	if sq == to || !sq.IsValid() || !to.IsValid() {
		return false
	}
	dc := to.Col() - sq.Col()
	dr := to.Row() - sq.Row()
	return dc == 0 || dr == 0 || abs(dc) == abs(dr)
}

// Direction returns the octant leading from sq to to. ok is false when
// sq-to is not a queen move.
func (sq Square) Direction(to Square) (dir Direction, ok bool) {
	if !sq.IsQueenMove(to) {
		return 0, false
	}
	dc := sign(to.Col() - sq.Col())
	dr := sign(to.Row() - sq.Row())
	for d := North; d < NumDirections; d++ {
		if dirDelta[d][0] == dc && dirDelta[d][1] == dr {
			return d, true
		}
	}
	return 0, false
}

// Distance returns the number of queen steps from sq to to, assuming
// sq-to is a queen move.
func (sq Square) Distance(to Square) int {
	dc := abs(to.Col() - sq.Col())
	dr := abs(to.Row() - sq.Row())
	if dc > dr {
		return dc
	}
	return dr
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
