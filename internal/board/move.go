package board

import (
	"fmt"
	"regexp"
	"strings"
)

// Move is a queen move From-To followed by a spear thrown from To to Spear.
// Spear may equal From, since From is vacated by the move.
type Move struct {
	From  Square
	To    Square
	Spear Square
}

// NoMove represents an absent move.
var NoMove = Move{From: NoSquare, To: NoSquare, Spear: NoSquare}

// NewMove creates a move from three squares.
func NewMove(from, to, spear Square) Move {
	return Move{From: from, To: to, Spear: spear}
}

// IsNone returns true for NoMove.
func (m Move) IsNone() bool {
	return m == NoMove
}

// String returns the move as "from-to(spear)", e.g. "d1-d4(b4)".
func (m Move) String() string {
	if m.IsNone() {
		return "none"
	}
	return m.From.String() + "-" + m.To.String() + "(" + m.Spear.String() + ")"
}

// Text returns the move as three space-separated squares, e.g. "d1 d4 b4".
func (m Move) Text() string {
	return m.From.String() + " " + m.To.String() + " " + m.Spear.String()
}

const squarePattern = `([a-j](?:10|[1-9]))`

var (
	spacedMoveRE = regexp.MustCompile(`^` + squarePattern + `\s+` + squarePattern + `\s+` + squarePattern + `$`)
	dashedMoveRE = regexp.MustCompile(`^` + squarePattern + `-` + squarePattern + `\(` + squarePattern + `\)$`)
)

// IsMoveText reports whether s looks like a move in either notation.
func IsMoveText(s string) bool {
	s = strings.TrimSpace(s)
	return spacedMoveRE.MatchString(s) || dashedMoveRE.MatchString(s)
}

// ParseMove parses "d1 d4 b4" or "d1-d4(b4)". It checks notation only,
// not legality.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	groups := spacedMoveRE.FindStringSubmatch(s)
	if groups == nil {
		groups = dashedMoveRE.FindStringSubmatch(s)
	}
	if groups == nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	var sqs [3]Square
	for i := range sqs {
		sq, err := ParseSquare(groups[i+1])
		if err != nil {
			return NoMove, err
		}
		sqs[i] = sq
	}
	return NewMove(sqs[0], sqs[1], sqs[2]), nil
}

// MoveList is a growable list of moves.
type MoveList []Move
