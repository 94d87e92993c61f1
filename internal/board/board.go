package board

import (
	"fmt"
	"strings"
)

// QueensPerSide is the number of queens each side owns for the whole game.
const QueensPerSide = 4

// Board represents a complete Amazons game state.
// Contents and the per-side queen sets are kept in sync by MakeMove and Undo.
type Board struct {
	contents [NumSquares]Piece

	// Queen positions: [0]=White, [1]=Black. A moving queen keeps its slot.
	queens [2][QueensPerSide]Square

	turn    Piece
	winner  Piece
	history []Move
}

// Initial queen placement.
var (
	whiteStart = [QueensPerSide]Square{MustSquare("a4"), MustSquare("d1"), MustSquare("g1"), MustSquare("j4")}
	blackStart = [QueensPerSide]Square{MustSquare("a7"), MustSquare("d10"), MustSquare("g10"), MustSquare("j7")}
)

// NewBoard creates a board in the initial position.
func NewBoard() *Board {
	b := &Board{}
	b.Init()
	return b
}

// Init clears the board to the initial position.
func (b *Board) Init() {
	b.contents = [NumSquares]Piece{}
	b.queens[0] = whiteStart
	b.queens[1] = blackStart
	for _, sq := range whiteStart {
		b.contents[sq] = White
	}
	for _, sq := range blackStart {
		b.contents[sq] = Black
	}
	b.turn = White
	b.winner = Empty
	b.history = b.history[:0]
}

// Copy creates an independent deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	nb.history = append([]Move(nil), b.history...)
	return &nb
}

// Turn returns the side to move (White or Black).
func (b *Board) Turn() Piece {
	return b.turn
}

// Winner returns the winning side, or Empty if the game is not decided.
func (b *Board) Winner() Piece {
	return b.winner
}

// NumMoves returns the number of moves played (and not undone).
func (b *Board) NumMoves() int {
	return len(b.history)
}

// History returns a copy of the moves played so far, oldest first.
func (b *Board) History() []Move {
	return append([]Move(nil), b.history...)
}

// LastMove returns the most recent move, or NoMove on a fresh board.
func (b *Board) LastMove() Move {
	if len(b.history) == 0 {
		return NoMove
	}
	return b.history[len(b.history)-1]
}

// Get returns the contents of sq.
func (b *Board) Get(sq Square) Piece {
	if !sq.IsValid() {
		return Empty
	}
	return b.contents[sq]
}

// Queens returns the squares of side's four queens in storage order.
func (b *Board) Queens(side Piece) [QueensPerSide]Square {
	return b.queens[sideIndex(side)]
}

// MakeMove validates and plays m for the side to move. An illegal move
// returns an error wrapping ErrIllegalMove (or ErrGameOver) and leaves
// the board unchanged.
func (b *Board) MakeMove(m Move) error {
	if b.winner != Empty {
		return fmt.Errorf("%w: %s has won", ErrGameOver, b.winner.Name())
	}
	if !b.IsLegal(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	mover := b.turn
	b.contents[m.From] = Empty
	b.contents[m.To] = mover
	b.contents[m.Spear] = Spear
	b.replaceQueen(mover, m.From, m.To)
	b.history = append(b.history, m)
	b.turn = mover.Opponent()

	if !b.HasLegalMove(b.turn) {
		b.winner = mover
	}
	return nil
}

// Undo retracts the last move. It has no effect on a board without history.
//
// The winner is always reset to Empty: MakeMove refuses moves on a decided
// position, so every position in the history had a legal move for its side.
func (b *Board) Undo() {
	if len(b.history) == 0 {
		return
	}
	m := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	mover := b.turn.Opponent()
	b.contents[m.Spear] = Empty
	b.contents[m.From] = mover
	b.contents[m.To] = Empty
	b.replaceQueen(mover, m.To, m.From)
	b.turn = mover
	b.winner = Empty
}

// replaceQueen moves side's queen slot holding from to to.
func (b *Board) replaceQueen(side Piece, from, to Square) {
	qs := &b.queens[sideIndex(side)]
	for i, sq := range qs {
		if sq == from {
			qs[i] = to
			return
		}
	}
}

// String renders the grid from rank 10 down to rank 1, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		sb.WriteString("  ")
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			sb.WriteString(b.contents[row*Size+col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads a grid in the String format (rank 10 first, cells
// "-", "W", "B", "S" separated by whitespace) and returns a board with
// turn to move and an empty history. Each side must have exactly four queens.
func ParseBoard(layout string, turn Piece) (*Board, error) {
	if !turn.IsQueen() {
		return nil, fmt.Errorf("%w: turn must be White or Black", ErrInvalidLayout)
	}

	var rows [][]string
	for _, line := range strings.Split(layout, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidLayout, Size, len(rows))
	}

	b := &Board{turn: turn}
	var counts [2]int
	for i, fields := range rows {
		row := Size - 1 - i
		if len(fields) != Size {
			return nil, fmt.Errorf("%w: rank %d has %d cells", ErrInvalidLayout, row+1, len(fields))
		}
		for col, f := range fields {
			p, ok := pieceFromSymbol(f)
			if !ok {
				return nil, fmt.Errorf("%w: bad cell %q on rank %d", ErrInvalidLayout, f, row+1)
			}
			sq := Square(row*Size + col)
			b.contents[sq] = p
			if p.IsQueen() {
				s := sideIndex(p)
				if counts[s] == QueensPerSide {
					return nil, fmt.Errorf("%w: more than %d %s queens", ErrInvalidLayout, QueensPerSide, p.Name())
				}
				b.queens[s][counts[s]] = sq
				counts[s]++
			}
		}
	}
	if counts[0] != QueensPerSide || counts[1] != QueensPerSide {
		return nil, fmt.Errorf("%w: need %d queens per side, got %d white and %d black",
			ErrInvalidLayout, QueensPerSide, counts[0], counts[1])
	}

	if !b.HasLegalMove(turn) {
		b.winner = turn.Opponent()
	}
	return b, nil
}
