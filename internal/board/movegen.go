package board

// isOpen reports whether sq can be entered, treating asEmpty as empty.
func (b *Board) isOpen(sq, asEmpty Square) bool {
	return b.contents[sq] == Empty || sq == asEmpty
}

// IsUnblockedMove returns true iff from-to is a queen move, to is empty
// and every square strictly between them is empty. asEmpty (which may be
// NoSquare) is treated as empty wherever it appears.
func (b *Board) IsUnblockedMove(from, to, asEmpty Square) bool {
	dir, ok := from.Direction(to)
	if !ok || !b.isOpen(to, asEmpty) {
		return false
	}
	for sq := from.QueenMove(dir, 1); sq != to; sq = sq.QueenMove(dir, 1) {
		if !b.isOpen(sq, asEmpty) {
			return false
		}
	}
	return true
}

// IsLegalStart returns true iff at least one neighbour of sq is empty.
func (b *Board) IsLegalStart(sq Square) bool {
	for d := North; d < NumDirections; d++ {
		n := sq.QueenMove(d, 1)
		if n != NoSquare && b.contents[n] == Empty {
			return true
		}
	}
	return false
}

// Free returns the number of empty neighbours of sq.
func (b *Board) Free(sq Square) int {
	n := 0
	for d := North; d < NumDirections; d++ {
		nb := sq.QueenMove(d, 1)
		if nb != NoSquare && b.contents[nb] == Empty {
			n++
		}
	}
	return n
}

// IsLegalMove returns true iff from-to(spear) is legal for the side to move.
func (b *Board) IsLegalMove(from, to, spear Square) bool {
	if b.winner != Empty || !from.IsValid() || b.contents[from] != b.turn {
		return false
	}
	if !b.IsUnblockedMove(from, to, NoSquare) {
		return false
	}
	return spear == from || b.IsUnblockedMove(to, spear, from)
}

// IsLegal returns true iff m is legal for the side to move.
func (b *Board) IsLegal(m Move) bool {
	return b.IsLegalMove(m.From, m.To, m.Spear)
}

// HasLegalMove returns true if side has at least one legal move.
// A queen with an empty neighbour can always step there and throw the
// spear back onto the square it left.
func (b *Board) HasLegalMove(side Piece) bool {
	for _, q := range b.queens[sideIndex(side)] {
		if b.IsLegalStart(q) {
			return true
		}
	}
	return false
}

// SquareIter lazily yields the squares reachable from a start square.
// It is not a live view: results are undefined if the board changes
// while iterating.
type SquareIter struct {
	b       *Board
	from    Square
	asEmpty Square
	dir     Direction
	steps   int
}

// ReachableFrom returns an iterator over every square reachable by an
// unblocked queen move from from, in direction order (N first, then
// clockwise) and increasing distance. asEmpty, if not NoSquare, is
// treated as empty.
func (b *Board) ReachableFrom(from, asEmpty Square) *SquareIter {
	return &SquareIter{b: b, from: from, asEmpty: asEmpty}
}

// Next returns the next reachable square, or false when exhausted.
func (it *SquareIter) Next() (Square, bool) {
	for it.dir < NumDirections {
		it.steps++
		sq := it.from.QueenMove(it.dir, it.steps)
		if sq != NoSquare && it.b.isOpen(sq, it.asEmpty) {
			return sq, true
		}
		it.dir++
		it.steps = 0
	}
	return NoSquare, false
}

// Collect drains the iterator into a slice.
func (it *SquareIter) Collect() []Square {
	var out []Square
	for sq, ok := it.Next(); ok; sq, ok = it.Next() {
		out = append(out, sq)
	}
	return out
}

// MoveIter lazily yields the legal moves of one side.
// Like SquareIter it must not outlive a board mutation.
type MoveIter struct {
	b      *Board
	starts []Square
	next   int

	start  Square
	dest   Square
	dests  *SquareIter
	spears *SquareIter
}

// LegalMoves returns an iterator over all legal moves for side, regardless
// of whose turn it is. Moves are ordered by queen storage order, then
// destination, then spear square (both in ReachableFrom order).
func (b *Board) LegalMoves(side Piece) *MoveIter {
	it := &MoveIter{b: b}
	if b.winner != Empty || !side.IsQueen() {
		return it
	}
	for _, q := range b.queens[sideIndex(side)] {
		if b.IsLegalStart(q) {
			it.starts = append(it.starts, q)
		}
	}
	return it
}

// Next returns the next legal move, or false when exhausted.
func (it *MoveIter) Next() (Move, bool) {
	for {
		if it.spears != nil {
			if sp, ok := it.spears.Next(); ok {
				return NewMove(it.start, it.dest, sp), true
			}
			it.spears = nil
		}
		if it.dests != nil {
			if d, ok := it.dests.Next(); ok {
				it.dest = d
				it.spears = it.b.ReachableFrom(d, it.start)
				continue
			}
			it.dests = nil
		}
		if it.next >= len(it.starts) {
			return NoMove, false
		}
		it.start = it.starts[it.next]
		it.next++
		it.dests = it.b.ReachableFrom(it.start, NoSquare)
	}
}

// Collect drains the iterator into a MoveList.
func (it *MoveIter) Collect() MoveList {
	var ml MoveList
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		ml = append(ml, m)
	}
	return ml
}

// Moves returns all legal moves for side as a list.
func (b *Board) Moves(side Piece) MoveList {
	return b.LegalMoves(side).Collect()
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func (b *Board) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	it := b.LegalMoves(b.turn)
	if depth == 1 {
		var n uint64
		for _, ok := it.Next(); ok; _, ok = it.Next() {
			n++
		}
		return n
	}

	moves := it.Collect()
	var nodes uint64
	for _, m := range moves {
		if err := b.MakeMove(m); err != nil {
			continue
		}
		nodes += b.Perft(depth - 1)
		b.Undo()
	}
	return nodes
}
