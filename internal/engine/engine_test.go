package engine

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/amazons/internal/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// trappedLayout: three Black queens are boxed in and the fourth (j1) has a
// single free neighbour. White to move wins by closing j2.
const trappedLayout = `
   B S - - - - - - S B
   S S - - - - - - S S
   - - - - - - - - - -
   - - - - - - - - - -
   - - - - - W - - - -
   - - - - W - - - - W
   - - - W - - - - - -
   - - - - - - - - - -
   S S - - - - - - S -
   B S - - - - - - S B
`

// corridorLayout: queens in small pockets plus one shared corridor on rank 6.
const corridorLayout = `
   S S S S S S S S S S
   S B - - S S - - W S
   S - - - S S - - - S
   S S S S S S S S S S
   S B - - - - - - W S
   S S S S S S S S S S
   S B - - S S - - W S
   S - - - S S - - - S
   S S S S S S S S S S
   S B - - S S - - W S
`

// pocketLayout: separated pockets of different sizes.
const pocketLayout = `
   S S S S S S S S S S
   S B - S S S S W - S
   S - - S S S S - - S
   S S S S S S S S S S
   S S S S S S S S S S
   S B - S S S S W - S
   S - S S S S S S - S
   S S S S S S S S S S
   S B B S S S S W W S
   S - S S S S S S - S
`

func parse(t *testing.T, layout string, turn board.Piece) *board.Board {
	t.Helper()
	b, err := board.ParseBoard(layout, turn)
	require.NoError(t, err)
	return b
}

func TestEvaluate(t *testing.T) {
	assert.Equal(t, 0, Evaluate(board.NewBoard()), "opening is symmetric")

	b := parse(t, trappedLayout, board.White)
	// White: d4 7², e5 6², f6 7², j5 5² = 159.
	// Black: three trapped queens give +3*65, j1 has one free square: -1.
	assert.Equal(t, 159+3*TrapValue-1, Evaluate(b))

	m, err := board.ParseMove("j5-j3(j2)")
	require.NoError(t, err)
	require.NoError(t, b.MakeMove(m))
	assert.Equal(t, WinningValue, Evaluate(b))
}

func TestScoreToString(t *testing.T) {
	assert.Equal(t, "White wins", ScoreToString(WinningValue))
	assert.Equal(t, "Black wins", ScoreToString(-WinningValue))
	assert.Equal(t, "+12", ScoreToString(12))
	assert.Equal(t, "-3", ScoreToString(-3))
	assert.Equal(t, "0", ScoreToString(0))
}

func TestDepthFor(t *testing.T) {
	tests := []struct {
		moves int
		want  int
	}{
		{0, 1},
		{19, 1},
		{20, 2},
		{54, 2},
		{55, 3},
		{66, 3},
		{67, 4},
		{74, 4},
		{75, 5},
		{90, 6},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, depthFor(tc.moves, 2*board.QueensPerSide), "moves=%d", tc.moves)
	}
	assert.Equal(t, 1, DepthHeuristic(board.NewBoard()))
}

func TestSearchMatchesMinimax(t *testing.T) {
	positions := []struct {
		name   string
		layout string
		turn   board.Piece
	}{
		{"corridor white", corridorLayout, board.White},
		{"corridor black", corridorLayout, board.Black},
		{"pockets white", pocketLayout, board.White},
		{"pockets black", pocketLayout, board.Black},
		{"trapped white", trappedLayout, board.White},
	}

	for _, pos := range positions {
		t.Run(pos.name, func(t *testing.T) {
			b := parse(t, pos.layout, pos.turn)
			before := b.String()
			sense := SenseFor(pos.turn)

			wantMove, wantScore := Minimax(b, 2, sense)
			require.False(t, wantMove.IsNone())

			s := NewSearcher()
			gotMove, gotScore, err := s.Search(context.Background(), b, 2, sense)
			require.NoError(t, err)
			assert.Equal(t, wantMove, gotMove)
			assert.Equal(t, wantScore, gotScore)
			assert.Equal(t, before, b.String(), "board must be restored")
			assert.Equal(t, 0, b.NumMoves())
		})
	}
}

func TestSearchPrunes(t *testing.T) {
	b := parse(t, corridorLayout, board.White)

	var full uint64
	var count func(depth int)
	count = func(depth int) {
		full++
		if depth == 0 || b.Winner() != board.Empty {
			return
		}
		for _, m := range b.Moves(b.Turn()) {
			require.NoError(t, b.MakeMove(m))
			count(depth - 1)
			b.Undo()
		}
	}
	count(2)

	s := NewSearcher()
	_, _, err := s.Search(context.Background(), b, 2, Maximizing)
	require.NoError(t, err)
	assert.Less(t, s.Nodes(), full, "alpha-beta should visit fewer nodes than full minimax")
}

func TestChooseMoveFindsWin(t *testing.T) {
	b := parse(t, trappedLayout, board.White)
	e := NewEngine(WithDepth(1))

	m, err := e.ChooseMove(context.Background(), b, true)
	require.NoError(t, err)
	require.Equal(t, 0, b.NumMoves())

	require.NoError(t, b.MakeMove(m))
	assert.Equal(t, board.White, b.Winner(), "move %s should win", m)
}

func TestChooseMoveFromOpening(t *testing.T) {
	b := board.NewBoard()
	before := b.String()

	var infos []SearchInfo
	e := NewEngine(WithInfo(func(info SearchInfo) { infos = append(infos, info) }))
	m, err := e.ChooseMove(context.Background(), b, true)
	require.NoError(t, err)
	assert.True(t, b.IsLegal(m))
	assert.Equal(t, before, b.String())

	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Depth)
	assert.Equal(t, m, infos[0].Move)
	assert.EqualValues(t, 2177, infos[0].Nodes, "root plus every first move")
}

func TestChooseMoveErrors(t *testing.T) {
	e := NewEngine(WithDepth(1))

	t.Run("decided position", func(t *testing.T) {
		b := parse(t, trappedLayout, board.White)
		m, err := board.ParseMove("j5-j3(j2)")
		require.NoError(t, err)
		require.NoError(t, b.MakeMove(m))

		_, err = e.ChooseMove(context.Background(), b, false)
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})

	t.Run("wrong side", func(t *testing.T) {
		_, err := e.ChooseMove(context.Background(), board.NewBoard(), false)
		require.ErrorIs(t, err, ErrWrongSide)
	})

	t.Run("cancelled", func(t *testing.T) {
		b := parse(t, corridorLayout, board.White)
		before := b.String()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewEngine(WithDepth(2)).ChooseMove(ctx, b, true)
		require.True(t, errors.Is(err, context.Canceled))
		require.Equal(t, before, b.String())
	})
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, layout := range []string{corridorLayout, pocketLayout, trappedLayout} {
		for _, turn := range []board.Piece{board.White, board.Black} {
			b := parse(t, layout, turn)
			if b.Winner() != board.Empty {
				continue
			}
			maximizing := turn == board.White

			seq, err := NewEngine(WithDepth(2)).ChooseMove(context.Background(), b, maximizing)
			require.NoError(t, err)
			par, err := NewEngine(WithDepth(2), WithWorkers(4)).ChooseMove(context.Background(), b, maximizing)
			require.NoError(t, err)
			assert.Equal(t, seq, par)
			assert.Equal(t, 0, b.NumMoves())
		}
	}
}

func TestSearchDepthOptions(t *testing.T) {
	b := board.NewBoard()
	assert.Equal(t, 1, NewEngine().SearchDepth(b))
	assert.Equal(t, 3, NewEngine(WithDepth(3)).SearchDepth(b))
	assert.Equal(t, 1, NewEngine(WithMaxDepth(4)).SearchDepth(b))
	assert.Equal(t, 1, NewEngine(WithDepth(-2)).SearchDepth(b), "non-positive depth is ignored")
}
