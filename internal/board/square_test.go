package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareIndexRoundTrip(t *testing.T) {
	for i := 0; i < NumSquares; i++ {
		sq, err := SquareAt(i)
		require.NoError(t, err)
		require.Equal(t, i, sq.Index())

		parsed, err := ParseSquare(sq.String())
		require.NoError(t, err, "parsing %s", sq)
		require.Equal(t, sq, parsed)

		same, err := NewSquare(sq.Col(), sq.Row())
		require.NoError(t, err)
		require.Equal(t, sq, same)
	}
}

func TestSquareNames(t *testing.T) {
	k := 0
	for rank := 1; rank <= Size; rank++ {
		for file := 'a'; file < 'a'+Size; file++ {
			want := string(file) + itoa(rank)
			assert.Equal(t, want, Square(k).String())
			k++
		}
	}
	assert.Equal(t, "a1", MustSquare("a1").String())
	assert.Equal(t, 99, MustSquare("j10").Index())
}

func itoa(n int) string {
	if n == 10 {
		return "10"
	}
	return string(rune('0' + n))
}

func TestParseSquareRejects(t *testing.T) {
	for _, s := range []string{"", "a", "a0", "a11", "k1", "A1", "a01", "a+1", "a1x", "11", "z9"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseSquare(s)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidSquare))
		})
	}
}

func TestNewSquareOutOfRange(t *testing.T) {
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		_, err := NewSquare(c[0], c[1])
		require.ErrorIs(t, err, ErrInvalidSquare)
	}
	_, err := SquareAt(100)
	require.ErrorIs(t, err, ErrInvalidSquare)
}

func TestDirection(t *testing.T) {
	from := MustSquare("d2")
	tests := []struct {
		to   string
		want Direction
	}{
		{"d7", North},
		{"g5", NorthEast},
		{"h2", East},
		{"e1", SouthEast},
		{"d1", South},
		{"c1", SouthWest},
		{"a2", West},
		{"a5", NorthWest},
	}
	for _, tc := range tests {
		t.Run(tc.to, func(t *testing.T) {
			to := MustSquare(tc.to)
			require.True(t, from.IsQueenMove(to))
			dir, ok := from.Direction(to)
			require.True(t, ok)
			require.Equal(t, tc.want, dir)

			// Stepping in dir must reach the target.
			require.Equal(t, to, from.QueenMove(dir, from.Distance(to)))
		})
	}
}

func TestIsQueenMove(t *testing.T) {
	d2 := MustSquare("d2")
	assert.True(t, d2.IsQueenMove(MustSquare("d7")))
	assert.False(t, d2.IsQueenMove(MustSquare("e4")))
	assert.False(t, d2.IsQueenMove(d2))

	_, ok := d2.Direction(MustSquare("e4"))
	assert.False(t, ok)
	_, ok = d2.Direction(d2)
	assert.False(t, ok)
}

func TestQueenMoveOffBoard(t *testing.T) {
	a1 := MustSquare("a1")
	assert.Equal(t, NoSquare, a1.QueenMove(South, 1))
	assert.Equal(t, NoSquare, a1.QueenMove(West, 3))
	assert.Equal(t, NoSquare, a1.QueenMove(North, 10))
	assert.Equal(t, MustSquare("a10"), a1.QueenMove(North, 9))
	assert.Equal(t, MustSquare("j10"), a1.QueenMove(NorthEast, 9))
	assert.Equal(t, NoSquare, a1.QueenMove(Direction(8), 1))
}

func TestDirectionOpposite(t *testing.T) {
	for d := North; d < NumDirections; d++ {
		assert.Equal(t, d, d.Opposite().Opposite())
	}
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, "NW", NorthWest.String())
}
