package sgf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/katachi/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shusaku = `(;GM[1]FF[4]CA[UTF-8]SZ[19]
PB[Yasuda Shusaku]PW[Gennan Inseki]KM[0]RE[B+2]
C[The ear-reddening game. Comment with \] and a soft \
break]
;B[qd];W[dc];B[pq]
;W[oc](;B[cp];W[tt])(;B[dq]))`

func TestParse(t *testing.T) {
	g, err := Parse([]byte(shusaku))
	require.NoError(t, err)

	assert.Equal(t, 19, g.Size)
	assert.Equal(t, "Yasuda Shusaku", g.Info["PB"])
	assert.Equal(t, "B+2", g.Info["RE"])
	assert.Equal(t, "The ear-reddening game. Comment with ] and a soft break", g.Info["C"])

	want := []Move{
		{game.BlackP, game.Coord{X: 3, Y: 16}},
		{game.WhiteP, game.Coord{X: 2, Y: 3}},
		{game.BlackP, game.Coord{X: 16, Y: 15}},
		{game.WhiteP, game.Coord{X: 2, Y: 14}},
		{game.BlackP, game.Coord{X: 15, Y: 2}},
		{game.WhiteP, game.PassCoord},
	}
	if diff := cmp.Diff(want, g.Moves); diff != "" {
		t.Errorf("main line mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, g.MoveCount())
	assert.Empty(t, g.Setup)
}

func TestParse_Setup(t *testing.T) {
	g, err := Parse([]byte(`(;SZ[9]AB[aa][cc:dd]AW[ee];W[bb];AE[aa]B[])`))
	require.NoError(t, err)
	assert.Equal(t, 9, g.Size)

	want := []Placement{
		{game.Black, game.Coord{X: 0, Y: 0}, 0},
		{game.Black, game.Coord{X: 2, Y: 2}, 0},
		{game.Black, game.Coord{X: 2, Y: 3}, 0},
		{game.Black, game.Coord{X: 3, Y: 2}, 0},
		{game.Black, game.Coord{X: 3, Y: 3}, 0},
		{game.White, game.Coord{X: 4, Y: 4}, 0},
		{game.None, game.Coord{X: 0, Y: 0}, 1},
	}
	if diff := cmp.Diff(want, g.Setup); diff != "" {
		t.Errorf("setup mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, g.Moves, 2)
	assert.True(t, g.Moves[1].IsPass())
	assert.Equal(t, 1, g.MoveCount())
}

func TestParse_LargeBoard(t *testing.T) {
	g, err := Parse([]byte(`(;SZ[21];B[tt];W[Aa])`))
	require.NoError(t, err)
	assert.False(t, g.Moves[0].IsPass(), "tt is a point on boards larger than 19")
	assert.Equal(t, game.Coord{X: 19, Y: 19}, g.Moves[0].Coord)
	assert.Equal(t, game.Coord{X: 0, Y: 26}, g.Moves[1].Coord)
}

func TestParse_Collection(t *testing.T) {
	trees, err := ParseCollection([]byte("(;GM[1];B[aa])\n(;GM[1];W[bb])\n"))
	require.NoError(t, err)
	assert.Len(t, trees, 2)

	// only the first game of a collection is read
	g, err := Parse([]byte("(;GM[1];B[aa])\n(;GM[1];W[bb])\n"))
	require.NoError(t, err)
	require.Len(t, g.Moves, 1)
	assert.Equal(t, game.BlackP, g.Moves[0].Player)
}

func TestParse_OldIdentifiers(t *testing.T) {
	g, err := Parse([]byte(`(;GaMe[1]SiZe[13];Black[cc];White[dd])`))
	require.NoError(t, err)
	assert.Equal(t, 13, g.Size)
	assert.Len(t, g.Moves, 2)
}

var malformed = []struct {
	name string
	data string
}{
	{"empty", ""},
	{"whitespace", " \n\t"},
	{"no tree", "hello"},
	{"unterminated tree", "(;B[aa]"},
	{"unterminated value", "(;B[aa"},
	{"empty tree", "()"},
	{"property without value", "(;B;W[aa])"},
	{"bad size", "(;SZ[big])"},
	{"rectangular", "(;SZ[19:13])"},
	{"not go", "(;GM[2];B[aa])"},
	{"bad point", "(;B[a1])"},
	{"two moves in a node", "(;B[aa]W[bb])"},
	{"two values", "(;B[aa][bb])"},
	{"bad setup", "(;AB[aa:])"},
	{"node after variation", "(;B[aa](;W[bb]);B[cc])"},
}

func TestParse_Malformed(t *testing.T) {
	for _, m := range malformed {
		t.Run(m.name, func(t *testing.T) {
			g, err := Parse([]byte(m.data))
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := ParseCollection([]byte("(;B[aa]x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset")
}
