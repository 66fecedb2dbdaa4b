package katachi

import (
	"math/rand"
	"testing"

	"github.com/gorgonia/katachi/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shapes returns n distinct canonical patterns.
func shapes(t *testing.T, n int) []pattern.Canonical {
	t.Helper()
	r := rand.New(rand.NewSource(1337))
	seen := make(map[pattern.Canonical]struct{})
	var retVal []pattern.Canonical
	for len(retVal) < n {
		var w pattern.Window
		for i := range w {
			for j := range w[i] {
				w[i][j] = pattern.Cell(r.Intn(int(pattern.White)) + 1)
			}
		}
		c := pattern.Canonicalize(w)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		retVal = append(retVal, c)
	}
	require.Len(t, retVal, n)
	return retVal
}

func TestAggregator_Record(t *testing.T) {
	ps := shapes(t, 2)
	a := NewAggregator()
	a.Record(ps[0], "a.sgf")
	a.Record(ps[1], "a.sgf")
	a.Record(ps[0], "a.sgf")
	a.Record(ps[0], "b.sgf")

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 4, a.Total())

	s, ok := a.Get(ps[0])
	require.True(t, ok)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.SourceCount())
	assert.Equal(t, []string{"a.sgf", "b.sgf"}, s.SortedSources())
	assert.Equal(t, 0, s.Seq)

	s, ok = a.Get(ps[1])
	require.True(t, ok)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 1, s.Seq)

	_, ok = a.Get(shapes(t, 3)[2])
	assert.False(t, ok)

	a.Reset()
	assert.Zero(t, a.Len())
	assert.Zero(t, a.Total())
}

func TestAggregator_Merge(t *testing.T) {
	ps := shapes(t, 3)
	a := NewAggregator()
	a.Record(ps[1], "a.sgf")

	b := NewAggregator()
	b.Record(ps[2], "b.sgf")
	b.Record(ps[1], "b.sgf")
	b.Record(ps[0], "b.sgf")

	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 4, a.Total())

	var order []pattern.Canonical
	for _, s := range a.Patterns() {
		order = append(order, s.Pattern)
	}
	assert.Equal(t, []pattern.Canonical{ps[1], ps[2], ps[0]}, order, "new patterns follow in the merged aggregator's order")

	s, _ := a.Get(ps[1])
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, []string{"a.sgf", "b.sgf"}, s.SortedSources())
	assert.Equal(t, 0, s.Seq)

	// merging does not touch the merged aggregator
	s, _ = b.Get(ps[1])
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 1, s.SourceCount())
}

func TestAggregator_MergeEqualsRecord(t *testing.T) {
	ps := shapes(t, 10)
	r := rand.New(rand.NewSource(7))

	all := NewAggregator()
	merged := NewAggregator()
	for g := 0; g < 5; g++ {
		src := string(rune('a'+g)) + ".sgf"
		game := NewAggregator()
		for n := 0; n < 20; n++ {
			p := ps[r.Intn(len(ps))]
			all.Record(p, src)
			game.Record(p, src)
		}
		merged.Merge(game)
	}
	assert.Equal(t, Rank(all, 10), Rank(merged, 10))
}
