package katachi

import (
	"bytes"
	"context"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorgonia/katachi/game"
	wq "github.com/gorgonia/katachi/game/wq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sgfPoint(c game.Coord) string { return string([]byte{byte('a' + c.Y), byte('a' + c.X)}) }

// randomGame plays moves random stones (and the occasional pass) and returns the record.
func randomGame(t *testing.T, r *rand.Rand, moves int) string {
	t.Helper()
	g := wq.New(19)
	var buf strings.Builder
	buf.WriteString("(;GM[1]FF[4]SZ[19]")
	p := game.BlackP
	for n := 0; n < moves; n++ {
		colour := "B"
		if p == game.WhiteP {
			colour = "W"
		}
		if r.Intn(50) == 0 {
			require.NoError(t, g.Play(p, game.PassCoord))
			buf.WriteString(";" + colour + "[]")
			p = game.Opponent(p)
			continue
		}

		var c game.Coord
		for {
			c = game.Coord{X: int16(r.Intn(19)), Y: int16(r.Intn(19))}
			if g.Board().At(c) == game.None {
				break
			}
		}
		require.NoError(t, g.Play(p, c))
		buf.WriteString(";" + colour + "[" + sgfPoint(c) + "]")
		p = game.Opponent(p)
	}
	buf.WriteString(")")
	return buf.String()
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func testConfig(dir string) Config {
	conf := DefaultConfig()
	conf.InputDir = dir
	conf.Workers = 1
	conf.Report = ""
	conf.Histogram = ""
	return conf
}

func newTestMiner(t *testing.T, conf Config, opts ...Option) (*Miner, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts = append([]Option{WithLogger(log.New(&logs, "", 0))}, opts...)
	m, err := New(conf, opts...)
	require.NoError(t, err)
	return m, &logs
}

func TestMiner_ThreeMoves(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"game.sgf": "(;GM[1]FF[4]SZ[19]PB[Black]PW[White];B[pd];W[dp];B[pp])",
	})
	m, _ := newTestMiner(t, testConfig(dir))
	res, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Patterns.Total())
	assert.Equal(t, 1, res.Parsed())
	assert.Equal(t, []int{3}, res.MovesPerGame)
	assert.Equal(t, []string{"game.sgf"}, res.Sources)

	var sum int
	for _, e := range res.Top(20) {
		sum += e.Count
		assert.Equal(t, 1, e.Sources)
	}
	assert.Equal(t, 3, sum)
}

func TestMiner_Skips(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a_good.sgf":     "(;GM[1]SZ[19];B[pd];W[dd];B[tt];W[pp])",
		"b_empty.sgf":    " \n",
		"c_garbage.sgf":  "this is not a game record",
		"d_illegal.sgf":  "(;GM[1]SZ[19];B[pd];W[qd];B[pd])",
		"e_offboard.sgf": "(;GM[1]SZ[19];B[pd];W[zz])",
		"f_small.sgf":    "(;GM[1]SZ[9];B[ee])",
		"notes.txt":      "not a record",
	})
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "g_gone.sgf")))

	m, logs := newTestMiner(t, testConfig(dir))
	res, err := m.Run(context.Background())
	require.NoError(t, err, "skipped sources never fail a run")

	assert.Equal(t, 1, res.Parsed())
	assert.Equal(t, []int{3}, res.MovesPerGame, "passes are not moves")
	assert.Equal(t, 3, res.Patterns.Total())
	assert.Equal(t, map[Kind]int{
		SourceEmpty:       1,
		MalformedRecord:   2,
		IllegalMove:       2,
		SourceUnavailable: 1,
	}, res.Skipped)
	assert.Equal(t, 6, res.SkippedTotal())
	assert.Contains(t, logs.String(), "Skipping d_illegal.sgf: illegal move")
	assert.NotContains(t, logs.String(), "notes.txt")
}

func TestMiner_IllegalMoveContributesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"illegal.sgf": "(;GM[1]SZ[19];B[pd];W[dd];B[dd])",
	})
	m, _ := newTestMiner(t, testConfig(dir))
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Patterns.Len(), "the moves before the illegal one are dropped too")
	assert.Zero(t, res.Parsed())
}

func TestMiner_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	r := rand.New(rand.NewSource(1337))
	files := make(map[string]string)
	for i := 0; i < 24; i++ {
		files[string(rune('a'+i))+".sgf"] = randomGame(t, r, 40+r.Intn(120))
	}
	files["zz_broken.sgf"] = "(;B[aa]"
	writeFiles(t, dir, files)

	conf := testConfig(dir)
	seq, _ := newTestMiner(t, conf)
	want, err := seq.Run(context.Background())
	require.NoError(t, err)

	conf.Workers = 8
	par, _ := newTestMiner(t, conf)
	got, err := par.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, want.Patterns.Len(), got.Patterns.Len())
	assert.Equal(t, want.Patterns.Total(), got.Patterns.Total())
	assert.Equal(t, Rank(want.Patterns, want.Patterns.Len()), Rank(got.Patterns, got.Patterns.Len()))
	assert.Equal(t, want.Sources, got.Sources)
	assert.Equal(t, want.MovesPerGame, got.MovesPerGame)
	assert.Equal(t, want.Skipped, got.Skipped)

	var moves int
	for _, n := range want.MovesPerGame {
		moves += n
	}
	assert.Equal(t, moves, want.Patterns.Total(), "one pattern per stone played")
}

func TestMiner_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"top.sgf":            "(;SZ[19];B[pd])",
		"pro/2024/game1.sgf": "(;SZ[19];B[dd];W[pp])",
	})
	conf := testConfig(dir)
	m, _ := newTestMiner(t, conf)
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"top.sgf"}, res.Sources)

	conf.Recursive = true
	m, _ = newTestMiner(t, conf)
	res, err = m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pro/2024/game1.sgf", "top.sgf"}, res.Sources)
}

func TestMiner_Duplicates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.sgf": "(;GM[1]SZ[19];B[pd];W[dd];B[pq];W[dp])",
		"b.sgf": "(;GM[1]SZ[19]PB[someone else];B[pq];W[dp];B[pd];W[dd])", // same position, other order
		"c.sgf": "(;GM[1]SZ[19];B[pd];W[dd];B[pq])",
	})
	conf := testConfig(dir)
	m, _ := newTestMiner(t, conf)
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 3, res.Parsed())

	conf.SkipDuplicates = true
	m, _ = newTestMiner(t, conf)
	res, err = m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, []string{"a.sgf", "c.sgf"}, res.Sources)
	assert.Equal(t, 1, res.Skipped[DuplicateGame])
}

func TestMiner_SetupStones(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"handicap.sgf": "(;GM[1]SZ[19]HA[2]AB[pd][pe];W[qd])",
	})
	m, _ := newTestMiner(t, testConfig(dir))
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.MovesPerGame, "setup stones are not moves")

	entries := res.Top(1)
	require.Len(t, entries, 1)
	var stones int
	for _, row := range entries[0].Pattern.Window() {
		for _, c := range row {
			if c.IsStone() {
				stones++
			}
		}
	}
	assert.Equal(t, 3, stones, "the handicap stones are part of the shape")
}

func TestMiner_Fatal(t *testing.T) {
	conf := testConfig(filepath.Join(t.TempDir(), "nope"))
	m, _ := newTestMiner(t, conf)
	_, err := m.Run(context.Background())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.sgf")
	require.NoError(t, os.WriteFile(file, []byte("(;B[aa])"), 0644))
	m, _ = newTestMiner(t, testConfig(file))
	_, err = m.Run(context.Background())
	assert.Error(t, err)

	conf = testConfig(t.TempDir())
	conf.Glob = "[" // bad pattern
	m, _ = newTestMiner(t, conf)
	_, err = m.Run(context.Background())
	assert.Error(t, err)

	conf = testConfig(t.TempDir())
	conf.Workers = 0
	_, err = New(conf)
	assert.Error(t, err)
}

func TestMiner_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.sgf": "(;SZ[19];B[pd])"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, _ := newTestMiner(t, testConfig(dir))
	_, err := m.Run(ctx)
	assert.Error(t, err)
}

func TestMiner_Metrics(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.sgf": "(;SZ[19];B[pd];W[dd])",
		"b.sgf": "",
	})
	reg := prometheus.NewRegistry()
	m, _ := newTestMiner(t, testConfig(dir), WithRegisterer(reg), WithRunID("test-run"))
	assert.Equal(t, "test-run", m.RunID())
	_, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.metrics.moves))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.sources.WithLabelValues(resultMined)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.sources.WithLabelValues(SourceEmpty.String())))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.patterns), "a lone stone of either colour is one shape")

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.NotZero(t, n)
}

func TestConfig(t *testing.T) {
	conf := DefaultConfig()
	assert.True(t, conf.IsValid())

	path := filepath.Join(t.TempDir(), "katachi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: games\ntop: 5\nrecursive: true\n"), 0644))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "games", loaded.InputDir)
	assert.Equal(t, 5, loaded.Top)
	assert.True(t, loaded.Recursive)
	assert.Equal(t, conf.Glob, loaded.Glob, "missing fields keep their defaults")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("top: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
