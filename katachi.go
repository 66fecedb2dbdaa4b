// Package katachi mines recurring local shapes from a corpus of Go game records.
//
// Every stone played in every record is looked at through a 5x5 window centred on it. The window is reduced to
// its canonical form, so that rotations, reflections and colour swaps of a shape count as one pattern, and the
// patterns are counted over the whole corpus.
package katachi

import (
	"bytes"
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorgonia/katachi/game"
	wq "github.com/gorgonia/katachi/game/wq"
	"github.com/gorgonia/katachi/sgf"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Miner is the entry point of the API. It mines the records of one input directory.
type Miner struct {
	conf    Config
	runID   string
	logger  *log.Logger
	reg     prometheus.Registerer
	metrics *metrics
}

// Option configures a Miner.
type Option func(m *Miner)

// WithLogger sets the logger progress and skipped sources are reported to.
func WithLogger(l *log.Logger) Option { return func(m *Miner) { m.logger = l } }

// WithRegisterer registers the run metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option { return func(m *Miner) { m.reg = reg } }

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option { return func(m *Miner) { m.runID = id } }

// New creates a Miner. It returns an error if the configuration is not valid.
func New(conf Config, opts ...Option) (*Miner, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("Config is not valid: %+v", conf)
	}
	m := &Miner{
		conf:   conf,
		runID:  uuid.NewString(),
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.metrics = newMetrics(m.reg)
	return m, nil
}

func (m *Miner) Config() Config { return m.conf }
func (m *Miner) RunID() string  { return m.runID }

// Result is the outcome of a run.
type Result struct {
	Patterns *Aggregator
	Statistics
}

// Top ranks the k most frequent patterns.
func (r *Result) Top(k int) []Entry { return Rank(r.Patterns, k) }

// Run mines every record of the input directory.
//
// A source that cannot be mined is logged and counted in Statistics.Skipped; it never fails the run. Run fails
// if the input directory cannot be listed or ctx is done.
func (m *Miner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	paths, err := m.sources()
	if err != nil {
		return nil, err
	}
	m.logger.Printf("Run %v: %d records in %v", m.runID, len(paths), m.conf.InputDir)

	results := make([]gameResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.conf.Workers)
	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.mine(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "Run interrupted")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "Run interrupted")
	}

	res := m.collect(results)
	m.logger.Printf("Run %v: mined %d records, skipped %d, found %d patterns in %d moves (%v)",
		m.runID, res.Parsed(), res.SkippedTotal(), res.Patterns.Len(), res.Patterns.Total(), time.Since(start))
	return res, nil
}

type dupKey struct {
	hash  game.Zobrist
	moves int
}

// collect merges the results in source order, so that the discovery order of the patterns does not depend on
// which worker finished first.
func (m *Miner) collect(results []gameResult) *Result {
	res := &Result{
		Patterns:   NewAggregator(),
		Statistics: makeStatistics(m.runID),
	}
	seen := make(map[dupKey]string)
	for _, r := range results {
		if r.err != nil {
			kind, _ := KindOf(r.err)
			m.logger.Printf("Skipping %v", r.err)
			res.skip(kind)
			m.metrics.skipped(kind)
			continue
		}

		k := dupKey{r.hash, r.moves}
		if first, ok := seen[k]; ok {
			res.Duplicates++
			if m.conf.SkipDuplicates {
				m.logger.Printf("Skipping %v: same game as %v", r.source, first)
				res.skip(DuplicateGame)
				m.metrics.skipped(DuplicateGame)
				continue
			}
			if m.conf.Verbose {
				m.logger.Printf("%v looks like the same game as %v", r.source, first)
			}
		} else {
			seen[k] = r.source
		}

		res.Patterns.Merge(r.patterns)
		res.update(r.source, r.moves)
		m.metrics.mined(r.moves)
		m.metrics.patterns.Set(float64(res.Patterns.Len()))
	}
	return res
}

// sources lists the records to mine, sorted.
func (m *Miner) sources() ([]string, error) {
	dir := m.conf.InputDir
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "Input directory %q", dir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("Input %q is not a directory", dir)
	}
	if _, err := filepath.Match(m.conf.Glob, ""); err != nil {
		return nil, errors.Wrapf(err, "Bad glob %q", m.conf.Glob)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			m.logger.Printf("Unable to read %v: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != dir && !m.conf.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(m.conf.Glob, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to list %q", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// sourceName is the identifier of a source: its path relative to the input directory.
func (m *Miner) sourceName(path string) string {
	rel, err := filepath.Rel(m.conf.InputDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

type gameResult struct {
	source   string
	patterns *Aggregator
	moves    int
	hash     game.Zobrist
	err      error
}

// mine reads and replays one record into its own Aggregator. A record that fails half way contributes nothing.
func (m *Miner) mine(path string) (r gameResult) {
	start := time.Now()
	defer func() { m.metrics.duration.Observe(time.Since(start).Seconds()) }()

	r.source = m.sourceName(path)
	if m.conf.Verbose {
		m.logger.Printf("Processing %v", r.source)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.err = newSourceError(SourceUnavailable, r.source, err)
		return r
	}
	if len(bytes.TrimSpace(data)) == 0 {
		r.err = newSourceError(SourceEmpty, r.source, nil)
		return r
	}
	rec, err := sgf.Parse(data)
	if err != nil {
		r.err = newSourceError(MalformedRecord, r.source, err)
		return r
	}
	if rec.Size != m.conf.BoardSize {
		r.err = newSourceError(MalformedRecord, r.source, errors.Errorf("Board size is %d, expected %d", rec.Size, m.conf.BoardSize))
		return r
	}

	g := borrowGame(rec.Size)
	defer returnGame(g)
	agg := NewAggregator()
	record := func(n int, c game.Coord, p game.Player) error {
		agg.Record(ShapeAt(g.Board(), c, p), r.source)
		return nil
	}
	if err := Replay(g, rec, record); err != nil {
		kind := MalformedRecord
		if wq.IsIllegal(err) {
			kind = IllegalMove
		}
		r.err = newSourceError(kind, r.source, err)
		return r
	}

	r.patterns = agg
	r.moves = g.MoveNumber()
	r.hash = g.Hash()
	return r
}
