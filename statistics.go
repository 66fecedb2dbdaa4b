package katachi

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Statistics is what a run learnt about its sources, as opposed to its patterns.
type Statistics struct {
	RunID        string
	Sources      []string // sources that were mined, in order
	MovesPerGame []int    // number of non-pass moves of each mined source
	Skipped      map[Kind]int
	Duplicates   int // games that repeat an earlier game, whether skipped or not
}

func makeStatistics(runID string) Statistics {
	return Statistics{
		RunID:        runID,
		Sources:      make([]string, 0, 64),
		MovesPerGame: make([]int, 0, 64),
		Skipped:      make(map[Kind]int),
	}
}

func (s *Statistics) update(source string, moves int) {
	s.Sources = append(s.Sources, source)
	s.MovesPerGame = append(s.MovesPerGame, moves)
}

func (s *Statistics) skip(kind Kind) { s.Skipped[kind]++ }

// Parsed is the number of sources that were mined.
func (s *Statistics) Parsed() int { return len(s.Sources) }

// SkippedTotal is the number of sources that were not mined.
func (s *Statistics) SkippedTotal() int {
	var n int
	for _, v := range s.Skipped {
		n += v
	}
	return n
}

// Summary summarises the moves per game.
type Summary struct {
	Games    int
	Moves    int
	Mean     float32
	Shortest string
	Longest  string
	Min, Max int
}

func (s *Statistics) Summary() Summary {
	if len(s.MovesPerGame) == 0 {
		return Summary{}
	}
	mpg := make([]float32, len(s.MovesPerGame))
	for i, m := range s.MovesPerGame {
		mpg[i] = float32(m)
	}
	sum := vecf32.Sum(mpg)
	lo, hi := vecf32.Argmin(mpg), vecf32.Argmax(mpg)
	return Summary{
		Games:    len(mpg),
		Moves:    int(sum),
		Mean:     sum / float32(len(mpg)),
		Shortest: s.Sources[lo],
		Longest:  s.Sources[hi],
		Min:      s.MovesPerGame[lo],
		Max:      s.MovesPerGame[hi],
	}
}

// Dump writes the moves of every mined game as CSV.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to create %q", filename)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"run", "source", "moves"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Sources))
	for i, src := range s.Sources {
		records = append(records, []string{s.RunID, src, strconv.Itoa(s.MovesPerGame[i])})
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}
