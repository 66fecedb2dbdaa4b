package katachi

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/gorgonia/katachi/pattern"
	"github.com/pkg/errors"
)

// DefaultTop is the number of patterns reported when no other number is asked for.
const DefaultTop = 20

// Entry is one ranked pattern.
type Entry struct {
	Rank    int // 1 based
	Pattern pattern.Canonical
	Count   int
	Sources int
	Seq     int
}

// Rank orders the patterns of a by count, most frequent first, and returns the first k of them (DefaultTop if k <= 0).
// Patterns with equal counts keep their discovery order.
func Rank(a *Aggregator, k int) []Entry {
	if k <= 0 {
		k = DefaultTop
	}
	ps := a.Patterns()
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Count != ps[j].Count {
			return ps[i].Count > ps[j].Count
		}
		return ps[i].Seq < ps[j].Seq
	})
	if k > len(ps) {
		k = len(ps)
	}
	retVal := make([]Entry, k)
	for i := range retVal {
		p := ps[i]
		retVal[i] = Entry{
			Rank:    i + 1,
			Pattern: p.Pattern,
			Count:   p.Count,
			Sources: p.SourceCount(),
			Seq:     p.Seq,
		}
	}
	return retVal
}

// WriteReport writes each entry as its five rows of glyphs followed by how often and in how many games it was seen.
func WriteReport(w io.Writer, entries []Entry) error {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteByte('\n')
		for _, row := range e.Pattern.Rows() {
			buf.WriteString(row)
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "\n%d times in %d games\n\n\n", e.Count, e.Sources)
	}
	_, err := buf.WriteTo(w)
	return errors.Wrap(err, "Unable to write report")
}

// WriteHistogramRef writes the line that points a reader of the report to the histogram.
func WriteHistogramRef(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "\nGraph showing the distribution of total moves per game saved at: %s\n", path)
	return errors.Wrap(err, "Unable to write report")
}
