package katachi

import (
	"sort"

	"github.com/gorgonia/katachi/pattern"
)

// PatternStats is what is known about one canonical pattern.
type PatternStats struct {
	Pattern pattern.Canonical
	Count   int                 // number of moves that produced the pattern
	Sources map[string]struct{} // sources the pattern appeared in
	Seq     int                 // order of discovery, starting at 0
}

// SourceCount is the number of distinct sources the pattern appeared in.
func (s *PatternStats) SourceCount() int { return len(s.Sources) }

// SortedSources returns the sources in lexical order.
func (s *PatternStats) SortedSources() []string {
	retVal := make([]string, 0, len(s.Sources))
	for src := range s.Sources {
		retVal = append(retVal, src)
	}
	sort.Strings(retVal)
	return retVal
}

// Aggregator counts canonical patterns. The zero value is not usable; use NewAggregator.
//
// An Aggregator is not safe for concurrent use. Concurrent producers each fill their own and Merge them.
type Aggregator struct {
	stats map[pattern.Canonical]*PatternStats
	order []*PatternStats
	total int
}

func NewAggregator() *Aggregator {
	return &Aggregator{stats: make(map[pattern.Canonical]*PatternStats)}
}

// Record counts one occurrence of p in source.
func (a *Aggregator) Record(p pattern.Canonical, source string) {
	s := a.entry(p)
	s.Count++
	s.Sources[source] = struct{}{}
	a.total++
}

func (a *Aggregator) entry(p pattern.Canonical) *PatternStats {
	s, ok := a.stats[p]
	if !ok {
		s = &PatternStats{
			Pattern: p,
			Sources: make(map[string]struct{}),
			Seq:     len(a.order),
		}
		a.stats[p] = s
		a.order = append(a.order, s)
	}
	return s
}

// Merge adds the counts and sources of other. Patterns new to a are discovered in other's order, after a's own.
func (a *Aggregator) Merge(other *Aggregator) {
	for _, o := range other.order {
		s := a.entry(o.Pattern)
		s.Count += o.Count
		for src := range o.Sources {
			s.Sources[src] = struct{}{}
		}
	}
	a.total += other.total
}

// Len is the number of distinct patterns.
func (a *Aggregator) Len() int { return len(a.order) }

// Total is the number of recorded occurrences.
func (a *Aggregator) Total() int { return a.total }

// Get returns the stats of p, if it was ever recorded.
func (a *Aggregator) Get(p pattern.Canonical) (*PatternStats, bool) {
	s, ok := a.stats[p]
	return s, ok
}

// Patterns returns every pattern in discovery order. The returned stats must not be modified.
func (a *Aggregator) Patterns() []*PatternStats {
	retVal := make([]*PatternStats, len(a.order))
	copy(retVal, a.order)
	return retVal
}

// Reset forgets everything.
func (a *Aggregator) Reset() {
	a.stats = make(map[pattern.Canonical]*PatternStats)
	a.order = a.order[:0]
	a.total = 0
}
