package katachi

import (
	"bufio"
	"os"

	"github.com/gorgonia/katachi/encoding/histogram"
	"github.com/pkg/errors"
)

// Publish writes the outputs the configuration asks for, then feeds the ranked patterns to every encoder in turn.
func (m *Miner) Publish(res *Result, encs ...OutputEncoder) error {
	entries := res.Top(m.conf.Top)

	var histPath string
	if m.conf.Histogram != "" {
		opts := histogram.DefaultOptions()
		opts.Bins = m.conf.Bins
		if err := histogram.Render(m.conf.Histogram, res.MovesPerGame, opts); err != nil {
			return err
		}
		histPath = m.conf.Histogram
	}

	if m.conf.Report != "" {
		if err := writeReportFile(m.conf.Report, entries, histPath); err != nil {
			return err
		}
		m.logger.Printf("Wrote the %d most frequent of %d patterns to %v", len(entries), res.Patterns.Len(), m.conf.Report)
	}

	if m.conf.Graph != "" {
		if err := WriteGraph(m.conf.Graph, res.Patterns, entries); err != nil {
			return err
		}
	}

	if m.conf.Stats != "" {
		if err := res.Dump(m.conf.Stats); err != nil {
			return errors.WithMessage(err, "Unable to dump statistics")
		}
	}

	for _, enc := range encs {
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return errors.WithMessage(err, "Unable to encode pattern")
			}
		}
		if err := enc.Flush(); err != nil {
			return errors.WithMessage(err, "Unable to flush encoder")
		}
	}

	s := res.Summary()
	m.logger.Printf("Successfully parsed %d records: %d moves, %.1f per game (shortest %v with %d, longest %v with %d)",
		res.Parsed(), s.Moves, s.Mean, s.Shortest, s.Min, s.Longest, s.Max)
	return nil
}

func writeReportFile(path string, entries []Entry, histPath string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to create report %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteReport(w, entries); err != nil {
		return err
	}
	if histPath != "" {
		if err := WriteHistogramRef(w, histPath); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "Unable to write report %q", path)
	}
	return errors.Wrapf(f.Close(), "Unable to close report %q", path)
}
