package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gorgonia/katachi"
)

// logEncoder prints the ranked patterns side by side, a few per row. It implements katachi.OutputEncoder.
type logEncoder struct {
	w       *bufio.Writer
	pending []katachi.Entry
}

const perRow = 6

func newLogEncoder(w io.Writer) *logEncoder { return &logEncoder{w: bufio.NewWriter(w)} }

func (enc *logEncoder) Encode(e katachi.Entry) error {
	enc.pending = append(enc.pending, e)
	if len(enc.pending) == perRow {
		return enc.row()
	}
	return nil
}

func (enc *logEncoder) row() error {
	if len(enc.pending) == 0 {
		return nil
	}
	header := make([]string, len(enc.pending))
	for i, e := range enc.pending {
		header[i] = fmt.Sprintf("%-10s", fmt.Sprintf("#%d x%d", e.Rank, e.Count))
	}
	fmt.Fprintln(enc.w, strings.Join(header, " "))

	rows := make([][]string, len(enc.pending))
	for i, e := range enc.pending {
		rows[i] = e.Pattern.Rows()
	}
	for r := range rows[0] {
		line := make([]string, len(rows))
		for i := range rows {
			line[i] = rows[i][r] + "     " // pad the 5 glyphs to the width of the header
		}
		fmt.Fprintln(enc.w, strings.Join(line, " "))
	}
	fmt.Fprintln(enc.w)
	enc.pending = enc.pending[:0]
	return nil
}

func (enc *logEncoder) Flush() error {
	if err := enc.row(); err != nil {
		return err
	}
	return enc.w.Flush()
}
