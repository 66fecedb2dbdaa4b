package pattern

import (
	"fmt"
	"strings"

	"github.com/gorgonia/katachi/game"
	"github.com/pkg/errors"
)

const (
	// Size is the length of a side of a Window.
	Size = 5

	radius = Size / 2
)

// Window is the Size x Size neighbourhood of a move, row major, with the move in the middle.
// Window cell (i, j) is the board point (row+i-2, col+j-2).
type Window [Size][Size]Cell

// Board is what a Window is extracted from.
type Board interface {
	Size() int
	At(c game.Coord) game.Colour
}

// Extract classifies the neighbourhood of c. c is expected to hold the stone that was just played.
//
// Every point is classified from its absolute position on the board:
//	- a stone is always its colour
//	- an empty point on the first line is EmptyEdge. So is a point off the board that lies on the extension of a first line.
//	- an empty point strictly inside the first line is EmptyInterior
//	- anything else is OffBoard
func Extract(b Board, c game.Coord) (w Window) {
	size := b.Size()
	edge := size - 1
	for i := range w {
		for j := range w[i] {
			a := int(c.X) + i - radius
			bb := int(c.Y) + j - radius
			onBoard := a >= 0 && a < size && bb >= 0 && bb < size

			var stone game.Colour
			if onBoard {
				stone = b.At(game.Coord{X: int16(a), Y: int16(bb)})
			}

			switch {
			case stone != game.None:
				w[i][j] = CellOf(stone)
			case a == 0 || a == edge || bb == 0 || bb == edge:
				w[i][j] = EmptyEdge
			case a >= 1 && a < edge && bb >= 1 && bb < edge:
				w[i][j] = EmptyInterior
			default:
				w[i][j] = OffBoard
			}
		}
	}
	return w
}

// Centre returns the cell of the move the window was extracted around.
func (w Window) Centre() Cell { return w[radius][radius] }

// Valid returns true when every cell is classified.
func (w Window) Valid() bool {
	for i := range w {
		for _, c := range w[i] {
			if c == Invalid || c > White {
				return false
			}
		}
	}
	return true
}

// Compare orders windows row by row from the top, and cell by cell from the left within a row.
// It returns -1, 0 or 1.
func (w Window) Compare(other Window) int {
	for i := range w {
		for j := range w[i] {
			switch {
			case w[i][j] < other[i][j]:
				return -1
			case w[i][j] > other[i][j]:
				return 1
			}
		}
	}
	return 0
}

// Less returns true if w sorts before other.
func (w Window) Less(other Window) bool { return w.Compare(other) < 0 }

// Rows returns the window as lines of glyphs.
func (w Window) Rows() []string {
	retVal := make([]string, Size)
	var buf strings.Builder
	for i := range w {
		buf.Reset()
		for _, c := range w[i] {
			buf.WriteRune(c.Glyph())
		}
		retVal[i] = buf.String()
	}
	return retVal
}

// ASCII returns the window as a single line of ASCII symbols.
func (w Window) ASCII() string {
	var buf [Size * Size]byte
	for i := range w {
		for j, c := range w[i] {
			buf[i*Size+j] = c.ASCII()
		}
	}
	return string(buf[:])
}

// Format implements fmt.Formatter. %s prints the glyphs one row per line.
func (w Window) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		fmt.Fprint(s, strings.Join(w.Rows(), "\n"))
	case 'q':
		fmt.Fprintf(s, "%q", w.ASCII())
	}
}

// ParseWindow reads a window back from Size rows of symbols. Both the glyphs and the ASCII symbols are accepted.
func ParseWindow(rows ...string) (w Window, err error) {
	if len(rows) != Size {
		return w, errors.Errorf("Expected %d rows. Got %d", Size, len(rows))
	}
	for i, row := range rows {
		rs := []rune(row)
		if len(rs) != Size {
			return w, errors.Errorf("Row %d: expected %d symbols. Got %q", i, Size, row)
		}
		for j, r := range rs {
			if w[i][j] = cellFromSymbol(r); w[i][j] == Invalid {
				return w, errors.Errorf("Row %d: unknown symbol %q", i, r)
			}
		}
	}
	return w, nil
}
