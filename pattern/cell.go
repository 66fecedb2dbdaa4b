// Package pattern extracts the 5x5 neighbourhood of a move and reduces it to a canonical form under
// the 16 symmetries of a local shape: the 8 symmetries of the square, each with and without the colours swapped.
package pattern

import (
	"fmt"

	"github.com/gorgonia/katachi/game"
)

// Cell is the classification of one point of a Window.
//
// The numeric order of the cells is the order used to pick the canonical member of an orbit.
type Cell byte

const (
	Invalid       Cell = iota // never present in an extracted window
	EmptyInterior             // empty point at least one line in from the edge
	OffBoard                  // beyond the edge of the board
	EmptyEdge                 // empty point on the first line (or the first line extended past a corner)
	Black
	White
)

// CellOf converts a stone colour. None has no cell of its own; its classification depends on where it is.
func CellOf(c game.Colour) Cell {
	switch c {
	case game.Black:
		return Black
	case game.White:
		return White
	}
	return Invalid
}

// Invert swaps the colour of a stone. Anything else is returned as is.
func (c Cell) Invert() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

// IsStone returns true if c is a black or white stone.
func (c Cell) IsStone() bool { return c == Black || c == White }

// Glyph is the symbol used in text reports.
func (c Cell) Glyph() rune {
	switch c {
	case Black:
		return '☻'
	case White:
		return '☺'
	case EmptyEdge:
		return '/'
	case EmptyInterior:
		return '+'
	case OffBoard:
		return '.'
	}
	return '?'
}

// ASCII is the symbol used where only ASCII is available (such as the fonts of the rendered outputs).
func (c Cell) ASCII() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	case EmptyEdge:
		return '/'
	case EmptyInterior:
		return '+'
	case OffBoard:
		return '.'
	}
	return '?'
}

// cellFromSymbol reads back either a Glyph or an ASCII symbol.
func cellFromSymbol(r rune) Cell {
	switch r {
	case '☻', 'X', 'x', 'b', 'B':
		return Black
	case '☺', 'O', 'o', 'w', 'W':
		return White
	case '/':
		return EmptyEdge
	case '+':
		return EmptyInterior
	case '.':
		return OffBoard
	}
	return Invalid
}

func (c Cell) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch c {
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		case EmptyEdge:
			fmt.Fprint(s, "EmptyEdge")
		case EmptyInterior:
			fmt.Fprint(s, "EmptyInterior")
		case OffBoard:
			fmt.Fprint(s, "OffBoard")
		default:
			fmt.Fprint(s, "Invalid")
		}
	case 's':
		fmt.Fprintf(s, "%c", c.Glyph())
	case 'd':
		fmt.Fprintf(s, "%d", byte(c))
	}
}
