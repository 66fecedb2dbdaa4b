// package 围碁 implements Go (the board game) related code
//
// 围碁 is a bastardized word.
// The first character is read "wei" in Chinese. The second is read "qi" in Chinese.
// However, the charcter 碁 is no longer actively used in Chinese.
// It is however, actively used in Japanese. Specifically, it's read "go" in Japanese.
//
// The main reason why this package is named with unicode characters instead of `package go`
// is because the standard library of the Go language have the prefix "go"
package 围碁

import (
	"fmt"

	"github.com/gorgonia/katachi/game"
	"github.com/pkg/errors"
)

const (
	None  = game.None
	Black = game.Black
	White = game.White

	BlackP = game.BlackP
	WhiteP = game.WhiteP
)

var _ game.CoordConverter = &Board{}

// Board represents a board.
//
// The backing data is a flat row-major slice of colours. it is a set of row views into
// the backing data for quick (x, y) access.
type Board struct {
	size    int32
	data    []game.Colour   // backing data
	it      [][]game.Colour // iterator for quick access
	zobrist                 // hashing of the board
}

// NewBoard creates an empty board of size x size.
func NewBoard(size int) *Board { return newBoard(size) }

func newBoard(size int) *Board {
	data, it := makeBoard(size)
	return &Board{
		size:    int32(size),
		data:    data,
		it:      it,
		zobrist: makeZobrist(size),
	}
}

// makeBoard makes a board of NxN. Additionally, it also returns a 2D iterator
func makeBoard(size int) (board []game.Colour, iterator [][]game.Colour) {
	board = make([]game.Colour, size*size)
	iterator = make([][]game.Colour, size)
	for i := range iterator {
		start := i * size
		iterator[i] = board[start : start+size : start+size]
	}
	return
}

// Size returns the length of one side of the board.
func (b *Board) Size() int { return int(b.size) }

// Data returns the backing data. It must not be modified.
func (b *Board) Data() []game.Colour { return b.data }

// At returns the colour at c. Anything off the board is None.
func (b *Board) At(c game.Coord) game.Colour {
	if !b.isCoordValid(c) {
		return None
	}
	return b.it[c.X][c.Y]
}

// Clone clones the board
func (b *Board) Clone() *Board {
	data, it := makeBoard(int(b.size))
	copy(data, b.data)
	return &Board{
		size:    b.size,
		data:    data,
		it:      it,
		zobrist: b.zobrist,
	}
}

// Eq checks that both are equal
func (b *Board) Eq(other *Board) bool {
	if b == other {
		return true
	}

	// easy to check stuff
	if b.size != other.size ||
		b.hash != other.hash ||
		len(b.data) != len(other.data) {
		return false
	}

	for i, c := range b.data {
		if c != other.data[i] {
			return false
		}
	}
	return true
}

// Format implements fmt.Formatter
func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for _, row := range b.it {
			fmt.Fprint(s, "⎢ ")
			for _, col := range row {
				fmt.Fprintf(s, "%s ", col)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

// Reset resets the board state
func (b *Board) Reset() {
	for i := range b.data {
		b.data[i] = None
	}
	b.zobrist.hash = 0
}

// Hash returns the calculated hash of the board
func (b *Board) Hash() game.Zobrist { return game.Zobrist(b.hash) }

// Place puts a colour on the board without resolving captures. Placing None clears the point.
// It is used for setup stones.
func (b *Board) Place(c game.Coord, colour game.Colour) error {
	if !b.isCoordValid(c) {
		return errors.Errorf("Cannot place %v at %v: off the board", colour, c)
	}
	idx := b.Ltoi(c)
	if old := b.data[idx]; old != None {
		b.zobrist.update(game.PlayerMove{Player: game.Player(old), Single: idx})
	}
	b.data[idx] = colour
	if colour != None {
		b.zobrist.update(game.PlayerMove{Player: game.Player(colour), Single: idx})
	}
	return nil
}

// Apply plays a move. It returns the number of opponent stones taken, and the number of the mover's own
// stones lost to self-capture. An illegal move leaves the board untouched.
//
// Captures of the opponent are resolved first. If the mover's group is left without liberties
// afterwards, it is removed as well.
func (b *Board) Apply(m game.PlayerMove) (taken, lost int, err error) {
	if !game.IsValid(m.Player) {
		return 0, 0, errors.WithMessage(moveError(m), "Impossible player")
	}
	if m.Single < 0 || int32(m.Single) >= b.size*b.size {
		return 0, 0, errors.WithMessage(moveError(m), "Impossible move")
	}

	// if the board location is not empty, then clearly we can't apply
	if b.data[m.Single] != None {
		return 0, 0, errors.WithMessage(moveError(m), "Application Failure - board location not empty.")
	}

	// make the move then update zobrist hash
	b.data[m.Single] = game.Colour(m.Player)
	b.zobrist.update(m)

	c := b.Itol(m.Single)
	opp := game.Colour(game.Opponent(m.Player))
	for _, a := range b.adjacentsCoord(c) {
		if b.At(a) != opp {
			continue // also skips groups removed by an earlier neighbour
		}
		group, libs := b.group(a)
		if libs == 0 {
			taken += b.remove(group)
		}
	}

	// self capture
	if group, libs := b.group(c); libs == 0 {
		lost = b.remove(group)
	}
	return taken, lost, nil
}

// Group returns the 4-connected chain of same coloured stones that contains c.
// An empty or invalid c has no group.
func (b *Board) Group(c game.Coord) []game.Coord {
	if b.At(c) == None {
		return nil
	}
	group, _ := b.group(c)
	return group
}

// Liberties counts the distinct empty points adjacent to the chain containing c.
func (b *Board) Liberties(c game.Coord) int {
	if b.At(c) == None {
		return 0
	}
	_, libs := b.group(c)
	return libs
}

// group floods out from c. The frontier is expanded one ring at a time.
func (b *Board) group(c game.Coord) (retVal []game.Coord, liberties int) {
	colour := b.it[c.X][c.Y]
	seen := make([]bool, len(b.data))
	libSeen := make([]bool, len(b.data))
	seen[b.Ltoi(c)] = true

	founds := []game.Coord{c}
	for len(founds) > 0 {
		var next []game.Coord
		for _, f := range founds {
			for _, a := range b.adjacentsCoord(f) {
				if !b.isCoordValid(a) {
					continue
				}
				i := b.Ltoi(a)
				switch b.data[i] {
				case None:
					if !libSeen[i] {
						libSeen[i] = true
						liberties++
					}
				case colour:
					if !seen[i] {
						seen[i] = true
						next = append(next, a)
					}
				}
			}
		}
		retVal = append(retVal, founds...)
		founds = next
	}
	return retVal, liberties
}

// remove takes a group of stones off the board and returns how many were removed.
func (b *Board) remove(group []game.Coord) int {
	for _, s := range group {
		i := b.Ltoi(s)
		b.zobrist.update(game.PlayerMove{Player: game.Player(b.data[i]), Single: i}) // Xoring the original colour
		b.data[i] = None
	}
	return len(group)
}

// Itol takes a single and returns a coordinate
func (b *Board) Itol(s game.Single) game.Coord {
	x := int16(int32(s) / b.size)
	y := int16(int32(s) % b.size)
	return game.Coord{X: x, Y: y}
}

// Ltoi takes a coordinate and return a single
func (b *Board) Ltoi(c game.Coord) game.Single { return game.Single(int32(c.X)*b.size + int32(c.Y)) }

// adjacentsCoord returns the adjacent positions given a coord
func (b *Board) adjacentsCoord(c game.Coord) (retVal [4]game.Coord) {
	for i := range retVal {
		retVal[i] = c.Add(adjacents[i])
	}
	return retVal
}

func (b *Board) isCoordValid(c game.Coord) bool {
	x, y := int32(c.X), int32(c.Y)
	// check if valid
	if x >= b.size || x < 0 {
		return false
	}
	if y >= b.size || y < 0 {
		return false
	}
	return true
}

var adjacents = [4]game.Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}
