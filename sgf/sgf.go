// Package sgf reads game records in the Smart Game Format (FF[4]).
//
// Only what is needed to replay the main line of a game of Go is interpreted: the board size, setup
// stones and moves. Every other property is kept as text.
package sgf

import (
	"strconv"
	"strings"

	"github.com/gorgonia/katachi/game"
	"github.com/pkg/errors"
)

// DefaultSize is the board size of a record without an SZ property.
const DefaultSize = 19

// GameTree is one tree of a collection: a sequence of nodes followed by its variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is a set of properties. Properties may repeat values (e.g. AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

// Get returns the first value of a property.
func (n Node) Get(id string) (string, bool) {
	vs, ok := n.Properties[id]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// MainLine follows the first variation at every branch.
func (t *GameTree) MainLine() []Node {
	var retVal []Node
	for t != nil {
		retVal = append(retVal, t.Nodes...)
		if len(t.Children) == 0 {
			break
		}
		t = t.Children[0]
	}
	return retVal
}

// Move is a move of the main line. Passes have a Coord of game.PassCoord.
//
// Coordinates are not checked against the board size; a move off the board is for the replaying board to reject.
type Move struct {
	Player game.Player
	Coord  game.Coord
}

// IsPass returns true if the move is a pass.
func (m Move) IsPass() bool { return m.Coord.IsPass() }

// Placement is a setup stone (AB, AW) or a cleared point (AE, Colour None).
// Before is the number of moves of the main line that precede it.
type Placement struct {
	Colour game.Colour
	Coord  game.Coord
	Before int
}

// Game is the main line of a record.
type Game struct {
	Size  int
	Info  map[string]string // root properties, first value only
	Setup []Placement
	Moves []Move
}

// MoveCount returns the number of moves that are not passes.
func (g *Game) MoveCount() int {
	var n int
	for _, m := range g.Moves {
		if !m.IsPass() {
			n++
		}
	}
	return n
}

// Parse reads the main line of the first game in data.
func Parse(data []byte) (*Game, error) {
	trees, err := ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return Interpret(trees[0])
}

// Interpret extracts the board size, setup stones and moves of the main line of t.
func Interpret(t *GameTree) (*Game, error) {
	nodes := t.MainLine()
	if len(nodes) == 0 {
		return nil, errors.New("Game tree has no nodes")
	}

	root := nodes[0]
	g := &Game{
		Size: DefaultSize,
		Info: make(map[string]string),
	}
	for id, vs := range root.Properties {
		if len(vs) > 0 {
			g.Info[id] = vs[0]
		}
	}
	if gm, ok := root.Get("GM"); ok && strings.TrimSpace(gm) != "1" {
		return nil, errors.Errorf("Unsupported game type GM[%s]", gm)
	}
	if sz, ok := root.Get("SZ"); ok {
		size, err := parseSize(sz)
		if err != nil {
			return nil, err
		}
		g.Size = size
	}

	for i, n := range nodes {
		if err := g.setup(n); err != nil {
			return nil, errors.WithMessage(err, "node "+strconv.Itoa(i))
		}
		m, ok, err := g.move(n)
		if err != nil {
			return nil, errors.WithMessage(err, "node "+strconv.Itoa(i))
		}
		if ok {
			g.Moves = append(g.Moves, m)
		}
	}
	return g, nil
}

func parseSize(sz string) (int, error) {
	sz = strings.TrimSpace(sz)
	if i := strings.IndexByte(sz, ':'); i >= 0 {
		if sz[:i] != sz[i+1:] {
			return 0, errors.Errorf("Rectangular boards are not supported: SZ[%s]", sz)
		}
		sz = sz[:i]
	}
	size, err := strconv.Atoi(sz)
	if err != nil {
		return 0, errors.Wrapf(err, "Bad SZ[%s]", sz)
	}
	if size < 1 || size > 52 {
		return 0, errors.Errorf("Board size %d out of range", size)
	}
	return size, nil
}

var setupProps = []struct {
	id     string
	colour game.Colour
}{
	{"AE", game.None},
	{"AB", game.Black},
	{"AW", game.White},
}

func (g *Game) setup(n Node) error {
	for _, sp := range setupProps {
		for _, v := range n.Properties[sp.id] {
			cs, err := pointList(v)
			if err != nil {
				return errors.WithMessage(err, sp.id)
			}
			for _, c := range cs {
				g.Setup = append(g.Setup, Placement{Colour: sp.colour, Coord: c, Before: len(g.Moves)})
			}
		}
	}
	return nil
}

func (g *Game) move(n Node) (m Move, ok bool, err error) {
	b, hasB := n.Properties["B"]
	w, hasW := n.Properties["W"]
	var vs []string
	switch {
	case hasB && hasW:
		return m, false, errors.New("Node has both a black and a white move")
	case hasB:
		m.Player = game.BlackP
		vs = b
	case hasW:
		m.Player = game.WhiteP
		vs = w
	default:
		return m, false, nil
	}
	if len(vs) != 1 {
		return m, false, errors.Errorf("Expected a single move value. Got %d", len(vs))
	}

	v := strings.TrimSpace(vs[0])
	if v == "" || (v == "tt" && g.Size <= 19) {
		m.Coord = game.PassCoord
		return m, true, nil
	}
	if m.Coord, err = point(v); err != nil {
		return m, false, err
	}
	return m, true, nil
}

// point reads a point value. The first letter is the column, the second the row, "aa" being the top left.
func point(v string) (game.Coord, error) {
	if len(v) != 2 {
		return game.Coord{}, errors.Errorf("Bad point %q", v)
	}
	col, ok1 := letter(v[0])
	row, ok2 := letter(v[1])
	if !ok1 || !ok2 {
		return game.Coord{}, errors.Errorf("Bad point %q", v)
	}
	return game.Coord{X: row, Y: col}, nil
}

// pointList reads a point or a compressed rectangle of points ("aa:cc").
func pointList(v string) ([]game.Coord, error) {
	v = strings.TrimSpace(v)
	i := strings.IndexByte(v, ':')
	if i < 0 {
		c, err := point(v)
		if err != nil {
			return nil, err
		}
		return []game.Coord{c}, nil
	}

	from, err := point(v[:i])
	if err != nil {
		return nil, err
	}
	to, err := point(v[i+1:])
	if err != nil {
		return nil, err
	}
	if from.X > to.X || from.Y > to.Y {
		return nil, errors.Errorf("Bad rectangle %q", v)
	}
	var retVal []game.Coord
	for x := from.X; x <= to.X; x++ {
		for y := from.Y; y <= to.Y; y++ {
			retVal = append(retVal, game.Coord{X: x, Y: y})
		}
	}
	return retVal, nil
}

func letter(c byte) (int16, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int16(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int16(c-'A') + 26, true
	}
	return 0, false
}
