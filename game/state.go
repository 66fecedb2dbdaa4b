package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Player represents a player. It's also a colour.
type Player Colour

const (
	BlackP = Player(Black)
	WhiteP = Player(White)
)

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Opponent returns the colour of the opponent player
func Opponent(p Player) Player {
	switch Colour(p) {
	case White:
		return BlackP
	case Black:
		return WhiteP
	}
	panic("Unreachable")
}

// IsValid checks that a player is indeed valid
func IsValid(p Player) bool { return Colour(p) == Black || Colour(p) == White }

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// Coordinate is a representation of coordinates. This is typically a move
type Coordinate interface {
	IsResignation() bool
	IsPass() bool
}

// Coord represents a (row, col) coordinate.
//
// The Coord uses a standard computer cartesian coordinates
//		- (0, 0) represents the top left
//		- (18, 18) represents the bottom right of a 19x19 board
//		- (255, 255) represents a "pass" move
// 		- (254, 254) represents a "resign" move
type Coord struct {
	X, Y int16
}

// PassCoord is the pass move expressed as a Coord
var PassCoord = Coord{255, 255}

func (c Coord) Add(other Coord) Coord {
	return Coord{c.X + other.X, c.Y + other.Y}
}

func (c Coord) Eq(other Coord) bool { return c.X == other.X && c.Y == other.Y }

// IsResignation returns true when the coordinate represents a "resignation" move
func (c Coord) IsResignation() bool { return c.X == 254 && c.Y == 254 }

// IsPass returns true when the coordinate represents a "pass" move
func (c Coord) IsPass() bool { return c.X == 255 && c.Y == 255 }

// String returns the vertex in the usual board notation, column letter first (skipping I) then the row counted from the top.
func (c Coord) String() string {
	if c.IsPass() {
		return "pass"
	}
	if c.X < 0 || c.Y < 0 || c.Y > 24 {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	letter := 'A' + rune(c.Y)
	if letter >= 'I' {
		letter++
	}
	return fmt.Sprintf("%c%d", letter, c.X+1)
}

// Single represents a coordinate as a single number, utilized in a rowmajor fashion.
//		- 0 represents the top left
//		- 18 represents the top right
//		- 19 represents (1, 0)
// 		- -1 represents the "pass" move
//		- -2 represents the "resignation" move
type Single int32

const (
	Pass        Single = -1
	Resignation Single = -2
)

// IsResignation returns true when the coordinate represents a "resignation" move
func (c Single) IsResignation() bool { return c == Resignation }

// IsPass returns true when the coordinate represents a "pass" move
func (c Single) IsPass() bool { return c == Pass }

// Zobrist is a type representing a "zobrist" hash of a board.
type Zobrist uint64

// CoordConverter converts between the two coordinate representations of a board.
type CoordConverter interface {
	Ltoi(Coord) Single
	Itol(Single) Coord
}
