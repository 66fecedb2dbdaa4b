package 围碁

import (
	"fmt"

	"github.com/gorgonia/katachi/game"
	"github.com/pkg/errors"
)

// Game tracks the board of one game record as it is replayed move by move.
type Game struct {
	board     *Board
	history   []game.PlayerMove
	moveCount int    // number of stones played. Passes are not counted
	passes    int    // count of passes
	captures  [2]int // prisoners held by black and white
}

// New creates a game on an empty board.
func New(boardSize int) *Game {
	b := newBoard(boardSize)
	return &Game{
		board:   b,
		history: make([]game.PlayerMove, 0, int(b.size*b.size)),
	}
}

func (g *Game) Board() *Board         { return g.board }
func (g *Game) BoardSize() (int, int) { return int(g.board.size), int(g.board.size) }
func (g *Game) Hash() game.Zobrist    { return g.board.Hash() }
func (g *Game) Passes() int           { return g.passes }

// MoveNumber returns the number of stones played so far.
func (g *Game) MoveNumber() int { return g.moveCount }

func (g *Game) LastMove() game.PlayerMove {
	if len(g.history) > 0 {
		return g.history[len(g.history)-1]
	}
	return game.PlayerMove{Player: game.Player(game.None), Single: game.Pass}
}

// Captures returns the number of prisoners p has taken. Stones lost to self-capture count for the opponent.
func (g *Game) Captures(p game.Player) int {
	if !game.IsValid(p) {
		return 0
	}
	return g.captures[p-1]
}

// Setup places a setup stone (or clears a point when colour is None). Setup stones are not moves.
func (g *Game) Setup(c game.Coord, colour game.Colour) error {
	return g.board.Place(c, colour)
}

// Apply plays m. Passes are recorded but leave the board alone.
// An illegal move returns an error and leaves the game as it was.
func (g *Game) Apply(m game.PlayerMove) error {
	switch {
	case m.Single.IsResignation():
		return errors.WithMessage(moveError(m), "Resignation is not a playable move")
	case m.Single.IsPass():
		if !game.IsValid(m.Player) {
			return errors.WithMessage(moveError(m), "Impossible player")
		}
		g.passes++
		g.history = append(g.history, m)
		return nil
	}

	taken, lost, err := g.board.Apply(m)
	if err != nil {
		return err
	}
	g.captures[m.Player-1] += taken
	g.captures[game.Opponent(m.Player)-1] += lost
	g.moveCount++
	g.history = append(g.history, m)
	return nil
}

// Play plays a stone at c, or passes if c is game.PassCoord. A point off the board is an illegal move.
func (g *Game) Play(p game.Player, c game.Coord) error {
	if c.IsPass() {
		return g.Apply(game.PlayerMove{Player: p, Single: game.Pass})
	}
	if !g.board.isCoordValid(c) {
		return errors.WithMessage(coordError{p, c}, "Point is off the board")
	}
	return g.Apply(game.PlayerMove{Player: p, Single: g.board.Ltoi(c)})
}

// Reset clears the game back to an empty board
func (g *Game) Reset() {
	g.board.Reset()
	g.history = g.history[:0]
	g.moveCount = 0
	g.passes = 0
	g.captures = [2]int{}
}

func (g *Game) Eq(other *Game) bool {
	if g.moveCount != other.moveCount ||
		g.passes != other.passes ||
		g.captures != other.captures ||
		len(g.history) != len(other.history) {
		return false
	}
	if !g.board.Eq(other.board) {
		return false
	}
	for i, pm := range g.history {
		if !pm.Eq(other.history[i]) {
			return false
		}
	}
	return true
}

func (g *Game) Clone() *Game {
	retVal := &Game{
		board:     g.board.Clone(),
		history:   make([]game.PlayerMove, len(g.history), len(g.history)+1),
		moveCount: g.moveCount,
		passes:    g.passes,
		captures:  g.captures,
	}
	copy(retVal.history, g.history)
	return retVal
}

func (g *Game) Format(s fmt.State, c rune) { g.board.Format(s, c) }
