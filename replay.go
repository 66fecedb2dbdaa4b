package katachi

import (
	"fmt"

	"github.com/gorgonia/katachi/game"
	wq "github.com/gorgonia/katachi/game/wq"
	"github.com/gorgonia/katachi/pattern"
	"github.com/gorgonia/katachi/sgf"
	"github.com/pkg/errors"
)

// StoneFunc is called by Replay after each stone is played. n counts stones from 1.
type StoneFunc func(n int, c game.Coord, p game.Player) error

// Replay plays rec on g from an empty board. Setup stones are placed as they occur in the record. Passes are
// played but not reported to fn.
//
// An illegal move stops the replay with an error for which wq.IsIllegal holds.
func Replay(g *wq.Game, rec *sgf.Game, fn StoneFunc) error {
	g.Reset()
	setup := rec.Setup
	place := func(before int) error {
		for len(setup) > 0 && setup[0].Before <= before {
			s := setup[0]
			if err := g.Setup(s.Coord, s.Colour); err != nil {
				return errors.WithMessage(err, "Bad setup stone")
			}
			setup = setup[1:]
		}
		return nil
	}

	var n int
	for i, m := range rec.Moves {
		if err := place(i); err != nil {
			return err
		}
		if err := g.Play(m.Player, m.Coord); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Move %d", i+1))
		}
		if m.IsPass() {
			continue
		}
		n++
		if fn == nil {
			continue
		}
		if err := fn(n, m.Coord, m.Player); err != nil {
			return err
		}
	}
	return place(len(rec.Moves))
}

// ShapeAt returns the canonical shape around the stone just played at c by p.
//
// A stone removed by self-capture is put back in the window so that the shape is the one that was played.
func ShapeAt(b pattern.Board, c game.Coord, p game.Player) pattern.Canonical {
	w := pattern.Extract(b, c)
	if !w.Centre().IsStone() {
		w[pattern.Size/2][pattern.Size/2] = pattern.CellOf(game.Colour(p))
	}
	return pattern.Canonicalize(w)
}
