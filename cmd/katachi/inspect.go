package main

import (
	"fmt"
	"os"

	"github.com/gorgonia/katachi"
	"github.com/gorgonia/katachi/game"
	wq "github.com/gorgonia/katachi/game/wq"
	"github.com/gorgonia/katachi/pattern"
	"github.com/gorgonia/katachi/sgf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var inspectMove int

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Replay one record and show the shape of a move",
	Args:  cobra.ExactArgs(1),
	RunE:  inspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectMove, "move", "m", 0, "stone to stop at, counting from 1. 0 is the last one")
}

var errStop = errors.New("stop")

func inspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "Unable to read %q", args[0])
	}
	rec, err := sgf.Parse(data)
	if err != nil {
		return errors.WithMessage(err, args[0])
	}

	g := wq.New(rec.Size)
	var (
		last   game.Coord
		player game.Player
		n      int
	)
	stop := func(i int, c game.Coord, p game.Player) error {
		last, player, n = c, p, i
		if i == inspectMove {
			return errStop
		}
		return nil
	}
	if err := katachi.Replay(g, rec, stop); err != nil && errors.Cause(err) != errStop {
		return err
	}
	if n == 0 {
		return errors.Errorf("%v has no stones played", args[0])
	}
	if inspectMove > n {
		return errors.Errorf("%v has only %d stones played", args[0], n)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%v\n", g.Board())
	fmt.Fprintf(out, "Stone %d: %v at %v (captures: black %d, white %d)\n\n", n, player, last,
		g.Captures(game.BlackP), g.Captures(game.WhiteP))
	w := pattern.Extract(g.Board(), last)
	fmt.Fprintf(out, "Window:\n%s\n\nCanonical:\n%s\n", w, katachi.ShapeAt(g.Board(), last, player).Window())
	return nil
}
