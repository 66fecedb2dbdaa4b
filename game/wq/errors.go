package 围碁

import (
	"fmt"

	"github.com/gorgonia/katachi/game"
	"github.com/pkg/errors"
)

type moveError game.PlayerMove

func (err moveError) Error() string {
	return fmt.Sprintf("Unable to make %v", game.PlayerMove(err))
}

type coordError struct {
	p game.Player
	c game.Coord
}

func (err coordError) Error() string {
	return fmt.Sprintf("Unable to make %v@%v", err.p, err.c)
}

// IsIllegal reports whether err was caused by a move that could not be played.
func IsIllegal(err error) bool {
	switch errors.Cause(err).(type) {
	case moveError, coordError:
		return true
	}
	return false
}
