package katachi

import (
	"sync"

	wq "github.com/gorgonia/katachi/game/wq"
)

var (
	gamePoolMu sync.Mutex
	gamePool   = make(map[int]*sync.Pool)
)

func poolFor(size int) *sync.Pool {
	gamePoolMu.Lock()
	defer gamePoolMu.Unlock()
	p, ok := gamePool[size]
	if !ok {
		p = &sync.Pool{
			New: func() interface{} { return wq.New(size) },
		}
		gamePool[size] = p
	}
	return p
}

// borrowGame returns an empty game. Return it with returnGame when done.
func borrowGame(size int) *wq.Game {
	g := poolFor(size).Get().(*wq.Game)
	g.Reset()
	return g
}

func returnGame(g *wq.Game) {
	poolFor(g.Board().Size()).Put(g)
}
