package 围碁

import (
	"math/rand"
	"sync"

	"github.com/gorgonia/katachi/game"
	"github.com/pkg/errors"
)

// zobristSeed is fixed so that hashes of boards of the same size are comparable across games.
const zobristSeed = 0x5a0b1157

var (
	tablesMu sync.Mutex
	tables   = make(map[int][]uint64)
)

// zobrist is a data structure for calculating Zobrist hashes.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// The table is a (BOARDSIZE * BOARDSIZE, 2) matrix stored flat: the entry for a stone of
// colour c at single s lives at 2*s + (c-1). Tables are read only once built, and are shared by
// every board of the same size.
type zobrist struct {
	table []uint64
	hash  uint64
}

func makeZobrist(size int) zobrist {
	tablesMu.Lock()
	defer tablesMu.Unlock()
	table, ok := tables[size]
	if !ok {
		r := rand.New(rand.NewSource(zobristSeed + int64(size)))
		table = make([]uint64, size*size*2)
		for i := range table {
			table[i] = r.Uint64()
		}
		tables[size] = table
	}
	return zobrist{table: table}
}

// update calculates the hash and returns it. As per the namesake, the calculated hash is updated as a side effect.
func (z *zobrist) update(m game.PlayerMove) (uint64, error) {
	switch game.Colour(m.Player) {
	case game.Black:
		z.hash ^= z.table[2*int(m.Single)]
		return z.hash, nil
	case game.White:
		z.hash ^= z.table[2*int(m.Single)+1]
		return z.hash, nil
	default:
		return 0, errors.Errorf("Cannot update hash for %v", m)
	}
}
