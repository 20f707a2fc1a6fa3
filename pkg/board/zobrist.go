package board

import (
	"math/rand"

	"github.com/herohde/gomoku/pkg/pattern"
)

// ZobristTable is a pseudo-randomized table for computing an incremental
// position hash, one pseudo-random 64-bit value per (role, cell). Built once
// at engine creation, sized for the largest supported board (MaxSize), and
// never mutated afterwards -- shared immutably across set_size calls and,
// if desired, across multiple boards.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristTable struct {
	key [pattern.NumRoles][MaxDim][MaxDim]uint64
}

// NewZobristTable builds a table from the given seed. Tests may fix the seed
// for reproducibility (spec §9 "Random control").
func NewZobristTable(seed int64) *ZobristTable {
	t := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))
	for role := pattern.State(0); role < pattern.NumRoles; role++ {
		for x := 0; x < MaxDim; x++ {
			for y := 0; y < MaxDim; y++ {
				t.key[role][x][y] = r.Uint64()
			}
		}
	}
	return t
}

// Key returns the Zobrist contribution of placing role at p.
func (t *ZobristTable) Key(role pattern.State, p Pos) uint64 {
	return t.key[role][p.X][p.Y]
}
