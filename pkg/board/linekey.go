package board

import "github.com/herohde/gomoku/pkg/pattern"

// direction is one of the 4 independent lines through a cell: horizontal,
// vertical, and the two diagonals. Pattern codes are tracked per direction
// per role on every cell (spec §3 "Cell").
type direction struct {
	dx, dy int
}

var directions = [pattern.NumDirections]direction{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// lineKey packs the 8 neighbors of (x,y) along direction d (4 on each side,
// excluding the center) into a 16-bit value: the 4 neighbors at offsets
// -4,-3,-2,-1 occupy the low byte (in that order, 2 bits each) and the 4
// neighbors at offsets +1,+2,+3,+4 occupy the high byte, matching the
// pattern table's key encoding (pkg/pattern.Tables.Pattern).
func (b *Board) lineKey(x, y int, d direction) uint16 {
	var key uint16
	for i := 0; i < 4; i++ {
		k := 4 - i
		key |= uint16(b.stateAt(x-k*d.dx, y-k*d.dy)) << uint(2*i)
	}
	for i := 0; i < 4; i++ {
		k := i + 1
		key |= uint16(b.stateAt(x+k*d.dx, y+k*d.dy)) << uint(8+2*i)
	}
	return key
}

// stateAt returns the state at (x,y), or Outside if out of the physical
// (S+8)×(S+8) grid entirely (should not happen for any in-bounds cell, since
// the border is 4 wide and every lineKey lookup reaches at most 4 away, but
// guarded for safety at the grid edges of the allocation itself).
func (b *Board) stateAt(x, y int) pattern.State {
	if x < 0 || x >= b.dim || y < 0 || y >= b.dim {
		return pattern.Outside
	}
	return b.cells[y*b.dim+x].state
}

// refreshPatterns recomputes the pattern cache of every in-bounds cell within
// 4 steps of p along each of the 4 directions, for both roles (spec §4.2
// make_move/unmake_move step (b)).
func (b *Board) refreshPatterns(p Pos) {
	for di, d := range directions {
		for k := -4; k <= 4; k++ {
			x, y := p.X+k*d.dx, p.Y+k*d.dy
			if !b.inBounds(x, y) {
				continue
			}
			c := &b.cells[y*b.dim+x]
			key := b.lineKey(x, y, d)
			c.pattern[pattern.White][di] = b.tables.Pattern(key, pattern.White)
			c.pattern[pattern.Black][di] = b.tables.Pattern(key, pattern.Black)
		}
	}
}

// refreshCand adjusts the candidate counters of every in-bounds cell in the
// 5×5 box centered at p by delta (+1 on make_move, -1 on unmake_move).
func (b *Board) refreshCand(p Pos, delta int) {
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			x, y := p.X+dx, p.Y+dy
			if !b.inBounds(x, y) {
				continue
			}
			b.cells[y*b.dim+x].cand += delta
		}
	}
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.dim && y >= 0 && y < b.dim
}
