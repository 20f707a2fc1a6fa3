// Package board implements the incremental Gomoku position: the bordered
// cell grid, per-cell candidate and pattern caches, and the Zobrist-hashed
// move history that make_move/unmake_move maintain exactly (spec §3, §4.2).
package board

import (
	"fmt"

	"github.com/herohde/gomoku/pkg/pattern"
)

const (
	// Border is the sentinel width surrounding the playing area on every
	// side, wide enough that every pattern/line-key lookup (±4) never needs
	// a bounds check.
	Border = 4

	// MinSize and MaxSize bound the configurable playing-area dimension S.
	MinSize = 6
	MaxSize = 20

	// MaxDim is the largest physical grid dimension (S+2·Border) over the
	// supported size range, used to size the Zobrist table once up front.
	MaxDim = MaxSize + 2*Border
)

// cell is the per-square state maintained incrementally by Board: its
// occupancy, a 5×5-neighborhood stone-density counter used as a cheap
// "worth considering" mask, and the cached tactical shape of each of the 4
// directional lines through it, for both roles.
type cell struct {
	state   pattern.State
	cand    int
	pattern [pattern.NumRoles][pattern.NumDirections]pattern.Code
}

// Board is the incremental Gomoku position: cells, side to move, Zobrist
// key and move history. Not thread-safe; a single Board is used by at most
// one in-flight search at a time (spec §5).
type Board struct {
	tables *pattern.Tables
	zt     *ZobristTable

	size int // S: playing-area dimension
	dim  int // S + 2*Border: physical grid dimension

	cells []cell

	who, opp pattern.State
	step     int
	history  []Pos
	zkey     uint64
}

// NewBoard constructs a Board sharing the given immutable pattern and
// Zobrist tables (built once at engine creation, see pkg/engine), and
// installs the given board size.
func NewBoard(tables *pattern.Tables, zt *ZobristTable, size int) (*Board, error) {
	b := &Board{tables: tables, zt: zt}
	if err := b.SetSize(size); err != nil {
		return nil, err
	}
	return b, nil
}

// SetSize installs a fresh S×S playing area bordered by Outside sentinels,
// and resets the board to the empty starting position. Rejects sizes
// outside [MinSize, MaxSize] (spec §7 "Size out of range").
func (b *Board) SetSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("board: size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}

	b.size = size
	b.dim = size + 2*Border
	b.cells = make([]cell, b.dim*b.dim)
	for y := 0; y < b.dim; y++ {
		for x := 0; x < b.dim; x++ {
			if x < Border || x >= size+Border || y < Border || y >= size+Border {
				b.cells[y*b.dim+x].state = pattern.Outside
			} else {
				b.cells[y*b.dim+x].state = pattern.Empty
			}
		}
	}
	b.who = pattern.Black
	b.opp = pattern.White
	b.step = 0
	b.history = b.history[:0]
	b.zkey = 0
	return nil
}

// Size returns the playing-area dimension S.
func (b *Board) Size() int {
	return b.size
}

// Dim returns the physical (bordered) grid dimension S+2·Border.
func (b *Board) Dim() int {
	return b.dim
}

// Who returns the side to move.
func (b *Board) Who() pattern.State {
	return b.who
}

// Opp returns the side to move's opponent.
func (b *Board) Opp() pattern.State {
	return b.opp
}

// Step returns the number of stones placed so far.
func (b *Board) Step() int {
	return b.step
}

// ZKey returns the current Zobrist key.
func (b *Board) ZKey() uint64 {
	return b.zkey
}

// History returns the move at the given step index, in placement order.
func (b *Board) History(i int) Pos {
	return b.history[i]
}

// Center returns the center cell of the playing area.
func (b *Board) Center() Pos {
	return Pos{X: Border + b.size/2, Y: Border + b.size/2}
}

// InBounds reports whether p lies within the S×S playing area.
func (b *Board) InBounds(p Pos) bool {
	return p.X >= Border && p.X < b.size+Border && p.Y >= Border && p.Y < b.size+Border
}

// State returns the occupancy at p.
func (b *Board) State(p Pos) pattern.State {
	return b.cells[p.Y*b.dim+p.X].state
}

// IsEmpty reports whether p is in-bounds and unoccupied.
func (b *Board) IsEmpty(p Pos) bool {
	return b.InBounds(p) && b.cells[p.Y*b.dim+p.X].state == pattern.Empty
}

// Cand returns the candidate counter at p: the number of stones within the
// 5×5 neighborhood of p.
func (b *Board) Cand(p Pos) int {
	return b.cells[p.Y*b.dim+p.X].cand
}

// Pattern returns the cached tactical shape of the 4 directional lines
// through p, from role's hypothetical viewpoint.
func (b *Board) Pattern(p Pos, role pattern.State) [pattern.NumDirections]pattern.Code {
	return b.cells[p.Y*b.dim+p.X].pattern[role]
}

// MakeMove places a stone of the side to move at p. Requires p in-bounds
// and empty; an illegal move is rejected rather than left as undefined
// behavior (spec §7).
func (b *Board) MakeMove(p Pos) error {
	if !b.InBounds(p) {
		return fmt.Errorf("board: move %v out of bounds", p)
	}
	idx := p.Y*b.dim + p.X
	if b.cells[idx].state != pattern.Empty {
		return fmt.Errorf("board: cell %v is not empty", p)
	}

	b.cells[idx].state = b.who
	b.zkey ^= b.zt.Key(b.who, p)
	b.who, b.opp = b.opp, b.who
	b.history = append(b.history, p)
	b.step++

	b.refreshCand(p, 1)
	b.refreshPatterns(p)

	return nil
}

// UnmakeMove removes the last-placed stone, restoring the board exactly to
// its state before the corresponding MakeMove. Requires step > 0.
func (b *Board) UnmakeMove() error {
	if b.step == 0 {
		return fmt.Errorf("board: no move to unmake")
	}

	p := b.history[b.step-1]
	idx := p.Y*b.dim + p.X

	b.refreshCand(p, -1)
	b.cells[idx].state = pattern.Empty
	b.who, b.opp = b.opp, b.who
	b.zkey ^= b.zt.Key(b.who, p)
	b.history = b.history[:b.step-1]
	b.step--

	b.refreshPatterns(p)

	return nil
}

// Restart unmakes every move, returning the board to step 0 with the same
// size and tables. It does not touch transposition tables (owned by
// pkg/search/pkg/engine) -- see engine.Engine.Restart.
func (b *Board) Restart() {
	for b.step > 0 {
		_ = b.UnmakeMove()
	}
}

// CheckWin reports whether the side that just moved has formed five in a
// row. Because MakeMove swaps who/opp before returning, the side that just
// moved is the current Opp (spec §4.2, §9 "check_win convention").
func (b *Board) CheckWin() bool {
	if b.step == 0 {
		return false
	}
	p := b.history[b.step-1]
	c := &b.cells[p.Y*b.dim+p.X]
	for d := 0; d < pattern.NumDirections; d++ {
		if c.pattern[b.opp][d] == pattern.Win {
			return true
		}
	}
	return false
}

func (b *Board) String() string {
	var s []byte
	for y := Border; y < b.size+Border; y++ {
		for x := Border; x < b.size+Border; x++ {
			switch b.cells[y*b.dim+x].state {
			case pattern.Black:
				s = append(s, 'X')
			case pattern.White:
				s = append(s, 'O')
			default:
				s = append(s, '.')
			}
		}
		s = append(s, '\n')
	}
	return fmt.Sprintf("board{size=%d, step=%d, who=%v, zkey=%#x}\n%s", b.size, b.step, b.who, b.zkey, s)
}
