package search

import (
	"fmt"

	"github.com/herohde/gomoku/pkg/board"
)

// Bound classifies how a recorded value relates to the true minimax value
// of the node it was computed at (spec §4.5).
type Bound uint8

const (
	Exact Bound = iota
	Alpha
	Beta
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	default:
		return fmt.Sprintf("bound(%d)", uint8(b))
	}
}

// ValueTableSizeLog2 and PVTableSizeLog2 are the default table capacities
// (as log2 of entry count), per spec §4.5: 2^22 value entries, 2^20 PV
// entries.
const (
	ValueTableSizeLog2 = 22
	PVTableSizeLog2    = 20
)

// valueEntry is a depth-bounded cutoff cache entry.
type valueEntry struct {
	key   uint64
	depth int
	bound Bound
	value int
	used  bool
}

// ValueTable is a fixed-capacity, open-addressed (by zkey mod capacity)
// cache of (depth, bound, value) results, with an always-overwrite
// replacement policy (spec §4.5).
type ValueTable struct {
	entries []valueEntry
	mask    uint64
}

// NewValueTable allocates a ValueTable with 2^sizeLog2 entries.
func NewValueTable(sizeLog2 uint) *ValueTable {
	n := uint64(1) << sizeLog2
	return &ValueTable{entries: make([]valueEntry, n), mask: n - 1}
}

// Probe returns the recorded value if it is usable as a cutoff at the given
// depth and window, per spec §4.5: an Exact entry is always usable; an
// Alpha (upper-bound) entry is usable if its value is already ≤ alpha; a
// Beta (lower-bound) entry is usable if its value is already ≥ beta.
func (vt *ValueTable) Probe(key uint64, depth, alpha, beta int) (int, bool) {
	e := &vt.entries[key&vt.mask]
	if !e.used || e.key != key || e.depth < depth {
		return 0, false
	}
	switch e.bound {
	case Exact:
		return e.value, true
	case Alpha:
		if e.value <= alpha {
			return e.value, true
		}
	case Beta:
		if e.value >= beta {
			return e.value, true
		}
	}
	return 0, false
}

// Record unconditionally overwrites the slot for key.
func (vt *ValueTable) Record(key uint64, depth int, bound Bound, value int) {
	vt.entries[key&vt.mask] = valueEntry{key: key, depth: depth, bound: bound, value: value, used: true}
}

// pvEntry is a best-move-for-ordering cache entry.
type pvEntry struct {
	key  uint64
	best board.Pos
	used bool
}

// PVTable is a fixed-capacity cache mapping position key to best move, used
// only for move ordering, never for value cutoffs (spec §4.5).
type PVTable struct {
	entries []pvEntry
	mask    uint64
}

// NewPVTable allocates a PVTable with 2^sizeLog2 entries.
func NewPVTable(sizeLog2 uint) *PVTable {
	n := uint64(1) << sizeLog2
	return &PVTable{entries: make([]pvEntry, n), mask: n - 1}
}

// Probe returns the cached best move for key, if any.
func (pt *PVTable) Probe(key uint64) (board.Pos, bool) {
	e := &pt.entries[key&pt.mask]
	if !e.used || e.key != key {
		return board.Pos{}, false
	}
	return e.best, true
}

// Record unconditionally overwrites the slot for key.
func (pt *PVTable) Record(key uint64, best board.Pos) {
	pt.entries[key&pt.mask] = pvEntry{key: key, best: best, used: true}
}
