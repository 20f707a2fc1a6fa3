package search_test

import (
	"testing"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestValueTableProbeRecord(t *testing.T) {
	vt := search.NewValueTable(4)

	_, ok := vt.Probe(7, 3, -100, 100)
	assert.False(t, ok)

	vt.Record(7, 3, search.Exact, 42)
	v, ok := vt.Probe(7, 3, -100, 100)
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	// Shallower stored depth is not usable for a deeper probe.
	_, ok = vt.Probe(7, 4, -100, 100)
	assert.False(t, ok)

	vt.Record(7, 5, search.Alpha, 10)
	_, ok = vt.Probe(7, 3, 5, 100) // 10 > alpha(5): not usable
	assert.False(t, ok)
	v, ok = vt.Probe(7, 3, 20, 100) // 10 <= alpha(20): usable
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	vt.Record(7, 5, search.Beta, 90)
	_, ok = vt.Probe(7, 3, -100, 100) // 90 < beta(100): not usable
	assert.False(t, ok)
	v, ok = vt.Probe(7, 3, -100, 50) // 90 >= beta(50): usable
	assert.True(t, ok)
	assert.Equal(t, 90, v)
}

func TestValueTableAlwaysOverwrites(t *testing.T) {
	vt := search.NewValueTable(4)
	vt.Record(1, 10, search.Exact, 5)
	vt.Record(1, 2, search.Exact, 99) // shallower depth, same key slot: still overwritten

	v, ok := vt.Probe(1, 2, -100, 100)
	assert.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestPVTableProbeRecord(t *testing.T) {
	pt := search.NewPVTable(4)

	_, ok := pt.Probe(3)
	assert.False(t, ok)

	p := board.Pos{X: 7, Y: 7}
	pt.Record(3, p)

	got, ok := pt.Probe(3)
	assert.True(t, ok)
	assert.Equal(t, p, got)
}
