package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/eval"
	"github.com/herohde/gomoku/pkg/pattern"
	"github.com/herohde/gomoku/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, size int) (*board.Board, *pattern.Tables) {
	t.Helper()
	tables := pattern.New()
	zt := board.NewZobristTable(1)
	b, err := board.NewBoard(tables, zt, size)
	require.NoError(t, err)
	return b, tables
}

func TestSearchOpeningIsCenter(t *testing.T) {
	b, tables := newTestBoard(t, 15)
	s := search.NewSearcher(tables, 1)

	r := s.Search(context.Background(), b, search.DefaultOptions())
	assert.Equal(t, b.Center(), r.Pos)
}

func TestSearchMateInOne(t *testing.T) {
	b, tables := newTestBoard(t, 15)
	s := search.NewSearcher(tables, 1)

	blacks := []board.Pos{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 7, Y: 9}, {X: 7, Y: 10}}
	whites := []board.Pos{{X: 4, Y: 4}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 12, Y: 12}}
	for i, p := range blacks {
		require.NoError(t, b.MakeMove(p))
		if i < len(whites) {
			require.NoError(t, b.MakeMove(whites[i]))
		}
	}

	r := s.Search(context.Background(), b, search.DefaultOptions())
	assert.True(t, r.Pos == (board.Pos{X: 7, Y: 6}) || r.Pos == (board.Pos{X: 7, Y: 11}))
	assert.Equal(t, eval.Win, r.Value)
}

func TestSearchAvoidsMateInOne(t *testing.T) {
	b, tables := newTestBoard(t, 15)
	s := search.NewSearcher(tables, 1)

	// White threatens five at (7,6) or (7,11); Black to move must block.
	whites := []board.Pos{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 7, Y: 9}, {X: 7, Y: 10}}
	blacks := []board.Pos{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4}, {X: 12, Y: 12}}
	require.NoError(t, b.MakeMove(blacks[0]))
	for i, p := range whites {
		require.NoError(t, b.MakeMove(p))
		if i+1 < len(blacks) {
			require.NoError(t, b.MakeMove(blacks[i+1]))
		}
	}

	r := s.Search(context.Background(), b, search.DefaultOptions())
	assert.True(t, r.Pos == (board.Pos{X: 7, Y: 6}) || r.Pos == (board.Pos{X: 7, Y: 11}))
}

func TestSearchDeterministic(t *testing.T) {
	b1, tables := newTestBoard(t, 15)
	require.NoError(t, b1.MakeMove(b1.Center()))
	require.NoError(t, b1.MakeMove(board.Pos{X: 4, Y: 4}))
	require.NoError(t, b1.MakeMove(board.Pos{X: 9, Y: 9}))

	opt := search.Options{TimeoutTurn: 200 * time.Millisecond}

	s1 := search.NewSearcher(tables, 42)
	r1 := s1.Search(context.Background(), b1, opt)

	b2, _ := newTestBoard(t, 15)
	require.NoError(t, b2.MakeMove(b2.Center()))
	require.NoError(t, b2.MakeMove(board.Pos{X: 4, Y: 4}))
	require.NoError(t, b2.MakeMove(board.Pos{X: 9, Y: 9}))

	s2 := search.NewSearcher(tables, 42)
	r2 := s2.Search(context.Background(), b2, opt)

	assert.Equal(t, r1, r2)
}

func TestSearchRespectsTimeBudget(t *testing.T) {
	b, tables := newTestBoard(t, 15)
	require.NoError(t, b.MakeMove(b.Center()))
	require.NoError(t, b.MakeMove(board.Pos{X: 4, Y: 4}))
	require.NoError(t, b.MakeMove(board.Pos{X: 9, Y: 9}))

	s := search.NewSearcher(tables, 1)
	opt := search.Options{TimeoutTurn: 100 * time.Millisecond}

	start := time.Now()
	s.Search(context.Background(), b, opt)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second)
}
