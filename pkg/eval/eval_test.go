package eval_test

import (
	"testing"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/eval"
	"github.com/herohde/gomoku/pkg/pattern"
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

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	b, tables := newTestBoard(t, 15)
	assert.Equal(t, 0, eval.Evaluate(b, tables))
}

func TestEvaluateWinForSideToMove(t *testing.T) {
	b, tables := newTestBoard(t, 15)

	blacks := []board.Pos{{X: 4, Y: 7}, {X: 5, Y: 7}, {X: 6, Y: 7}, {X: 7, Y: 7}, {X: 8, Y: 7}}
	whites := []board.Pos{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4}, {X: 7, Y: 4}}

	for i := 0; i < len(blacks)-1; i++ {
		require.NoError(t, b.MakeMove(blacks[i]))
		require.NoError(t, b.MakeMove(whites[i]))
	}
	require.NoError(t, b.MakeMove(blacks[len(blacks)-1]))

	// White to move can complete five at (8,4) next to its four at y=4:
	// scored as a win from White's (the side to move's) perspective.
	assert.Equal(t, eval.Win, eval.Evaluate(b, tables))
}

func TestEvaluateOpenTwoIsPositiveForItsOwner(t *testing.T) {
	b, tables := newTestBoard(t, 15)

	require.NoError(t, b.MakeMove(board.Pos{X: 6, Y: 7})) // black
	require.NoError(t, b.MakeMove(board.Pos{X: 4, Y: 4})) // white
	require.NoError(t, b.MakeMove(board.Pos{X: 7, Y: 7})) // black
	require.NoError(t, b.MakeMove(board.Pos{X: 4, Y: 5})) // white: side to move is now black

	assert.Greater(t, eval.Evaluate(b, tables), 0)
}
