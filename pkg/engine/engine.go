// Package engine is the caller-facing wrapper binding the board, move
// generator, evaluator and searcher together, and carrying the per-turn
// timing configuration (spec §6). It is the analogue of the external
// operations spec.md §4 groups under "Board" and "Searcher" into a single
// convenient surface for UI/protocol adapters.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/pattern"
	"github.com/herohde/gomoku/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

var version = build.NewVersion(0, 1, 0)

// DefaultSize is the board size installed by New.
const DefaultSize = 15

// Options are the per-turn timing options consumed by the searcher
// (spec §6): timeout_turn, timeout_match, time_left.
type Options = search.Options

// Engine encapsulates one Gomoku game-playing context: a board, its
// Zobrist/pattern tables, and a searcher with its own transposition tables.
// Not safe for concurrent use (spec §5 "each engine owns its own board and
// transposition tables").
type Engine struct {
	name, author string

	tables *pattern.Tables
	zt     *board.ZobristTable
	seed   int64

	b    *board.Board
	s    *search.Searcher
	opts Options

	searching atomic.Bool // readable without the lock, mirrors morlock's driver "active" flag

	mu sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero (spec §9 "Random control" -- tests may fix it
// for reproducibility).
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithOptions sets the default timing options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New constructs an engine, building its pattern and Zobrist tables once,
// and installs the default board size (spec §3 "Lifecycle").
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		opts:   search.DefaultOptions(),
	}
	for _, fn := range opts {
		fn(e)
	}

	e.tables = pattern.New()
	e.zt = board.NewZobristTable(e.seed)
	e.s = search.NewSearcher(e.tables, e.seed)

	if err := e.resetLocked(DefaultSize); err != nil {
		logw.Exitf(ctx, "Failed to initialize board: %v", err)
	}

	logw.Infof(ctx, "Initialized engine: %v, size=%v", e.Name(), DefaultSize)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Board returns the live board. Callers must not mutate it outside the
// engine's own operations.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b
}

// Size returns the current playing-area dimension.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Size()
}

// SetSize installs a new empty board of the given size and clears the
// transposition tables. Rejects sizes outside [board.MinSize,
// board.MaxSize] (spec §4.2 "set_size", §7 "Size out of range").
func (e *Engine) SetSize(ctx context.Context, size int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "SetSize %v", size)
	return e.resetLocked(size)
}

func (e *Engine) resetLocked(size int) error {
	b, err := board.NewBoard(e.tables, e.zt, size)
	if err != nil {
		return err
	}
	e.b = b
	if e.s != nil {
		e.s.Reset()
	}
	return nil
}

// MakeMove places a stone for the side to move at p (already in
// engine-internal, border-offset coordinates, spec §6). Rejects illegal
// moves rather than leaving undefined behavior (spec §7).
func (e *Engine) MakeMove(ctx context.Context, p board.Pos) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.b.MakeMove(p); err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}
	logw.Infof(ctx, "MakeMove %v: step=%v", p, e.b.Step())
	return nil
}

// UnmakeMove removes the last-placed stone.
func (e *Engine) UnmakeMove(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.b.UnmakeMove(); err != nil {
		return err
	}
	logw.Infof(ctx, "UnmakeMove: step=%v", e.b.Step())
	return nil
}

// Restart returns to an empty board of the current size and clears the
// transposition tables (spec §4.2 "restart").
func (e *Engine) Restart(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Restart")
	_ = e.resetLocked(e.b.Size())
}

// CheckWin reports whether the side that just moved has formed five in a
// row (spec §4.2 "check_win").
func (e *Engine) CheckWin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.CheckWin()
}

// SetTimeoutTurn replaces the whole timing configuration (timeout_turn,
// timeout_match and time_left) consumed by GetBestMove (spec §6).
func (e *Engine) SetTimeoutTurn(v search.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts = v
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

// GetBestMove runs the searcher under the configured timing options and
// returns the chosen move, in engine-internal coordinates, and its reported
// value (spec §4.6, §6 "get_best_move"). Searching reports true for the
// call's duration, readable by another goroutine without taking the lock
// (e.g. a protocol driver answering a status query while the search runs).
func (e *Engine) GetBestMove(ctx context.Context) (board.Pos, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searching.Store(true)
	defer e.searching.Store(false)

	logw.Infof(ctx, "GetBestMove: step=%v, opts=%+v", e.b.Step(), e.opts)

	r := e.s.Search(ctx, e.b, e.opts)

	logw.Infof(ctx, "GetBestMove: %v (%v)", r.Pos, r.Value)
	return r.Pos, r.Value
}

// Searching reports whether a GetBestMove call is currently in flight.
func (e *Engine) Searching() bool {
	return e.searching.Load()
}
