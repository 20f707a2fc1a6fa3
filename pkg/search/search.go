// Package search implements the iterative-deepening principal-variation
// alpha-beta searcher (spec §4.6) over the two fixed-size transposition
// tables (spec §4.5). The search is strictly sequential: a single query
// runs to completion (or is cut short by its deadline) before returning,
// cooperatively polling a stop flag rather than blocking on I/O (spec §5).
package search

import (
	"context"
	"math/rand"
	"time"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/pattern"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// MinDepth and MaxDepth bound the iterative-deepening ply ladder, stepping
// by 2 plies per iteration (spec §4.6).
const (
	MinDepth  = 4
	MaxDepth  = 20
	DepthStep = 2
)

// nodeCheckInterval is how often (in visited nodes) the deadline is polled.
const nodeCheckInterval = 1000

// Options carries the per-turn timing configuration consumed by the
// searcher (spec §6).
type Options struct {
	// TimeoutTurn is the hard per-move cap.
	TimeoutTurn time.Duration
	// TimeoutMatch is an advisory full-match cap.
	TimeoutMatch time.Duration
	// TimeLeft is the remaining match time.
	TimeLeft time.Duration
}

// DefaultOptions returns the spec-default timing configuration.
func DefaultOptions() Options {
	return Options{TimeoutTurn: 5 * time.Second}
}

// deadline computes the per-move wall-clock budget: min(timeout_turn,
// time_left/7) (spec §4.6 "Time control").
func (o Options) deadline() time.Duration {
	d := o.TimeoutTurn
	if o.TimeLeft > 0 {
		if soft := o.TimeLeft / 7; d == 0 || soft < d {
			d = soft
		}
	}
	if d <= 0 {
		d = 5 * time.Second
	}
	return d
}

// Result is a searched move and its reported value, from the side to
// move's perspective at the time of the search.
type Result struct {
	Pos   board.Pos
	Value int
}

// Searcher runs searches against one board using shared, immutable pattern
// tables and a pair of per-searcher transposition tables. Not safe for
// concurrent use by multiple goroutines (spec §5).
type Searcher struct {
	Tables *pattern.Tables
	Value  *ValueTable
	PV     *PVTable
	Rand   *rand.Rand // second/third move randomization (spec §9)

	nodes    uint64
	deadline time.Time
	stopped  bool
	isLose   map[board.Pos]bool
}

// NewSearcher constructs a Searcher with the spec-default transposition
// table sizes.
func NewSearcher(tables *pattern.Tables, seed int64) *Searcher {
	return &Searcher{
		Tables: tables,
		Value:  NewValueTable(ValueTableSizeLog2),
		PV:     NewPVTable(PVTableSizeLog2),
		Rand:   rand.New(rand.NewSource(seed)),
	}
}

// Reset clears both transposition tables (spec §4.2 "restart").
func (s *Searcher) Reset() {
	s.Value = NewValueTable(ValueTableSizeLog2)
	s.PV = NewPVTable(PVTableSizeLog2)
}

// Search selects the best move for b.Who() under opt's time budget. It
// never fails to produce a move for a non-terminal, non-full board: under
// deadline pressure it returns the result of the cut-short root iteration,
// which starts from the previous iteration's best move and keeps it unless
// a root move it fully searched scores higher. If no candidate move exists,
// the returned Pos is board.NoPos.
func (s *Searcher) Search(ctx context.Context, b *board.Board, opt Options) Result {
	if b.Step() == 0 {
		return Result{Pos: b.Center()}
	}
	if b.Step() == 1 || b.Step() == 2 {
		return Result{Pos: s.randomNearFirstMove(b)}
	}

	s.nodes = 0
	s.stopped = false
	s.isLose = map[board.Pos]bool{}

	start := time.Now()
	s.deadline = start.Add(opt.deadline())

	best := Result{Pos: board.NoPos}
	for depth := MinDepth; depth <= MaxDepth; depth += DepthStep {
		if s.stopped || contextx.IsCancelled(ctx) {
			break
		}

		iterStart := time.Now()
		r, ok := s.rootSearch(ctx, b, depth, best.Pos)
		if ok {
			best = r
		}

		logw.Debugf(ctx, "searched depth=%v best=%v value=%v nodes=%v elapsed=%v", depth, best.Pos, best.Value, s.nodes, time.Since(iterStart))

		elapsed := time.Since(start)
		if s.stopped {
			break
		}
		if depth >= 10 && elapsed >= time.Second && elapsed*12 > opt.deadline() {
			break
		}
	}
	return best
}

// randomNearFirstMove implements the second/third-move randomization: a
// uniformly random empty cell within b.Step() Chebyshev distance of the
// first move played (spec §4.6 step 2).
func (s *Searcher) randomNearFirstMove(b *board.Board) board.Pos {
	first := b.History(0)
	dist := b.Step()

	var cands []board.Pos
	for dy := -dist; dy <= dist; dy++ {
		for dx := -dist; dx <= dist; dx++ {
			p := board.Pos{X: first.X + dx, Y: first.Y + dy}
			if b.IsEmpty(p) {
				cands = append(cands, p)
			}
		}
	}
	if len(cands) == 0 {
		return board.NoPos
	}
	return cands[s.Rand.Intn(len(cands))]
}

// checkDeadline polls the wall clock every nodeCheckInterval visited nodes,
// setting the stop flag once the deadline is less than a 50ms safety margin
// away, or the context has been cancelled (spec §4.6 "Time control").
func (s *Searcher) checkDeadline(ctx context.Context) {
	s.nodes++
	if s.nodes%nodeCheckInterval != 0 {
		return
	}
	if time.Now().Add(50*time.Millisecond).After(s.deadline) || contextx.IsCancelled(ctx) {
		s.stopped = true
	}
}
