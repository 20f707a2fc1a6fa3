package search

import (
	"context"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/eval"
	"github.com/herohde/gomoku/pkg/movegen"
)

// rootSearch runs one iterative-deepening iteration at the root: it
// generates the root move list, rotates the previous iteration's best move
// to the front for move-ordering aspiration, and PVS-searches each move not
// already proven losing (spec §4.6 "Root search"). Returns false only if
// the position has no candidate moves at all (should only occur on a full
// board; the caller is then responsible, per spec §7).
func (s *Searcher) rootSearch(ctx context.Context, b *board.Board, depth int, prevBest board.Pos) (Result, bool) {
	moves := movegen.Generate(b, s.Tables)
	if len(moves) == 0 {
		return Result{}, false
	}
	const alpha0, beta0 = -(eval.Win + 1), eval.Win

	if len(moves) == 1 {
		// A single forced move. The spec's pseudocode reports this with a
		// nominal value of 0, but that would misreport a forced win or
		// block (spec §8 property 8 requires a mate-in-one to report
		// exactly +10000 even when the winning move is also the only move
		// cut_move_list lets through) -- so the true value is still
		// searched instead of assumed.
		p := moves[0]
		if b.MakeMove(p) == nil {
			v := -s.alphaBeta(ctx, b, depth-1, -beta0, -alpha0)
			_ = b.UnmakeMove()
			s.stopped = true
			return Result{Pos: p, Value: v}, true
		}
	}

	for i, p := range moves {
		if p == prevBest {
			moves[0], moves[i] = moves[i], moves[0]
			break
		}
	}

	alpha := alpha0

	best := Result{Pos: moves[0], Value: alpha0}
	for i, p := range moves {
		if s.isLose[p] {
			continue
		}
		if b.MakeMove(p) != nil {
			continue
		}

		var v int
		if i == 0 {
			v = -s.alphaBeta(ctx, b, depth-1, -beta0, -alpha)
		} else {
			v = -s.alphaBeta(ctx, b, depth-1, -alpha-1, -alpha)
			if alpha < v && v < beta0 {
				v = -s.alphaBeta(ctx, b, depth-1, -beta0, -alpha)
			}
		}
		_ = b.UnmakeMove()

		if s.stopped {
			break
		}

		if v == eval.Loss {
			s.isLose[p] = true
		}
		if v > best.Value {
			best = Result{Pos: p, Value: v}
		}
		if v > alpha {
			alpha = v
		}
		if v == eval.Win {
			s.stopped = true
			return best, true
		}
	}
	return best, true
}

// alphaBeta is the interior PVS node (spec §4.6 "Interior alpha_beta").
// Returns the minimax value of b from b.Who()'s perspective, searching to
// the given depth within [alpha, beta].
func (s *Searcher) alphaBeta(ctx context.Context, b *board.Board, depth, alpha, beta int) int {
	s.checkDeadline(ctx)

	if b.CheckWin() {
		return eval.Loss
	}
	if depth <= 0 {
		return eval.Evaluate(b, s.Tables)
	}

	key := b.ZKey()
	if v, ok := s.Value.Probe(key, depth, alpha, beta); ok {
		return v
	}

	moves := s.orderedMoves(b, key)
	if len(moves) == 0 {
		return eval.Evaluate(b, s.Tables)
	}

	best := Result{Value: -(eval.Win + 1)}
	flag := Alpha
	for i, p := range moves {
		if b.MakeMove(p) != nil {
			continue
		}

		var v int
		if i > 0 && alpha+1 < beta {
			v = -s.alphaBeta(ctx, b, depth-1, -alpha-1, -alpha)
			if alpha < v && v < beta {
				v = -s.alphaBeta(ctx, b, depth-1, -beta, -alpha)
			}
		} else {
			v = -s.alphaBeta(ctx, b, depth-1, -beta, -alpha)
		}
		_ = b.UnmakeMove()

		if s.stopped {
			return best.Value
		}

		if v >= beta {
			s.Value.Record(key, depth, Beta, v)
			s.PV.Record(key, p)
			return v
		}
		if v > best.Value {
			best = Result{Pos: p, Value: v}
			if v > alpha {
				alpha = v
				flag = Exact
			}
		}
	}

	s.Value.Record(key, depth, flag, best.Value)
	s.PV.Record(key, best.Pos)
	return best.Value
}

// orderedMoves implements the two-phase staged generation (spec §4.6 step
// 5, §9 "Staged move generation"): the cached PV best move for key first,
// if any, followed by the generator's own ordering with the PV hint
// deduplicated out.
func (s *Searcher) orderedMoves(b *board.Board, key uint64) []board.Pos {
	generated := movegen.Generate(b, s.Tables)

	hint, ok := s.PV.Probe(key)
	if !ok {
		return generated
	}

	moves := make([]board.Pos, 0, len(generated)+1)
	moves = append(moves, hint)
	for _, p := range generated {
		if p != hint {
			moves = append(moves, p)
		}
	}
	return moves
}
