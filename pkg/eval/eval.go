// Package eval implements the static position evaluator (spec §4.4): a
// weighted sum of tactical shape counts read from the board's pattern
// cache, from the side-to-move's perspective.
package eval

import (
	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/pattern"
)

// Win and Loss are the terminal sentinels. Evaluate's weighted-sum branch is
// clamped to lie strictly between them, so only the terminal branches ever
// return Win or Loss.
const (
	Win  = 10000
	Loss = -10000
)

// weight scales each pattern code's contribution to the weighted-sum branch
// of Evaluate, indexed by pattern.Code. Matches spec §4.4's W =
// [0, 2, 12, 18, 96, 144, 800, 1200] laid out against
// {None, Block2, Flex2, Block3, Flex3, Block4, Flex4, Win}.
var weight = [pattern.NumCodes]int{0, 2, 12, 18, 96, 144, 800, 1200}

// Evaluate returns the static score of b from b.Who()'s perspective.
func Evaluate(b *board.Board, t *pattern.Tables) int {
	var who, opp [pattern.NumCodes]int

	size := b.Size()
	for y := board.Border; y < size+board.Border; y++ {
		for x := board.Border; x < size+board.Border; x++ {
			p := board.Pos{X: x, Y: y}
			if !b.IsEmpty(p) {
				continue
			}
			accumulate(&who, b.Pattern(p, b.Who()), true)
			accumulate(&opp, b.Pattern(p, b.Opp()), false)
		}
	}

	switch {
	case who[pattern.Win] >= 1:
		return Win
	case opp[pattern.Win] >= 2:
		return Loss
	case opp[pattern.Win] == 0 && who[pattern.Flex4] >= 1:
		return Win
	}

	v := 6*score(who) - 5*score(opp)
	if v >= Win {
		v = Win - 1
	} else if v <= Loss {
		v = Loss + 1
	}
	return v
}

// accumulate adds the four directional pattern codes at a cell into count.
// When normalize is set, every pair of coincident Block4s at this cell (a
// double-four, tactically equivalent to an unstoppable open four) folds
// into one Flex4 (spec §4.4). The ground-truth evaluator applies this only
// to the side to move's own counts, not the opponent's, so normalize must
// be false for the opponent accumulation.
func accumulate(count *[pattern.NumCodes]int, codes [pattern.NumDirections]pattern.Code, normalize bool) {
	var local [pattern.NumCodes]int
	for _, c := range codes {
		local[c]++
	}
	if normalize {
		for local[pattern.Block4] >= 2 {
			local[pattern.Block4] -= 2
			local[pattern.Flex4]++
		}
	}
	for c := pattern.Block2; c <= pattern.Win; c++ {
		count[c] += local[c]
	}
}

// score sums count[t]*weight[t] over every shape code from Block2 to Win.
func score(count [pattern.NumCodes]int) int {
	var s int
	for c := pattern.Block2; c <= pattern.Win; c++ {
		s += count[c] * weight[c]
	}
	return s
}
