// Package pattern implements the precomputed line-shape classifier and move
// priority tables that the board and move generator consult on every
// make/unmake and candidate evaluation. Built once at engine creation and
// never mutated; safe to share immutably across many boards.
package pattern

import "fmt"

// State represents the occupancy of a single board square, including the
// border sentinel. The numeric values are load-bearing: the line-key
// encoding (see board.Board) packs each of the 8 neighbors along a direction
// into exactly 2 bits, in this ordering.
type State uint8

const (
	White State = iota
	Black
	Empty
	Outside
)

// NumRoles is the number of playing colors (White, Black).
const NumRoles = 2

func (s State) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	case Empty:
		return "."
	case Outside:
		return "#"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Opponent returns the other playing color. Only meaningful for White/Black.
func (s State) Opponent() State {
	if s == White {
		return Black
	}
	return White
}

// Code is a tactical shape classification of a line through a cell, from the
// hypothetical viewpoint of a stone of some color placed at the center.
type Code uint8

const (
	None Code = iota
	Block2
	Flex2
	Block3
	Flex3
	Block4
	Flex4
	Win
)

// NumCodes is the number of distinct pattern codes.
const NumCodes = 8

func (c Code) String() string {
	switch c {
	case None:
		return "-"
	case Block2:
		return "block2"
	case Flex2:
		return "flex2"
	case Block3:
		return "block3"
	case Flex3:
		return "flex3"
	case Block4:
		return "block4"
	case Flex4:
		return "flex4"
	case Win:
		return "win"
	default:
		return fmt.Sprintf("code(%d)", uint8(c))
	}
}
