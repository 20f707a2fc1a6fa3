package board

import "fmt"

// Pos is a cell coordinate in engine-internal (already border-offset) board
// convention: X, Y range over [0, dim) for a board of dimension dim = S+8,
// with the S×S playing area occupying [4, S+4) in both axes. UI-facing
// layers (protocol adapters) are responsible for translating to and from
// their own 0-indexed coordinate system by adding/subtracting the border
// width -- see pkg/protocol/gomocup.
type Pos struct {
	X, Y int
}

// NoPos is the in-band "no candidate" sentinel move, per spec §7.
var NoPos = Pos{X: -1, Y: -1}

func (p Pos) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Chebyshev returns the Chebyshev (king-move) distance between p and q.
func (p Pos) Chebyshev(q Pos) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
