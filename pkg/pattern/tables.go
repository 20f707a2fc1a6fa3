package pattern

// direction count: horizontal, vertical, diagonal \, diagonal /.
const NumDirections = 4

// Tables holds the three precomputed structures: the auxiliary line-shape
// classifier (lineType), the per-key-per-role pattern table (pattern), and
// the move-priority table (move). Built once by New and never mutated
// afterwards, so a single instance may be shared across many boards.
type Tables struct {
	lineType [10][6][6][3]Code // line_type[length][span][count][block]
	pattern  [1 << 16][NumRoles]Code
	move     [NumCodes][NumCodes][NumCodes][NumCodes]int16
}

// New builds and returns a fresh set of pattern tables.
func New() *Tables {
	t := &Tables{}
	t.buildLineType()
	t.buildPattern()
	t.buildMove()
	return t
}

// Pattern returns the tactical shape of the line encoded by key, from role's
// viewpoint. key is produced by board.Board's line-key computation.
func (t *Tables) Pattern(key uint16, role State) Code {
	return t.pattern[key][role]
}

// Priority returns the move-priority value for a cell whose four directional
// pattern codes (for one role) are codes.
func (t *Tables) Priority(codes [NumDirections]Code) int16 {
	return t.move[codes[0]][codes[1]][codes[2]][codes[3]]
}

// buildLineType fills in the (length, span, count, block) -> Code
// classification described by the specification: a line segment of the given
// total length (stones + internal gaps) spanning the given window, with count
// stones of the role in question and block open ends blocked by the
// opponent/border, is None unless it reaches five in a row (Win), or is five
// or more long with at least two stones, in which case an unobstructed
// (block == 0) window narrower than the segment is "flex", and everything
// else is "block".
func (t *Tables) buildLineType() {
	for length := 0; length < 10; length++ {
		for span := 0; span < 6; span++ {
			for count := 0; count < 6; count++ {
				for block := 0; block < 3; block++ {
					t.lineType[length][span][count][block] = classifyLine(length, span, count, block)
				}
			}
		}
	}
}

func classifyLine(length, span, count, block int) Code {
	if length < 5 || count <= 1 {
		return None
	}
	if count == 5 {
		return Win
	}
	if length > 5 && span < 5 && block == 0 {
		switch count {
		case 2:
			return Flex2
		case 3:
			return Flex3
		case 4:
			return Flex4
		}
	} else {
		switch count {
		case 2:
			return Block2
		case 3:
			return Block3
		case 4:
			return Block4
		}
	}
	return None
}

// buildPattern fills in the pattern[key][role] table by reconstructing, for
// every possible 16-bit neighbor key, the 9-cell line centered on a
// hypothetical stone of role and classifying it.
func (t *Tables) buildPattern() {
	for key := 0; key < 1<<16; key++ {
		t.pattern[key][White] = t.classify(White, uint32(key))
		t.pattern[key][Black] = t.classify(Black, uint32(key))
	}
}

// classify reconstructs the natural left-to-right 9-cell line (offsets -4..4
// from the center, with the center forced to role) from key and classifies
// it by running the directional scan from the center outward, once in each
// direction, and combining the two results.
func (t *Tables) classify(role State, key uint32) Code {
	var line [9]State
	line[4] = role
	for i := 0; i < 4; i++ {
		line[i] = State((key >> uint(2*i)) & 3)
	}
	for i := 0; i < 4; i++ {
		line[5+i] = State((key >> uint(8+2*i)) & 3)
	}

	var rev [9]State
	for i := 0; i < 9; i++ {
		rev[i] = line[8-i]
	}

	p1 := t.shortLine(line)
	p2 := t.shortLine(rev)

	switch {
	case p1 == Block3 && p2 == Block3:
		return t.checkFlex3(line)
	case p1 == Block4 && p2 == Block4:
		return checkFlex4(line)
	case p1 > p2:
		return p1
	default:
		return p2
	}
}

// shortLine scans outward from the center of line (index 4), first toward
// increasing indices then toward decreasing indices, accumulating the
// contiguous-or-gapped run of role's stones until it meets an opposing stone,
// the border, or the scan window's edge, and looks up the resulting
// (length, span, count, block) in the line-type table.
func (t *Tables) shortLine(line [9]State) Code {
	who := line[4]

	kong := 0 // accumulated gap (empty cells) within the scanned run
	block := 0
	length := 1
	span := 1
	count := 1

	for k := 5; k < 9; k++ {
		if line[k] == who {
			if kong+count > 4 {
				break
			}
			count++
			length++
			span = kong + count
		} else if line[k] == Empty {
			length++
			kong++
		} else {
			if line[k-1] == who {
				block++
			}
			break
		}
	}

	kong = span - count

	for k := 3; k >= 0; k-- {
		if line[k] == who {
			if kong+count > 4 {
				break
			}
			count++
			length++
			span = kong + count
		} else if line[k] == Empty {
			length++
			kong++
		} else {
			if line[k+1] == who {
				block++
			}
			break
		}
	}

	return t.lineType[length][span][count][block]
}

// checkFlex3 tests, for every empty cell in line, whether placing role's
// stone there would upgrade the shape to an unblocked four (Flex4); if any
// does, the three is "flex" rather than merely "block".
func (t *Tables) checkFlex3(line [9]State) Code {
	role := line[4]
	for i := 0; i < 9; i++ {
		if line[i] == Empty {
			line[i] = role
			v := checkFlex4(line)
			line[i] = Empty
			if v == Flex4 {
				return Flex3
			}
		}
	}
	return Block3
}

// checkFlex4 tests whether at least two distinct empty cells in line would
// each complete a run of five for role if filled, which is the definition of
// an unstoppable open four.
func checkFlex4(line [9]State) Code {
	role := line[4]
	winning := 0
	for i := 0; i < 9; i++ {
		if line[i] != Empty {
			continue
		}
		count := 0
		for j := i - 1; j >= 0 && line[j] == role; j-- {
			count++
		}
		for j := i + 1; j < 9 && line[j] == role; j++ {
			count++
		}
		if count >= 4 {
			winning++
		}
	}
	if winning >= 2 {
		return Flex4
	}
	return Block4
}

// blockWeight gives the move-priority contribution of a single pattern code,
// for the weighted-sum branch of buildMove.
var blockWeight = [NumCodes]int16{0, 2, 5, 5, 12, 12, 0, 0}

// buildMove fills in the move-priority table. Four directional pattern codes
// (for one role, at one cell) are reduced to a single priority value used to
// rank and prune candidate moves.
func (t *Tables) buildMove() {
	for a := Code(0); a < NumCodes; a++ {
		for b := Code(0); b < NumCodes; b++ {
			for c := Code(0); c < NumCodes; c++ {
				for d := Code(0); d < NumCodes; d++ {
					t.move[a][b][c][d] = movePriority(a, b, c, d)
				}
			}
		}
	}
}

func movePriority(codes ...Code) int16 {
	var count [NumCodes]int
	for _, c := range codes {
		count[c]++
	}

	switch {
	case count[Win] > 0:
		return 5000
	case count[Flex4] > 0 || count[Block4] > 1:
		return 1200
	case count[Block4] > 0 && count[Flex3] > 0:
		return 1000
	case count[Flex3] > 1:
		return 200
	}

	var score int16
	for c := Block2; c <= Block4; c++ {
		score += blockWeight[c] * int16(count[c])
	}
	return score
}
