package board

// Premium is a scoring multiplier printed on a board square.
type Premium int

// The four premium kinds a standard board prints, plus None for an
// ordinary square.
const (
	None Premium = iota
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
)

// LetterMultiplier returns the factor a premium applies to a single
// newly-placed tile's letter value. Ordinary squares and word premiums
// return 1.
func (p Premium) LetterMultiplier() int {
	switch p {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the factor a premium applies to an entire word
// that covers it. Ordinary squares and letter premiums return 1.
func (p Premium) WordMultiplier() int {
	switch p {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	default:
		return 1
	}
}

var tripleWordSquares = []Position{
	{0, 0}, {0, 7}, {0, 14},
	{7, 0}, {7, 14},
	{14, 0}, {14, 7}, {14, 14},
}

var doubleWordSquares = []Position{
	{1, 1}, {2, 2}, {3, 3}, {4, 4},
	{1, 13}, {2, 12}, {3, 11}, {4, 10},
	{13, 1}, {12, 2}, {11, 3}, {10, 4},
	{13, 13}, {12, 12}, {11, 11}, {10, 10},
}

var tripleLetterSquares = []Position{
	{1, 5}, {1, 9},
	{5, 1}, {5, 5}, {5, 9}, {5, 13},
	{9, 1}, {9, 5}, {9, 9}, {9, 13},
	{13, 5}, {13, 9},
}

var doubleLetterSquares = []Position{
	{0, 3}, {0, 11},
	{2, 6}, {2, 8},
	{3, 0}, {3, 7}, {3, 14},
	{6, 2}, {6, 6}, {6, 8}, {6, 12},
	{7, 3}, {7, 11},
	{8, 2}, {8, 6}, {8, 8}, {8, 12},
	{11, 0}, {11, 7}, {11, 14},
	{12, 6}, {12, 8},
	{14, 3}, {14, 11},
}

var premiumByPosition = buildPremiumIndex()

func buildPremiumIndex() map[Position]Premium {
	m := make(map[Position]Premium, 60)
	for _, p := range tripleWordSquares {
		m[p] = TripleWord
	}
	for _, p := range doubleWordSquares {
		m[p] = DoubleWord
	}
	for _, p := range tripleLetterSquares {
		m[p] = TripleLetter
	}
	for _, p := range doubleLetterSquares {
		m[p] = DoubleLetter
	}
	// The center square is deliberately left an ordinary square: it is not
	// a double word, and the first move is not required to cover it.
	delete(m, Position{CenterRow, CenterCol})
	return m
}

// PremiumAt returns the premium printed at a position, None if the
// position carries no premium or is off the board.
func (b *Board) PremiumAt(p Position) Premium {
	return premiumByPosition[p]
}
