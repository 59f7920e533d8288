package board

import (
	"strings"
)

// Word is a contiguous run of tiles read off the board in one direction.
type Word struct {
	Cells []Cell
}

// Text returns the word's letters in board order.
func (w Word) Text() string {
	var b strings.Builder
	for _, c := range w.Cells {
		b.WriteString(string(c.Tile.Ch))
	}
	return b.String()
}

// runAt extends out from p in both directions of a row (horizontal=true)
// or a column (horizontal=false), collecting every contiguously-occupied
// cell. Gaps split a sparse line of tiles into separate words.
func (b *Board) runAt(p Position, horizontal bool) Word {
	cells := []Cell{}
	t, ok := b.At(p)
	if !ok {
		return Word{}
	}
	cells = append(cells, Cell{Position: p, Tile: t})
	if horizontal {
		for c := p.Col - 1; c >= 0; c-- {
			q := Position{Row: p.Row, Col: c}
			t, ok := b.At(q)
			if !ok {
				break
			}
			cells = append([]Cell{{Position: q, Tile: t}}, cells...)
		}
		for c := p.Col + 1; int(c) < b.NumCols; c++ {
			q := Position{Row: p.Row, Col: c}
			t, ok := b.At(q)
			if !ok {
				break
			}
			cells = append(cells, Cell{Position: q, Tile: t})
		}
	} else {
		for r := p.Row - 1; r >= 0; r-- {
			q := Position{Row: r, Col: p.Col}
			t, ok := b.At(q)
			if !ok {
				break
			}
			cells = append([]Cell{{Position: q, Tile: t}}, cells...)
		}
		for r := p.Row + 1; int(r) < b.NumRows; r++ {
			q := Position{Row: r, Col: p.Col}
			t, ok := b.At(q)
			if !ok {
				break
			}
			cells = append(cells, Cell{Position: q, Tile: t})
		}
	}
	return Word{Cells: cells}
}

// WordsFormedBy returns every word of length >= 2 that includes at least
// one of the placed positions: the primary word running in the placement's
// own direction, plus one cross-word per placed cell. This implements
// move-processor phase D (word extraction).
func (b *Board) WordsFormedBy(placed []Position, horizontal bool) []Word {
	if len(placed) == 0 {
		return nil
	}
	var words []Word
	seen := make(map[Position]bool)
	primary := b.runAt(placed[0], horizontal)
	if len(primary.Cells) >= 2 {
		words = append(words, primary)
	}
	for _, p := range placed {
		if seen[p] {
			continue
		}
		seen[p] = true
		cross := b.runAt(p, !horizontal)
		if len(cross.Cells) >= 2 {
			words = append(words, cross)
		}
	}
	return words
}

// PlacementDirection determines whether a set of newly-placed positions
// lies along a single row (horizontal) or a single column (vertical). It
// returns an error if the placement spans neither a single row nor a
// single column, or contains a duplicate position - phase B geometry.
func PlacementDirection(placed []Position) (horizontal bool, err error) {
	if len(placed) == 0 {
		return false, errNoTiles
	}
	sameRow, sameCol := true, true
	first := placed[0]
	seen := make(map[Position]bool, len(placed))
	for _, p := range placed {
		if seen[p] {
			return false, errDuplicatePosition(p)
		}
		seen[p] = true
		if p.Row != first.Row {
			sameRow = false
		}
		if p.Col != first.Col {
			sameCol = false
		}
	}
	switch {
	case len(placed) == 1:
		return true, nil // a single tile has no intrinsic direction; caller decides by context
	case sameRow:
		return true, nil
	case sameCol:
		return false, nil
	default:
		return false, errNotSingleLine
	}
}

type errDuplicatePosition Position

func (e errDuplicatePosition) Error() string {
	return "tile placed twice at the same position"
}

var (
	errNoTiles      = plainError("no tiles placed")
	errNotSingleLine = plainError("placed tiles must form a single row or column")
)

type plainError string

func (e plainError) Error() string { return string(e) }
