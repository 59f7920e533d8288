package board

import (
	"testing"

	"github.com/jacobpatterson1549/selene-bananas/game/tile"
)

func TestNewBoardIsEmpty(t *testing.T) {
	b := New()
	if !b.IsEmpty() {
		t.Error("new board should be empty")
	}
	if b.NumRows != NumRows || b.NumCols != NumCols {
		t.Errorf("wanted %dx%d board, got %dx%d", NumRows, NumCols, b.NumRows, b.NumCols)
	}
}

func TestPlaceAndAt(t *testing.T) {
	b := New()
	p := Position{Row: 7, Col: 7}
	tl, _ := tile.English.New(1, 'a')
	if err := b.Place(p, tl); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	got, ok := b.At(p)
	if !ok || got.Ch != tl.Ch {
		t.Errorf("wanted %v at %v, got %v (ok=%v)", tl, p, got, ok)
	}
}

func TestPlaceRejectsOccupied(t *testing.T) {
	b := New()
	p := Position{Row: 7, Col: 7}
	tl, _ := tile.English.New(1, 'a')
	if err := b.Place(p, tl); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	tl2, _ := tile.English.New(2, 'b')
	if err := b.Place(p, tl2); err == nil {
		t.Error("wanted error placing over an occupied cell")
	}
}

func TestPlaceRejectsOffBoard(t *testing.T) {
	b := New()
	tl, _ := tile.English.New(1, 'a')
	if err := b.Place(Position{Row: -1, Col: 0}, tl); err == nil {
		t.Error("wanted error for negative row")
	}
	if err := b.Place(Position{Row: 0, Col: NumCols}, tl); err == nil {
		t.Error("wanted error for column past the edge")
	}
}

func TestRemove(t *testing.T) {
	b := New()
	p := Position{Row: 3, Col: 3}
	tl, _ := tile.English.New(1, 'a')
	b.Place(p, tl)
	b.Remove(p)
	if !b.IsEmptyAt(p) {
		t.Error("position should be empty after removal")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	b := New()
	p := Position{Row: 1, Col: 2}
	tl, _ := tile.English.New(1, 'a')
	b.Place(p, tl)
	cells := b.Snapshot()
	b2 := New()
	b2.Restore(cells)
	got, ok := b2.At(p)
	if !ok || got.Ch != tl.Ch {
		t.Errorf("restored board missing tile at %v", p)
	}
}

func TestCenterSquareIsNotDoubleWord(t *testing.T) {
	b := New()
	if got := b.PremiumAt(Position{Row: CenterRow, Col: CenterCol}); got != None {
		t.Errorf("center square should carry no premium, got %v", got)
	}
}

func TestPremiumCorners(t *testing.T) {
	b := New()
	if got := b.PremiumAt(Position{0, 0}); got != TripleWord {
		t.Errorf("wanted corner to be triple word, got %v", got)
	}
}
