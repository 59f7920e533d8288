package board

import (
	"testing"

	"github.com/jacobpatterson1549/selene-bananas/game/tile"
)

func place(t *testing.T, b *Board, row, col int, r rune, id tile.ID) {
	t.Helper()
	tl, err := tile.English.New(id, r)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if err := b.Place(Position{Row: Row(row), Col: Col(col)}, tl); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
}

func TestWordsFormedBySingleWord(t *testing.T) {
	b := New()
	place(t, b, 7, 7, 'c', 1)
	place(t, b, 7, 8, 'a', 2)
	place(t, b, 7, 9, 't', 3)
	placed := []Position{{7, 7}, {7, 8}, {7, 9}}
	words := b.WordsFormedBy(placed, true)
	if len(words) != 1 {
		t.Fatalf("wanted 1 word, got %d", len(words))
	}
	if got := words[0].Text(); got != "CAT" {
		t.Errorf("wanted CAT, got %v", got)
	}
}

func TestWordsFormedByWithCrossWords(t *testing.T) {
	b := New()
	// existing word "CAT" horizontal at row 7
	place(t, b, 7, 7, 'c', 1)
	place(t, b, 7, 8, 'a', 2)
	place(t, b, 7, 9, 't', 3)
	// new tiles on row 8: S under the C of CAT forming the vertical word
	// "CS", and O under the T forming the vertical word "TO"
	place(t, b, 8, 7, 's', 4)
	place(t, b, 8, 9, 'o', 5)
	placed := []Position{{8, 7}, {8, 9}}
	words := b.WordsFormedBy(placed, true)
	texts := make(map[string]bool)
	for _, w := range words {
		texts[w.Text()] = true
	}
	if !texts["CS"] {
		t.Errorf("wanted cross word CS, got %v", texts)
	}
	if !texts["TO"] {
		t.Errorf("wanted cross word TO, got %v", texts)
	}
}

func TestPlacementDirection(t *testing.T) {
	tests := []struct {
		name        string
		placed      []Position
		wantHoriz   bool
		wantErr     bool
	}{
		{"single row", []Position{{7, 7}, {7, 8}}, true, false},
		{"single column", []Position{{6, 7}, {8, 7}}, false, false},
		{"scattered", []Position{{1, 1}, {2, 2}}, false, true},
		{"duplicate", []Position{{1, 1}, {1, 1}}, false, true},
		{"empty", nil, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			horiz, err := PlacementDirection(test.placed)
			if test.wantErr {
				if err == nil {
					t.Error("wanted error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unwanted error: %v", err)
			}
			if horiz != test.wantHoriz {
				t.Errorf("wanted horizontal=%v, got %v", test.wantHoriz, horiz)
			}
		})
	}
}
