package tile

import "fmt"

// LetterInfo describes how many tiles of a letter a distribution contains
// and how many points each is worth.
type LetterInfo struct {
	Count  int
	Points int
}

// Distribution configures the tile set a bag is filled from: which letters
// exist, how many of each, their point values, and how many blanks. This is
// supplied by the caller rather than hardcoded so that alternate alphabets
// (Polish, for example) can be used without code changes.
type Distribution struct {
	Name    string
	Letters map[Letter]LetterInfo
	Blanks  int
}

// Size returns the total tile count the distribution produces, blanks
// included.
func (d Distribution) Size() int {
	n := d.Blanks
	for _, info := range d.Letters {
		n += info.Count
	}
	return n
}

// Validate ensures every letter count and point value is non-negative and
// the distribution is not empty.
func (d Distribution) Validate() error {
	if d.Size() == 0 {
		return fmt.Errorf("tile distribution %q has no tiles", d.Name)
	}
	for l, info := range d.Letters {
		if info.Count < 0 {
			return fmt.Errorf("tile distribution %q: negative count for %q", d.Name, l)
		}
		if info.Points < 0 {
			return fmt.Errorf("tile distribution %q: negative points for %q", d.Name, l)
		}
	}
	if d.Blanks < 0 {
		return fmt.Errorf("tile distribution %q: negative blank count", d.Name)
	}
	return nil
}

// English is the classic 100-tile, 26-letter distribution.
var English = Distribution{
	Name: "english",
	Letters: map[Letter]LetterInfo{
		"A": {9, 1}, "B": {2, 3}, "C": {2, 3}, "D": {4, 2}, "E": {12, 1},
		"F": {2, 4}, "G": {3, 2}, "H": {2, 4}, "I": {9, 1}, "J": {1, 8},
		"K": {1, 5}, "L": {4, 1}, "M": {2, 3}, "N": {6, 1}, "O": {8, 1},
		"P": {2, 3}, "Q": {1, 10}, "R": {6, 1}, "S": {4, 1}, "T": {6, 1},
		"U": {4, 1}, "V": {2, 4}, "W": {2, 4}, "X": {1, 8}, "Y": {2, 4},
		"Z": {1, 10},
	},
	Blanks: 2,
}

// Polish is a 100-tile distribution for the Polish alphabet, including the
// diacritic letters Ą Ę Ł Ś Ń Ó Ć Ż Ź with their standard point values.
var Polish = Distribution{
	Name: "polish",
	Letters: map[Letter]LetterInfo{
		"A": {9, 1}, "Ą": {1, 5}, "B": {2, 3}, "C": {3, 2}, "Ć": {1, 6},
		"D": {3, 2}, "E": {7, 1}, "Ę": {1, 5}, "F": {1, 5}, "G": {2, 3},
		"H": {2, 3}, "I": {8, 1}, "J": {2, 3}, "K": {3, 2}, "L": {3, 2},
		"Ł": {2, 3}, "M": {3, 2}, "N": {5, 1}, "Ń": {1, 7}, "O": {6, 1},
		"Ó": {1, 5}, "P": {3, 2}, "R": {4, 1}, "S": {4, 1}, "Ś": {1, 5},
		"T": {3, 2}, "U": {2, 3}, "W": {4, 1}, "Y": {4, 2}, "Z": {5, 1},
		"Ż": {1, 9}, "Ź": {1, 9},
	},
	Blanks: 2,
}
