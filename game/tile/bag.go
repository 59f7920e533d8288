package tile

import (
	"fmt"
	"math/rand"
)

// Bag holds the tiles that have not yet been drawn. It is not safe for
// concurrent use; callers must serialize access the same way the rest of
// the game state is serialized.
type Bag struct {
	tiles []Tile
}

// NewBag fills a bag from the distribution in shuffled order, minting
// sequential tile IDs starting at 1.
func NewBag(d Distribution, shuffle func(n int, swap func(i, j int))) (*Bag, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("creating bag: %w", err)
	}
	tiles := make([]Tile, 0, d.Size())
	id := ID(1)
	for l, info := range d.Letters {
		for i := 0; i < info.Count; i++ {
			tiles = append(tiles, Tile{ID: id, Ch: l, Points: info.Points})
			id++
		}
	}
	for i := 0; i < d.Blanks; i++ {
		tiles = append(tiles, NewBlank(id))
		id++
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
	return &Bag{tiles: tiles}, nil
}

// Len returns the number of tiles remaining in the bag.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.tiles)
}

// Draw removes up to n tiles from the bag, returning fewer if the bag runs
// out. Tiles come off the end of the (already shuffled) slice.
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn := make([]Tile, n)
	copy(drawn, b.tiles[len(b.tiles)-n:])
	b.tiles = b.tiles[:len(b.tiles)-n]
	return drawn
}

// Return puts tiles back in the bag and reshuffles, used by an exchange
// move. A fresh blank tile returned to the bag loses its assigned letter.
func (b *Bag) Return(tiles []Tile, shuffle func(n int, swap func(i, j int))) {
	for _, t := range tiles {
		if t.IsBlank {
			t.Ch = Blank
		}
		b.tiles = append(b.tiles, t)
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	shuffle(len(b.tiles), func(i, j int) { b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i] })
}
