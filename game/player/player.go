// Package player holds per-player state within a game: the tile rack and
// the running score.
package player

import (
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/game/tile"
)

// Name identifies a player within a game, the persisted username.
type Name string

// Player is one seat in a game.
type Player struct {
	Name  Name       `json:"name"`
	Rack  []tile.Tile `json:"rack"`
	Score int        `json:"score"`
	// Order is the zero-based turn order assigned at join time.
	Order int `json:"order"`
}

// New creates a player with a freshly-drawn rack.
func New(name Name, order int, rack []tile.Tile) Player {
	return Player{Name: name, Order: order, Rack: rack}
}

// HasTiles reports whether every id in ids is present in the rack exactly
// once, satisfying move-processor phase A (rack sufficiency).
func (p Player) HasTiles(ids []tile.ID) bool {
	counts := make(map[tile.ID]int, len(p.Rack))
	for _, t := range p.Rack {
		counts[t.ID]++
	}
	for _, id := range ids {
		if counts[id] == 0 {
			return false
		}
		counts[id]--
	}
	return true
}

// Remove takes the tiles with the given ids off the rack. It returns an
// error if any id is not present; callers should check HasTiles first.
func (p *Player) Remove(ids []tile.ID) ([]tile.Tile, error) {
	want := make(map[tile.ID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var removed []tile.Tile
	kept := make([]tile.Tile, 0, len(p.Rack))
	for _, t := range p.Rack {
		if want[t.ID] {
			removed = append(removed, t)
			delete(want, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	if len(want) > 0 {
		return nil, fmt.Errorf("rack does not contain %d requested tile(s)", len(want))
	}
	p.Rack = kept
	return removed, nil
}

// Add puts newly-drawn tiles onto the rack.
func (p *Player) Add(tiles []tile.Tile) {
	p.Rack = append(p.Rack, tiles...)
}

// RackEmpty reports whether the player has no tiles left, one half of the
// end-game condition (phase H).
func (p Player) RackEmpty() bool {
	return len(p.Rack) == 0
}
