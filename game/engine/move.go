package engine

import (
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/board"
	"github.com/jacobpatterson1549/selene-bananas/game/message"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/game/tile"
)

// ApplyMove validates and applies a Pass, Exchange, or Place move for the
// named player, in that order of preconditions: the game must be in
// progress, the player must be seated, and it must be their turn. Only
// then does a move-type-specific phase sequence run.
func (g *Game) ApplyMove(name player.Name, mv message.Move) (Move, error) {
	if g.status != game.InProgress {
		return Move{}, Warning(fmt.Sprintf("game %d is not in progress", g.ID))
	}
	p, i := g.playerByName(name)
	if i < 0 {
		return Move{}, Warning(fmt.Sprintf("%s is not a player in game %d", name, g.ID))
	}
	if g.currentPlayer().Name != name {
		return Move{}, Warning(fmt.Sprintf("it is not %s's turn", name))
	}
	switch {
	case mv.Pass:
		return g.applyPass(p)
	case len(mv.Exchange) > 0:
		return g.applyExchange(p, mv.Exchange)
	case len(mv.Place) > 0:
		return g.applyPlace(p, mv.Place)
	default:
		return Move{}, Warning("a move must pass, exchange tiles, or place tiles")
	}
}

func (g *Game) applyPass(p *player.Player) (Move, error) {
	rec := g.recordMove(Move{PlayerName: p.Name, Pass: true})
	g.advanceTurn()
	return rec, nil
}

func (g *Game) applyExchange(p *player.Player, tileIDs []int) (Move, error) {
	ids := toTileIDs(tileIDs)
	if !p.HasTiles(ids) {
		return Move{}, Warning(fmt.Sprintf("%s does not have all of the tiles requested for exchange", p.Name))
	}
	if g.bag.Len() < len(ids) {
		return Move{}, Warning("not enough tiles in bag to exchange")
	}
	removed, err := p.Remove(ids)
	if err != nil {
		return Move{}, fmt.Errorf("exchanging tiles: %w", err)
	}
	g.bag.Return(removed, g.cfg.Shuffle)
	drawn := g.bag.Draw(len(ids))
	p.Add(drawn)
	rec := g.recordMove(Move{PlayerName: p.Name, Exchanged: len(ids)})
	g.advanceTurn()
	return rec, nil
}

func (g *Game) applyPlace(p *player.Player, placedTiles []message.PlacedTile) (Move, error) {
	// Phase A: rack sufficiency.
	ids := make([]tile.ID, len(placedTiles))
	for i, pt := range placedTiles {
		ids[i] = tile.ID(pt.TileID)
	}
	if !p.HasTiles(ids) {
		return Move{}, Warning(fmt.Sprintf("%s does not have all of the tiles placed", p.Name))
	}
	tilesByID := make(map[tile.ID]tile.Tile, len(p.Rack))
	for _, t := range p.Rack {
		tilesByID[t.ID] = t
	}

	// Phase B: placement geometry - single line, empty destination cells.
	positions := make([]board.Position, len(placedTiles))
	for i, pt := range placedTiles {
		positions[i] = board.Position{Row: board.Row(pt.Row), Col: board.Col(pt.Col)}
		if !g.board.IsEmptyAt(positions[i]) {
			return Move{}, Warning(fmt.Sprintf("position (%d, %d) is already occupied", pt.Row, pt.Col))
		}
	}
	horizontal, err := board.PlacementDirection(positions)
	if err != nil {
		return Move{}, Warning(err.Error())
	}
	if err := g.checkContiguous(positions, horizontal); err != nil {
		return Move{}, Warning(err.Error())
	}

	// Phase C: tentative placement.
	placed := make([]tile.Tile, len(placedTiles))
	for i, pt := range placedTiles {
		t := tilesByID[tile.ID(pt.TileID)]
		if t.IsBlank && pt.Letter != "" {
			assigned, err := t.Assign([]rune(pt.Letter)[0])
			if err != nil {
				return Move{}, Warning(err.Error())
			}
			t = assigned
		}
		placed[i] = t
		if err := g.board.Place(positions[i], t); err != nil {
			g.rollback(positions[:i])
			return Move{}, fmt.Errorf("placing tile: %w", err)
		}
	}

	// Phase D: word extraction.
	words := g.board.WordsFormedBy(positions, horizontal)
	if len(words) == 0 {
		g.rollback(positions)
		return Move{}, Warning("placement does not form any word of length 2 or more")
	}

	// Phase E: lexicon check, rollback on failure.
	for _, w := range words {
		text := w.Text()
		if !g.cfg.Lexicon.Check(text) {
			g.rollback(positions)
			return Move{}, Warning(fmt.Sprintf("invalid word: %s", text))
		}
	}

	// Phase F: scoring.
	score := g.score(words, positions)

	// Phase G: commit - rack/bag update, move record, turn increment.
	if _, err := p.Remove(ids); err != nil {
		return Move{}, fmt.Errorf("committing placement: %w", err)
	}
	drawn := g.bag.Draw(len(ids))
	p.Add(drawn)
	p.Score += score
	longest := longestWord(words)
	rec := g.recordMove(Move{
		PlayerName:  p.Name,
		Word:        longest,
		TilesPlaced: placed,
		Score:       score,
	})
	g.advanceTurn()

	// Phase H: end-game check.
	if p.RackEmpty() && g.bag.Len() == 0 {
		g.status = game.Finished
		g.finishedAt = g.cfg.now()
	}
	return rec, nil
}

// checkContiguous ensures that combined with tiles already on the board,
// the line the new tiles lie on has no gaps between the lowest and
// highest occupied cell.
func (g *Game) checkContiguous(placed []board.Position, horizontal bool) error {
	if len(placed) == 0 {
		return nil
	}
	var fixed int
	if horizontal {
		fixed = int(placed[0].Row)
	} else {
		fixed = int(placed[0].Col)
	}
	var line func(v int) board.Position
	var bound int
	if horizontal {
		bound = g.board.NumCols
		line = func(v int) board.Position { return board.Position{Row: board.Row(fixed), Col: board.Col(v)} }
	} else {
		bound = g.board.NumRows
		line = func(v int) board.Position { return board.Position{Row: board.Row(v), Col: board.Col(fixed)} }
	}
	min, max := bound, -1
	for _, p := range placed {
		v := int(p.Col)
		if !horizontal {
			v = int(p.Row)
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	for v := min; v <= max; v++ {
		pos := line(v)
		isNew := false
		for _, p := range placed {
			if p == pos {
				isNew = true
				break
			}
		}
		if isNew {
			continue
		}
		if g.board.IsEmptyAt(pos) {
			return fmt.Errorf("placed tiles must form a contiguous run")
		}
	}
	return nil
}

func (g *Game) rollback(positions []board.Position) {
	for _, p := range positions {
		g.board.Remove(p)
	}
}

// score implements move-processor phase F: each word's letter score sums
// over every tile in the word, with a letter premium applied only to
// newly-placed tiles, then is multiplied by the product of the
// newly-placed tiles' word premiums in that word; the per-word totals are summed, and a 50 point
// bingo bonus is added if exactly 7 tiles were placed.
func (g *Game) score(words []board.Word, newlyPlaced []board.Position) int {
	isNew := make(map[board.Position]bool, len(newlyPlaced))
	for _, p := range newlyPlaced {
		isNew[p] = true
	}
	total := 0
	for _, w := range words {
		wordScore := 0
		wordMultiplier := 1
		for _, c := range w.Cells {
			letterScore := c.Tile.Points
			if isNew[c.Position] {
				premium := g.board.PremiumAt(c.Position)
				letterScore *= premium.LetterMultiplier()
				wordMultiplier *= premium.WordMultiplier()
			}
			wordScore += letterScore
		}
		total += wordScore * wordMultiplier
	}
	if len(newlyPlaced) == 7 {
		total += 50
	}
	return total
}

func longestWord(words []board.Word) string {
	var longest string
	for _, w := range words {
		if t := w.Text(); len(t) > len(longest) {
			longest = t
		}
	}
	return longest
}

func (g *Game) recordMove(m Move) Move {
	m.Number = len(g.moves)
	m.CreatedAt = g.cfg.now()
	g.moves = append(g.moves, m)
	return m
}

func (g *Game) advanceTurn() {
	if len(g.players) > 0 {
		g.turn = (g.turn + 1) % len(g.players)
	}
}

func toTileIDs(ids []int) []tile.ID {
	out := make([]tile.ID, len(ids))
	for i, id := range ids {
		out[i] = tile.ID(id)
	}
	return out
}
