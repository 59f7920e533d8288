// Package engine implements the Move Processor and the Game State it
// operates on: a shared board, a tile bag, ordered players, and the move
// history. Moves change them only through ApplyMove, so that every move
// goes through the same ordered set of preconditions and phases; Join,
// Start and End change the players and status.
package engine

import (
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/board"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/game/tile"
	"github.com/jacobpatterson1549/selene-bananas/server/log"
)

// Lexicon determines whether a word is playable. It may be backed by an
// in-memory set or by a database query.
type Lexicon interface {
	Check(word string) bool
}

// Move is a single recorded play: a pass, an exchange, or a placement. It
// is an alias of game.MoveRecord, the wire-shared record type, so that the
// move processor and the message package agree on one shape.
type Move = game.MoveRecord

// Config describes how a new Game should be built.
type Config struct {
	MaxPlayers   int
	Distribution tile.Distribution
	Lexicon      Lexicon
	Log          log.Logger
	// Shuffle overrides the bag/rack shuffling function; nil uses
	// math/rand.Shuffle. Tests supply a deterministic shuffle.
	Shuffle func(n int, swap func(i, j int))
	// Now returns the current unix time in seconds, used to timestamp
	// moves. Tests supply a fixed clock.
	Now func() int64
}

func (cfg Config) validate() error {
	switch {
	case cfg.MaxPlayers < 2 || cfg.MaxPlayers > 4:
		return fmt.Errorf("a game must allow between 2 and 4 players")
	case cfg.Lexicon == nil:
		return fmt.Errorf("a lexicon is required")
	case cfg.Log == nil:
		return fmt.Errorf("a logger is required")
	}
	return nil
}

// Game is the full, authoritative state of one Scrabble-like match.
type Game struct {
	ID         game.ID
	cfg        Config
	board      *board.Board
	bag        *tile.Bag
	players    []*player.Player
	turn       int
	status     game.Status
	moves      []Move
	createdAt  int64
	finishedAt int64
}

// NewGame creates a new, NotStarted game with a full bag and an empty
// board. No players are seated yet; they join via Join.
func NewGame(id game.ID, cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	dist := cfg.Distribution
	if dist.Size() == 0 {
		dist = tile.English
	}
	bag, err := tile.NewBag(dist, cfg.Shuffle)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	now := cfg.now()
	g := Game{
		ID:        id,
		cfg:       cfg,
		board:     board.New(),
		bag:       bag,
		status:    game.NotStarted,
		createdAt: now,
	}
	return &g, nil
}

func (cfg Config) now() int64 {
	if cfg.Now != nil {
		return cfg.Now()
	}
	return 0
}

// Info summarizes the game for the lobby listing.
func (g *Game) Info() game.Info {
	names := make([]string, len(g.players))
	scores := make(map[string]int, len(g.players))
	for i, p := range g.players {
		names[i] = string(p.Name)
		scores[string(p.Name)] = p.Score
	}
	return game.Info{
		ID:         g.ID,
		Status:     g.status,
		Players:    names,
		MaxPlayers: g.cfg.MaxPlayers,
		CreatedAt:  g.createdAt,
		FinishedAt: g.finishedAt,
		Scores:     scores,
	}
}

// Detail summarizes the game for name's own view: the lobby summary plus
// name's rack and the bag's remaining size. It returns an error if name is
// not seated in the game, since a rack is private to its holder.
func (g *Game) Detail(name player.Name) (game.Detail, error) {
	p, i := g.playerByName(name)
	if i < 0 {
		return game.Detail{}, Warning(fmt.Sprintf("%s is not a player in game %d", name, g.ID))
	}
	rack := make([]tile.Tile, len(p.Rack))
	copy(rack, p.Rack)
	return game.Detail{
		Info:    g.Info(),
		Rack:    rack,
		BagSize: g.bag.Len(),
	}, nil
}

// Moves returns the move history in play order.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

func (g *Game) playerByName(name player.Name) (*player.Player, int) {
	for i, p := range g.players {
		if p.Name == name {
			return p, i
		}
	}
	return nil, -1
}

func (g *Game) currentPlayer() *player.Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[g.turn%len(g.players)]
}
