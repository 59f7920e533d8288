package engine

import (
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
)

// Join seats a player in the game. Joining a second time is a no-op
// (idempotent), per the session registry's join semantics.
func (g *Game) Join(name player.Name) error {
	if _, i := g.playerByName(name); i >= 0 {
		return nil
	}
	if g.status != game.NotStarted {
		return Warning(fmt.Sprintf("game %d has already started", g.ID))
	}
	if len(g.players) >= g.cfg.MaxPlayers {
		return Warning(fmt.Sprintf("game %d is full", g.ID))
	}
	rack := g.bag.Draw(7)
	order := len(g.players)
	p := player.New(name, order, rack)
	g.players = append(g.players, &p)
	return nil
}

// Start transitions the game to InProgress. It requires at least two
// seated players and that the game has not already started.
func (g *Game) Start() error {
	if g.status != game.NotStarted {
		return Warning(fmt.Sprintf("game %d cannot be started from status %v", g.ID, g.status))
	}
	if len(g.players) < 2 {
		return Warning(fmt.Sprintf("game %d needs at least 2 players to start, has %d", g.ID, len(g.players)))
	}
	g.status = game.InProgress
	return nil
}

// End finishes the game immediately, regardless of board/rack state. name
// must be a seated player; any other caller is rejected.
func (g *Game) End(name player.Name) error {
	if _, i := g.playerByName(name); i < 0 {
		return Warning(fmt.Sprintf("%s is not a player in game %d", name, g.ID))
	}
	if g.status == game.Finished {
		return Warning(fmt.Sprintf("game %d has already finished", g.ID))
	}
	g.status = game.Finished
	g.finishedAt = g.cfg.now()
	return nil
}
