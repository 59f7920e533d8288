package engine

import (
	"testing"

	"github.com/jacobpatterson1549/selene-bananas/game"
)

func newFreshGame(t *testing.T) *Game {
	t.Helper()
	cfg := Config{
		MaxPlayers: 2,
		Lexicon:    testLexicon,
		Log:        &testLogger{},
		Shuffle:    noShuffle,
		Now:        func() int64 { return 1000 },
	}
	g, err := NewGame(game.ID(7), cfg)
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	return g
}

func TestJoin(t *testing.T) {
	g := newFreshGame(t)
	if err := g.Join("alice"); err != nil {
		t.Fatalf("joining: %v", err)
	}
	if len(g.players) != 1 {
		t.Fatalf("players = %d, want 1", len(g.players))
	}
	if len(g.players[0].Rack) != 7 {
		t.Errorf("rack size = %d, want 7", len(g.players[0].Rack))
	}
	if err := g.Join("alice"); err != nil {
		t.Errorf("rejoining should be a no-op, got error: %v", err)
	}
	if len(g.players) != 1 {
		t.Errorf("rejoining should not duplicate the player, players = %d", len(g.players))
	}
}

func TestJoin_full(t *testing.T) {
	g := newFreshGame(t)
	if err := g.Join("alice"); err != nil {
		t.Fatalf("joining alice: %v", err)
	}
	if err := g.Join("bob"); err != nil {
		t.Fatalf("joining bob: %v", err)
	}
	if err := g.Join("carl"); err == nil {
		t.Error("expected an error joining a full game")
	}
}

func TestJoin_afterStart(t *testing.T) {
	g := newFreshGame(t)
	g.Join("alice")
	g.Join("bob")
	if err := g.Start(); err != nil {
		t.Fatalf("starting: %v", err)
	}
	if err := g.Join("carl"); err == nil {
		t.Error("expected an error joining a started game")
	}
}

func TestStart_notEnoughPlayers(t *testing.T) {
	g := newFreshGame(t)
	g.Join("alice")
	if err := g.Start(); err == nil {
		t.Error("expected an error starting with only 1 player")
	}
}

func TestEnd(t *testing.T) {
	g := newFreshGame(t)
	g.Join("alice")
	g.Join("bob")
	g.Start()
	if err := g.End("mallory"); err == nil {
		t.Error("expected an error ending a game as a non-participant")
	}
	if err := g.End("alice"); err != nil {
		t.Fatalf("ending: %v", err)
	}
	if g.status != game.Finished {
		t.Errorf("status = %v, want Finished", g.status)
	}
	if g.finishedAt != 1000 {
		t.Errorf("finishedAt = %v, want 1000", g.finishedAt)
	}
	if err := g.End("alice"); err == nil {
		t.Error("expected an error ending an already-finished game")
	}
}

func TestInfo(t *testing.T) {
	g := newFreshGame(t)
	g.Join("alice")
	g.Join("bob")
	info := g.Info()
	if info.ID != g.ID {
		t.Errorf("ID = %v, want %v", info.ID, g.ID)
	}
	if len(info.Players) != 2 {
		t.Errorf("players = %d, want 2", len(info.Players))
	}
	if info.MaxPlayers != 2 {
		t.Errorf("maxPlayers = %d, want 2", info.MaxPlayers)
	}
}
