package registry

import (
	"context"
	"testing"
	"time"

	"github.com/jacobpatterson1549/selene-bananas/game/engine"
	"github.com/jacobpatterson1549/selene-bananas/game/message"
)

type testLogger struct{}

func (testLogger) Printf(format string, v ...interface{}) {}

type fakeLexicon map[string]bool

func (f fakeLexicon) Check(word string) bool { return f[word] }

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := Config{
		Log:      testLogger{},
		MaxGames: 2,
		GameConfig: engine.Config{
			MaxPlayers: 2,
			Lexicon:    fakeLexicon{"CAT": true},
			Log:        testLogger{},
			Now:        func() int64 { return 1 },
		},
		IdlePeriod: time.Minute,
	}
	m, err := cfg.NewManager()
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}
	return m
}

func TestCreateAndJoinGame(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	info, err := m.CreateGame(ctx, "alice")
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	if len(info.Players) != 1 || info.Players[0] != "alice" {
		t.Fatalf("expected alice to be seated, got %v", info.Players)
	}
	info2, err := m.JoinGame(ctx, info.ID, "bob")
	if err != nil {
		t.Fatalf("joining game: %v", err)
	}
	if len(info2.Players) != 2 {
		t.Fatalf("expected 2 players, got %v", info2.Players)
	}
	games := m.ListGames()
	if len(games) != 1 {
		t.Fatalf("expected 1 tracked game, got %v", len(games))
	}
}

func TestCreateGame_maxGames(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for i := 0; i < 2; i++ {
		if _, err := m.CreateGame(ctx, "alice"); err != nil {
			t.Fatalf("creating game %v: %v", i, err)
		}
	}
	if _, err := m.CreateGame(ctx, "carl"); err == nil {
		t.Error("expected an error exceeding the maximum number of games")
	}
}

func TestStartAndMakeMove(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	info, err := m.CreateGame(ctx, "alice")
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	if _, err := m.JoinGame(ctx, info.ID, "bob"); err != nil {
		t.Fatalf("joining game: %v", err)
	}
	if _, err := m.StartGame(ctx, info.ID, "alice"); err != nil {
		t.Fatalf("starting game: %v", err)
	}
	reply, err := m.MakeMove(ctx, info.ID, "alice", message.Move{Pass: true})
	if err != nil {
		t.Fatalf("making move: %v", err)
	}
	if reply.Type == message.SocketWarning || reply.Type == message.SocketError {
		t.Errorf("unexpected reply type %v: %v", reply.Type, reply.Info)
	}
}

func TestJoinGame_unknownGame(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	if _, err := m.JoinGame(ctx, 404, "alice"); err == nil {
		t.Error("expected an error joining a nonexistent game")
	}
}

func TestGetGame(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	info, err := m.CreateGame(ctx, "alice")
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	detail, err := m.GetGame(ctx, info.ID, "alice")
	if err != nil {
		t.Fatalf("getting game: %v", err)
	}
	if len(detail.Rack) != 7 {
		t.Errorf("wanted a 7-tile rack, got %v", len(detail.Rack))
	}
	if detail.BagSize <= 0 {
		t.Errorf("wanted a nonempty bag, got %v", detail.BagSize)
	}
	if _, err := m.GetGame(ctx, info.ID, "mallory"); err == nil {
		t.Error("expected an error viewing a game as a non-participant")
	}
}

func TestListMoves(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	info, err := m.CreateGame(ctx, "alice")
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	if _, err := m.JoinGame(ctx, info.ID, "bob"); err != nil {
		t.Fatalf("joining game: %v", err)
	}
	if _, err := m.StartGame(ctx, info.ID, "alice"); err != nil {
		t.Fatalf("starting game: %v", err)
	}
	if _, err := m.MakeMove(ctx, info.ID, "alice", message.Move{Pass: true}); err != nil {
		t.Fatalf("making move: %v", err)
	}
	moves, err := m.ListMoves(ctx, info.ID, "bob")
	if err != nil {
		t.Fatalf("listing moves: %v", err)
	}
	if len(moves) != 1 || !moves[0].Pass || moves[0].Number != 0 {
		t.Errorf("wanted a single pass move numbered 0, got %+v", moves)
	}
}

func TestEndGame_requiresParticipant(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	info, err := m.CreateGame(ctx, "alice")
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	if _, err := m.EndGame(ctx, info.ID, "mallory"); err == nil {
		t.Error("expected an error ending a game as a non-participant")
	}
	if _, err := m.EndGame(ctx, info.ID, "alice"); err != nil {
		t.Fatalf("ending game: %v", err)
	}
}
