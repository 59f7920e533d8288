package server

import (
	"context"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
	"github.com/jacobpatterson1549/selene-bananas/game/message"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
)

type testLogger struct{ lines []string }

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.lines = append(l.lines, format)
}

type mockTokenizer struct {
	readUsernameFunc func(tokenString string) (string, error)
}

func (t mockTokenizer) ReadUsername(tokenString string) (string, error) {
	return t.readUsernameFunc(tokenString)
}

type mockRegistry struct {
	createGameFunc func(ctx context.Context, name player.Name) (game.Info, error)
	listGamesFunc  func() []game.Info
	joinGameFunc   func(ctx context.Context, id game.ID, name player.Name) (game.Info, error)
	getGameFunc    func(ctx context.Context, id game.ID, name player.Name) (game.Detail, error)
	startGameFunc  func(ctx context.Context, id game.ID, name player.Name) (game.Info, error)
	endGameFunc    func(ctx context.Context, id game.ID, name player.Name) (game.Info, error)
	makeMoveFunc   func(ctx context.Context, id game.ID, name player.Name, mv message.Move) (message.Message, error)
	listMovesFunc  func(ctx context.Context, id game.ID, name player.Name) ([]game.MoveRecord, error)
}

func (r mockRegistry) CreateGame(ctx context.Context, name player.Name) (game.Info, error) {
	return r.createGameFunc(ctx, name)
}
func (r mockRegistry) ListGames() []game.Info {
	return r.listGamesFunc()
}
func (r mockRegistry) JoinGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error) {
	return r.joinGameFunc(ctx, id, name)
}
func (r mockRegistry) GetGame(ctx context.Context, id game.ID, name player.Name) (game.Detail, error) {
	return r.getGameFunc(ctx, id, name)
}
func (r mockRegistry) StartGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error) {
	return r.startGameFunc(ctx, id, name)
}
func (r mockRegistry) EndGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error) {
	return r.endGameFunc(ctx, id, name)
}
func (r mockRegistry) MakeMove(ctx context.Context, id game.ID, name player.Name, mv message.Move) (message.Message, error) {
	return r.makeMoveFunc(ctx, id, name, mv)
}
func (r mockRegistry) ListMoves(ctx context.Context, id game.ID, name player.Name) ([]game.MoveRecord, error) {
	return r.listMovesFunc(ctx, id, name)
}

type mockChatHub struct {
	subscribeFunc   func(id game.ID, ch chan<- chat.Message) chat.SubscriberID
	unsubscribeFunc func(id game.ID, sub chat.SubscriberID)
	publishFunc     func(ctx context.Context, id game.ID, name player.Name, text string) error
}

func (h mockChatHub) Subscribe(id game.ID, ch chan<- chat.Message) chat.SubscriberID {
	return h.subscribeFunc(id, ch)
}
func (h mockChatHub) Unsubscribe(id game.ID, sub chat.SubscriberID) {
	h.unsubscribeFunc(id, sub)
}
func (h mockChatHub) Publish(ctx context.Context, id game.ID, name player.Name, text string) error {
	return h.publishFunc(ctx, id, name, text)
}
