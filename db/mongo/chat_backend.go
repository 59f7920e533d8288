package mongo

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/db"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	chatCollectionName = "chat_messages"
	gameIDField         = "gameId"
	playerNameField     = "playerName"
	textField           = "text"
	createdAtField      = "createdAt"
)

// ChatBackend persists chat messages to a mongo collection, satisfying
// chat.Persister.
type ChatBackend struct {
	Messages *mongo.Collection
	db.Config
}

// NewChatBackend creates a backend manager for the chat messages collection.
func NewChatBackend(ctx context.Context, cfg db.Config, databaseURL string) (*ChatBackend, error) {
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	messages := database.Collection(chatCollectionName)
	cb := ChatBackend{
		Messages: messages,
		Config:   cfg,
	}
	return &cb, nil
}

// Setup creates an index on gameId so a game's chat history can be listed
// back out in order.
func (cb *ChatBackend) Setup(ctx context.Context) error {
	indexOptions := options.Index()
	document := d(e(gameIDField, 1), e(createdAtField, 1))
	model := mongo.IndexModel{
		Keys:    document,
		Options: indexOptions,
	}
	indexes := cb.Messages.Indexes()
	ctx, cancelFunc := context.WithTimeout(ctx, cb.Config.QueryPeriod)
	defer cancelFunc()
	if _, err := indexes.CreateOne(ctx, model); err != nil {
		return fmt.Errorf("creating gameId index: %w", err)
	}
	return nil
}

// Save stores a chat message.
func (cb *ChatBackend) Save(ctx context.Context, m chat.Message) error {
	document := d(
		e(gameIDField, int(m.GameID)),
		e(playerNameField, string(m.PlayerName)),
		e(textField, m.Text),
		e(createdAtField, m.CreatedAt),
	)
	ctx, cancelFunc := context.WithTimeout(ctx, cb.Config.QueryPeriod)
	defer cancelFunc()
	if _, err := cb.Messages.InsertOne(ctx, document); err != nil {
		return fmt.Errorf("saving chat message: %w", err)
	}
	return nil
}
