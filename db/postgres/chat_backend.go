package postgres

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/db"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
)

// ChatBackend persists chat messages, satisfying chat.Persister.
type ChatBackend struct {
	db.Database
}

// NewChatBackend creates a backend manager for chat messages.
func NewChatBackend(d db.Database) ChatBackend {
	return ChatBackend{Database: d}
}

// Save stores a chat message.
func (cb ChatBackend) Save(ctx context.Context, m chat.Message) error {
	q := db.NewExecFunction("chat_message_create", int(m.GameID), string(m.PlayerName), m.Text, m.CreatedAt)
	if err := cb.Exec(ctx, q); err != nil {
		return fmt.Errorf("saving chat message: %w", err)
	}
	return nil
}
