// Package game persists completed and in-progress game state: the game
// itself, the players in it, and its move history.
package game

import "context"

type (
	// Record is the persisted summary of a game.
	Record struct {
		ID         int
		Status     int
		MaxPlayers int
		CreatedAt  int64
	}

	// PlayerRecord is a player's final standing in a game.
	PlayerRecord struct {
		GameID     int
		PlayerName string
		Score      int
	}

	// MoveRecord is one persisted move.
	MoveRecord struct {
		GameID     int
		Number     int
		PlayerName string
		Pass       bool
		Exchanged  int
		Word       string
		Score      int
		CreatedAt  int64
	}

	// Backend stores and retrieves games, their players, and their moves.
	Backend interface {
		// CreateGame adds a game, returning its assigned ID.
		CreateGame(ctx context.Context, r Record) (int, error)
		// UpdateGameStatus changes the status of a game.
		UpdateGameStatus(ctx context.Context, gameID, status int) error
		// RecordPlayerScore upserts a player's score for a game.
		RecordPlayerScore(ctx context.Context, r PlayerRecord) error
		// RecordMove appends a move to a game's history.
		RecordMove(ctx context.Context, r MoveRecord) error
	}
)
