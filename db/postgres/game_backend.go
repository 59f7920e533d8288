package postgres

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/db"
	gamedb "github.com/jacobpatterson1549/selene-bananas/db/game"
)

// GameBackend is a backend manager for games, their players, and their moves.
type GameBackend struct {
	db.Database
}

// NewGameBackend creates a backend manager for games.
func NewGameBackend(d db.Database) GameBackend {
	return GameBackend{Database: d}
}

// CreateGame adds a game, returning its assigned ID.
func (gb GameBackend) CreateGame(ctx context.Context, r gamedb.Record) (int, error) {
	cols := []string{"id"}
	q := db.NewQueryFunction("game_create", cols, r.Status, r.MaxPlayers, r.CreatedAt)
	row := gb.Query(ctx, q)
	var id int
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("creating game: %w", err)
	}
	return id, nil
}

// UpdateGameStatus changes the status of a game.
func (gb GameBackend) UpdateGameStatus(ctx context.Context, gameID, status int) error {
	q := db.NewExecFunction("game_update_status", gameID, status)
	if err := gb.Exec(ctx, q); err != nil {
		return fmt.Errorf("updating game status: %w", err)
	}
	return nil
}

// RecordPlayerScore upserts a player's score for a game.
func (gb GameBackend) RecordPlayerScore(ctx context.Context, r gamedb.PlayerRecord) error {
	q := db.NewExecFunction("game_player_record_score", r.GameID, r.PlayerName, r.Score)
	if err := gb.Exec(ctx, q); err != nil {
		return fmt.Errorf("recording player score: %w", err)
	}
	return nil
}

// RecordMove appends a move to a game's history.
func (gb GameBackend) RecordMove(ctx context.Context, r gamedb.MoveRecord) error {
	q := db.NewExecFunction("game_move_create",
		r.GameID, r.Number, r.PlayerName, r.Pass, r.Exchanged, r.Word, r.Score, r.CreatedAt)
	if err := gb.Exec(ctx, q); err != nil {
		return fmt.Errorf("recording move: %w", err)
	}
	return nil
}

