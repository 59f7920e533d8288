// Package message contains the wire types passed between a socket and the
// session registry/game actors.
package message

import (
	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
)

type (
	// Type identifies the purpose of a Message.
	Type int

	// Message carries a request to, or a notification from, a game.
	Message struct {
		Type Type `json:"type"`
		// Info is free text for the player, such as a rejection reason.
		Info string `json:"info,omitempty"`
		// Game is the summary state of the game the message concerns.
		Game *game.Info `json:"game,omitempty"`
		// Detail is the caller's own rack and the bag size, for GetGame.
		Detail *game.Detail `json:"detail,omitempty"`
		// Games lists every joinable/in-progress game, for ListGames.
		Games []game.Info `json:"games,omitempty"`
		// Move carries the tiles of a MakeMove request.
		Move *Move `json:"move,omitempty"`
		// MoveRecord is the committed move, for a MakeMove reply.
		MoveRecord *game.MoveRecord `json:"moveRecord,omitempty"`
		// Moves is the move history in play order, for ListMoves.
		Moves []game.MoveRecord `json:"moves,omitempty"`
		// PlayerName is the player the message is to/from; not marshalled,
		// the transport fills it in from the authenticated connection.
		PlayerName player.Name `json:"-"`
	}

	// Move is the payload of a MakeMove request: exactly one of Pass,
	// Exchange or Place should be set.
	Move struct {
		Pass     bool          `json:"pass,omitempty"`
		Exchange []int         `json:"exchange,omitempty"` // tile IDs to exchange
		Place    []PlacedTile `json:"place,omitempty"`
	}

	// PlacedTile is one tile placed as part of a Place move.
	PlacedTile struct {
		TileID int    `json:"tileId"`
		Row    int    `json:"row"`
		Col    int    `json:"col"`
		Letter string `json:"letter,omitempty"` // chosen letter, for a blank
	}
)

const (
	_ Type = iota
	// CreateGame opens a new game.
	CreateGame
	// JoinGame seats the caller in a game; idempotent if already seated.
	JoinGame
	// GetGame requests the caller's own view of a game: summary, rack, and
	// bag size.
	GetGame
	// StartGame transitions a game to InProgress once it has >= 2 players.
	StartGame
	// EndGame ends a game before its natural conclusion.
	EndGame
	// MakeMove applies a Pass, Exchange, or Place move.
	MakeMove
	// ListGames requests the lobby's current game list.
	ListGames
	// ListMoves requests the move history of a game.
	ListMoves
	// GameInfos is a server notification that the game list has changed.
	GameInfos
	// GameChat carries a chat message to or from a game's subscribers.
	GameChat
	// SocketWarning reports a rejected, recoverable request to the caller.
	SocketWarning
	// SocketError reports an unexpected internal failure to the caller.
	SocketError
)
