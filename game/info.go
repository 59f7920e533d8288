package game

import (
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/game/tile"
)

// Info is the lobby-facing summary of a game: enough to list and join it
// without exposing the board or any player's rack. This is the
// GameSummary of the command surface.
type Info struct {
	ID         ID             `json:"id"`
	Status     Status         `json:"status"`
	Players    []string       `json:"players"`
	MaxPlayers int            `json:"maxPlayers"`
	CreatedAt  int64          `json:"createdAt"`
	FinishedAt int64          `json:"finishedAt,omitempty"`
	Scores     map[string]int `json:"scores,omitempty"`
}

// CanJoin reports whether a player may join the game: it must not already
// be started or finished, and must not be full unless the player already
// holds a seat. A player who already holds a seat may join again (join is
// idempotent, handled by the caller).
func (i Info) CanJoin(playerName string) bool {
	if i.Status != NotStarted {
		return false
	}
	if len(i.Players) >= i.MaxPlayers {
		for _, p := range i.Players {
			if p == playerName {
				return true // already joined, re-join is idempotent
			}
		}
		return false
	}
	return true
}

// Detail is the GameDetail returned by GetGame: the lobby summary plus the
// viewing player's own rack and the bag's remaining size. It never carries
// another player's rack.
type Detail struct {
	Info
	Rack    []tile.Tile `json:"rack"`
	BagSize int         `json:"bagSize"`
}

// MoveRecord is one append-only entry in a game's move history: a pass, an
// exchange, or a tile placement. Defined here, rather than in package
// engine, so that both engine and message can depend on it without a
// cycle - engine mutates a Game and appends these; message carries them
// over the wire unchanged.
type MoveRecord struct {
	Number      int         `json:"number"`
	PlayerName  player.Name `json:"playerName"`
	Pass        bool        `json:"pass,omitempty"`
	Exchanged   int         `json:"exchanged,omitempty"`
	Word        string      `json:"word,omitempty"`
	TilesPlaced []tile.Tile `json:"tilesPlaced,omitempty"`
	Score       int         `json:"score,omitempty"`
	CreatedAt   int64       `json:"createdAt"`
}
