package message

import (
	"net/http"

	"github.com/jacobpatterson1549/selene-bananas/game/player"
)

// Socket asks the socket manager to add or remove a websocket connection
// for a player, reporting the outcome on Result.
type Socket struct {
	Type       Type
	PlayerName player.Name
	Result     chan<- error
	http.ResponseWriter
	*http.Request
}
