package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
	"github.com/jacobpatterson1549/selene-bananas/game/message"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/game/socket"
)

// handleCreateGame creates a game and seats the caller in it.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	name := playerName(r)
	info, err := s.registry.CreateGame(r.Context(), name)
	if err != nil {
		httpError(w, http.StatusConflict)
		return
	}
	s.writeJSON(w, info)
}

// handleListGames lists every joinable/in-progress game.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	infos := s.registry.ListGames()
	s.writeJSON(w, infos)
}

// handleJoinGame seats the caller in a game.
func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	info, err := s.registry.JoinGame(r.Context(), id, name)
	if err != nil {
		httpError(w, http.StatusConflict)
		return
	}
	s.writeJSON(w, info)
}

// handleGetGame returns the caller's own view of a game: its summary plus
// the caller's rack and the bag's remaining size.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	detail, err := s.registry.GetGame(r.Context(), id, name)
	if err != nil {
		httpError(w, http.StatusForbidden)
		return
	}
	s.writeJSON(w, detail)
}

// handleStartGame transitions a game to InProgress.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	info, err := s.registry.StartGame(r.Context(), id, name)
	if err != nil {
		httpError(w, http.StatusConflict)
		return
	}
	s.writeJSON(w, info)
}

// handleEndGame ends a game before its natural conclusion.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	info, err := s.registry.EndGame(r.Context(), id, name)
	if err != nil {
		httpError(w, http.StatusConflict)
		return
	}
	s.writeJSON(w, info)
}

// handleMakeMove applies a pass, exchange, or placement for the caller.
func (s *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	var mv message.Move
	if err := json.NewDecoder(r.Body).Decode(&mv); err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	reply, err := s.registry.MakeMove(r.Context(), id, name, mv)
	if err != nil {
		httpError(w, http.StatusConflict)
		return
	}
	if reply.Type == message.SocketWarning {
		http.Error(w, reply.Info, http.StatusUnprocessableEntity)
		return
	}
	s.writeJSON(w, reply)
}

// handleListMoves returns the move history of a game.
func (s *Server) handleListMoves(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	moves, err := s.registry.ListMoves(r.Context(), id, name)
	if err != nil {
		httpError(w, http.StatusForbidden)
		return
	}
	s.writeJSON(w, moves)
}

// handleChat upgrades the connection to a websocket and streams chat messages
// for a game to and from the caller until the connection closes.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromQuery(r)
	if err != nil {
		httpError(w, http.StatusBadRequest)
		return
	}
	name := playerName(r)
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrading chat connection for %v: %v", name, err)
		return
	}
	sck, err := s.socketCfg.NewSocket(conn, name, id)
	if err != nil {
		s.log.Printf("creating chat socket for %v: %v", name, err)
		socket.CloseConn(conn, "could not open chat socket")
		return
	}
	s.runChat(r.Context(), id, name, sck)
}

// runChat subscribes the socket to the game's chat and runs it until the
// connection or context ends, unsubscribing when done.
func (s *Server) runChat(ctx context.Context, id game.ID, name player.Name, sck *socket.Socket) {
	outgoing := make(chan chat.Message, 8)
	sub := s.chatHub.Subscribe(id, outgoing)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	publish := func(text string) {
		if err := s.chatHub.Publish(ctx, id, name, text); err != nil {
			s.log.Printf("publishing chat message from %v: %v", name, err)
		}
	}
	removeSocket := func() {
		s.chatHub.Unsubscribe(id, sub)
	}
	s.wg.Add(1)
	defer s.wg.Done()
	sck.Run(ctx, func() { removeSocket(); cancel() }, publish, outgoing)
}
