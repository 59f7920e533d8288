// Package registry tracks the set of live games and routes requests to the
// actor goroutine running each one.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gamedb "github.com/jacobpatterson1549/selene-bananas/db/game"
	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/engine"
	"github.com/jacobpatterson1549/selene-bananas/game/message"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/server/log"
)

type (
	// Manager creates games and routes requests to the one they concern.
	Manager struct {
		mu     sync.Mutex
		games  map[game.ID]chan<- engine.Command
		infos  map[game.ID]game.Info
		lastID game.ID
		Config
	}

	// Config is used to create a Manager.
	Config struct {
		// Log is used to log unexpected errors.
		Log log.Logger
		// MaxGames is the maximum number of games the manager will create.
		MaxGames int
		// GameConfig is used to create each new game.
		GameConfig engine.Config
		// IdlePeriod is how long a game runs with no activity before its actor exits.
		IdlePeriod time.Duration
		// Recorder mirrors game lifecycle events to persistent storage. May be nil.
		Recorder gamedb.Backend
		// Points credits a finished game's standings to persisted user point
		// totals. May be nil.
		Points UserPoints
	}

	// UserPoints mirrors a finished game's standings to a persisted,
	// cross-game point total. db/user.Dao satisfies this.
	UserPoints interface {
		UpdatePointsIncrement(ctx context.Context, usernamePoints map[string]int) error
	}
)

// NewManager creates a Manager from the config.
func (cfg Config) NewManager() (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating game manager: validation: %w", err)
	}
	m := Manager{
		games:  make(map[game.ID]chan<- engine.Command, cfg.MaxGames),
		infos:  make(map[game.ID]game.Info, cfg.MaxGames),
		Config: cfg,
	}
	return &m, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.MaxGames < 1:
		return fmt.Errorf("must be able to create at least one game")
	}
	return nil
}

// CreateGame allocates a new game, seats name in it, and starts its actor goroutine.
func (m *Manager) CreateGame(ctx context.Context, name player.Name) (game.Info, error) {
	m.mu.Lock()
	if len(m.games) >= m.MaxGames {
		m.mu.Unlock()
		return game.Info{}, fmt.Errorf("the maximum number of games have already been created (%v)", m.MaxGames)
	}
	id := m.lastID + 1
	g, err := engine.NewGame(id, m.GameConfig)
	if err != nil {
		m.mu.Unlock()
		return game.Info{}, fmt.Errorf("creating game: %w", err)
	}
	m.lastID = id
	in := make(chan engine.Command)
	m.games[id] = in
	m.mu.Unlock()
	go g.Run(ctx, m.IdlePeriod, in)
	info, err := m.send(ctx, id, message.Message{Type: message.JoinGame, PlayerName: name})
	if err != nil {
		m.mu.Lock()
		delete(m.games, id)
		delete(m.infos, id)
		m.mu.Unlock()
		return game.Info{}, err
	}
	if m.Recorder != nil {
		r := gamedb.Record{ID: int(info.ID), Status: int(info.Status), MaxPlayers: info.MaxPlayers, CreatedAt: info.CreatedAt}
		if _, err := m.Recorder.CreateGame(ctx, r); err != nil {
			m.Log.Printf("recording creation of game %v: %v", info.ID, err)
		}
	}
	return info, nil
}

// ListGames returns the most recently known state of every joinable or
// in-progress game, without blocking on any game's actor goroutine.
// Finished games are omitted.
func (m *Manager) ListGames() []game.Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	infos := make([]game.Info, 0, len(m.infos))
	for _, info := range m.infos {
		if info.Status == game.Finished {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// JoinGame seats name in the game. Joining a second time is a no-op.
func (m *Manager) JoinGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error) {
	return m.send(ctx, id, message.Message{Type: message.JoinGame, PlayerName: name})
}

// GetGame fetches name's own view of the game: its summary plus name's
// rack and the bag's remaining size.
func (m *Manager) GetGame(ctx context.Context, id game.ID, name player.Name) (game.Detail, error) {
	reply, err := m.sendFull(ctx, id, message.Message{Type: message.GetGame, PlayerName: name})
	if err != nil {
		return game.Detail{}, err
	}
	if reply.Type == message.SocketWarning {
		return game.Detail{}, errors.New(reply.Info)
	}
	if reply.Detail == nil {
		return game.Detail{}, fmt.Errorf("game %v did not return a detail view", id)
	}
	return *reply.Detail, nil
}

// StartGame transitions the game to InProgress.
func (m *Manager) StartGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error) {
	info, err := m.send(ctx, id, message.Message{Type: message.StartGame, PlayerName: name})
	if err == nil {
		m.recordStatus(ctx, info)
	}
	return info, err
}

// EndGame ends the game before its natural conclusion.
func (m *Manager) EndGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error) {
	info, err := m.send(ctx, id, message.Message{Type: message.EndGame, PlayerName: name})
	if err == nil {
		m.recordStatus(ctx, info)
		m.recordScores(ctx, info)
	}
	return info, err
}

// MakeMove applies a pass, exchange, or placement for name in the game.
func (m *Manager) MakeMove(ctx context.Context, id game.ID, name player.Name, mv message.Move) (message.Message, error) {
	reply, err := m.sendFull(ctx, id, message.Message{Type: message.MakeMove, PlayerName: name, Move: &mv})
	if err != nil || reply.Type == message.SocketWarning || reply.Type == message.SocketError {
		return reply, err
	}
	if m.Recorder != nil && reply.MoveRecord != nil {
		mr := *reply.MoveRecord
		r := gamedb.MoveRecord{
			GameID:     int(id),
			Number:     mr.Number,
			PlayerName: string(mr.PlayerName),
			Pass:       mr.Pass,
			Exchanged:  mr.Exchanged,
			Word:       mr.Word,
			Score:      mr.Score,
			CreatedAt:  mr.CreatedAt,
		}
		if err := m.Recorder.RecordMove(ctx, r); err != nil {
			m.Log.Printf("recording move %d of game %v: %v", mr.Number, id, err)
		}
	}
	if reply.Game != nil && reply.Game.Status == game.Finished {
		m.recordStatus(ctx, *reply.Game)
		m.recordScores(ctx, *reply.Game)
		m.awardPoints(ctx, *reply.Game)
	}
	return reply, nil
}

// awardPoints credits the winner of a naturally-finished game with their
// final score (floored at 2) and every other seated player with a single
// consolation point. It is only called on the natural-finish path of
// MakeMove, not on a forced EndGame: an early termination has no winner to
// credit.
func (m *Manager) awardPoints(ctx context.Context, info game.Info) {
	if m.Points == nil || len(info.Players) == 0 {
		return
	}
	winner := info.Players[0]
	for _, name := range info.Players {
		if info.Scores[name] > info.Scores[winner] {
			winner = name
		}
	}
	usernamePoints := make(map[string]int, len(info.Players))
	for _, name := range info.Players {
		if name == winner {
			points := info.Scores[name]
			if points < 2 {
				points = 2
			}
			usernamePoints[name] = points
			continue
		}
		usernamePoints[name] = 1
	}
	if err := m.Points.UpdatePointsIncrement(ctx, usernamePoints); err != nil {
		m.Log.Printf("awarding points for game %v: %v", info.ID, err)
	}
}

// recordStatus mirrors a game's current status to the Recorder, if set.
func (m *Manager) recordStatus(ctx context.Context, info game.Info) {
	if m.Recorder == nil {
		return
	}
	if err := m.Recorder.UpdateGameStatus(ctx, int(info.ID), int(info.Status)); err != nil {
		m.Log.Printf("recording status of game %v: %v", info.ID, err)
	}
}

// recordScores mirrors every player's final score to the Recorder, if set.
func (m *Manager) recordScores(ctx context.Context, info game.Info) {
	if m.Recorder == nil {
		return
	}
	for name, score := range info.Scores {
		r := gamedb.PlayerRecord{GameID: int(info.ID), PlayerName: name, Score: score}
		if err := m.Recorder.RecordPlayerScore(ctx, r); err != nil {
			m.Log.Printf("recording score for %s in game %v: %v", name, info.ID, err)
		}
	}
}

// ListMoves fetches the move history of the game, ordered by move number.
func (m *Manager) ListMoves(ctx context.Context, id game.ID, name player.Name) ([]game.MoveRecord, error) {
	reply, err := m.sendFull(ctx, id, message.Message{Type: message.ListMoves, PlayerName: name})
	if err != nil {
		return nil, err
	}
	if reply.Type == message.SocketWarning {
		return nil, errors.New(reply.Info)
	}
	return reply.Moves, nil
}

// send routes m to the game's actor and returns its resulting game.Info,
// caching it for ListGames.
func (m *Manager) send(ctx context.Context, id game.ID, msg message.Message) (game.Info, error) {
	reply, err := m.sendFull(ctx, id, msg)
	if err != nil {
		return game.Info{}, err
	}
	if reply.Type == message.SocketWarning {
		return game.Info{}, errors.New(reply.Info)
	}
	if reply.Game == nil {
		return game.Info{}, fmt.Errorf("game %v did not return its state", id)
	}
	return *reply.Game, nil
}

// sendFull routes msg to the game's actor and returns its raw reply.
func (m *Manager) sendFull(ctx context.Context, id game.ID, msg message.Message) (message.Message, error) {
	m.mu.Lock()
	in, ok := m.games[id]
	m.mu.Unlock()
	if !ok {
		return message.Message{}, fmt.Errorf("no game with id %v", id)
	}
	reply := make(chan message.Message, 1)
	cmd := engine.Command{Msg: msg, Reply: reply}
	select {
	case in <- cmd:
	case <-ctx.Done():
		return message.Message{}, ctx.Err()
	}
	select {
	case out := <-reply:
		if out.Game != nil {
			m.mu.Lock()
			m.infos[id] = *out.Game
			m.mu.Unlock()
		}
		return out, nil
	case <-ctx.Done():
		return message.Message{}, ctx.Err()
	}
}
