package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/jacobpatterson1549/selene-bananas/game/message"
)

// Command is one request dispatched to a running game's actor goroutine,
// paired with a channel the actor replies on. Routing every request
// through this one channel, processed one at a time by a single
// goroutine, is what makes a game's state changes serializable without an
// explicit lock.
type Command struct {
	Msg   message.Message
	Reply chan<- message.Message
}

// Run processes commands sent on in until ctx is done or in is closed,
// dispatching each by message type. It never touches the Game's state
// from any other goroutine, so the caller must not call Game methods
// directly once Run has been started; all access goes through in.
func (g *Game) Run(ctx context.Context, idlePeriod time.Duration, in <-chan Command) {
	var idleTimer *time.Timer
	var idleC <-chan time.Time
	if idlePeriod > 0 {
		idleTimer = time.NewTimer(idlePeriod)
		idleC = idleTimer.C
		defer idleTimer.Stop()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-idleC:
			g.cfg.Log.Printf("game %d closing after %v of inactivity", g.ID, idlePeriod)
			return
		case cmd, ok := <-in:
			if !ok {
				return
			}
			if idleTimer != nil {
				if !idleTimer.Stop() {
					<-idleTimer.C
				}
				idleTimer.Reset(idlePeriod)
			}
			g.handle(cmd)
		}
	}
}

func (g *Game) handle(cmd Command) {
	reply := message.Message{Type: cmd.Msg.Type}
	if err := g.dispatch(cmd.Msg, &reply); err != nil {
		switch w := err.(type) {
		case Warning:
			reply.Type = message.SocketWarning
			reply.Info = w.Error()
		default:
			g.cfg.Log.Printf("game %d: unexpected error handling %v: %v", g.ID, cmd.Msg.Type, err)
			reply.Type = message.SocketError
			reply.Info = "an unexpected error occurred"
		}
	}
	if cmd.Reply != nil {
		cmd.Reply <- reply
	}
}

func (g *Game) dispatch(m message.Message, reply *message.Message) error {
	switch m.Type {
	case message.JoinGame:
		if err := g.Join(m.PlayerName); err != nil {
			return err
		}
		info := g.Info()
		reply.Game = &info
	case message.GetGame:
		detail, err := g.Detail(m.PlayerName)
		if err != nil {
			return err
		}
		reply.Game = &detail.Info
		reply.Detail = &detail
	case message.StartGame:
		if err := g.Start(); err != nil {
			return err
		}
		info := g.Info()
		reply.Game = &info
	case message.EndGame:
		if err := g.End(m.PlayerName); err != nil {
			return err
		}
		info := g.Info()
		reply.Game = &info
	case message.MakeMove:
		if m.Move == nil {
			return Warning("a move is required")
		}
		mv, err := g.ApplyMove(m.PlayerName, *m.Move)
		if err != nil {
			return err
		}
		info := g.Info()
		reply.Game = &info
		reply.Info = mv.Word
		reply.MoveRecord = &mv
	case message.ListMoves:
		if _, i := g.playerByName(m.PlayerName); i < 0 {
			return Warning(fmt.Sprintf("%s is not a player in game %d", m.PlayerName, g.ID))
		}
		info := g.Info()
		reply.Game = &info
		reply.Moves = g.Moves()
	default:
		return Warning("unsupported message type for a game")
	}
	return nil
}
