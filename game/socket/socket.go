// Package socket handles chat communication with a player over a websocket connection
package socket

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/server/log"
)

type (
	// Socket reads chat messages from, and writes chat messages to, a player's browser
	Socket struct {
		debug          bool
		log            log.Logger
		conn           *websocket.Conn
		timeFunc       func() int64
		playerName     player.Name
		gameID         game.ID
		active         bool
		pongPeriod     time.Duration
		pingPeriod     time.Duration
		idlePeriod     time.Duration
		httpPingPeriod time.Duration
	}

	// Config contains commonly shared Socket properties
	Config struct {
		// Debug is a flag that causes the socket to log the text of messages that are read/written
		Debug bool
		// Log is used to log errors and other information
		Log log.Logger
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// Used to set ping/pong deadlines
		TimeFunc func() int64
		// PongPeriod is the amount of time that between messages that can pass before the connection is invalid
		PongPeriod time.Duration
		// PingPeriod is the amount of time between sending ping messages to the connection to keep it active
		// Should be less than PongPeriod
		PingPeriod time.Duration
		// IdlePeriod is the amount of time that can pass between handling non-ping messages before
		// the connection is considered idle and disconnected
		IdlePeriod time.Duration
		// HTTPPingPeriod is the amount of time between sending requests for the connection to send a http ping on a different socket
		// Heroku servers shut down if 30 minutes pass between HTTP requests
		HTTPPingPeriod time.Duration
	}

	// inMessage is a chat message read from the socket.
	inMessage struct {
		Text string `json:"text"`
	}
)

// NewSocket creates a socket for a player that has joined gameID.
func (cfg Config) NewSocket(conn *websocket.Conn, playerName player.Name, gameID game.ID) (*Socket, error) {
	if err := cfg.validate(conn, playerName); err != nil {
		return nil, fmt.Errorf("creating socket: validation: %w", err)
	}
	s := Socket{
		debug:          cfg.Debug,
		log:            cfg.Log,
		conn:           conn,
		timeFunc:       cfg.TimeFunc,
		playerName:     playerName,
		gameID:         gameID,
		pongPeriod:     cfg.PongPeriod,
		pingPeriod:     cfg.PingPeriod,
		idlePeriod:     cfg.IdlePeriod,
		httpPingPeriod: cfg.HTTPPingPeriod,
	}
	return &s, nil
}

func (cfg Config) validate(conn *websocket.Conn, playerName player.Name) error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case conn == nil:
		return fmt.Errorf("websocket connection required")
	case len(playerName) == 0:
		return fmt.Errorf("player name required")
	case cfg.PongPeriod <= 0:
		return fmt.Errorf("positive pong period required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.IdlePeriod <= 0:
		return fmt.Errorf("positive idle period required")
	case cfg.HTTPPingPeriod <= 0:
		return fmt.Errorf("positive http ping period required")
	case cfg.PingPeriod >= cfg.PongPeriod:
		return fmt.Errorf("ping period must be less than pong period")
	}
	return nil
}

// Run publishes chat messages read from the connection to publish, and
// writes messages received on outgoing to the connection.  It runs until
// the connection fails or ctx is cancelled.
func (s *Socket) Run(ctx context.Context, removeSocketFunc context.CancelFunc, publish func(text string), outgoing <-chan chat.Message) {
	readCtx, readCancelFunc := context.WithCancel(ctx)
	writeCtx, writeCancelFunc := context.WithCancel(ctx)
	go s.readMessages(readCtx, removeSocketFunc, writeCancelFunc, publish)
	s.writeMessages(writeCtx, readCancelFunc, outgoing)
}

func (s *Socket) readMessages(ctx context.Context, removeSocketFunc, writeCancelFunc context.CancelFunc, publish func(text string)) {
	defer func() {
		removeSocketFunc()
		writeCancelFunc()
		s.conn.Close()
	}()
	s.conn.SetPongHandler(s.refreshReadDeadline)
	for { // BLOCKS
		m, err := s.readMessage()
		select {
		case <-ctx.Done():
			return
		default:
			if err != nil {
				s.log.Printf("reading socket messages stopped for %v: %v", s.playerName, err)
				return
			}
		}
		publish(m.Text)
		s.active = true
	}
}

func (s *Socket) writeMessages(ctx context.Context, readCancelFunc context.CancelFunc, outgoing <-chan chat.Message) {
	pingTicker := time.NewTicker(s.pingPeriod)
	httpPingTicker := time.NewTicker(s.httpPingPeriod)
	idleTicker := time.NewTicker(s.idlePeriod)
	defer func() {
		pingTicker.Stop()
		httpPingTicker.Stop()
		idleTicker.Stop()
		readCancelFunc()
	}()
	var err error
	for { // BLOCKS
		select {
		case <-ctx.Done():
			return
		case m := <-outgoing:
			err = s.writeMessage(m)
		case <-pingTicker.C:
			err = s.writePing()
		case <-httpPingTicker.C:
			err = s.writeMessage(chat.Message{GameID: s.gameID})
		case <-idleTicker.C:
			if !s.active {
				CloseConn(s.conn, "closing socket due to inactivity")
				return
			}
			s.active = false
		}
		if err != nil {
			s.log.Printf("writing socket messages stopped for %v: %v", s.playerName, err)
			return
		}
	}
}

func (s *Socket) readMessage() (*inMessage, error) {
	var m inMessage
	err := s.conn.ReadJSON(&m)
	if err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
			return nil, fmt.Errorf("unexpected socket closure: %v", err)
		}
		return nil, fmt.Errorf("socket closed")
	}
	if s.debug {
		s.log.Printf("socket reading chat message from %v", s.playerName)
	}
	return &m, nil
}

func (s *Socket) writeMessage(m chat.Message) error {
	if s.debug {
		s.log.Printf("socket writing chat message to %v", s.playerName)
	}
	if err := s.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("writing socket message: %v", err)
	}
	return nil
}

func (s *Socket) writePing() error {
	if err := s.refreshWriteDeadline(); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

func (s *Socket) refreshReadDeadline(appData string) error {
	return s.refreshDeadline(s.conn.SetReadDeadline, s.pongPeriod)
}

func (s *Socket) refreshWriteDeadline() error {
	return s.refreshDeadline(s.conn.SetWriteDeadline, s.pingPeriod)
}

func (s *Socket) refreshDeadline(refreshDeadlineFunc func(t time.Time) error, period time.Duration) error {
	now := s.timeFunc()
	nowTime := time.Unix(now, 0)
	deadline := nowTime.Add(period)
	if err := refreshDeadlineFunc(deadline); err != nil {
		err = fmt.Errorf("error refreshing ping/pong deadline: %w", err)
		s.log.Printf("%v", err)
		return err
	}
	return nil
}

// CloseConn closes the websocket connection without reporting any errors.
func CloseConn(conn *websocket.Conn, reason string) {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	conn.WriteMessage(websocket.CloseMessage, data)
	conn.Close()
}
