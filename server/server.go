// Package server runs the http transport that lets authenticated players
// create, join, and play games, and exchange chat messages over a websocket.
package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
	"github.com/jacobpatterson1549/selene-bananas/game/message"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/game/socket"
	"github.com/jacobpatterson1549/selene-bananas/server/certificate"
	"github.com/jacobpatterson1549/selene-bananas/server/log"
)

type (
	// Server serves the game API: creating/joining/playing games, and the
	// per-game chat websocket. It never issues session tokens, only verifies
	// ones already issued by an external authentication collaborator.
	Server struct {
		wg          sync.WaitGroup
		log         log.Logger
		tokenizer   Tokenizer
		registry    Registry
		chatHub     ChatHub
		socketCfg   socket.Config
		upgrader    websocket.Upgrader
		httpServer  *http.Server
		httpsServer *http.Server
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// HTTPPort is the TCP port for http requests. All traffic is redirected to the https port.
		HTTPPort int
		// HTTPSPort is the TCP port for https requests.
		HTTPSPort int
		// StopDur bounds how long Stop waits for in-flight requests to finish.
		StopDur time.Duration
		// TLSCertFile/TLSKeyFile are paths to a certificate/key pair, used when set.
		TLSCertFile string
		TLSKeyFile  string
		// Challenge answers ACME HTTP-01 challenges when automated certificate management is used.
		Challenge certificate.Challenge
		// NoTLSRedirect disables the http->https redirect when true, for environments that terminate TLS upstream.
		NoTLSRedirect bool
	}

	// Tokenizer verifies a previously-issued session token.
	Tokenizer interface {
		ReadUsername(tokenString string) (string, error)
	}

	// Registry is the external command surface of the game session registry.
	Registry interface {
		CreateGame(ctx context.Context, name player.Name) (game.Info, error)
		ListGames() []game.Info
		JoinGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error)
		GetGame(ctx context.Context, id game.ID, name player.Name) (game.Detail, error)
		StartGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error)
		EndGame(ctx context.Context, id game.ID, name player.Name) (game.Info, error)
		MakeMove(ctx context.Context, id game.ID, name player.Name, mv message.Move) (message.Message, error)
		ListMoves(ctx context.Context, id game.ID, name player.Name) ([]game.MoveRecord, error)
	}

	// ChatHub is the external command surface of the chat fan-out hub.
	ChatHub interface {
		Subscribe(id game.ID, ch chan<- chat.Message) chat.SubscriberID
		Unsubscribe(id game.ID, sub chat.SubscriberID)
		Publish(ctx context.Context, id game.ID, name player.Name, text string) error
	}

	// Parameters contains the interfaces needed to create a new server.
	Parameters struct {
		Log       log.Logger
		Tokenizer Tokenizer
		Registry  Registry
		ChatHub   ChatHub
		SocketCfg socket.Config
	}
)

const (
	// headerAuthorization is the request header the session token is read from.
	headerAuthorization = "Authorization"
)

// NewServer creates a Server from the Config and Parameters.
func (cfg Config) NewServer(p Parameters) (*Server, error) {
	if err := cfg.validate(p); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	if cfg.HTTPPort <= 0 {
		httpAddr = ""
	}
	httpsAddr := fmt.Sprintf(":%d", cfg.HTTPSPort)
	s := Server{
		log:         p.Log,
		tokenizer:   p.Tokenizer,
		registry:    p.Registry,
		chatHub:     p.ChatHub,
		socketCfg:   p.SocketCfg,
		upgrader:    websocket.Upgrader{},
		httpServer:  &http.Server{Addr: httpAddr},
		httpsServer: &http.Server{Addr: httpsAddr},
		Config:      cfg,
	}
	s.httpServer.Handler = http.HandlerFunc(s.redirectToHTTPS)
	s.httpsServer.Handler = s.httpsHandler()
	return &s, nil
}

func (cfg Config) validate(p Parameters) error {
	switch {
	case p.Log == nil:
		return fmt.Errorf("log required")
	case p.Tokenizer == nil:
		return fmt.Errorf("tokenizer required")
	case p.Registry == nil:
		return fmt.Errorf("registry required")
	case p.ChatHub == nil:
		return fmt.Errorf("chat hub required")
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	case cfg.HTTPSPort <= 0:
		return fmt.Errorf("positive https port required")
	}
	return nil
}

// httpsHandler checks authentication and routes requests to the game/chat endpoints.
func (s *Server) httpsHandler() http.HandlerFunc {
	mux := http.NewServeMux()
	mux.HandleFunc("/game/create", s.handleCreateGame)
	mux.HandleFunc("/game/list", s.handleListGames)
	mux.HandleFunc("/game/join", s.handleJoinGame)
	mux.HandleFunc("/game/get", s.handleGetGame)
	mux.HandleFunc("/game/start", s.handleStartGame)
	mux.HandleFunc("/game/end", s.handleEndGame)
	mux.HandleFunc("/game/move", s.handleMakeMove)
	mux.HandleFunc("/game/moves", s.handleListMoves)
	mux.HandleFunc("/game/chat", s.handleChat)
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Challenge.IsFor(r.URL.Path) {
			if err := s.Challenge.Handle(w, r.URL.Path); err != nil {
				s.writeInternalError(w, err)
			}
			return
		}
		if r.TLS == nil && !s.NoTLSRedirect {
			s.redirectToHTTPS(w, r)
			return
		}
		name, err := s.authenticate(r)
		if err != nil {
			s.log.Printf("authenticating request: %v", err)
			httpError(w, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), playerNameKey{}, name)
		mux.ServeHTTP(w, r.WithContext(ctx))
	}
}

type playerNameKey struct{}

// authenticate verifies the bearer session token and returns the player name it names.
func (s *Server) authenticate(r *http.Request) (player.Name, error) {
	authorization := r.Header.Get(headerAuthorization)
	const prefix = "Bearer "
	if len(authorization) <= len(prefix) || authorization[:len(prefix)] != prefix {
		return "", fmt.Errorf("missing bearer token")
	}
	username, err := s.tokenizer.ReadUsername(authorization[len(prefix):])
	if err != nil {
		return "", err
	}
	return player.Name(username), nil
}

func playerName(r *http.Request) player.Name {
	name, _ := r.Context().Value(playerNameKey{}).(player.Name)
	return name
}

// Run starts the server asynchronously until it receives a shutdown signal.
func (s *Server) Run(ctx context.Context) <-chan error {
	errC := make(chan error, 2)
	if len(s.httpServer.Addr) > 0 {
		go func() { errC <- s.httpServer.ListenAndServe() }()
	}
	s.log.Printf("starting https server at https://127.0.0.1%v", s.httpsServer.Addr)
	go func() { errC <- s.serveHTTPS() }()
	return errC
}

// serveHTTPS listens on the https address, loading the TLS certificate and key from their files when both are configured; otherwise it serves plain http.
func (s *Server) serveHTTPS() error {
	ln, err := net.Listen("tcp", s.httpsServer.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	if len(s.TLSCertFile) != 0 && len(s.TLSKeyFile) != 0 {
		cert, err := tls.LoadX509KeyPair(s.TLSCertFile, s.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("loading tls certificate: %w", err)
		}
		tlsConfig := &tls.Config{
			NextProtos:   []string{"http/1.1"},
			Certificates: []tls.Certificate{cert},
		}
		ln = tls.NewListener(ln, tlsConfig)
	}
	return s.httpsServer.Serve(ln) // BLOCKING
}

// Stop asks the server to shut down and waits for in-flight requests to finish.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	httpsErr := s.httpsServer.Shutdown(ctx)
	httpErr := s.httpServer.Shutdown(ctx)
	switch {
	case httpsErr != nil:
		return httpsErr
	case httpErr != nil:
		return httpErr
	}
	s.wg.Wait()
	return nil
}

func (s *Server) redirectToHTTPS(w http.ResponseWriter, r *http.Request) {
	host := r.Host
	if i := lastColon(host); i >= 0 {
		host = host[:i]
	}
	if s.httpsServer.Addr != ":443" && !s.NoTLSRedirect {
		host += s.httpsServer.Addr
	}
	http.Redirect(w, r, "https://"+host+r.URL.Path, http.StatusTemporaryRedirect)
}

func lastColon(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return i
		}
	}
	return -1
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.writeInternalError(w, fmt.Errorf("writing response: %w", err))
	}
}

func (s *Server) writeInternalError(w http.ResponseWriter, err error) {
	s.log.Printf("server error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func httpError(w http.ResponseWriter, statusCode int) {
	http.Error(w, http.StatusText(statusCode), statusCode)
}

func gameIDFromQuery(r *http.Request) (game.ID, error) {
	s := r.URL.Query().Get("gameId")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid gameId: %w", err)
	}
	return game.ID(n), nil
}
