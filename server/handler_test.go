package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
)

func newTestServer(t *testing.T, reg mockRegistry) *Server {
	t.Helper()
	cfg := Config{StopDur: 1, HTTPSPort: 443, NoTLSRedirect: true}
	p := Parameters{
		Log:       new(testLogger),
		Tokenizer: mockTokenizer{readUsernameFunc: func(string) (string, error) { return "selene", nil }},
		Registry:  reg,
		ChatHub:   mockChatHub{},
	}
	s, err := cfg.NewServer(p)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	return s
}

func TestHandleCreateGame(t *testing.T) {
	reg := mockRegistry{
		createGameFunc: func(ctx context.Context, name player.Name) (game.Info, error) {
			return game.Info{}, nil
		},
	}
	s := newTestServer(t, reg)
	r := httptest.NewRequest(http.MethodPost, "/game/create", nil)
	r.Header.Set(headerAuthorization, "Bearer tok")
	w := httptest.NewRecorder()
	s.httpsHandler()(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("wanted status 200, got %v: %v", w.Code, w.Body.String())
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	s := newTestServer(t, mockRegistry{})
	r := httptest.NewRequest(http.MethodGet, "/game/list", nil)
	w := httptest.NewRecorder()
	s.httpsHandler()(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wanted status 401, got %v", w.Code)
	}
}

func TestHandleListGames(t *testing.T) {
	reg := mockRegistry{
		listGamesFunc: func() []game.Info { return []game.Info{{ID: 1}} },
	}
	s := newTestServer(t, reg)
	r := httptest.NewRequest(http.MethodGet, "/game/list", nil)
	r.Header.Set(headerAuthorization, "Bearer tok")
	w := httptest.NewRecorder()
	s.httpsHandler()(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("wanted status 200, got %v: %v", w.Code, w.Body.String())
	}
}

func TestHandleGetGame(t *testing.T) {
	reg := mockRegistry{
		getGameFunc: func(ctx context.Context, id game.ID, name player.Name) (game.Detail, error) {
			return game.Detail{Info: game.Info{ID: id}, BagSize: 93}, nil
		},
	}
	s := newTestServer(t, reg)
	r := httptest.NewRequest(http.MethodGet, "/game/get?gameId=1", nil)
	r.Header.Set(headerAuthorization, "Bearer tok")
	w := httptest.NewRecorder()
	s.httpsHandler()(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("wanted status 200, got %v: %v", w.Code, w.Body.String())
	}
}

func TestHandleGetGame_missingGameID(t *testing.T) {
	s := newTestServer(t, mockRegistry{})
	r := httptest.NewRequest(http.MethodGet, "/game/get", nil)
	r.Header.Set(headerAuthorization, "Bearer tok")
	w := httptest.NewRecorder()
	s.httpsHandler()(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("wanted status 400, got %v", w.Code)
	}
}

func TestHandleListMoves(t *testing.T) {
	reg := mockRegistry{
		listMovesFunc: func(ctx context.Context, id game.ID, name player.Name) ([]game.MoveRecord, error) {
			return []game.MoveRecord{{Number: 1, Pass: true}}, nil
		},
	}
	s := newTestServer(t, reg)
	r := httptest.NewRequest(http.MethodGet, "/game/moves?gameId=1", nil)
	r.Header.Set(headerAuthorization, "Bearer tok")
	w := httptest.NewRecorder()
	s.httpsHandler()(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("wanted status 200, got %v: %v", w.Code, w.Body.String())
	}
}
