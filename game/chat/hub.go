// Package chat fans chat messages for a game out to its subscribers,
// persisting each message before it is delivered.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/jacobpatterson1549/selene-bananas/game"
	"github.com/jacobpatterson1549/selene-bananas/game/player"
	"github.com/jacobpatterson1549/selene-bananas/server/log"
)

type (
	// SubscriberID identifies one subscriber's channel within a game.
	SubscriberID int64

	// Message is a single chat message sent to a game's subscribers.
	Message struct {
		GameID     game.ID     `json:"gameId"`
		PlayerName player.Name `json:"playerName"`
		Text       string      `json:"text"`
		CreatedAt  int64       `json:"createdAt"`
	}

	// Persister stores chat messages, for Games that want chat history
	// available to players who join after a message was sent.
	Persister interface {
		Save(ctx context.Context, m Message) error
	}

	// Hub tracks chat subscribers for every game and fans out published
	// messages to them, not blocking on a slow or stuck subscriber.
	Hub struct {
		mu        sync.Mutex
		subs      map[game.ID]map[SubscriberID]chan<- Message
		lastID    SubscriberID
		persister Persister
		log       log.Logger
		now       func() int64
	}

	// Config is used to create a Hub.
	Config struct {
		// Persister saves messages before they are broadcast. May be nil.
		Persister Persister
		// Log is used to log delivery problems.
		Log log.Logger
		// Now returns the current unix time in seconds.
		Now func() int64
	}
)

// NewHub creates a Hub from the config.
func (cfg Config) NewHub() (*Hub, error) {
	if cfg.Log == nil {
		return nil, fmt.Errorf("creating chat hub: log required")
	}
	h := Hub{
		subs:      make(map[game.ID]map[SubscriberID]chan<- Message),
		persister: cfg.Persister,
		log:       cfg.Log,
		now:       cfg.Now,
	}
	return &h, nil
}

// Subscribe registers a channel to receive messages published for id,
// returning a SubscriberID to later Unsubscribe with.
func (h *Hub) Subscribe(id game.ID, ch chan<- Message) SubscriberID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastID++
	sub := h.lastID
	if h.subs[id] == nil {
		h.subs[id] = make(map[SubscriberID]chan<- Message)
	}
	h.subs[id][sub] = ch
	return sub
}

// Unsubscribe removes a previously subscribed channel.
func (h *Hub) Unsubscribe(id game.ID, sub SubscriberID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[id]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subs, id)
	}
}

// Publish persists the message, if the Hub has a Persister, then fans it
// out to every current subscriber of the game without blocking.
func (h *Hub) Publish(ctx context.Context, id game.ID, name player.Name, text string) error {
	m := Message{
		GameID:     id,
		PlayerName: name,
		Text:       text,
		CreatedAt:  h.nowUnix(),
	}
	if h.persister != nil {
		if err := h.persister.Save(ctx, m); err != nil {
			return fmt.Errorf("saving chat message: %w", err)
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub, ch := range h.subs[id] {
		select {
		case ch <- m:
		default:
			h.log.Printf("chat: dropping message to subscriber %v of game %v: channel full", sub, id)
		}
	}
	return nil
}

func (h *Hub) nowUnix() int64 {
	if h.now != nil {
		return h.now()
	}
	return 0
}
