package server

import (
	"encoding/json"
	"sync"

	"github.com/okekefrancis/crazy8s/protocol"
)

// room groups the connected participants of one game. Its mutex is the
// per-game serialization point: every operation that mutates the game's
// turn state runs the full load, validate, dispatch, finalize, persist
// sequence while holding it. Rooms for different games proceed in parallel.
type room struct {
	gameID string
	mu     sync.Mutex

	clientsMu sync.RWMutex
	clients   map[string]*client
}

func newRoom(gameID string) *room {
	return &room{
		gameID:  gameID,
		clients: map[string]*client{},
	}
}

func (r *room) add(c *client) {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	r.clients[c.id] = c
}

func (r *room) remove(clientID string) {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	delete(r.clients, clientID)
}

func (r *room) empty() bool {
	r.clientsMu.RLock()
	defer r.clientsMu.RUnlock()
	return len(r.clients) == 0
}

// send routes outbound messages: messages without a socket id go to every
// participant in the room, the rest to their addressee only.
func (r *room) send(msgs []protocol.OutboundMessage) {
	r.clientsMu.RLock()
	defer r.clientsMu.RUnlock()

	for _, msg := range msgs {
		bytes, err := json.Marshal(msg)
		if err != nil {
			continue
		}

		if msg.SocketID == "" {
			for _, c := range r.clients {
				c.write(bytes)
			}
			continue
		}
		if c, ok := r.clients[msg.SocketID]; ok {
			c.write(bytes)
		}
	}
}
