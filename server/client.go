package server

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/okekefrancis/crazy8s/protocol"
)

// client represents one connected participant. The id serves as the
// player's socket handle within games.
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	server *GameServer
}

// readPump decodes inbound messages and hands them to the server until the
// connection drops.
func (c *client) readPump() {
	defer func() {
		c.server.removeClient(c)
		close(c.send)
		c.conn.Close()
		c.server.log.WithField("player_id", c.id).Info("participant disconnected")
	}()

	for {
		_, bytes, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(bytes, &msg); err != nil {
			c.sendError("Malformed message", "")
			continue
		}

		c.server.dispatch(c, msg)
	}
}

// writePump drains the send channel onto the websocket
func (c *client) writePump() {
	for bytes := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, bytes); err != nil {
			return
		}
	}
}

func (c *client) write(bytes []byte) {
	select {
	case c.send <- bytes:
	default:
		// slow consumer; drop rather than stall the room
	}
}

// emit sends a single event to this participant only
func (c *client) emit(event protocol.Event, payload interface{}) {
	bytes, err := json.Marshal(protocol.OutboundMessage{Event: event, Payload: payload})
	if err != nil {
		return
	}
	c.write(bytes)
}

func (c *client) sendError(message, code string) {
	c.emit(protocol.Error, protocol.ErrorPayload{Message: message, Code: code})
}
