package protocol

import "github.com/okekefrancis/crazy8s/deck"

// InboundMessage represents a message received from a participant
type InboundMessage struct {
	Event    Event       `json:"event"`
	GameID   string      `json:"gameId,omitempty"`
	JoinTag  string      `json:"joinTag,omitempty"`
	Username string      `json:"username,omitempty"`
	Cards    []deck.Card `json:"cards,omitempty"`
	AsSuite  deck.Suite  `json:"asSuite,omitempty"`
}

// OutboundMessage represents a message destined for the transport layer.
// A message with an empty SocketID is broadcast to the whole game room,
// otherwise it is sent to that participant only.
type OutboundMessage struct {
	SocketID string      `json:"-"`
	Event    Event       `json:"event"`
	Payload  interface{} `json:"payload,omitempty"`
}

// Broadcast builds a room-wide message
func Broadcast(event Event, payload interface{}) OutboundMessage {
	return OutboundMessage{Event: event, Payload: payload}
}

// Unicast builds a message for a single participant
func Unicast(socketID string, event Event, payload interface{}) OutboundMessage {
	return OutboundMessage{SocketID: socketID, Event: event, Payload: payload}
}

// PlayerInfo identifies a player in wire payloads
type PlayerInfo struct {
	Username string `json:"username"`
	SocketID string `json:"socketId"`
}

// CreatedGamePayload is emitted to the creator of a new game
type CreatedGamePayload struct {
	ID      string `json:"id"`
	JoinTag string `json:"joinTag"`
}

// PlayerJoinedPayload is broadcast to a room when a player joins
type PlayerJoinedPayload struct {
	Player       string `json:"player"`
	PlayersCount int    `json:"playersCount"`
}

// GameInfoPayload answers a game info request
type GameInfoPayload struct {
	JoinTag      string `json:"joinTag"`
	IsCreator    bool   `json:"isCreator"`
	GameStatus   string `json:"gameStatus"`
	PlayersCount int    `json:"playersCount"`
}

// StartedGamePayload is broadcast to a room when the game starts
type StartedGamePayload struct {
	CurrentPlayerID string       `json:"currentPlayerSocketId"`
	Players         []PlayerInfo `json:"players"`
	TopCard         deck.Card    `json:"topCard"`
	Direction       int          `json:"direction"`
}

// FinishedGamePayload names the winner
type FinishedGamePayload struct {
	Winner string `json:"winner"`
}

// ErrorPayload carries a scoped error to the originating participant
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
