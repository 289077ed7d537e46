package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/okekefrancis/crazy8s/deck"
	"github.com/okekefrancis/crazy8s/game"
	utils "github.com/okekefrancis/crazy8s/internal"
	"github.com/okekefrancis/crazy8s/protocol"
	"github.com/okekefrancis/crazy8s/store"
	"github.com/stretchr/testify/require"
)

type wsMsg struct {
	Event   protocol.Event  `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(store.NewInMemoryGameStore(), quietLogger(), 0))
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	utils.AssertNoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg protocol.InboundMessage) {
	t.Helper()
	utils.AssertNoError(t, conn.WriteJSON(msg))
}

// readEvent reads messages off the connection until one matches the wanted
// event, skipping unrelated broadcasts.
func readEvent(t *testing.T, conn *websocket.Conn, want protocol.Event) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	for i := 0; i < 20; i++ {
		var msg wsMsg
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("reading for %s: %s", want, err)
		}
		if msg.Event == want {
			return msg.Payload
		}
	}

	t.Fatalf("never received %s", want)
	return nil
}

func TestHealthCheck(t *testing.T) {
	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/health-check", nil)

	s := NewServer(store.NewInMemoryGameStore(), quietLogger(), 0)
	s.ServeHTTP(response, request)

	utils.AssertEqual(t, response.Code, http.StatusOK)
	utils.AssertTrue(t, strings.Contains(response.Body.String(), "Success"))
}

func TestGameFlow(t *testing.T) {
	ts := newTestServer(t)

	alice := dial(t, ts)
	bob := dial(t, ts)

	// alice creates a game
	send(t, alice, protocol.InboundMessage{Event: protocol.CreateGame, Username: "alice"})

	var created protocol.CreatedGamePayload
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, alice, protocol.CreatedGame), &created))
	utils.AssertNotEmptyString(t, created.ID)
	require.Len(t, created.JoinTag, 5)

	// bob joins with the shared tag
	send(t, bob, protocol.InboundMessage{Event: protocol.JoinGame, JoinTag: created.JoinTag, Username: "bob"})

	var joinedID string
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.JoinedGame), &joinedID))
	utils.AssertEqual(t, joinedID, created.ID)

	var joined protocol.PlayerJoinedPayload
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, alice, protocol.PlayerJoined), &joined))
	utils.AssertEqual(t, joined.PlayersCount, 2)

	// game info names alice as the creator
	send(t, alice, protocol.InboundMessage{Event: protocol.GameInfo, GameID: created.ID})

	var info protocol.GameInfoPayload
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, alice, protocol.GameInfo), &info))
	utils.AssertEqual(t, info.JoinTag, created.JoinTag)
	utils.AssertTrue(t, info.IsCreator)
	utils.AssertEqual(t, info.GameStatus, string(game.Pending))
	utils.AssertEqual(t, info.PlayersCount, 2)

	// only alice may start
	send(t, bob, protocol.InboundMessage{Event: protocol.StartGame, GameID: created.ID})
	var wsErr protocol.ErrorPayload
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.Error), &wsErr))
	utils.AssertTrue(t, strings.Contains(wsErr.Message, "Unauthorized"))

	send(t, alice, protocol.InboundMessage{Event: protocol.StartGame, GameID: created.ID})

	var start protocol.StartedGamePayload
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, alice, protocol.StartedGame), &start))
	require.Len(t, start.Players, 2)
	utils.AssertEqual(t, start.Direction, 1)
	utils.AssertNotEmptyString(t, start.TopCard.Identifier)

	var aliceHand []deck.Card
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, alice, protocol.PlayerCards), &aliceHand))
	require.Len(t, aliceHand, 13)

	var bobHand []deck.Card
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.PlayerCards), &bobHand))
	require.Len(t, bobHand, 12)

	// alice passes; the turn moves to bob
	send(t, alice, protocol.InboundMessage{Event: protocol.MoveGame, GameID: created.ID, Cards: []deck.Card{}})

	var current protocol.PlayerInfo
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.PlayerCurrent), &current))
	utils.AssertEqual(t, current.Username, "bob")

	// bob draws a card
	send(t, bob, protocol.InboundMessage{Event: protocol.DrawCard, GameID: created.ID})
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.PlayerCards), &bobHand))
	require.Len(t, bobHand, 13)

	// a mixed-suite play is illegal and draws the five-card penalty
	send(t, bob, protocol.InboundMessage{
		Event:  protocol.MoveGame,
		GameID: created.ID,
		Cards:  []deck.Card{deck.NewCard(deck.Club, "2"), deck.NewCard(deck.Spade, "3")},
	})
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.Error), &wsErr))
	utils.AssertEqual(t, wsErr.Code, "card_mismatch")

	utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.PlayerCards), &bobHand))
	require.Len(t, bobHand, 18)
}

func TestJoinErrors(t *testing.T) {
	t.Run("unknown tag", func(t *testing.T) {
		ts := newTestServer(t)
		conn := dial(t, ts)

		send(t, conn, protocol.InboundMessage{Event: protocol.JoinGame, JoinTag: "00000", Username: "bob"})

		var wsErr protocol.ErrorPayload
		utils.AssertNoError(t, json.Unmarshal(readEvent(t, conn, protocol.Error), &wsErr))
		utils.AssertTrue(t, strings.Contains(wsErr.Message, "not found"))
	})

	t.Run("duplicate username", func(t *testing.T) {
		ts := newTestServer(t)
		alice := dial(t, ts)
		bob := dial(t, ts)

		send(t, alice, protocol.InboundMessage{Event: protocol.CreateGame, Username: "alice"})
		var created protocol.CreatedGamePayload
		utils.AssertNoError(t, json.Unmarshal(readEvent(t, alice, protocol.CreatedGame), &created))

		send(t, bob, protocol.InboundMessage{Event: protocol.JoinGame, JoinTag: created.JoinTag, Username: "alice"})

		var wsErr protocol.ErrorPayload
		utils.AssertNoError(t, json.Unmarshal(readEvent(t, bob, protocol.Error), &wsErr))
		utils.AssertEqual(t, wsErr.Message, "Username already taken")
	})
}

func TestGameInfoNotFound(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, protocol.InboundMessage{Event: protocol.GameInfo, GameID: "missing"})

	var wsErr protocol.ErrorPayload
	utils.AssertNoError(t, json.Unmarshal(readEvent(t, conn, protocol.Error), &wsErr))
	utils.AssertEqual(t, wsErr.Message, "Game Not Found")
}

func TestRoomCleanup(t *testing.T) {
	s := NewServer(store.NewInMemoryGameStore(), quietLogger(), 0)

	c1 := &client{id: "c1"}
	c2 := &client{id: "c2"}
	s.room("game-1").add(c1)
	s.room("game-1").add(c2)
	s.room("game-2").add(c1)

	s.removeClient(c1)

	s.mu.Lock()
	_, sharedRoomKept := s.rooms["game-1"]
	_, emptyRoomKept := s.rooms["game-2"]
	s.mu.Unlock()

	// a room with remaining participants stays, an emptied one is dropped
	utils.AssertTrue(t, sharedRoomKept)
	utils.AssertEqual(t, emptyRoomKept, false)
}

func TestNewJoinTag(t *testing.T) {
	s := NewServer(store.NewInMemoryGameStore(), quietLogger(), 0)

	tag, err := s.newJoinTag()
	utils.AssertNoError(t, err)
	require.Len(t, tag, joinTagLength)
	for _, r := range tag {
		utils.AssertTrue(t, r >= '0' && r <= '9')
	}
}
