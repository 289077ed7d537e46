package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/okekefrancis/crazy8s/store"
)

const joinTagLength = 5

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GameServer owns the websocket rooms and routes every inbound action
// through the per-game serialization point.
type GameServer struct {
	http.Server

	store    store.GameStore
	log      *logrus.Logger
	handSize int

	mu    sync.Mutex
	rooms map[string]*room
}

// NewServer creates a new GameServer backed by the given store
func NewServer(st store.GameStore, log *logrus.Logger, handSize int) *GameServer {
	if log == nil {
		log = logrus.New()
	}

	s := &GameServer{
		store:    st,
		log:      log,
		handSize: handSize,
		rooms:    map[string]*room{},
	}

	router := http.NewServeMux()
	router.HandleFunc("/health-check", s.handleHealthCheck)
	router.HandleFunc("/ws", s.handleWS)

	s.Handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.LoggingHandler(log.Writer(), router))

	return s
}

// ServeHTTP serves http
func (s *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler.ServeHTTP(w, r)
}

func (s *GameServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"data": "Success"})
}

// handleWS upgrades the connection and pumps messages for one participant
func (s *GameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("could not upgrade to websocket")
		return
	}

	c := &client{
		id:     uuid.NewV4().String(),
		conn:   conn,
		send:   make(chan []byte, 16),
		server: s,
	}
	s.log.WithField("player_id", c.id).Info("participant connected")

	go c.writePump()
	c.readPump()
}

// room returns the room for a game, creating it if needed
func (s *GameServer) room(gameID string) *room {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[gameID]
	if !ok {
		r = newRoom(gameID)
		s.rooms[gameID] = r
	}
	return r
}

// removeClient drops a disconnected participant from every room, discarding
// rooms left without any participants
func (s *GameServer) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for gameID, r := range s.rooms {
		r.remove(c.id)
		if r.empty() {
			delete(s.rooms, gameID)
		}
	}
}

// newJoinTag generates a short shareable code, rejection-sampling against
// tags already held by existing games.
func (s *GameServer) newJoinTag() (string, error) {
	for {
		tag := randomDigits(joinTagLength)
		existing, err := s.store.FindGameByTag(tag)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return tag, nil
		}
	}
}

func randomDigits(length int) string {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[rand.Intn(len(digits))]
	}
	return string(code)
}

// NewGameID generates a unique game identifier
func NewGameID() string {
	return uuid.NewV4().String()
}
