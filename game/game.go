package game

import (
	"errors"

	"github.com/okekefrancis/crazy8s/deck"
	"github.com/okekefrancis/crazy8s/protocol"
)

// Status represents the lifecycle state of a game
type Status string

const (
	Pending   Status = "PENDING"
	Started   Status = "STARTED"
	Finished  Status = "FINISHED"
	Abandoned Status = "ABANDONED"
)

// DefaultHandSize is the number of cards dealt to each player at the start
const DefaultHandSize = 12

// Deal counts for the special effects
const (
	jokerDealCount   = 10
	aceDealCount     = 2
	penaltyDealCount = 5
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrTagNotFound         = errors.New("join tag not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrUnauthorized        = errors.New("unauthorized to start game")
	ErrInsufficientPlayers = errors.New("must have more than one player to start game")
	ErrNotEnoughCards      = errors.New("not enough cards in the deck to deal every player")

	// ErrPlayerNotFound indicates an internal consistency bug: the current
	// player id is missing from the player list. Not user-facing.
	ErrPlayerNotFound = errors.New("current player not in players list")
)

// Player represents a participant in a game. Turn order follows the order
// players joined in; the list is never reordered.
type Player struct {
	Username  string      `json:"username"`
	SocketID  string      `json:"socketId"`
	IsStarter bool        `json:"isStarter"`
	Cards     []deck.Card `json:"cards"`
}

// Game is the aggregate root for a single match. It is persisted as one
// document with players and cards embedded wherever they currently reside.
type Game struct {
	ID                        string      `json:"id"`
	JoinTag                   string      `json:"joinTag"`
	Deck                      deck.Deck   `json:"deck"`
	Players                   []Player    `json:"players"`
	TopCard                   *deck.Card  `json:"topCard,omitempty"`
	CurrentPlayerID           string      `json:"currentPlayerSocketId"`
	CurrentSuite              deck.Suite  `json:"currentSuite"`
	CurrentValue              deck.Value  `json:"currentValue"`
	LastDealtCards            []deck.Card `json:"lastDealtCards"`
	HandSize                  int         `json:"handSize"`
	Direction                 int         `json:"direction"`
	CurrentPlayerHasDrawnCard bool        `json:"currentPlayerHasDrawnCard"`
	Status                    Status      `json:"gameStatus"`
}

// New constructs a pending game with a freshly shuffled deck and the
// creator as its starter player.
func New(id, joinTag, socketID, username string, handSize int) *Game {
	d := deck.New()
	d.Shuffle()

	if handSize <= 0 {
		handSize = DefaultHandSize
	}

	return &Game{
		ID:      id,
		JoinTag: joinTag,
		Deck:    d,
		Players: []Player{
			{Username: username, SocketID: socketID, IsStarter: true, Cards: []deck.Card{}},
		},
		CurrentPlayerID: socketID,
		CurrentSuite:    "",
		CurrentValue:    "",
		LastDealtCards:  []deck.Card{},
		HandSize:        handSize,
		Direction:       1,
		Status:          Pending,
	}
}

// AddPlayer appends a player with an empty hand. Joining is only possible
// while the game is pending and usernames must be unique within a game.
func (g *Game) AddPlayer(socketID, username string) error {
	if g.Status != Pending {
		return ErrGameAlreadyStarted
	}
	if g.UsernameTaken(username) {
		return ErrUsernameTaken
	}

	g.Players = append(g.Players, Player{
		Username: username,
		SocketID: socketID,
		Cards:    []deck.Card{},
	})

	return nil
}

// UsernameTaken reports whether a player already holds the username
func (g *Game) UsernameTaken(username string) bool {
	for _, p := range g.Players {
		if p.Username == username {
			return true
		}
	}
	return false
}

// Starter returns the player who created the game
func (g *Game) Starter() (Player, bool) {
	for _, p := range g.Players {
		if p.IsStarter {
			return p, true
		}
	}
	return Player{}, false
}

// Start deals each player their opening hand (the starter gets one extra
// card), flips the initial top card and moves the game to Started. Only the
// starter may issue the start signal, and only with at least two players.
func (g *Game) Start(requesterID string) ([]protocol.OutboundMessage, error) {
	if g.Status != Pending {
		return nil, ErrGameAlreadyStarted
	}
	starter, ok := g.Starter()
	if !ok || starter.SocketID != requesterID {
		return nil, ErrUnauthorized
	}
	if len(g.Players) < 2 {
		return nil, ErrInsufficientPlayers
	}
	// every hand, the starter's extra card, and the flipped top card
	if len(g.Deck) < g.HandSize*len(g.Players)+2 {
		return nil, ErrNotEnoughCards
	}

	for i := range g.Players {
		count := g.HandSize
		if g.Players[i].IsStarter {
			count++
		}
		g.dealTo(g.Players[i].SocketID, count)
	}

	flipped := g.Deck.Deal(1)
	g.TopCard = &flipped[0]
	g.CurrentSuite = flipped[0].Suite
	g.CurrentValue = flipped[0].Value
	g.LastDealtCards = []deck.Card{}
	g.Status = Started

	msgs := []protocol.OutboundMessage{
		protocol.Broadcast(protocol.StartedGame, protocol.StartedGamePayload{
			CurrentPlayerID: g.CurrentPlayerID,
			Players:         g.playerInfos(),
			TopCard:         *g.TopCard,
			Direction:       g.Direction,
		}),
	}
	for _, p := range g.Players {
		msgs = append(msgs, protocol.Unicast(p.SocketID, protocol.PlayerCards, p.Cards))
	}
	msgs = append(msgs,
		protocol.Broadcast(protocol.CardTop, *g.TopCard),
		protocol.Broadcast(protocol.CardCurrentSuite, g.CurrentSuite),
		protocol.Broadcast(protocol.CardDirection, g.Direction),
		protocol.Broadcast(protocol.PlayerCount, len(g.Players)),
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
	)

	return msgs, nil
}

// Finish marks the game as finished
func (g *Game) Finish() {
	g.Status = Finished
}

// Clone returns a deep copy of the game. Orchestration mutates a clone and
// persists it on success, so a failed operation never leaves partial writes.
func (g *Game) Clone() *Game {
	clone := *g

	clone.Deck = append(deck.Deck{}, g.Deck...)
	clone.LastDealtCards = append([]deck.Card{}, g.LastDealtCards...)
	clone.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		clone.Players[i] = p
		clone.Players[i].Cards = append([]deck.Card{}, p.Cards...)
	}
	if g.TopCard != nil {
		top := *g.TopCard
		clone.TopCard = &top
	}

	return &clone
}

func (g *Game) findPlayer(socketID string) int {
	for i, p := range g.Players {
		if p.SocketID == socketID {
			return i
		}
	}
	return -1
}

// dealTo moves count cards from the front of the deck to the front of the
// player's hand and records them as the last dealt batch.
func (g *Game) dealTo(socketID string, count int) {
	idx := g.findPlayer(socketID)
	if idx == -1 {
		return
	}

	dealt := g.Deck.Deal(count)
	g.Players[idx].Cards = append(append([]deck.Card{}, dealt...), g.Players[idx].Cards...)
	g.LastDealtCards = dealt
}

// removeFromHand takes the played cards out of the player's hand by identifier
func (g *Game) removeFromHand(socketID string, played []deck.Card) {
	idx := g.findPlayer(socketID)
	if idx == -1 {
		return
	}

	playedIDs := map[string]bool{}
	for _, c := range played {
		playedIDs[c.Identifier] = true
	}

	remaining := []deck.Card{}
	for _, c := range g.Players[idx].Cards {
		if !playedIDs[c.Identifier] {
			remaining = append(remaining, c)
		}
	}
	g.Players[idx].Cards = remaining
}

// advanceTurn moves play on to the next player, skipping over skips players
func (g *Game) advanceTurn(skips int) error {
	next, err := NextPlayer(g.Players, g.CurrentPlayerID, g.Direction, skips)
	if err != nil {
		return err
	}
	g.CurrentPlayerID = next.SocketID
	g.CurrentPlayerHasDrawnCard = false
	return nil
}

func (g *Game) playerInfo(socketID string) protocol.PlayerInfo {
	idx := g.findPlayer(socketID)
	if idx == -1 {
		return protocol.PlayerInfo{SocketID: socketID}
	}
	return protocol.PlayerInfo{
		Username: g.Players[idx].Username,
		SocketID: socketID,
	}
}

func (g *Game) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(g.Players))
	for i, p := range g.Players {
		infos[i] = protocol.PlayerInfo{Username: p.Username, SocketID: p.SocketID}
	}
	return infos
}

func (g *Game) hand(socketID string) []deck.Card {
	idx := g.findPlayer(socketID)
	if idx == -1 {
		return nil
	}
	return g.Players[idx].Cards
}
