package game

import (
	"github.com/okekefrancis/crazy8s/deck"
	"github.com/okekefrancis/crazy8s/protocol"
)

// MoveKind classifies a validated play into the effect it triggers
type MoveKind int

const (
	MoveEmpty MoveKind = iota
	MoveJoker
	MoveDirectionChanger
	MoveSkipper
	MoveAce
	MoveSuiteChanger
	MoveOrdinary
)

var moveKindNames = []string{
	"Empty",
	"Joker",
	"DirectionChanger",
	"Skipper",
	"Ace",
	"SuiteChanger",
	"Ordinary",
}

func (k MoveKind) String() string {
	return moveKindNames[k]
}

// Classify maps a played card group to its move kind. The checks are
// mutually exclusive and evaluated in priority order.
func Classify(played []deck.Card) MoveKind {
	if len(played) == 0 {
		return MoveEmpty
	}
	if len(played) == 1 {
		c := played[0]
		switch {
		case c.Suite == deck.Joker:
			return MoveJoker
		case c.Value == deck.DirectionChanger:
			return MoveDirectionChanger
		case c.Value == deck.SkipperValue:
			return MoveSkipper
		case c.Value == deck.AceValue && c.Suite != deck.Joker:
			return MoveAce
		case c.IsSuiteChanger():
			return MoveSuiteChanger
		}
	}
	return MoveOrdinary
}

// HandleMove runs the full validate, dispatch, finalize sequence for the
// current player's proposed play. A validation failure applies the penalty
// deal and returns both the resulting notifications and the MoveError for
// the mover. Any other error is an internal failure; the caller must not
// persist the game in that case.
func (g *Game) HandleMove(played []deck.Card, asSuite deck.Suite) ([]protocol.OutboundMessage, error) {
	if g.Status != Started {
		return nil, ErrGameNotStarted
	}

	if err := ValidateMove(g.CurrentSuite, g.CurrentValue, played); err != nil {
		return g.Penalty(g.CurrentPlayerID), err
	}

	mover := g.CurrentPlayerID

	var msgs []protocol.OutboundMessage
	var err error
	switch Classify(played) {
	case MoveEmpty:
		msgs, err = g.playEmpty()
	case MoveJoker:
		msgs, err = g.playJoker(played[0])
	case MoveDirectionChanger:
		msgs, err = g.playDirectionChanger(played[0])
	case MoveSkipper:
		msgs, err = g.playSkipper(played[0])
	case MoveAce:
		msgs, err = g.playAce(played[0])
	case MoveSuiteChanger:
		msgs, err = g.playSuiteChanger(played[0], asSuite)
	default:
		msgs, err = g.playOrdinary(played)
	}
	if err != nil {
		return nil, err
	}

	return append(msgs, g.finalize(mover)...), nil
}

// playOrdinary resolves a plain play: the last card played defines the new
// current value and top card, the played cards leave the mover's hand and
// return to the shared deck pile.
func (g *Game) playOrdinary(played []deck.Card) ([]protocol.OutboundMessage, error) {
	mover := g.CurrentPlayerID
	chosen := played[len(played)-1]

	g.CurrentValue = chosen.Value
	g.TopCard = &chosen
	g.removeFromHand(mover, played)
	g.Deck = append(g.Deck, played...)
	if err := g.advanceTurn(0); err != nil {
		return nil, err
	}
	g.LastDealtCards = []deck.Card{}

	return []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
		protocol.Unicast(mover, protocol.PlayerCards, g.hand(mover)),
	}, nil
}

// playSuiteChanger resolves a wild-value card: the mover picks the suite
// subsequent plays must follow.
func (g *Game) playSuiteChanger(card deck.Card, asSuite deck.Suite) ([]protocol.OutboundMessage, error) {
	g.CurrentSuite = asSuite
	g.CurrentValue = card.Value
	g.TopCard = &card
	if err := g.advanceTurn(0); err != nil {
		return nil, err
	}
	g.LastDealtCards = []deck.Card{}

	msgs := []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
	}
	if asSuite != "" {
		msgs = append(msgs, protocol.Broadcast(protocol.CardCurrentSuite, asSuite))
	}
	return msgs, nil
}

// playAce makes the next player draw two cards.
func (g *Game) playAce(card deck.Card) ([]protocol.OutboundMessage, error) {
	g.CurrentValue = card.Value
	g.TopCard = &card
	if err := g.advanceTurn(0); err != nil {
		return nil, err
	}
	g.dealTo(g.CurrentPlayerID, aceDealCount)

	return []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
		protocol.Unicast(g.CurrentPlayerID, protocol.PlayerCards, g.hand(g.CurrentPlayerID)),
	}, nil
}

// playSkipper hops over the next player and hands the most recently dealt
// batch of cards from the mover to the player the turn lands on.
func (g *Game) playSkipper(card deck.Card) ([]protocol.OutboundMessage, error) {
	mover := g.CurrentPlayerID

	g.CurrentSuite = card.Suite
	g.CurrentValue = card.Value
	g.TopCard = &card
	if err := g.advanceTurn(1); err != nil {
		return nil, err
	}
	g.transferDealtCards(mover, g.CurrentPlayerID)

	return []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
		protocol.Unicast(mover, protocol.PlayerCards, g.hand(mover)),
		protocol.Unicast(g.CurrentPlayerID, protocol.PlayerCards, g.hand(g.CurrentPlayerID)),
	}, nil
}

// playDirectionChanger flips the direction of play; the turn advances using
// the new direction.
func (g *Game) playDirectionChanger(card deck.Card) ([]protocol.OutboundMessage, error) {
	g.CurrentValue = card.Value
	g.TopCard = &card
	g.Direction = -g.Direction
	if err := g.advanceTurn(0); err != nil {
		return nil, err
	}
	g.LastDealtCards = []deck.Card{}

	return []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
		protocol.Broadcast(protocol.CardDirection, g.Direction),
	}, nil
}

// playJoker forces the current suite to joker and makes the next player
// draw ten cards.
func (g *Game) playJoker(card deck.Card) ([]protocol.OutboundMessage, error) {
	g.CurrentSuite = deck.Joker
	g.TopCard = &card
	if err := g.advanceTurn(0); err != nil {
		return nil, err
	}
	g.dealTo(g.CurrentPlayerID, jokerDealCount)

	return []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
		protocol.Unicast(g.CurrentPlayerID, protocol.PlayerCards, g.hand(g.CurrentPlayerID)),
	}, nil
}

// playEmpty is a pass: the turn simply moves on.
func (g *Game) playEmpty() ([]protocol.OutboundMessage, error) {
	if err := g.advanceTurn(0); err != nil {
		return nil, err
	}
	g.LastDealtCards = []deck.Card{}

	return []protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerCurrent, g.playerInfo(g.CurrentPlayerID)),
	}, nil
}

// Draw deals a single card from the deck to the requesting player
func (g *Game) Draw(socketID string) []protocol.OutboundMessage {
	g.dealTo(socketID, 1)
	g.LastDealtCards = []deck.Card{}
	if socketID == g.CurrentPlayerID {
		g.CurrentPlayerHasDrawnCard = true
	}

	return []protocol.OutboundMessage{
		protocol.Unicast(socketID, protocol.PlayerCards, g.hand(socketID)),
	}
}

// Penalty deals five cards to the player who attempted an illegal move
func (g *Game) Penalty(socketID string) []protocol.OutboundMessage {
	g.dealTo(socketID, penaltyDealCount)

	return []protocol.OutboundMessage{
		protocol.Unicast(socketID, protocol.PlayerCards, g.hand(socketID)),
	}
}

// transferDealtCards moves the last dealt batch from the front of the
// sender's hand to the front of the recipient's hand.
func (g *Game) transferDealtCards(fromID, toID string) {
	count := len(g.LastDealtCards)
	from := g.findPlayer(fromID)
	to := g.findPlayer(toID)
	if count == 0 || from == -1 || to == -1 {
		return
	}

	if count > len(g.Players[from].Cards) {
		count = len(g.Players[from].Cards)
	}
	g.Players[from].Cards = g.Players[from].Cards[count:]
	g.Players[to].Cards = append(append([]deck.Card{}, g.LastDealtCards...), g.Players[to].Cards...)
}

// finalize checks the mover's hand after a move: an empty hand wins and
// finishes the game; a single remaining card triggers the last-card notice.
func (g *Game) finalize(moverID string) []protocol.OutboundMessage {
	idx := g.findPlayer(moverID)
	if idx == -1 {
		return nil
	}

	switch len(g.Players[idx].Cards) {
	case 0:
		g.Finish()
		return []protocol.OutboundMessage{
			protocol.Broadcast(protocol.FinishedGame, protocol.FinishedGamePayload{
				Winner: g.Players[idx].Username,
			}),
		}
	case 1:
		return []protocol.OutboundMessage{
			protocol.Broadcast(protocol.CardLeft, g.Players[idx].Username),
		}
	}
	return nil
}
