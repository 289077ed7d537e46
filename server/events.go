package server

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/okekefrancis/crazy8s/deck"
	"github.com/okekefrancis/crazy8s/game"
	"github.com/okekefrancis/crazy8s/protocol"
)

// dispatch routes one inbound message to its handler
func (s *GameServer) dispatch(c *client, msg protocol.InboundMessage) {
	s.log.WithFields(logrus.Fields{
		"event":     msg.Event,
		"player_id": c.id,
		"game_id":   msg.GameID,
	}).Info("inbound event")

	switch msg.Event {
	case protocol.CreateGame:
		s.handleCreateGame(c, msg.Username)
	case protocol.JoinGame:
		s.handleJoinGame(c, msg.JoinTag, msg.Username)
	case protocol.GameInfo:
		s.handleGameInfo(c, msg.GameID)
	case protocol.StartGame:
		s.handleStartGame(c, msg.GameID)
	case protocol.MoveGame:
		s.handleMove(c, msg.GameID, msg.Cards, msg.AsSuite)
	case protocol.DrawCard:
		s.handleDraw(c, msg.GameID)
	default:
		c.sendError(fmt.Sprintf("Unknown event %q", msg.Event), "")
	}
}

func (s *GameServer) handleCreateGame(c *client, username string) {
	tag, err := s.newJoinTag()
	if err != nil {
		s.creationFailed(c, err)
		return
	}

	g := game.New(NewGameID(), tag, c.id, username, s.handSize)
	if err := s.store.AddGame(g); err != nil {
		s.creationFailed(c, err)
		return
	}

	s.room(g.ID).add(c)
	c.emit(protocol.CreatedGame, protocol.CreatedGamePayload{ID: g.ID, JoinTag: g.JoinTag})
	s.log.WithFields(logrus.Fields{"game_id": g.ID, "join_tag": g.JoinTag}).Info("game created")
}

func (s *GameServer) creationFailed(c *client, err error) {
	s.log.WithError(err).Error("could not create game")
	c.sendError("Error creating game try again", "")
}

func (s *GameServer) handleJoinGame(c *client, joinTag, username string) {
	tagged, err := s.store.FindGameByTag(joinTag)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if tagged == nil {
		c.sendError(fmt.Sprintf("Game with tag %s not found", joinTag), "")
		return
	}

	r := s.room(tagged.ID)
	r.mu.Lock()
	defer r.mu.Unlock()

	// reload under the room lock so a concurrent join is not lost
	g, err := s.store.FindGame(tagged.ID)
	if err != nil || g == nil {
		s.internalError(c, err)
		return
	}

	if err := g.AddPlayer(c.id, username); err != nil {
		switch {
		case errors.Is(err, game.ErrGameAlreadyStarted):
			c.sendError("Can't join game already started", "")
		case errors.Is(err, game.ErrUsernameTaken):
			c.sendError("Username already taken", "")
		default:
			s.internalError(c, err)
		}
		return
	}

	if err := s.store.UpdateGame(g); err != nil {
		s.internalError(c, err)
		return
	}

	r.add(c)
	c.emit(protocol.JoinedGame, g.ID)
	r.send([]protocol.OutboundMessage{
		protocol.Broadcast(protocol.PlayerJoined, protocol.PlayerJoinedPayload{
			Player:       fmt.Sprintf("%s joined the game", username),
			PlayersCount: len(g.Players),
		}),
	})
}

func (s *GameServer) handleGameInfo(c *client, gameID string) {
	g, err := s.store.FindGame(gameID)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if g == nil {
		c.sendError("Game Not Found", "")
		return
	}

	starter, _ := g.Starter()
	c.emit(protocol.GameInfo, protocol.GameInfoPayload{
		JoinTag:      g.JoinTag,
		IsCreator:    starter.SocketID == c.id,
		GameStatus:   string(g.Status),
		PlayersCount: len(g.Players),
	})
}

func (s *GameServer) handleStartGame(c *client, gameID string) {
	s.withGame(c, gameID, func(r *room, g *game.Game) {
		msgs, err := g.Start(c.id)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrGameAlreadyStarted):
				c.sendError("Game already started", "")
			case errors.Is(err, game.ErrUnauthorized):
				c.sendError("Unauthorized to start game", "")
			case errors.Is(err, game.ErrInsufficientPlayers):
				c.sendError("Must have more than one player to start game", "one_player_only")
			case errors.Is(err, game.ErrNotEnoughCards):
				c.sendError("Not enough cards to deal every player", "")
			default:
				s.internalError(c, err)
			}
			return
		}

		if err := s.store.UpdateGame(g); err != nil {
			s.internalError(c, err)
			return
		}
		r.send(msgs)
		s.log.WithField("game_id", g.ID).Info("game started")
	})
}

func (s *GameServer) handleMove(c *client, gameID string, cards []deck.Card, asSuite deck.Suite) {
	s.withGame(c, gameID, func(r *room, g *game.Game) {
		msgs, err := g.HandleMove(cards, asSuite)
		if err != nil {
			var moveErr *game.MoveError
			if !errors.As(err, &moveErr) {
				// internal consistency failure; nothing is persisted
				s.internalError(c, err)
				return
			}

			c.sendError(moveErr.Message, moveErr.Code)
			if len(msgs) > 0 {
				// the penalty deal mutated the game
				if err := s.store.UpdateGame(g); err != nil {
					s.internalError(c, err)
					return
				}
				r.send(msgs)
			}
			return
		}

		if err := s.store.UpdateGame(g); err != nil {
			s.internalError(c, err)
			return
		}
		r.send(msgs)
	})
}

func (s *GameServer) handleDraw(c *client, gameID string) {
	s.withGame(c, gameID, func(r *room, g *game.Game) {
		msgs := g.Draw(c.id)
		if err := s.store.UpdateGame(g); err != nil {
			s.internalError(c, err)
			return
		}
		r.send(msgs)
	})
}

// withGame funnels a mutation through the game's room lock, handing fn a
// private copy of the game that is only persisted by fn itself.
func (s *GameServer) withGame(c *client, gameID string, fn func(r *room, g *game.Game)) {
	r := s.room(gameID)
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := s.store.FindGame(gameID)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if g == nil {
		c.sendError("Game Not Found", "")
		return
	}

	fn(r, g)
}

func (s *GameServer) internalError(c *client, err error) {
	s.log.WithError(err).Error("operation failed")
	c.sendError("Something went wrong", "")
}
