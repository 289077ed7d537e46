package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/okekefrancis/crazy8s/game"
)

var ErrDuplicateGameID = errors.New("game id already exists")

// GameStore is the persistence boundary for game documents. A missing game
// is reported as (nil, nil); errors are reserved for storage failures.
type GameStore interface {
	AddGame(g *game.Game) error
	FindGame(id string) (*game.Game, error)
	FindGameByTag(tag string) (*game.Game, error)
	UpdateGame(g *game.Game) error
}

// InMemoryGameStore maps game ids to games. It backs tests and local runs.
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*game.Game
	tags  map[string]string
}

// NewInMemoryGameStore constructs an empty InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*game.Game{},
		tags:  map[string]string{},
	}
}

func (s *InMemoryGameStore) AddGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, g.ID)
	}
	s.games[g.ID] = g.Clone()
	s.tags[g.JoinTag] = g.ID

	return nil
}

func (s *InMemoryGameStore) FindGame(id string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	return g.Clone(), nil
}

func (s *InMemoryGameStore) FindGameByTag(tag string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tags[tag]
	if !ok {
		return nil, nil
	}
	g, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	return g.Clone(), nil
}

func (s *InMemoryGameStore) UpdateGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; !exists {
		return game.ErrGameNotFound
	}
	s.games[g.ID] = g.Clone()

	return nil
}
