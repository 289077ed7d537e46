package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/okekefrancis/crazy8s/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id       TEXT PRIMARY KEY,
	join_tag TEXT NOT NULL UNIQUE,
	doc      TEXT NOT NULL
);`

// SQLiteGameStore persists each game as a single denormalized JSON document:
// players and cards are embedded wherever they currently reside, never
// referenced through a separate table.
type SQLiteGameStore struct {
	db *sql.DB
}

// NewSQLiteGameStore opens (creating if necessary) the database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteGameStore(path string) (*SQLiteGameStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening game database: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent and lets
	// sqlite serialize writers itself
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating games table: %w", err)
	}

	return &SQLiteGameStore{db: db}, nil
}

// Close closes the underlying database
func (s *SQLiteGameStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteGameStore) AddGame(g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.ID, err)
	}

	_, err = s.db.Exec(`INSERT INTO games (id, join_tag, doc) VALUES (?, ?, ?)`, g.ID, g.JoinTag, doc)
	if err != nil {
		return fmt.Errorf("inserting game %s: %w", g.ID, err)
	}
	return nil
}

func (s *SQLiteGameStore) FindGame(id string) (*game.Game, error) {
	return s.findBy(`SELECT doc FROM games WHERE id = ?`, id)
}

func (s *SQLiteGameStore) FindGameByTag(tag string) (*game.Game, error) {
	return s.findBy(`SELECT doc FROM games WHERE join_tag = ?`, tag)
}

func (s *SQLiteGameStore) UpdateGame(g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.ID, err)
	}

	res, err := s.db.Exec(`UPDATE games SET doc = ? WHERE id = ?`, doc, g.ID)
	if err != nil {
		return fmt.Errorf("updating game %s: %w", g.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return game.ErrGameNotFound
	}
	return nil
}

func (s *SQLiteGameStore) findBy(query, arg string) (*game.Game, error) {
	var doc []byte
	err := s.db.QueryRow(query, arg).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}

	var g game.Game
	if err := json.Unmarshal(doc, &g); err != nil {
		return nil, fmt.Errorf("decoding game document: %w", err)
	}
	return &g, nil
}
