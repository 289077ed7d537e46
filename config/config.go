package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds the process configuration, decoded from the environment
type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8000"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// DBPath is the SQLite database file; empty selects the in-memory store
	DBPath string `env:"DB_PATH"`

	// HandSize is the number of cards dealt to each player at game start
	HandSize int `env:"HAND_SIZE,default=12"`
}

// Load decodes the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config from environment: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port pair to listen on
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
