package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/okekefrancis/crazy8s/config"
	"github.com/okekefrancis/crazy8s/server"
	"github.com/okekefrancis/crazy8s/store"
)

func main() {
	// optional; real deployments set the environment directly
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	var gameStore store.GameStore
	if cfg.DBPath != "" {
		sqliteStore, err := store.NewSQLiteGameStore(cfg.DBPath)
		if err != nil {
			log.WithError(err).Fatal("could not open game database")
		}
		defer sqliteStore.Close()
		gameStore = sqliteStore
		log.WithField("db_path", cfg.DBPath).Info("using sqlite game store")
	} else {
		gameStore = store.NewInMemoryGameStore()
		log.Info("using in-memory game store")
	}

	s := server.NewServer(gameStore, log, cfg.HandSize)

	log.WithField("addr", cfg.Addr()).Info("listening")
	log.Fatal(http.ListenAndServe(cfg.Addr(), s))
}
