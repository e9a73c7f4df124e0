package main

import (
	"log"

	"github.com/gmkornilov/chess-play-backend/internal/agent"
	"github.com/gmkornilov/chess-play-backend/internal/api"
	"github.com/gmkornilov/chess-play-backend/internal/config"
	"github.com/gmkornilov/chess-play-backend/internal/game"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		panic(err)
	}

	logger := log.Default()
	random := agent.NewRandom(cfg.Random.Seed)

	var supplier game.MoveSupplier = random
	engine, err := agent.NewEngine(agent.EngineOptions{
		Path:  cfg.Stockfish.Path,
		Args:  cfg.Stockfish.Args,
		Depth: cfg.Stockfish.Depth,
		Hash:  cfg.Stockfish.Hash,
	})
	if err != nil {
		log.Printf("Stockfish engine error: %v; agent plays random moves", err)
	} else {
		defer engine.Close()
		supplier = &agent.Fallback{Primary: engine, Secondary: random, Logger: logger}
	}

	opts := cfg.SessionOptions()
	opts.Logger = logger
	session := game.New(supplier, opts)

	router := api.NewRouter(api.NewGameApi(session))
	log.Printf("listening on %s, mode %s", cfg.Address(), opts.Mode)
	if err := router.Run(cfg.Address()); err != nil {
		log.Println(err)
	}
}
