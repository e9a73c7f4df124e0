package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/gmkornilov/chess-play-backend/internal/game"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Configuration struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
		Port string `envconfig:"SERVER_PORT" default:"5000"`
	}
	Game struct {
		Mode         string        `envconfig:"GAME_MODE" default:"human"`
		AgentTimeout time.Duration `envconfig:"AGENT_TIMEOUT" default:"5s"`
		AgentDelay   time.Duration `envconfig:"AGENT_DELAY" default:"500ms"`
	}
	Draws struct {
		Automatic bool `envconfig:"DRAWS_AUTOMATIC" default:"true"`
		Claim     bool `envconfig:"DRAWS_CLAIM" default:"false"`
	}
	Stockfish struct {
		Path  string   `envconfig:"STOCKFISH_PATH" default:"stockfish"`
		Args  []string `envconfig:"STOCKFISH_ARGS"`
		Depth int      `envconfig:"STOCKFISH_DEPTH" default:"10"`
		Hash  int      `envconfig:"STOCKFISH_HASH" default:"32"`
	}
	Random struct {
		Seed int64 `envconfig:"RANDOM_SEED" default:"0"`
	}
}

func InitConfig() (*Configuration, error) {
	config := &Configuration{}
	if err := envconfig.Process("", config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Configuration) Validate() error {
	if _, err := game.ParseMode(c.Game.Mode); err != nil {
		return fmt.Errorf("%w: GAME_MODE: %v", ErrInvalidConfig, err)
	}
	if c.Game.AgentTimeout < 0 {
		return fmt.Errorf("%w: AGENT_TIMEOUT must not be negative", ErrInvalidConfig)
	}
	if c.Game.AgentDelay < 0 {
		return fmt.Errorf("%w: AGENT_DELAY must not be negative", ErrInvalidConfig)
	}
	if c.Stockfish.Depth <= 0 {
		return fmt.Errorf("%w: STOCKFISH_DEPTH must be positive", ErrInvalidConfig)
	}
	if c.Stockfish.Hash < 0 {
		return fmt.Errorf("%w: STOCKFISH_HASH must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Address is the host:port the HTTP server listens on.
func (c *Configuration) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Configuration) SessionOptions() game.Options {
	mode, _ := game.ParseMode(c.Game.Mode)
	return game.Options{
		Mode:         mode,
		AgentTimeout: c.Game.AgentTimeout,
		AgentDelay:   c.Game.AgentDelay,
		DrawRules: rules.DrawRules{
			Automatic: c.Draws.Automatic,
			Claim:     c.Draws.Claim,
		},
	}
}
