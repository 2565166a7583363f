package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"DUNGEONCRAWL_SEED"`

	Width  int `env:"DUNGEONCRAWL_WIDTH"  envDefault:"49"`
	Height int `env:"DUNGEONCRAWL_HEIGHT" envDefault:"21"`

	// Generation origin and player spawn point on every floor.
	OriginX int `env:"DUNGEONCRAWL_ORIGIN_X" envDefault:"0"`
	OriginY int `env:"DUNGEONCRAWL_ORIGIN_Y" envDefault:"0"`

	// DataDir overrides the embedded enemies.json when set.
	DataDir string `env:"DUNGEONCRAWL_DATA_DIR"`

	Log       logger.Config
	Telemetry telemetry.Config
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Width:  world.DefaultWidth,
		Height: world.DefaultHeight,
	}
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that a dungeon can be generated from the configuration.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("config: %w: got %dx%d", world.ErrInvalidSize, c.Width, c.Height)
	}
	if c.OriginX < 0 || c.OriginX >= c.Width || c.OriginY < 0 || c.OriginY >= c.Height {
		return fmt.Errorf("config: %w: (%d,%d) in %dx%d",
			world.ErrOriginOutOfBounds, c.OriginX, c.OriginY, c.Width, c.Height)
	}
	return nil
}
