// Package main is the entry point for dungeoncrawl.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(context.Background()); err != nil {
		log.Printf("dungeoncrawl: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := game.LoadConfig()
	if err != nil {
		return err
	}

	closer, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		// Not fatal - the game still works without tracing.
		logger.Log.WithError(err).Warn("Telemetry setup failed, running without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Log.WithError(err).Error("Error shutting down telemetry")
			}
		}()
	}

	registry, err := gamedata.LoadEnemyRegistry(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load encounter table: %w", err)
	}

	g, err := game.New(cfg, registry)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	defer g.Close()

	logger.Log.WithFields(logrus.Fields{
		"width":       cfg.Width,
		"height":      cfg.Height,
		"enemy_types": registry.Count(),
		"tracing":     cfg.Telemetry.Enabled(),
	}).Info("Starting dungeoncrawl")

	return g.Run(ctx)
}
