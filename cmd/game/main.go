package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/Garsondee/Park-Sleuth/internal/config"
	"github.com/Garsondee/Park-Sleuth/internal/game"
	"github.com/Garsondee/Park-Sleuth/internal/logger"
	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)
	if err := run(cfg, log); err != nil {
		logger.WithError(log, err).Error("park sleuth exited")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	simCfg, err := sim.LoadConfig(cfg.SimConfigPath)
	if err != nil {
		return err
	}
	simCfg.Validate()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting park sleuth", "environment", cfg.Environment, "seed", seed)

	session := sim.NewSession(simCfg, seed, log, sim.NewSimLog(false))
	if cfg.Debug {
		session.ToggleDebug()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := game.New(ctx, session, log)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	w, h := g.Size()
	ebiten.SetWindowTitle("Park Sleuth")
	ebiten.SetWindowSize(w, h)
	return ebiten.RunGame(g)
}
