package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/foxsi02/russian-world-game/internal/bot"
	"github.com/foxsi02/russian-world-game/internal/config"
	"github.com/foxsi02/russian-world-game/internal/crime"
	"github.com/foxsi02/russian-world-game/internal/game"
	"github.com/foxsi02/russian-world-game/internal/job"
	"github.com/foxsi02/russian-world-game/internal/market"
	"github.com/foxsi02/russian-world-game/internal/player"
	"github.com/foxsi02/russian-world-game/internal/server"
	"github.com/foxsi02/russian-world-game/internal/telemetry"
	"github.com/foxsi02/russian-world-game/internal/ws"
)

func main() {
	logger := log.Default()

	cfg := loadConfig(logger)
	if err := config.FromEnv(cfg); err != nil {
		logger.Fatalf("apply env config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(logger)
	events := telemetry.NewBroadcastRepository(telemetry.NewMemoryRepository(), func(ev telemetry.Event) {
		hub.Publish(ev)
	})

	engine, err := buildEngine(ctx, cfg, events)
	if err != nil {
		logger.Fatalf("build engine: %v", err)
	}

	handler, err := server.NewHandler(server.Options{
		Config:    cfg,
		Engine:    engine,
		Telemetry: events,
		Hub:       hub,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return engine.Run(ctx) })
	g.Go(func() error { return hub.Run(ctx) })

	g.Go(func() error {
		logger.Printf("listening on http://localhost%s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if cfg.Bot.Token != "" {
		tg, err := bot.New(cfg.Bot.Token, cfg.Bot.Debug, engine, logger)
		if err != nil {
			logger.Fatalf("start bot: %v", err)
		}
		g.Go(func() error { return tg.Run(ctx) })
	} else {
		logger.Printf("bot token not set, telegram surface disabled")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("shutdown: %v", err)
	}
	logger.Printf("bye")
}

func loadConfig(logger *log.Logger) *config.Config {
	path := os.Getenv("RWG_CONFIG")
	if path == "" {
		path = "russian_world.yml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load config: %v", err)
		}
		logger.Printf("config file %s not found, using defaults", path)
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}
	return cfg
}

func buildEngine(ctx context.Context, cfg *config.Config, events telemetry.Repository) (*game.Engine, error) {
	jobRepo := job.NewMemoryRepo()
	if err := jobRepo.Seed(ctx, job.Defaults()); err != nil {
		return nil, err
	}
	marketRepo := market.NewMemoryRepo()
	if err := marketRepo.Seed(ctx, market.Defaults()); err != nil {
		return nil, err
	}

	var players player.Repository = player.NewMemoryRepo()
	if dir := os.Getenv("RWG_DATA_DIR"); dir != "" {
		fr, err := player.NewFileRepo(dir)
		if err != nil {
			return nil, err
		}
		players = fr
	}

	return &game.Engine{
		Players:   players,
		Jobs:      jobRepo,
		Market:    marketRepo,
		Crimes:    crime.NewMemoryRepo(),
		Telemetry: events,
		Balance:   cfg.Game,
		Sweeps:    cfg.Sweeps,
		Clock:     game.RealClock{},
		Dice:      game.NewRandDice(time.Now().UnixNano()),
	}, nil
}
