package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/game/element"
	"github.com/udisondev/skirmish/internal/game/geo"
	"github.com/udisondev/skirmish/internal/world"
)

const ConfigPath = "config/simserver.yaml"

// shutdownSaveTimeout bounds the final save after the tick loop stops.
const shutdownSaveTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Per-step debug logs only when asked for
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)
	world.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("skirmish simulation starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.TickInterval)

	// Static data
	actions, err := data.LoadActions(cfg.Data.Actions)
	if err != nil {
		return fmt.Errorf("loading actions: %w", err)
	}
	battlers, err := data.LoadBattlers(cfg.Data.Battlers, actions)
	if err != nil {
		return fmt.Errorf("loading battlers: %w", err)
	}
	scenario, err := data.LoadScenario(cfg.Data.Scenario, battlers)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	antiNull := make([]element.ID, 0, len(cfg.AntiNullElements))
	for _, id := range cfg.AntiNullElements {
		antiNull = append(antiNull, element.ID(id))
	}

	w := world.New(scenario.Map(), actions, world.Config{
		Navigator: geo.NewNavigator(geo.NavigatorOptions{
			SearchLimit:   cfg.Navigation.SearchLimit,
			DiagonalRatio: cfg.Navigation.DiagonalRatio,
		}),
		Composer: element.NewComposer(antiNull),
		AI:       ai.Options{AggroRange: cfg.Navigation.AggroRange},
		Callbacks: world.Callbacks{
			OnHit: func(h world.Hit) {
				slog.Info("hit",
					"attacker", h.AttackerID,
					"target", h.TargetID,
					"action", h.Action,
					"multiplier", h.Multiplier,
					"amount", h.Amount,
					"guarded", h.Guarded)
			},
		},
	})
	if err := w.SpawnScenario(scenario, battlers); err != nil {
		return fmt.Errorf("spawning scenario: %w", err)
	}
	slog.Info("scenario spawned", "name", scenario.Name, "battlers", w.Len())

	var persister *db.BattlerPersistenceService
	if cfg.Database.Enabled() {
		database, err := db.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		persister = db.NewBattlerPersistenceService(database.Pool(), db.NewSlotRepository(database.Pool()))

		saved, err := persister.LoadAll(ctx, w.BattlerIDs())
		if err != nil {
			return fmt.Errorf("loading slot state: %w", err)
		}
		slog.Info("slot state restored", "battlers", w.Restore(saved))
	} else {
		slog.Warn("database disabled, slot state will not persist")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := w.Run(gctx, cfg.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if persister != nil {
		g.Go(func() error {
			return runAutosave(gctx, w, persister, cfg.AutosaveInterval)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// runAutosave saves slot state every interval and once more on shutdown.
func runAutosave(ctx context.Context, w *world.World, persister *db.BattlerPersistenceService, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
		slog.Info("autosave started", "interval", interval)
	}

	for {
		select {
		case <-ctx.Done():
			saveCtx, cancel := context.WithTimeout(context.Background(), shutdownSaveTimeout)
			defer cancel()
			if err := persister.SaveAll(saveCtx, w.Snapshot()); err != nil {
				return fmt.Errorf("final save: %w", err)
			}
			slog.Info("slot state saved on shutdown")
			return nil

		case <-tick:
			if err := persister.SaveAll(ctx, w.Snapshot()); err != nil {
				// Keep running; the next interval retries.
				slog.Error("autosave failed", "error", err)
			}
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
