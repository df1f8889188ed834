package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/worldguard/internal/config"
	"github.com/udisondev/worldguard/internal/data"
	"github.com/udisondev/worldguard/internal/db"
	"github.com/udisondev/worldguard/internal/gameserver"
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/message/handler/verify"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/service"
	"github.com/udisondev/worldguard/internal/world"
)

const ConfigPath = "config/worldserver.yaml"

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
	// Config first: it decides the log level.
	cfgPath := config.Path(ConfigPath)
	cfg, err := config.LoadWorldServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("worldguard starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.TickInterval,
		"services", cfg.Services)

	defs, err := data.Load(cfg.Definitions.Sources())
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}

	store, err := openSpawnStore(ctx, cfg.SpawnStore)
	if err != nil {
		return fmt.Errorf("opening spawn store: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	w := world.New()

	registry, err := verify.DefaultRegistry(w, defs, cfg.Interaction.Policy(), handler.ForwarderFunc(logAccepted))
	if err != nil {
		return fmt.Errorf("building handler registry: %w", err)
	}

	serviceRegistry, err := service.DefaultRegistry()
	if err != nil {
		return fmt.Errorf("building service registry: %w", err)
	}
	services, err := service.NewManager(serviceRegistry, cfg.Services, w)
	if err != nil {
		return fmt.Errorf("building services: %w", err)
	}
	services.SetContext(&service.ServerContext{
		World:      w,
		Config:     cfg,
		Queue:      gameserver.NewActionQueue(cfg.ActionQueueSize),
		Dispatcher: registry,
		Spawns:     store,
	})

	if err := services.StartAll(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("worldguard stopped", "entities", w.EntityCount(), "regions", w.Regions().Count())
	return nil
}

// openSpawnStore returns nil for the "none" driver.
func openSpawnStore(ctx context.Context, cfg config.SpawnStore) (db.SpawnStore, error) {
	switch cfg.Driver {
	case "", config.DriverNone:
		return nil, nil

	case config.DriverSQLite:
		store, err := db.OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		dsn := cfg.PostgresDSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		slog.Info("database connected")
		return &postgresStore{SpawnRepository: db.NewSpawnRepository(database.Pool()), db: database}, nil

	default:
		return nil, fmt.Errorf("driver %q: %w", cfg.Driver, config.ErrInvalidConfig)
	}
}

// postgresStore closes the pool along with the repository.
type postgresStore struct {
	*db.SpawnRepository
	db *db.DB
}

func (s *postgresStore) Close() error {
	s.db.Close()
	return nil
}

// logAccepted is the effect boundary: gameplay systems subscribe here.
func logAccepted(player *model.Player, msg message.Message) {
	slog.Debug("action accepted", "player", player.Name(), "type", msg.Type())
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
