// Command app runs the inventory and stats HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/config"
	"github.com/novatale/armory/internal/database"
	"github.com/novatale/armory/internal/database/jsonfile"
	"github.com/novatale/armory/internal/database/postgres"
	"github.com/novatale/armory/internal/event"
	"github.com/novatale/armory/internal/handler"
	"github.com/novatale/armory/internal/inventory"
	"github.com/novatale/armory/internal/metrics"
	"github.com/novatale/armory/internal/player"
	"github.com/novatale/armory/internal/repository"
	"github.com/novatale/armory/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	initLogger(cfg)
	log := slog.Default()

	cat, err := catalog.LoadCatalog(cfg.ItemsConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load item catalog: %w", err)
	}
	log.Info("Item catalog loaded", "path", cfg.ItemsConfigPath, "items", cat.Len())

	repo, storageHealth, cleanup, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Profile cache in front of the backing store
	cached := player.NewCachedRepository(repo, cfg.ProfileCacheSize, time.Duration(cfg.ProfileCacheTTL)*time.Second)

	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("failed to register metrics collector: %w", err)
	}

	playerService := player.NewService(cached, cat, bus)
	inventoryService := inventory.NewService(cached, cat, bus)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, storageHealth, cat, playerService, inventoryService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Shutdown complete")
	return nil
}

// buildStorage wires the configured persistence backend and returns the
// repository, its health probe and a cleanup function.
func buildStorage(cfg *config.Config) (repository.Profile, handler.HealthChecker, func(), error) {
	log := slog.Default()

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		poolCfg := database.DefaultPoolConfig()
		if cfg.DBMaxConns > 0 {
			poolCfg.MaxConns = int32(cfg.DBMaxConns)
		}
		if cfg.DBMinConns > 0 {
			poolCfg.MinConns = int32(cfg.DBMinConns)
		}

		pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), poolCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		repo := postgres.NewProfileRepository(pool)
		if err := repo.InitSchema(context.Background()); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
		}

		log.Info("Using postgres storage", "host", cfg.DBHost, "database", cfg.DBName)
		return repo, repo, pool.Close, nil

	default:
		repo, err := jsonfile.NewProfileRepository(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open data directory: %w", err)
		}

		log.Info("Using file storage", "dir", cfg.DataDir)
		return repo, repo, func() {}, nil
	}
}
