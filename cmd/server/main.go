// Command server runs the animal migration dashboard and its JSON API.
//
// @title        Migration Zones API
// @version      1.0
// @description  Upload animal tracking CSVs and compute seasonal migration zones per species.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/wildpath/migration-zones/docs"
	"github.com/wildpath/migration-zones/internal/api"
	"github.com/wildpath/migration-zones/internal/core/ports"
	"github.com/wildpath/migration-zones/internal/core/service"
	"github.com/wildpath/migration-zones/internal/infrastructure/db/memory"
	mongostore "github.com/wildpath/migration-zones/internal/infrastructure/db/mongo"
	redisstore "github.com/wildpath/migration-zones/internal/infrastructure/db/redis"
	"github.com/wildpath/migration-zones/internal/pkg/config"
	"github.com/wildpath/migration-zones/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "migration-zones",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := service.NewZoneService(store, cfg.DatasetTTL, logger.Component("zones"))

	e, err := api.NewRouter(api.Dependencies{
		Service:        svc,
		Store:          store,
		Logger:         logger.Component("http"),
		MaxUploadBytes: cfg.MaxUploadBytes(),
		MapZoom:        cfg.MapZoom,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", store.Name()).
			Dur("dataset_ttl", cfg.DatasetTTL).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStore connects the dataset store selected by STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (ports.DatasetRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewDatasetRepository(client, cfg.DatasetTTL), func() { _ = client.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := mongostore.NewDatasetRepository(db, cfg.DatasetTTL)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return memory.NewDatasetRepository(cfg.DatasetTTL), func() {}, nil
	}
}
