package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freightline/shipment-tracker/internal/api"
	"github.com/freightline/shipment-tracker/internal/infrastructure/config"
	mongodb "github.com/freightline/shipment-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/freightline/shipment-tracker/internal/infrastructure/db/redis"
	"github.com/freightline/shipment-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting shipment tracker")

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, draining server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}

// ensureIndexes creates the unique indexes every repository relies on. Index
// creation is idempotent, so running it on every boot is safe.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repos := []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewShipmentRepository(db),
		mongodb.NewUserRepository(db),
		mongodb.NewCompanyRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(indexCtx); err != nil {
			return err
		}
	}
	return nil
}
