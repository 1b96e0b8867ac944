package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veridian/identity-api/internal/api"
	"github.com/veridian/identity-api/internal/infrastructure/config"
	"github.com/veridian/identity-api/internal/infrastructure/crypto"
	mongodb "github.com/veridian/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/veridian/identity-api/internal/infrastructure/db/redis"
	"github.com/veridian/identity-api/internal/infrastructure/seed"
	"github.com/veridian/identity-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	hasher := crypto.NewBcryptHasher(0)
	if err := seed.SuperAdmin(ctx, accountRepo, hasher, seed.Params{
		Email:    cfg.SuperAdmin.Email,
		Password: cfg.SuperAdmin.Password,
		Name:     cfg.SuperAdmin.Name,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("superadmin seed failed")
	}

	e, err := api.NewRouter(cfg, db, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
