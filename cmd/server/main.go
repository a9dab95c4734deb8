package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/elbuensabor/ordering-system/internal/api"
	"github.com/elbuensabor/ordering-system/internal/infrastructure/config"
	mongodb "github.com/elbuensabor/ordering-system/internal/infrastructure/db/mongo"
	redisdb "github.com/elbuensabor/ordering-system/internal/infrastructure/db/redis"
	"github.com/elbuensabor/ordering-system/internal/infrastructure/sweeper"
	"github.com/elbuensabor/ordering-system/pkg/logger"

	_ "github.com/elbuensabor/ordering-system/docs"
)

// @title           El Buen Sabor Ordering API
// @version         1.0
// @description     Authentication, session, and user administration service for the El Buen Sabor restaurant ordering system.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "ordering",
	})

	policy, err := cfg.Session.Policy()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid session configuration")
	}
	if !policy.WindowValid() {
		log.Warn().
			Str("open", cfg.Session.BusinessOpen).
			Str("close", cfg.Session.BusinessClose).
			Msg("business-hours window invalid, staff inactivity exemption disabled")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index setup failed")
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

	sw := sweeper.New(redisdb.NewSessionStore(rdb), policy, cfg.Session.SweepInterval, log)
	sw.Start(ctx)

	e := api.NewRouter(cfg, policy, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
