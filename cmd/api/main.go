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

	"github.com/sirpyerre/user-management-api/internal/api"
	"github.com/sirpyerre/user-management-api/internal/core/service"
	mongodb "github.com/sirpyerre/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sirpyerre/user-management-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/user-management-api/internal/infrastructure/queue"
	"github.com/sirpyerre/user-management-api/internal/pkg/config"
	"github.com/sirpyerre/user-management-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           User Management API
// @version         1.0
// @description     Credential login with JWT bearer tokens and role-gated user management.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Missing JWT_SECRET lands here: refuse to boot without a signing secret.
		log.Fatalf("configuration: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logg.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logg.Error().Err(err).Msg("redis close failed")
		}
	}()

	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), logg)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, logg)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, logg)

	go func() {
		logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
