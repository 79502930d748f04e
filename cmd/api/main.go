package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secureapp/identity-service/internal/api"
	"github.com/secureapp/identity-service/internal/core/service"
	"github.com/secureapp/identity-service/internal/infrastructure/config"
	mongodb "github.com/secureapp/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/secureapp/identity-service/internal/infrastructure/db/redis"
	"github.com/secureapp/identity-service/internal/infrastructure/queue"
	"github.com/secureapp/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Identity Service API
// @version      1.0
// @description  Authentication, signed-token issuance, and role-based access control.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Audit pipeline ---
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(ctx)

	// --- Well-known roles must exist before the first request ---
	roleService := service.NewRoleService(
		mongodb.NewUserRepository(db),
		mongodb.NewRoleRepository(db),
		dispatcher,
		log,
	)
	if err := roleService.EnsureWellKnownRoles(ctx); err != nil {
		return err
	}

	// --- HTTP ---
	e := api.NewRouter(db, rdb, cfg, dispatcher, log)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service started")

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
