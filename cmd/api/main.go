package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-agenda/internal/db"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/routes"
	"github.com/BruksfildServices01/barber-agenda/internal/storage"
)

const (
	auditQueueSize  = 1000
	lockTTL         = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {

	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	defer log.Sync() //nolint:errcheck

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	ctx := context.Background()

	// ======================================================
	// LOCKS
	// ======================================================
	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisURL != "" {
		client, err := lock.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer client.Close()
		locker = lock.NewRedis(client, lockTTL)
		log.Info("using redis locks")
	}

	// ======================================================
	// STORAGE
	// ======================================================
	var store storage.ObjectStore
	if cfg.S3.Enabled() {
		store = storage.NewS3(cfg.S3)
		log.Info("logo storage enabled", zap.String("bucket", cfg.S3.Bucket))
	} else {
		log.Warn("S3 not configured, logo uploads disabled")
	}

	dispatcher := audit.NewDispatcher(audit.NewStore(db), log, auditQueueSize)

	deps := routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Clock:   clock.NewSystem(cfg.Timezone),
		Locker:  locker,
		Storage: store,
		Audit:   dispatcher,
	}
	services := routes.NewServices(deps)

	if _, err := services.Accounts.PublicClient(ctx); err != nil {
		log.Fatal("bootstrap public client", zap.Error(err))
	}
	if _, err := services.Accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps, services)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	dispatcher.Close()
}
