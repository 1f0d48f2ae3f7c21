// Command server runs the kit tracking HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/api"
	"github.com/kitworks/kittrack/internal/config"
	"github.com/kitworks/kittrack/internal/db"
	"github.com/kitworks/kittrack/internal/db/migrations"
	"github.com/kitworks/kittrack/internal/dbpool"
	"github.com/kitworks/kittrack/internal/service"
	"github.com/kitworks/kittrack/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	base := store.Base{Pool: pool, Log: log}
	kits := service.NewKitService(store.NewKitStore(base), log)
	temporal := service.NewTemporalService(store.NewTemporalStore(base), log)
	history := service.NewHistoryService(store.NewHistoryStore(base), log)
	changes := service.NewChangeFeedService(store.NewChangeFeedStore(base), log)
	users := service.NewUserService(store.NewUserStore(base), log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:           log,
		Pool:          pool,
		Kits:          kits,
		Temporal:      temporal,
		History:       history,
		Changes:       changes,
		Users:         users,
		CORSOrigins:   cfg.CORSOrigins,
		Version:       config.Version,
		SchemaVersion: db.SchemaVersion(),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": config.Version,
		}).Info("starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// Stop background middleware goroutines (rate limiter cleanup).
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}

	log.Info("server exited")
}
