package main

// @title           Shelfshare Catalog API
// @version         1.0
// @description     Read-only API over the Shelfshare catalog's authors.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/db"
	docs "github.com/snnyvrz/shelfshare/apps/catalog/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/server"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/view"
)

const (
	appVersion      = "0.2.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", true)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, !cfg.IsRelease())

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	views, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse views")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	docs.SwaggerInfo.BasePath = "/api"

	router := server.NewRouter(server.Deps{
		Authors: repository.NewAuthorRepository(database),
		Books:   repository.NewGormBookRepository(database),
		Ping: func(ctx context.Context) error {
			return db.Ping(ctx, database)
		},
		Views:     views,
		Metrics:   metrics,
		Log:       log,
		Version:   appVersion,
		StartTime: startTime,
		Verbose:   !cfg.IsRelease(),
	})

	srv := server.NewHTTPServer(cfg.Addr, router)

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("version", appVersion).Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("server exited")
}
