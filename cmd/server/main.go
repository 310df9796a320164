// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/api"
	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/moderation"
	"github.com/tomtom215/curio/internal/recommend"
	"github.com/tomtom215/curio/internal/supervisor"
	"github.com/tomtom215/curio/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Curio")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Reads for graph generation go through the breaker; writes go straight
	// to DuckDB.
	var store catalog.Store = db
	var breaker api.BreakerStater
	if cfg.Breaker.Enabled {
		bs := database.NewBreakerStore(db, cfg.Breaker)
		store, breaker = bs, bs
		logger.Info().Str("name", cfg.Breaker.Name).Msg("Catalog circuit breaker enabled")
	}

	entities, err := initEntities(cfg.EntityCache, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize entity extraction")
		return
	}
	defer entities.Close()

	engine, err := recommend.NewEngine(&cfg.Recommend, store, entities.extractor, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create recommendation engine")
		return
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Engine:        engine,
		Catalog:       db,
		Moderator:     moderation.NewBlocklist(cfg.Moderation.Terms),
		Breaker:       breaker,
		GraphCacheTTL: cfg.Server.GraphCacheTTL,
		Version:       version,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create API handler")
		return
	}

	if cfg.Server.RateLimitDisabled {
		logger.Warn().Msg("Rate limiting is DISABLED (CURIO_DISABLE_RATE_LIMIT=true)")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(cfg.Server)))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	if cfg.Maintenance.Interval > 0 {
		tree.AddDataService(services.NewMaintenanceService(
			maintenanceConfig(cfg.Maintenance, db, entities, handler), logger))
	} else {
		logger.Info().Msg("Maintenance service disabled (CURIO_MAINTENANCE_INTERVAL=0)")
	}

	watchLogLevel(logger)
	go trackUptime(ctx, time.Now())

	logger.Info().Str("addr", server.Addr).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	logger.Info().Msg("Curio stopped")
}

// maintenanceConfig wires the stores and caches that exist into the
// maintenance service. Absent components stay nil interfaces.
func maintenanceConfig(mc config.MaintenanceConfig, db *database.DB, entities *entityComponents, h *api.Handler) services.MaintenanceServiceConfig {
	cfg := services.MaintenanceServiceConfig{
		Interval:       mc.Interval,
		GCDiscardRatio: mc.GCDiscardRatio,
		DB:             db,
		WarmupRate:     mc.WarmupRate,
		WarmupBurst:    mc.WarmupBurst,
	}
	if entities.store != nil {
		cfg.EntityStore = entities.store
	}
	if entities.cached != nil {
		cfg.EntityCache = entities.cached
		if mc.Warmup {
			cfg.Titles = db
			cfg.Extractor = entities.cached
		}
	}
	if graphs := h.GraphCache(); graphs != nil {
		cfg.GraphCache = graphs
	}
	return cfg
}

// watchLogLevel reloads the log level when the config file changes. Other
// settings need a restart.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func watchLogLevel(logger zerolog.Logger) {
	path := config.FindConfigFile()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.LoadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config change")
			return
		}
		logging.SetLevelString(cfg.Logging.Level)
		logger.Info().Str("level", cfg.Logging.Level).Msg("Log level reloaded")
	})
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}

func trackUptime(ctx context.Context, start time.Time) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		metrics.AppUptime.Set(time.Since(start).Seconds())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
