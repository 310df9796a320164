// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Command import loads a YAML catalog file into the Curio database.
//
// Usage:
//
//	import [-dry-run] [-db path] catalog.yaml
//
// The database location and logging come from the same configuration as the
// server (config file and CURIO_* variables); -db overrides the path.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/importer"
	"github.com/tomtom215/curio/internal/logging"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Validate entries without writing")
	dbPath := flag.String("db", "", "DuckDB path (overrides database.path)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] catalog.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

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

	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("db_path", cfg.Database.Path).Msg("Failed to open database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	stats, importErr := importer.NewImporter(db, *dryRun, logger).ImportFile(ctx, flag.Arg(0))
	stop()

	if err := db.Checkpoint(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Checkpoint after import failed")
	}
	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing database")
	}

	if stats != nil {
		fmt.Println(stats.String())
	}
	if importErr != nil {
		logger.Error().Err(importErr).Str("file", flag.Arg(0)).Msg("Import failed")
		os.Exit(1)
	}
}
