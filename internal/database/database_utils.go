// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/metrics"
)

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the path to the database file
func (db *DB) GetDatabasePath() string {
	return db.cfg.Path
}

// RecordCounts returns the number of rows per catalog kind.
func (db *DB) RecordCounts(ctx context.Context) (map[catalog.Kind]int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	counts := make(map[catalog.Kind]int64, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		t := tableFor(kind)
		var n int64
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
			return nil, storeErr("count", t.name, err)
		}
		counts[kind] = n
	}
	return counts, nil
}

// storeErr wraps a driver error so callers can match catalog.ErrStoreUnavailable.
// Context cancellation and deadlines belong to the caller and are wrapped
// without the sentinel.
func storeErr(op, table string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	return fmt.Errorf("%s %s: %w: %w", op, table, catalog.ErrStoreUnavailable, err)
}

// track records a query's duration and error state.
func track(op, table string, start time.Time, err error) {
	metrics.RecordDBQuery(op, table, time.Since(start), err)
}
