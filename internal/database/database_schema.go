// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
database_schema.go - Database Schema Management

Tables:

  - books, films, games: one table per catalog kind, ids from a per-kind
    sequence, added_seq from a shared sequence for recency ordering
  - tags: tag vocabulary, unique by text
  - item_tags: aggregated tag count per (item, kind, tag)
  - user_upvotes: one row per user who added or upvoted a tag on an item

All columns are defined in the initial CREATE TABLE statements; the
schema has no migrations.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequences and tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_books START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_films START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_games START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_tags START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_added START 1`,

		`CREATE TABLE IF NOT EXISTS books (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_books'),
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			isbn TEXT NOT NULL DEFAULT '',
			cover TEXT NOT NULL DEFAULT '',
			added_seq BIGINT NOT NULL DEFAULT nextval('seq_added')
		)`,

		`CREATE TABLE IF NOT EXISTS films (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_films'),
			title TEXT NOT NULL,
			director TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			production_company TEXT NOT NULL DEFAULT '',
			cover TEXT NOT NULL DEFAULT '',
			added_seq BIGINT NOT NULL DEFAULT nextval('seq_added')
		)`,

		`CREATE TABLE IF NOT EXISTS games (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_games'),
			title TEXT NOT NULL,
			developer TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			cover TEXT NOT NULL DEFAULT '',
			added_seq BIGINT NOT NULL DEFAULT nextval('seq_added')
		)`,

		`CREATE TABLE IF NOT EXISTS tags (
			tag_id BIGINT PRIMARY KEY DEFAULT nextval('seq_tags'),
			tag TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS item_tags (
			item_id BIGINT NOT NULL,
			item_type TEXT NOT NULL,
			tag_id BIGINT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (item_id, item_type, tag_id)
		)`,

		`CREATE TABLE IF NOT EXISTS user_upvotes (
			user_id BIGINT NOT NULL,
			item_id BIGINT NOT NULL,
			item_type TEXT NOT NULL,
			tag_id BIGINT NOT NULL,
			upvoted_at BIGINT NOT NULL,
			PRIMARY KEY (user_id, item_id, item_type, tag_id)
		)`,
	}
}

// createIndexes creates secondary indexes for title lookups and tag joins
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(title)`,
		`CREATE INDEX IF NOT EXISTS idx_films_title ON films(title)`,
		`CREATE INDEX IF NOT EXISTS idx_games_title ON games(title)`,
		`CREATE INDEX IF NOT EXISTS idx_item_tags_tag ON item_tags(tag_id)`,
	}
	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
