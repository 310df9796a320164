// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package importer loads catalog seed files into the database.
//
// Files are YAML read through koanf. Each entry becomes a book, film or game;
// an entry whose title already exists for its kind keeps the stored item and
// only has its tag counts set. Tag counts are absolute, so re-running an
// import is idempotent.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/validation"
)

// Writer is the catalog write surface used by imports. *database.DB
// implements it.
type Writer interface {
	AddItem(ctx context.Context, item catalog.Item) (catalog.Item, bool, error)
	SetTagCount(ctx context.Context, ref catalog.Ref, name string, count int) error
}

// LoadFile parses a YAML import file.
func LoadFile(path string) (*File, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &f, nil
}

// Importer writes import files to a catalog.
type Importer struct {
	writer Writer
	dryRun bool
	logger zerolog.Logger
}

// NewImporter creates an importer. With dryRun set entries are validated
// but nothing is written.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewImporter(w Writer, dryRun bool, logger zerolog.Logger) *Importer {
	return &Importer{
		writer: w,
		dryRun: dryRun,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// ImportFile loads path and imports it.
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportStats, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, f)
}

// Import stores every entry of f. Invalid entries are skipped and entries
// that fail to store are counted as errors; both are logged. Import stops
// early only when ctx is done or the store is unavailable.
func (i *Importer) Import(ctx context.Context, f *File) (*ImportStats, error) {
	stats := &ImportStats{Total: len(f.Items), StartTime: time.Now(), DryRun: i.dryRun}
	defer func() { stats.EndTime = time.Now() }()

	for n, entry := range f.Items {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		logger := i.logger.With().Int("entry", n).Str("title", entry.Title).Logger()

		item, err := validateEntry(entry)
		if err != nil {
			stats.Skipped++
			logger.Warn().Err(err).Msg("Skipping invalid entry")
			continue
		}
		if i.dryRun {
			stats.Tags += len(entry.Tags)
			continue
		}

		stored, created, err := i.writer.AddItem(ctx, item)
		if err != nil {
			if errors.Is(err, catalog.ErrStoreUnavailable) {
				return stats, err
			}
			stats.Errors++
			logger.Error().Err(err).Msg("Failed to store entry")
			continue
		}
		if created {
			stats.Created++
		} else {
			stats.Existing++
		}

		if err := i.writeTags(ctx, stored.Ref(), entry.Tags); err != nil {
			if errors.Is(err, catalog.ErrStoreUnavailable) {
				return stats, err
			}
			stats.Errors++
			logger.Error().Err(err).Msg("Failed to store tags")
			continue
		}
		stats.Tags += len(entry.Tags)
	}

	i.logger.Info().
		Int("total", stats.Total).
		Int("created", stats.Created).
		Int("existing", stats.Existing).
		Int("skipped", stats.Skipped).
		Int("errors", stats.Errors).
		Int("tags", stats.Tags).
		Bool("dry_run", stats.DryRun).
		Msg("Import complete")
	return stats, nil
}

// writeTags sets tag counts in name order.
func (i *Importer) writeTags(ctx context.Context, ref catalog.Ref, tags map[string]int) error {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := i.writer.SetTagCount(ctx, ref, name, tags[name]); err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
	}
	return nil
}

func validateEntry(e Entry) (catalog.Item, error) {
	if verr := validation.ValidateStruct(&e); verr != nil {
		return catalog.Item{}, verr
	}
	item, err := e.Item()
	if err != nil {
		return catalog.Item{}, err
	}
	return item, item.Validate()
}
